package domain

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are carried by gateway access tokens. They are issued by the
// session service and read by the auth middleware.
type SessionClaims struct {
	SessionID  string `json:"sid"`
	UserID     string `json:"user_id"`
	EmployeeID string `json:"employee_id,omitempty"`
	Role       string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// ActiveSession is what the auth middleware needs from a stored session.
type ActiveSession struct {
	ID            string
	UserID        string
	EmployeeID    string
	Role          string
	UpstreamToken string
}
