package session

import (
	"encoding/json"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserSnapshot is the minimal user profile kept with the session.
type UserSnapshot struct {
	ID         upstream.ID `json:"id"`
	EmployeeID upstream.ID `json:"employee_id,omitempty"`
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	Category   string      `json:"category"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type SessionResponse struct {
	SessionID   string       `json:"session_id"`
	User        UserSnapshot `json:"user"`
	Role        string       `json:"role"`
	Permissions []string     `json:"permissions"`
}

type LoginResponse struct {
	TokenPair
	Session SessionResponse `json:"session"`
}

type FilterResponse struct {
	Screen string          `json:"screen"`
	Filter json.RawMessage `json:"filter"`
}

type upstreamLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type upstreamLoginResponse struct {
	Token string       `json:"token"`
	User  UserSnapshot `json:"user"`
}
