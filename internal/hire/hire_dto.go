package hire

import "github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

type VerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

type SendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

type Candidate struct {
	ID          upstream.ID `json:"id"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	Email       string      `json:"email"`
	Designation string      `json:"designation,omitempty"`
	Department  string      `json:"department,omitempty"`
	Status      string      `json:"status"`
	SubmittedAt string      `json:"submitted_at,omitempty"`
}

type ReviewRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve reject"`
	Comment  string `json:"comment" binding:"max=500"`
}
