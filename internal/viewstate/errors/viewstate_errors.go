package viewstateerrors

import (
	"net/http"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/apperror"
)

var (
	ErrUnknownTab = apperror.New(
		apperror.CodeInvalidInput,
		"tab must be one of staff, my_requests, approvals, all",
		http.StatusBadRequest,
	)
	ErrIdentityRequired = apperror.New(
		apperror.CodeUnauthorized,
		"my_requests needs an authenticated user",
		http.StatusUnauthorized,
	)
)
