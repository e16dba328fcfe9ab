package permissionerrors

import (
	"net/http"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/apperror"
)

var (
	ErrSessionRequired = apperror.New(
		apperror.CodeUnauthorized,
		"session is required",
		http.StatusUnauthorized,
	)
	ErrPermissionsUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"permissions could not be loaded",
		http.StatusServiceUnavailable,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have permission to perform this action",
		http.StatusForbidden,
	)
)
