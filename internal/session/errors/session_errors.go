package sessionerrors

import (
	"net/http"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"invalid username or password",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		"INVALID_TOKEN",
		"invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		"TOKEN_EXPIRED",
		"token has expired",
		http.StatusUnauthorized,
	)
	ErrInvalidRefreshToken = apperror.New(
		"INVALID_REFRESH_TOKEN",
		"invalid refresh token",
		http.StatusUnauthorized,
	)
	ErrSessionNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"session not found or expired",
		http.StatusUnauthorized,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to generate token",
		http.StatusInternalServerError,
	)
	ErrInvalidScreen = apperror.New(
		apperror.CodeInvalidInput,
		"unknown filter screen",
		http.StatusBadRequest,
	)
	ErrFilterNotFound = apperror.New(
		apperror.CodeNotFound,
		"no saved filter for this screen",
		http.StatusNotFound,
	)
	ErrInvalidFilter = apperror.New(
		apperror.CodeInvalidInput,
		"filter must be a JSON object",
		http.StatusBadRequest,
	)
)
