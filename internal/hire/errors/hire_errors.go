package hireerrors

import (
	"net/http"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/apperror"
)

var (
	ErrInvalidCandidateID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid candidate id",
		http.StatusBadRequest,
	)
	ErrInvalidRegistration = apperror.New(
		apperror.CodeInvalidInput,
		"registration body must be a JSON object",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"comment is required when rejecting a candidate",
		http.StatusBadRequest,
	)
)
