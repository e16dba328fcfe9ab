package reimbursementerrors

import (
	"net/http"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/apperror"
)

var (
	ErrInvalidReimbursementID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid reimbursement id",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeValidation,
		"amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrPhotoRequired = apperror.New(
		apperror.CodeValidation,
		"photo is required",
		http.StatusBadRequest,
	)
	ErrPhotoTooLarge = apperror.New(
		apperror.CodeValidation,
		"photo must be 10MB or smaller",
		http.StatusRequestEntityTooLarge,
	)
)
