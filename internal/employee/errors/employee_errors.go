package employeeerrors

import (
	"net/http"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrUnknownSection = apperror.New(
		apperror.CodeNotFound,
		"unknown profile section",
		http.StatusNotFound,
	)
	ErrEmptyProfileUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"at least one profile field must be provided",
		http.StatusBadRequest,
	)
)
