package notificationerrors

import (
	"net/http"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/apperror"
)

var (
	ErrInvalidNotificationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid notification id",
		http.StatusBadRequest,
	)
)
