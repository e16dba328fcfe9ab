package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is the transport view of any error returned by a service.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// upstreamError is satisfied by errors coming back from the HR API client.
// Declared here so apperror does not import the client package.
type upstreamError interface {
	error
	UpstreamStatus() int
	UpstreamDetails() any
}

func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	var upErr upstreamError
	if errors.As(err, &upErr) {
		status := upErr.UpstreamStatus()
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		return HTTPError{
			Status:  status,
			Code:    CodeUpstream,
			Message: "HR service rejected the request",
			Details: upErr.UpstreamDetails(),
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "Internal server error",
	}
}
