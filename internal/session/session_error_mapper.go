package session

import (
	"errors"
	"net/http"
	"strings"

	sessionerrors "github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/session/errors"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/apperror"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var errFilterConflict = apperror.New(
	apperror.CodeConflict,
	"filter was saved concurrently, retry",
	http.StatusConflict,
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sessionerrors.ErrSessionNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_ui_filter_user_screen" {
			return errFilterConflict
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_ui_filter_user_screen") {
		return errFilterConflict
	}

	return err
}

// mapLoginError turns the HR API's 400/401 on login into a credentials error.
func mapLoginError(err error) error {
	switch upstream.StatusOf(err) {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return sessionerrors.ErrInvalidCredentials
	}
	return err
}
