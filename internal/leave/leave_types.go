package leave

import (
	"strings"

	leaveerrors "github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/leave/errors"

	"github.com/go-playground/validator/v10"
)

// leaveTypeCodes maps the labels the app shows to the codes the HR API
// accepts.
var leaveTypeCodes = map[string]string{
	"annual":          "annual",
	"annual leave":    "annual",
	"earned leave":    "annual",
	"sick":            "sick",
	"sick leave":      "sick",
	"casual":          "casual",
	"casual leave":    "casual",
	"maternity":       "maternity",
	"maternity leave": "maternity",
	"unpaid":          "unpaid",
	"unpaid leave":    "unpaid",
	"loss of pay":     "unpaid",
}

func LeaveTypeCode(label string) (string, error) {
	code, ok := leaveTypeCodes[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return "", leaveerrors.ErrUnknownLeaveType
	}
	return code, nil
}

// RegisterValidation adds the `leavetype` binding rule. Pass it to
// apperror.Init.
func RegisterValidation(v *validator.Validate) {
	_ = v.RegisterValidation("leavetype", func(fl validator.FieldLevel) bool {
		_, err := LeaveTypeCode(fl.Field().String())
		return err == nil
	})
}
