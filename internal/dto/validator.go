package dto

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var timeWindowPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d-([01]\d|2[0-3]):[0-5]\d$`)
var timeHalfPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// NewValidator builds a validator.Validate with the scheduler's
// time-window formats registered, so SolveRequest/TeacherInput payloads
// can be checked with a single Struct call.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("availableslot", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return timeWindowPattern.MatchString(s) && s[:5] < s[6:]
	})
	_ = v.RegisterValidation("availableslothalf", func(fl validator.FieldLevel) bool {
		return timeHalfPattern.MatchString(fl.Field().String())
	})
	return v
}
