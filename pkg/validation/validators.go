package validation

import (
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with the custom rules registered
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("collapsed", Collapsed)
	_ = v.RegisterValidation("max_current_year", MaxCurrentYear)
}

// Collapsed accepts strings with no leading, trailing or repeated whitespace
func Collapsed(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val != strings.TrimSpace(val) {
		return false
	}
	prevSpace := false
	for _, r := range val {
		space := unicode.IsSpace(r)
		if space && (prevSpace || r != ' ') {
			return false
		}
		prevSpace = space
	}
	return true
}

// MaxCurrentYear rejects years after next year; resumes may list an expected
// graduation a year out. Zero is treated as absent.
func MaxCurrentYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	if year == 0 {
		return true
	}
	return year <= int64(time.Now().Year()+1)
}
