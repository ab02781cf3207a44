package dto

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator with the strongpwd rule registered:
// at least one uppercase letter, one lowercase letter and one digit. Length
// bounds live in the struct tags.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
		var hasUpper, hasLower, hasDigit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsUpper(r):
				hasUpper = true
			case unicode.IsLower(r):
				hasLower = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		return hasUpper && hasLower && hasDigit
	})
	return v
}
