package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Company codes are short alphanumeric organizational keys, uppercase by convention.
var companyCodePattern = regexp.MustCompile(`^[A-Z0-9]{1,4}$`)

// registerCustomValidators wires domain-specific binding rules into gin's
// validator engine. Must run before the first request is bound.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("company_code", func(fl validator.FieldLevel) bool {
			return companyCodePattern.MatchString(fl.Field().String())
		})
	}
}
