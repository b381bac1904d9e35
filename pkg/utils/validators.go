package utils

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var enumValidators = map[string][]string{
	"plan_interval": {"month", "year", "lifetime"},
	"discount_type": {"flat", "percentage"},
	"order_status":  {"pending", "approved", "rejected", "completed", "cancelled"},
	"account_role":  {"user", "admin"},
}

// RegisterValidators installs the storefront enum tags on gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return registerEnums(v)
}

func registerEnums(v *validator.Validate) error {
	for tag, allowed := range enumValidators {
		allowed := allowed
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			for _, a := range allowed {
				if value == a {
					return true
				}
			}
			return false
		})
		if err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}
