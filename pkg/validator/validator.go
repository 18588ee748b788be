package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/crewscore/crewscore/internal/domain"
)

// isRole checks that a string names a known role.
func isRole(fl validator.FieldLevel) bool {
	_, err := domain.ParseRole(fl.Field().String())
	return err == nil
}

// isOperation checks that a string is in the closed operation vocabulary.
func isOperation(fl validator.FieldLevel) bool {
	_, err := domain.ParseOperation(fl.Field().String())
	return err == nil
}

// RegisterCustomValidators registers domain-vocabulary validators.
func RegisterCustomValidators(validate *validator.Validate) error {
	if err := validate.RegisterValidation("role", isRole); err != nil {
		return err
	}
	return validate.RegisterValidation("operation", isOperation)
}
