package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"marketplace/pkg/logger"
	"marketplace/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	return v[0].Message
}

type CityValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewCityValidator(log *logger.Logger) *CityValidator {
	return &CityValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *CityValidator) Validate(city *model.City) error {
	if err := v.validate.Struct(city); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "name",
			Message: cityNameMessage(err),
		})
	}

	return validationErrors
}

func cityNameMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "The 'name' param is required in the req body"
	case "min":
		return fmt.Sprintf("The city name must have at least %s characters", err.Param())
	case "max":
		return fmt.Sprintf("The city name must have at most %s characters", err.Param())
	default:
		return "The 'name' param is invalid"
	}
}
