package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"marketplace/pkg/logger"
	"marketplace/pkg/model"
)

const MsgNameRequired = "You must provide a category name."

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return v.Message
}

type CategoryValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewCategoryValidator(log *logger.Logger) *CategoryValidator {
	return &CategoryValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// Validate expects the name to be trimmed already.
func (v *CategoryValidator) Validate(category *model.Category) error {
	err := v.validate.Struct(category)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	first := validationErrs[0]
	switch first.Tag() {
	case "required":
		return ValidationError{Field: "name", Message: MsgNameRequired}
	case "min":
		return ValidationError{Field: "name", Message: fmt.Sprintf("The category name must have at least %s characters.", first.Param())}
	case "max":
		return ValidationError{Field: "name", Message: fmt.Sprintf("The category name must have at most %s characters.", first.Param())}
	default:
		return ValidationError{Field: "name", Message: "The category name is invalid."}
	}
}
