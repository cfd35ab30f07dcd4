package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"marketplace/pkg/logger"
	"marketplace/pkg/model"
)

type PermissionValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewPermissionValidator(log *logger.Logger) *PermissionValidator {
	return &PermissionValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *PermissionValidator) Validate(permission *model.Permission) error {
	err := v.validate.Struct(permission)
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
		return errors.New("The 'description' param is required in the req body")
	case "min", "max":
		return fmt.Errorf("The permission description must have between %d and %d characters",
			model.PermissionDescriptionMinLength, model.PermissionDescriptionMaxLength)
	case "uppercase":
		return errors.New("The permission description must be upper-case")
	default:
		return errors.New("The 'description' param is invalid")
	}
}
