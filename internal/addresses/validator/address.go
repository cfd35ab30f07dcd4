package validator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"marketplace/pkg/logger"
	"marketplace/pkg/model"
	"marketplace/pkg/sanitizer"
)

const (
	MsgRequiredFields    = "The 'street', 'number' and 'cep' params are required in the req body"
	MsgStreetNotString   = "The 'street' param must be a string"
	MsgStreetEmpty       = "The 'street' param cannot be empty"
	MsgNumberNotNumeric  = "The 'number' param must be a number"
	MsgCepNotString      = "The 'cep' param must be a string"
	MsgCepInvalid        = "The 'cep' param is invalid"
	MsgCepFormatInvalid  = "The 'cep' param format is invalid"
	MsgComplementInvalid = "The 'complement' param must be a string"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// Message returns the client-facing text of a validation failure.
func Message(err error) string {
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}

// numeric matches json.Number without tying this package to a JSON implementation.
type numeric interface {
	Int64() (int64, error)
	Float64() (float64, error)
}

type AddressValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAddressValidator(log *logger.Logger) *AddressValidator {
	return &AddressValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// ParseCreate checks a create request body field by field, in the order clients
// rely on for error messages, and returns the address to persist.
func (v *AddressValidator) ParseCreate(in *model.AddressInput) (*model.Address, error) {
	if in.Street == nil || in.Number == nil || in.Cep == nil {
		return nil, ValidationError{Field: "body", Message: MsgRequiredFields}
	}

	street, ok := in.Street.(string)
	if !ok {
		return nil, ValidationError{Field: "street", Message: MsgStreetNotString}
	}
	street = sanitizer.TrimAndNormalize(street)
	if street == "" {
		return nil, ValidationError{Field: "street", Message: MsgStreetEmpty}
	}

	number, ok := parseNumber(in.Number)
	if !ok {
		return nil, ValidationError{Field: "number", Message: MsgNumberNotNumeric}
	}

	cep, err := parseCep(in.Cep)
	if err != nil {
		return nil, err
	}

	complement := ""
	if in.Complement != nil {
		c, ok := in.Complement.(string)
		if !ok {
			return nil, ValidationError{Field: "complement", Message: MsgComplementInvalid}
		}
		complement = sanitizer.TrimAndNormalize(c)
	}

	address := &model.Address{
		Street:     street,
		Number:     number,
		Complement: complement,
		Cep:        cep,
	}
	if err := v.Validate(address); err != nil {
		return nil, err
	}
	return address, nil
}

// ParseUpdate collects the supplied fields of a partial update. Null, empty strings
// and a zero number count as not supplied.
func (v *AddressValidator) ParseUpdate(in *model.AddressInput) (*model.AddressUpdate, error) {
	update := &model.AddressUpdate{}

	if supplied(in.Street) {
		street, ok := in.Street.(string)
		if !ok {
			return nil, ValidationError{Field: "street", Message: MsgStreetNotString}
		}
		if street = sanitizer.TrimAndNormalize(street); street == "" {
			return nil, ValidationError{Field: "street", Message: MsgStreetEmpty}
		}
		update.Street = &street
	}

	if supplied(in.Number) {
		number, ok := parseNumber(in.Number)
		if !ok {
			return nil, ValidationError{Field: "number", Message: MsgNumberNotNumeric}
		}
		if number != 0 {
			update.Number = &number
		}
	}

	if supplied(in.Complement) {
		complement, ok := in.Complement.(string)
		if !ok {
			return nil, ValidationError{Field: "complement", Message: MsgComplementInvalid}
		}
		complement = sanitizer.TrimAndNormalize(complement)
		update.Complement = &complement
	}

	if supplied(in.Cep) {
		cep, err := parseCep(in.Cep)
		if err != nil {
			return nil, err
		}
		update.Cep = &cep
	}

	return update, nil
}

// Validate enforces the stored shape of an address.
func (v *AddressValidator) Validate(address *model.Address) error {
	if err := v.validate.Struct(address); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			first := validationErrs[0]
			return ValidationError{
				Field:   strings.ToLower(first.Field()),
				Message: fmt.Sprintf("The '%s' param is invalid", strings.ToLower(first.Field())),
			}
		}
		return err
	}
	return nil
}

func supplied(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

func parseCep(v any) (string, error) {
	raw, ok := v.(string)
	if !ok {
		return "", ValidationError{Field: "cep", Message: MsgCepNotString}
	}

	cep, err := sanitizer.NormalizePostalCode(strings.TrimSpace(raw))
	switch {
	case errors.Is(err, sanitizer.ErrPostalCodeLength):
		return "", ValidationError{Field: "cep", Message: MsgCepInvalid}
	case err != nil:
		return "", ValidationError{Field: "cep", Message: MsgCepFormatInvalid}
	}
	return cep, nil
}

// parseNumber accepts integral JSON numbers and numeric strings.
func parseNumber(v any) (int, bool) {
	switch n := v.(type) {
	case numeric:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return integral(f)
	case float64:
		return integral(n)
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func integral(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
