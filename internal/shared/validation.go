package shared

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validation messages shown next to form fields.
const (
	MsgRequired          = "This field is required"
	MsgInvalidEmail      = "Enter a valid email address"
	MsgPasswordMin       = "Password must be at least 8 characters"
	MsgPasswordUpper     = "Include at least one uppercase letter"
	MsgPasswordLower     = "Include at least one lowercase letter"
	MsgPasswordNumber    = "Include at least one number"
	MsgPasswordsMismatch = "Passwords do not match"
	MsgAcceptTerms       = "You must accept the terms and conditions"
	MsgInvalidDate       = "Use the YYYY-MM-DD date format"
)

// MessageOverrider lets an input type replace the message for a
// "field.tag" pair, e.g. "name.min".
type MessageOverrider interface {
	ValidationMessages() map[string]string
}

// NewValidator returns a validator that reports json field names and knows
// the password and consent rules used by the forms.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	mustRegister(v, "hasupper", containsRange('A', 'Z'))
	mustRegister(v, "haslower", containsRange('a', 'z'))
	mustRegister(v, "hasdigit", containsRange('0', '9'))
	mustRegister(v, "accepted", func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.Bool && fl.Field().Bool()
	})
	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.DateOnly, fl.Field().String())
		return err == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("shared: register %s validation: %v", tag, err))
	}
}

func containsRange(lo, hi rune) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return strings.ContainsFunc(fl.Field().String(), func(r rune) bool {
			return r >= lo && r <= hi
		})
	}
}

// Validate checks input and converts failures into a *ValidationError.
func Validate(v *validator.Validate, input any) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Fields: []FieldError{{Message: err.Error()}}}
	}
	var overrides map[string]string
	if o, ok := input.(MessageOverrider); ok {
		overrides = o.ValidationMessages()
	}
	fields := make([]FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := overrides[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = messageFor(fe)
		}
		fields = append(fields, FieldError{Field: fe.Field(), Message: msg})
	}
	return &ValidationError{Fields: fields}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "email":
		return MsgInvalidEmail
	case "hasupper":
		return MsgPasswordUpper
	case "haslower":
		return MsgPasswordLower
	case "hasdigit":
		return MsgPasswordNumber
	case "eqfield":
		return MsgPasswordsMismatch
	case "accepted":
		return MsgAcceptTerms
	case "isodate":
		return MsgInvalidDate
	case "min":
		if fe.Field() == "password" {
			return MsgPasswordMin
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return fmt.Sprintf("Failed the %s check", fe.Tag())
	}
}
