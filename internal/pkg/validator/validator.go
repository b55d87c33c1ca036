package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrRequired     = errors.New("this field is required")
	ErrInvalidEmail = errors.New("please enter a valid email address")
	ErrInvalidPhone = errors.New("please enter a valid phone number")
)

var (
	emailShape = regexp.MustCompile(`\S+@\S+\.\S+`)
	phoneShape = regexp.MustCompile(`^\d{10,11}$`)
	whitespace = regexp.MustCompile(`\s`)
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return Required(fl.Field().String()) == nil
	})
	_ = validate.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return Email(fl.Field().String()) == nil
	})
	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return Phone(fl.Field().String()) == nil
	})
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	errs := make(map[string]string)
	for _, err := range verrs {
		errs[err.Field()] = err.Tag()
	}
	return errs
}

// Required rejects empty and whitespace-only input.
func Required(value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrRequired
	}
	return nil
}

// Email checks the loose something@something.tld shape. Empty input passes;
// pair it with Required.
func Email(value string) error {
	if value != "" && !emailShape.MatchString(value) {
		return ErrInvalidEmail
	}
	return nil
}

// Phone accepts 10 or 11 digits once whitespace is removed. Empty input passes.
func Phone(value string) error {
	if value != "" && !phoneShape.MatchString(whitespace.ReplaceAllString(value, "")) {
		return ErrInvalidPhone
	}
	return nil
}
