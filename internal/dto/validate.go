package dto

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aerointel/aerointel-backend/internal/apperr"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// messager lets a request word its own validation failures.
type messager interface {
	ValidationMessage(errs validator.ValidationErrors) string
}

// Validate checks struct tags and converts the first failure into a
// validation error.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return apperr.Validation("Invalid request body")
	}
	if m, ok := req.(messager); ok {
		if msg := m.ValidationMessage(errs); msg != "" {
			return apperr.Validation(msg)
		}
	}
	fe := errs[0]
	if fe.Tag() == "required" {
		return apperr.Validationf("%s is required", fe.Field())
	}
	return apperr.Validationf("Invalid %s", fe.Field())
}

func hasTag(errs validator.ValidationErrors, tag string) bool {
	for _, fe := range errs {
		if fe.Tag() == tag {
			return true
		}
	}
	return false
}
