package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/andyle182810/apicaller/dispatch"
	"github.com/go-playground/validator/v10"
)

const (
	// TagVerb accepts the verbs understood by the dispatch package, case-insensitively.
	TagVerb = "verb"
	// TagServiceName accepts lowercase backend names such as "users" or "billing-v2".
	TagServiceName = "servicename"
)

var serviceNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]{0,62}$`)

type Validator struct {
	Validator *validator.Validate
}

type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Message)
	}

	return strings.Join(msgs, "; ")
}

// New returns a validator that reports fields by their json (or env) name and
// knows the gateway specific tags.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(fieldName)

	_ = v.RegisterValidation(TagVerb, func(fl validator.FieldLevel) bool {
		_, err := dispatch.ParseVerb(fl.Field().String())

		return err == nil
	})

	_ = v.RegisterValidation(TagServiceName, func(fl validator.FieldLevel) bool {
		return serviceNamePattern.MatchString(fl.Field().String())
	})

	return &Validator{Validator: v}
}

func fieldName(fld reflect.StructField) string {
	const maxSplits = 2

	for _, key := range []string{"json", "env"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", maxSplits)[0]

		switch name {
		case "":
			continue
		case "-":
			return ""
		default:
			return name
		}
	}

	return ""
}

func (v *Validator) Validate(i any) error {
	if err := v.Validator.Struct(i); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return formatValidationErrors(validationErrs)
		}

		return err
	}

	return nil
}

// Var validates a single value against tag, reporting failures under field.
func (v *Validator) Var(field string, value any, tag string) error {
	if err := v.Validator.Var(value, tag); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return err
		}

		out := make(ValidationErrors, 0, len(validationErrs))
		for _, fe := range validationErrs {
			out = append(out, FieldError{
				Field:   field,
				Tag:     fe.Tag(),
				Value:   fmt.Sprintf("%v", fe.Value()),
				Message: message(field, fe),
			})
		}

		return out
	}

	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, 0, len(errs))

	for _, err := range errs {
		field := err.Field()
		if field == "" {
			field = err.StructField()
		}

		out = append(out, FieldError{
			Field:   field,
			Tag:     err.Tag(),
			Value:   fmt.Sprintf("%v", err.Value()),
			Message: message(field, err),
		})
	}

	return out
}

func message(field string, err validator.FieldError) string {
	param := err.Param()

	switch err.Tag() {
	case "required":
		return field + " is required"
	case "url":
		return field + " must be a valid URL"
	case "hostname_port":
		return field + " must be a host:port pair"
	case TagVerb:
		return field + " must be one of get, post, put, delete, patch"
	case TagServiceName:
		return field + " must be a lowercase service name"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "startswith":
		return fmt.Sprintf("%s must start with %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	default:
		return fmt.Sprintf("%s failed validation on '%s'", field, err.Tag())
	}
}

func (v *Validator) RegisterCustomValidation(tag string, fn validator.Func) error {
	return v.Validator.RegisterValidation(tag, fn)
}
