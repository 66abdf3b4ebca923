package validator_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/andyle182810/apicaller/validator"
	gvalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type backendConfig struct {
	Name    string            `env:"BACKEND_NAME"  validate:"required,servicename"`
	BaseURL string            `json:"baseUrl"      validate:"required,url"`
	Retries int               `json:"retries"      validate:"gte=0,lte=10"`
	Headers map[string]string `json:"headers"      validate:"omitempty,max=4"`
	Ignored string            `json:"-"            validate:"omitempty,min=3"`
}

type callRequest struct {
	Verb     string `json:"verb"     validate:"required,verb"`
	Endpoint string `json:"endpoint" validate:"required,min=1"`
}

func findError(errs validator.ValidationErrors, field string) *validator.FieldError {
	for i := range errs {
		if errs[i].Field == field {
			return &errs[i]
		}
	}

	return nil
}

func TestNew(t *testing.T) {
	t.Parallel()

	v := validator.New()
	require.NotNil(t, v)
	require.NotNil(t, v.Validator)
}

func TestValidate_Success(t *testing.T) {
	t.Parallel()

	err := validator.New().Validate(backendConfig{
		Name:    "billing-v2",
		BaseURL: "https://billing.internal:8443",
		Retries: 3,
		Headers: nil,
		Ignored: "",
	})
	require.NoError(t, err)
}

func TestValidate_FieldErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		input         backendConfig
		expectedField string
		expectedTag   string
		expectedMsg   string
	}{
		{
			name:          "missing name uses env tag",
			input:         backendConfig{Name: "", BaseURL: "http://users", Retries: 0, Headers: nil, Ignored: ""},
			expectedField: "BACKEND_NAME",
			expectedTag:   "required",
			expectedMsg:   "BACKEND_NAME is required",
		},
		{
			name:          "uppercase service name",
			input:         backendConfig{Name: "Users", BaseURL: "http://users", Retries: 0, Headers: nil, Ignored: ""},
			expectedField: "BACKEND_NAME",
			expectedTag:   "servicename",
			expectedMsg:   "BACKEND_NAME must be a lowercase service name",
		},
		{
			name:          "invalid url",
			input:         backendConfig{Name: "users", BaseURL: "not a url", Retries: 0, Headers: nil, Ignored: ""},
			expectedField: "baseUrl",
			expectedTag:   "url",
			expectedMsg:   "baseUrl must be a valid URL",
		},
		{
			name:          "too many retries",
			input:         backendConfig{Name: "users", BaseURL: "http://users", Retries: 11, Headers: nil, Ignored: ""},
			expectedField: "retries",
			expectedTag:   "lte",
			expectedMsg:   "retries must be less than or equal to 10",
		},
		{
			name:          "negative retries",
			input:         backendConfig{Name: "users", BaseURL: "http://users", Retries: -1, Headers: nil, Ignored: ""},
			expectedField: "retries",
			expectedTag:   "gte",
			expectedMsg:   "retries must be greater than or equal to 0",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := validator.New().Validate(testCase.input)
			require.Error(t, err)

			var validationErrors validator.ValidationErrors
			require.ErrorAs(t, err, &validationErrors)

			found := findError(validationErrors, testCase.expectedField)
			require.NotNil(t, found, "expected validation error for field %s", testCase.expectedField)
			require.Equal(t, testCase.expectedTag, found.Tag)
			require.Equal(t, testCase.expectedMsg, found.Message)
		})
	}
}

func TestValidate_DashTagFallsBackToStructField(t *testing.T) {
	t.Parallel()

	err := validator.New().Validate(backendConfig{
		Name:    "users",
		BaseURL: "http://users",
		Retries: 0,
		Headers: nil,
		Ignored: "ab",
	})
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
	require.NotNil(t, findError(validationErrors, "Ignored"))
}

func TestValidate_VerbTag(t *testing.T) {
	t.Parallel()

	v := validator.New()

	for _, verb := range []string{"get", "POST", "Put", "delete", "patch"} {
		require.NoError(t, v.Validate(callRequest{Verb: verb, Endpoint: "/users"}), verb)
	}

	err := v.Validate(callRequest{Verb: "head", Endpoint: "/users"})
	require.Error(t, err)
	require.Equal(t, "verb must be one of get, post, put, delete, patch", err.Error())
}

func TestValidate_MultipleErrors(t *testing.T) {
	t.Parallel()

	err := validator.New().Validate(callRequest{Verb: "", Endpoint: ""})
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
	require.Len(t, validationErrors, 2)
	require.Len(t, strings.Split(err.Error(), "; "), 2)
}

func TestVar(t *testing.T) {
	t.Parallel()

	v := validator.New()

	require.NoError(t, v.Var("service", "users", "required,servicename"))

	err := v.Var("service", "../etc", "required,servicename")
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
	require.Equal(t, "service", validationErrors[0].Field)
	require.Equal(t, "service must be a lowercase service name", validationErrors[0].Message)
}

func TestValidate_NonStructReturnsRawError(t *testing.T) {
	t.Parallel()

	err := validator.New().Validate("plain string")
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.False(t, errors.As(err, &validationErrors))
}

func TestRegisterCustomValidation(t *testing.T) {
	t.Parallel()

	v := validator.New()

	err := v.RegisterCustomValidation("tenant", func(fl gvalidator.FieldLevel) bool {
		return strings.HasPrefix(fl.Field().String(), "t-")
	})
	require.NoError(t, err)

	type tenantStruct struct {
		Tenant string `json:"tenant" validate:"tenant"`
	}

	require.NoError(t, v.Validate(tenantStruct{Tenant: "t-acme"}))
	require.Error(t, v.Validate(tenantStruct{Tenant: "acme"}))
}

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	errs := validator.ValidationErrors{
		{Field: "verb", Tag: "verb", Value: "head", Message: "verb must be one of get, post, put, delete, patch"},
		{Field: "endpoint", Tag: "required", Value: "", Message: "endpoint is required"},
	}

	require.Equal(t,
		"verb must be one of get, post, put, delete, patch; endpoint is required",
		errs.Error())
}
