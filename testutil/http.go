package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func AssertJSONResponse(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()

	require.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"),
		"Response Content-Type should be application/json")

	err := json.Unmarshal(rec.Body.Bytes(), target)
	require.NoError(t, err, "Response body should be valid JSON")
}

func AssertStatusCode(t *testing.T, rec *httptest.ResponseRecorder, expectedStatus int) {
	t.Helper()
	assert.Equal(t, expectedStatus, rec.Code, "Response status code mismatch")
}

func AssertResponseContains(t *testing.T, rec *httptest.ResponseRecorder, substring string) {
	t.Helper()
	assert.Contains(t, rec.Body.String(), substring, "Response body should contain substring")
}

func MustParseJSONResponse(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()

	err := json.Unmarshal(rec.Body.Bytes(), target)

	require.NoError(t, err, "Failed to parse JSON response")
}

func AssertSuccessResponse(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.GreaterOrEqual(t, rec.Code, http.StatusOK, "Response should be successful")
	assert.Less(t, rec.Code, http.StatusMultipleChoices, "Response should be successful")
}
