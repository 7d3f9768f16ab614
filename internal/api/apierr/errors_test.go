package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dicelobby/accounts/internal/model"
)

func writeAndDecode(t *testing.T, err error) (int, ErrorBody) {
	t.Helper()
	rec := httptest.NewRecorder()
	WriteError(rec, err)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestWriteFieldError(t *testing.T) {
	code, body := writeAndDecode(t, model.NewFieldError("username", model.CodeRequired))

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, http.StatusBadRequest, body.Status)
	assert.Equal(t, "username", body.Field)
	assert.Equal(t, "required", body.Error)
	assert.Equal(t, docsBase+"#username-not-given", body.Docs)
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		code   string
		status int
	}{
		{model.CodeRequired, http.StatusBadRequest},
		{model.CodeUniq, http.StatusBadRequest},
		{model.CodeMinLength, http.StatusBadRequest},
		{model.CodePattern, http.StatusBadRequest},
		{model.CodeConfirmation, http.StatusBadRequest},
		{model.CodeWrongValue, http.StatusBadRequest},
		{model.CodeBadRequest, http.StatusBadRequest},
		{model.CodeUnknown, http.StatusNotFound},
		{model.CodeForbidden, http.StatusForbidden},
		{model.CodeWrongPassword, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			status, _ := writeAndDecode(t, model.NewFieldError("field", tc.code))
			assert.Equal(t, tc.status, status)
		})
	}
}

func TestStorageSentinelsGetAFieldContext(t *testing.T) {
	status, body := writeAndDecode(t, model.ErrSessionNotFound)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "session_id", body.Field)
	assert.Equal(t, "unknown", body.Error)
}

func TestOpaqueErrorIsServerError(t *testing.T) {
	status, body := writeAndDecode(t, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "server", body.Field)
	assert.Equal(t, "internal_server_error", body.Error)
	assert.Empty(t, body.Docs)
}

func TestDocsURLFallsBackToRoot(t *testing.T) {
	assert.Equal(t, docsBase, DocsURL("nonexistent", "nope"))
}
