package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dicelobby/accounts/internal/model"
)

// ErrorBody is the structured error response: the HTTP status, the request
// field the failure is pinned to, the error code, and a documentation URL.
type ErrorBody struct {
	Status int    `json:"status"`
	Field  string `json:"field"`
	Error  string `json:"error"`
	Docs   string `json:"docs,omitempty"`
}

// statusFor maps an error code to its HTTP status
func statusFor(code string) int {
	switch code {
	case model.CodeUnknown:
		return http.StatusNotFound
	case model.CodeForbidden, model.CodeWrongPassword:
		return http.StatusForbidden
	case model.CodeRequired, model.CodeUniq, model.CodeMinLength,
		model.CodePattern, model.CodeConfirmation, model.CodeWrongValue,
		model.CodeBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes the structured error body for err
func WriteError(w http.ResponseWriter, err error) {
	body := toBody(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(body.Status)
	_ = json.NewEncoder(w).Encode(body)
}

// toBody converts an error to its wire representation
func toBody(err error) ErrorBody {
	var fieldErr *model.FieldError
	if errors.As(err, &fieldErr) {
		return ErrorBody{
			Status: statusFor(fieldErr.Code),
			Field:  fieldErr.Field,
			Error:  fieldErr.Code,
			Docs:   DocsURL(fieldErr.Field, fieldErr.Code),
		}
	}

	// Storage sentinels that escaped without a field context
	switch {
	case errors.Is(err, model.ErrAccountNotFound):
		return toBody(model.NewFieldError("account_id", model.CodeUnknown))
	case errors.Is(err, model.ErrSessionNotFound):
		return toBody(model.NewFieldError("session_id", model.CodeUnknown))
	case errors.Is(err, model.ErrPhoneNotFound):
		return toBody(model.NewFieldError("phone_id", model.CodeUnknown))
	case errors.Is(err, model.ErrGroupNotFound):
		return toBody(model.NewFieldError("group_id", model.CodeUnknown))
	case errors.Is(err, model.ErrGatewayNotFound):
		return toBody(model.NewFieldError("token", model.CodeUnknown))
	case errors.Is(err, model.ErrApplicationNotFound):
		return toBody(model.NewFieldError("app_key", model.CodeUnknown))
	}

	return ErrorBody{
		Status: http.StatusInternalServerError,
		Field:  "server",
		Error:  "internal_server_error",
	}
}
