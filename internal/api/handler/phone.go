package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dicelobby/accounts/internal/api/middleware"
	"github.com/dicelobby/accounts/internal/api/response"
	"github.com/dicelobby/accounts/internal/model"
	"github.com/dicelobby/accounts/internal/services/account"
	"github.com/dicelobby/accounts/internal/validation"
)

// PhoneHandler handles the phone sub-records of the caller's own account
type PhoneHandler struct {
	accountService *account.Service
}

// NewPhoneHandler creates a new phone handler
func NewPhoneHandler(accountService *account.Service) *PhoneHandler {
	return &PhoneHandler{
		accountService: accountService,
	}
}

// Add handles PATCH /accounts/own/phones
func (h *PhoneHandler) Add(w http.ResponseWriter, r *http.Request) {
	params := middleware.MustGetParams(r.Context())

	if err := validation.Require(params, "session_id", "number", "privacy"); err != nil {
		WriteError(w, err)
		return
	}

	phone, err := h.accountService.AddPhone(r.Context(),
		params.Get("session_id"), params.Get("number"), model.Privacy(params.Get("privacy")))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Created(response.PhoneFromModel(phone)))
}

// Delete handles DELETE /accounts/own/phones/:phone_id
func (h *PhoneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	params := middleware.MustGetParams(r.Context())

	if err := validation.Require(params, "session_id"); err != nil {
		WriteError(w, err)
		return
	}

	phoneID := model.PhoneID(mux.Vars(r)["phone_id"])

	if err := h.accountService.DeletePhone(r.Context(), params.Get("session_id"), phoneID); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Deleted())
}
