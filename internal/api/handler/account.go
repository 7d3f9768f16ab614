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

// AccountHandler handles account-related endpoints
type AccountHandler struct {
	accountService *account.Service
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *account.Service) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// Create handles POST /accounts
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	params := middleware.MustGetParams(r.Context())

	if err := validation.Require(params, "username", "password", "password_confirmation", "email"); err != nil {
		WriteError(w, err)
		return
	}

	created, err := h.accountService.Create(r.Context(), params)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.writeAccount(w, r, http.StatusCreated, created, wrapCreated)
}

// Get handles GET /accounts/:id
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.AccountID(mux.Vars(r)["id"])

	found, err := h.accountService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.writeAccount(w, r, http.StatusOK, found, wrapEnvelope)
}

// GetOwn handles GET /accounts/own
func (h *AccountHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	params := middleware.MustGetParams(r.Context())

	if err := validation.Require(params, "session_id"); err != nil {
		WriteError(w, err)
		return
	}

	own, err := h.accountService.GetOwn(r.Context(), params.Get("session_id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	h.writeAccount(w, r, http.StatusOK, own, wrapEnvelope)
}

// UpdateOwn handles PUT /accounts/own
func (h *AccountHandler) UpdateOwn(w http.ResponseWriter, r *http.Request) {
	params := middleware.MustGetParams(r.Context())

	if err := validation.Require(params, "session_id"); err != nil {
		WriteError(w, err)
		return
	}
	if err := validation.RequireConfirmation(params); err != nil {
		WriteError(w, err)
		return
	}

	updated, err := h.accountService.UpdateOwn(r.Context(), params.Get("session_id"), params)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.writeAccount(w, r, http.StatusOK, updated, wrapUpdated)
}

// Update handles PUT /accounts/:id (privileged group reassignment)
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	params := middleware.MustGetParams(r.Context())

	if err := validation.Require(params, "session_id"); err != nil {
		WriteError(w, err)
		return
	}

	// The caller must hold a live session of their own
	if _, err := h.accountService.GetOwn(r.Context(), params.Get("session_id")); err != nil {
		WriteError(w, err)
		return
	}

	id := model.AccountID(mux.Vars(r)["id"])

	var updated *model.Account
	var err error
	if params.HasList("groups") {
		updated, err = h.accountService.ReassignGroups(r.Context(), id, params.List("groups"))
	} else {
		updated, err = h.accountService.Get(r.Context(), id)
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	h.writeAccount(w, r, http.StatusOK, updated, wrapUpdated)
}

// writeAccount resolves the account's groups and writes its projection
func (h *AccountHandler) writeAccount(w http.ResponseWriter, r *http.Request, status int, a *model.Account, wrap func(response.Account) any) {
	groups, err := h.accountService.Groups(r.Context(), a)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, status, wrap(response.AccountFromModel(a, groups)))
}

func wrapCreated(a response.Account) any {
	return response.Created(a)
}

func wrapUpdated(a response.Account) any {
	return response.Updated(a)
}

func wrapEnvelope(a response.Account) any {
	return response.AccountEnvelope{Account: a}
}
