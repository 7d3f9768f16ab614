package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dicelobby/accounts/internal/api/middleware"
	"github.com/dicelobby/accounts/internal/api/response"
	"github.com/dicelobby/accounts/internal/model"
	"github.com/dicelobby/accounts/internal/services/session"
	"github.com/dicelobby/accounts/internal/validation"
)

// SessionHandler handles session issuance and lookup
type SessionHandler struct {
	sessionService *session.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *session.Service) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// Create handles POST /sessions (login)
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	params := middleware.MustGetParams(r.Context())

	if err := validation.Require(params, "username", "password"); err != nil {
		WriteError(w, err)
		return
	}

	expiration := 0
	if params.Has("expiration") {
		parsed, err := strconv.Atoi(params.Get("expiration"))
		if err != nil || parsed <= 0 {
			WriteError(w, model.NewFieldError("expiration", model.CodeWrongValue))
			return
		}
		expiration = parsed
	}

	created, err := h.sessionService.Login(r.Context(),
		params.Get("username"), params.Get("password"), expiration)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.LoginFromModel(created))
}

// Get handles GET /sessions/:id
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["id"]

	found, err := h.sessionService.Lookup(r.Context(), token)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(found))
}
