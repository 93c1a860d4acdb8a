package handler

import (
	"encoding/json"
	"net/http"

	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/apperror"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/middleware"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/model"
)

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperror.Validation("invalid JSON body"))
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperror.Validation("invalid JSON body"))
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(r)
	if !ok {
		middleware.WriteJSONError(w, http.StatusUnauthorized, "Missing bearer token.")
		return
	}

	user, err := h.service.Profile(r.Context(), claims.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, users)
}
