package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/apperror"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/middleware"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/service"
)

type Handler struct {
	service *service.Service
	logger  *slog.Logger
}

func NewHandler(s *service.Service, logger *slog.Logger) *Handler {
	return &Handler{service: s, logger: logger}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

// writeError maps the apperror taxonomy onto HTTP statuses. Anything
// unclassified is a generic 500 with no internals leaked.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var validationErr *apperror.ValidationError
	var storageErr *apperror.StorageError

	switch {
	case errors.As(err, &validationErr):
		middleware.WriteJSONError(w, http.StatusBadRequest, validationErr.Msg)
	case errors.Is(err, apperror.ErrUnauthorized):
		middleware.WriteJSONError(w, http.StatusUnauthorized, "Invalid credentials.")
	case errors.Is(err, apperror.ErrForbidden):
		middleware.WriteJSONError(w, http.StatusForbidden, "Insufficient permission.")
	case errors.Is(err, apperror.ErrFileUnavailable):
		middleware.WriteJSONError(w, http.StatusNotFound, "File not available.")
	case errors.Is(err, apperror.ErrNotFound):
		middleware.WriteJSONError(w, http.StatusNotFound, "Not found.")
	case errors.Is(err, apperror.ErrEmailTaken):
		middleware.WriteJSONError(w, http.StatusConflict, "Email already registered.")
	case errors.As(err, &storageErr):
		h.logger.Error("Storage failure", "op", storageErr.Op, "error", storageErr.Err)
		middleware.WriteJSONError(w, http.StatusInternalServerError, storageErr.Error())
	default:
		h.logger.Error("Unhandled error", "error", err)
		middleware.WriteJSONError(w, http.StatusInternalServerError, "Internal server error.")
	}
}

func (h *Handler) urlParamID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid id")
	}
	return id, nil
}

func (h *Handler) claims(r *http.Request) (service.Claims, bool) {
	return middleware.ClaimsFromContext(r.Context())
}
