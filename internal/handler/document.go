package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/apperror"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/middleware"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/model"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/service"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/pkg/utils"
)

func (h *Handler) mustClaims(w http.ResponseWriter, r *http.Request) (service.Claims, bool) {
	claims, ok := h.claims(r)
	if !ok {
		middleware.WriteJSONError(w, http.StatusUnauthorized, "Missing bearer token.")
	}
	return claims, ok
}

func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.mustClaims(w, r)
	if !ok {
		return
	}

	var req model.CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperror.Validation("invalid JSON body"))
		return
	}

	doc, err := h.service.CreateDocument(r.Context(), claims.UserID, req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, doc)
}

func (h *Handler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.mustClaims(w, r)
	if !ok {
		return
	}

	docs, err := h.service.ReadDocuments(r.Context(), claims.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if docs == nil {
		docs = []model.Document{}
	}
	h.writeJSON(w, http.StatusOK, docs)
}

func (h *Handler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.mustClaims(w, r)
	if !ok {
		return
	}

	id, err := h.urlParamID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var patch model.DocumentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.writeError(w, apperror.Validation("invalid JSON body"))
		return
	}

	doc, err := h.service.UpdateDocument(r.Context(), id, claims.UserID, patch)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.mustClaims(w, r)
	if !ok {
		return
	}

	id, err := h.urlParamID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.service.RemoveDocument(r.Context(), id, claims.UserID); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadAttachment accepts multipart/form-data with a single "file"
// field and attaches it to the document.
func (h *Handler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.mustClaims(w, r)
	if !ok {
		return
	}

	id, err := h.urlParamID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := r.ParseMultipartForm(utils.MaxUploadSize); err != nil {
		h.writeError(w, apperror.Validation("failed to parse multipart form"))
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, apperror.Validation("file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, utils.MaxUploadSize+1))
	if err != nil {
		h.writeError(w, err)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")

	doc, err := h.service.UploadAttachment(r.Context(), id, claims.UserID, data, fileHeader.Filename, mimeType)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, doc)
}
