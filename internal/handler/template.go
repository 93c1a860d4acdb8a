package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/apperror"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/model"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/pkg/utils"
)

// CreateTemplate accepts multipart/form-data with a "file" field plus
// "name" and "description" form values.
func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
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
		h.writeError(w, fmt.Errorf("failed to read uploaded file: %w", err))
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")

	upload := model.TemplateUpload{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		FileName:    fileHeader.Filename,
		FileSize:    int64(len(data)),
		MimeType:    mimeType,
		Data:        data,
	}

	tpl, err := h.service.CreateTemplateWithUpload(r.Context(), upload)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, tpl)
}

func (h *Handler) GetTemplates(w http.ResponseWriter, r *http.Request) {
	tpls, err := h.service.ReadTemplates(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	if tpls == nil {
		tpls = []model.Template{}
	}
	h.writeJSON(w, http.StatusOK, tpls)
}

func (h *Handler) GetTemplateByID(w http.ResponseWriter, r *http.Request) {
	id, err := h.urlParamID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	tpl, err := h.service.ReadTemplate(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, tpl)
}

func (h *Handler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := h.urlParamID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var patch model.TemplatePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.writeError(w, apperror.Validation("invalid JSON body"))
		return
	}

	tpl, err := h.service.UpdateTemplate(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, tpl)
}

func (h *Handler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := h.urlParamID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.service.RemoveTemplate(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DownloadTemplate streams the stored blob with headers derived from
// the metadata record.
func (h *Handler) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := h.urlParamID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	data, tpl, err := h.service.DownloadTemplateFile(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", tpl.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", tpl.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("Failed to stream template file", "template_id", id, "error", err)
	}
}

// SearchTemplates handles GET /templates/search?q=...&type=...
// A mime type filter wins over the text query; with neither, the full
// active list is returned.
func (h *Handler) SearchTemplates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	mimeType := r.URL.Query().Get("type")

	var (
		tpls []model.Template
		err  error
	)
	switch {
	case mimeType != "":
		tpls, err = h.service.ReadTemplatesByMimeType(r.Context(), mimeType)
	case q != "":
		tpls, err = h.service.SearchTemplates(r.Context(), q)
	default:
		tpls, err = h.service.ReadTemplates(r.Context())
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	if tpls == nil {
		tpls = []model.Template{}
	}
	h.writeJSON(w, http.StatusOK, tpls)
}
