package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/apperror"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/model"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/storage"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/pkg/utils"
)

const templateListCacheKey = "all"

// CreateTemplateWithUpload uploads the blob first and records the
// metadata only on success. If the metadata write fails afterwards
// the blob is orphaned; that gap is accepted and logged, not
// auto-reconciled.
func (s *Service) CreateTemplateWithUpload(ctx context.Context, upload model.TemplateUpload) (model.Template, error) {
	if err := utils.ValidateTemplateName(upload.Name); err != nil {
		return model.Template{}, err
	}
	if err := utils.ValidateTemplateDescription(upload.Description); err != nil {
		return model.Template{}, err
	}
	if err := utils.ValidateTemplateMimeType(upload.MimeType); err != nil {
		return model.Template{}, err
	}
	if err := utils.ValidateFileSize(upload.FileSize); err != nil {
		return model.Template{}, err
	}

	locator, err := s.storage.UploadBuffer(ctx, s.templatesBucket, upload.Data, upload.FileName, upload.MimeType)
	if err != nil {
		return model.Template{}, err
	}

	now := time.Now()
	tpl := model.Template{
		ID:          uuid.New(),
		Name:        upload.Name,
		Description: upload.Description,
		FileName:    upload.FileName,
		FileURL:     &locator,
		FileSize:    upload.FileSize,
		MimeType:    upload.MimeType,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.templates.CreateTemplate(ctx, tpl)
	if err != nil {
		s.logger.Error("template metadata write failed after upload, blob orphaned",
			"locator", locator, "error", err)
		return model.Template{}, fmt.Errorf("failed to create template: %w", err)
	}

	s.invalidateTemplateCaches(created.ID)
	return created, nil
}

func (s *Service) ReadTemplates(ctx context.Context) ([]model.Template, error) {
	if s.cache != nil {
		if data, err := s.cache.GetTemplateList(ctx, templateListCacheKey); err == nil {
			var tpls []model.Template
			if json.Unmarshal(data, &tpls) == nil {
				return tpls, nil
			}
		}
	}

	tpls, err := s.templates.GetTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(tpls); err == nil {
			go s.cache.SetTemplateList(context.Background(), templateListCacheKey, data)
		}
	}
	return tpls, nil
}

func (s *Service) ReadTemplate(ctx context.Context, id uuid.UUID) (model.Template, error) {
	if s.cache != nil {
		if data, err := s.cache.GetTemplateItem(ctx, id.String()); err == nil {
			var tpl model.Template
			if json.Unmarshal(data, &tpl) == nil {
				return tpl, nil
			}
		}
	}

	tpl, err := s.templates.GetTemplateByID(ctx, id)
	if err != nil {
		return model.Template{}, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(tpl); err == nil {
			go s.cache.SetTemplateItem(context.Background(), id.String(), data)
		}
	}
	return tpl, nil
}

// UpdateTemplate patches metadata only. The blob and the file columns
// are never touched here; updated_at always refreshes.
func (s *Service) UpdateTemplate(ctx context.Context, id uuid.UUID, patch model.TemplatePatch) (model.Template, error) {
	if patch.Name != nil {
		if err := utils.ValidateTemplateName(*patch.Name); err != nil {
			return model.Template{}, err
		}
	}
	if patch.Description != nil {
		if err := utils.ValidateTemplateDescription(*patch.Description); err != nil {
			return model.Template{}, err
		}
	}

	tpl, err := s.templates.UpdateTemplate(ctx, id, patch)
	if err != nil {
		return model.Template{}, err
	}

	s.invalidateTemplateCaches(id)
	return tpl, nil
}

// RemoveTemplate soft-deletes: best-effort blob cleanup, then
// is_active=false. A blob deletion failure is logged and swallowed —
// losing an orphaned blob beats refusing to deactivate a broken
// template. A second call finds no active record and returns
// ErrNotFound.
func (s *Service) RemoveTemplate(ctx context.Context, id uuid.UUID) error {
	tpl, err := s.templates.GetTemplateByID(ctx, id)
	if err != nil {
		return err
	}

	if tpl.FileURL != nil {
		key := storage.ObjectKeyFromLocator(*tpl.FileURL)
		if key == "" {
			key = tpl.FileName
		}
		if err := s.storage.Delete(ctx, s.templatesBucket, key); err != nil {
			s.logger.Error("failed to delete template blob, record will still be deactivated",
				"template_id", id, "key", key, "error", err)
		}
	}

	if err := s.templates.DeactivateTemplate(ctx, id); err != nil {
		return err
	}

	s.invalidateTemplateCaches(id)
	return nil
}

// DownloadTemplateFile resolves the active record, derives the object
// key from the stored locator (falling back to the display filename)
// and fetches the blob.
func (s *Service) DownloadTemplateFile(ctx context.Context, id uuid.UUID) ([]byte, model.Template, error) {
	tpl, err := s.templates.GetTemplateByID(ctx, id)
	if err != nil {
		return nil, model.Template{}, err
	}

	if tpl.FileURL == nil {
		return nil, model.Template{}, apperror.ErrFileUnavailable
	}

	key := storage.ObjectKeyFromLocator(*tpl.FileURL)
	if key == "" {
		key = tpl.FileName
	}

	data, err := s.storage.Download(ctx, s.templatesBucket, key)
	if err != nil {
		return nil, model.Template{}, err
	}
	return data, tpl, nil
}

func (s *Service) SearchTemplates(ctx context.Context, query string) ([]model.Template, error) {
	return s.templates.SearchTemplates(ctx, query)
}

func (s *Service) ReadTemplatesByMimeType(ctx context.Context, mimeType string) ([]model.Template, error) {
	return s.templates.GetTemplatesByMimeType(ctx, mimeType)
}

func (s *Service) invalidateTemplateCaches(id uuid.UUID) {
	if s.cache == nil {
		return
	}
	go s.cache.InvalidateTemplateLists(context.Background())
	go s.cache.InvalidateTemplateItem(context.Background(), id.String())
}
