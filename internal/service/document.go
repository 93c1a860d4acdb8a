package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/model"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/storage"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/pkg/utils"
)

func (s *Service) CreateDocument(ctx context.Context, ownerID uuid.UUID, req model.CreateDocumentRequest) (model.Document, error) {
	if err := utils.ValidateDocumentName(req.DocumentName); err != nil {
		return model.Document{}, err
	}
	if err := utils.ValidateNote(req.Note); err != nil {
		return model.Document{}, err
	}
	submissionDate, err := utils.ParseDate(req.SubmissionDate)
	if err != nil {
		return model.Document{}, err
	}

	doc := model.Document{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		SubmissionDate: submissionDate,
		DocumentName:   req.DocumentName,
		Note:           req.Note,
		Delivered:      req.Delivered,
	}

	created, err := s.docs.CreateDocument(ctx, doc)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to create document: %w", err)
	}
	return created, nil
}

func (s *Service) ReadDocuments(ctx context.Context, ownerID uuid.UUID) ([]model.Document, error) {
	docs, err := s.docs.GetDocumentsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

func (s *Service) UpdateDocument(ctx context.Context, id, ownerID uuid.UUID, patch model.DocumentPatch) (model.Document, error) {
	if patch.DocumentName != nil {
		if err := utils.ValidateDocumentName(*patch.DocumentName); err != nil {
			return model.Document{}, err
		}
	}
	if patch.Note != nil {
		if err := utils.ValidateNote(*patch.Note); err != nil {
			return model.Document{}, err
		}
	}
	if patch.SubmissionDate != nil {
		if _, err := utils.ParseDate(*patch.SubmissionDate); err != nil {
			return model.Document{}, err
		}
	}

	// Ownership gate: a document the caller does not own behaves as
	// missing.
	if _, err := s.docs.GetDocumentByID(ctx, id, ownerID); err != nil {
		return model.Document{}, err
	}

	return s.docs.UpdateDocument(ctx, id, patch)
}

// RemoveDocument hard-deletes the record. Any attachment blob is
// cleaned up best-effort first; a cleanup failure is logged and never
// blocks the metadata deletion.
func (s *Service) RemoveDocument(ctx context.Context, id, ownerID uuid.UUID) error {
	doc, err := s.docs.GetDocumentByID(ctx, id, ownerID)
	if err != nil {
		return err
	}

	if doc.FileURL != nil {
		s.deleteAttachmentBlob(ctx, doc)
	}

	return s.docs.DeleteDocument(ctx, id)
}

// UploadAttachment stores the blob in the documents bucket, then sets
// all attachment fields in a single write. Replacing an existing
// attachment deletes the previous blob best-effort.
func (s *Service) UploadAttachment(ctx context.Context, id, ownerID uuid.UUID, data []byte, fileName, mimeType string) (model.Document, error) {
	if err := utils.ValidateFileSize(int64(len(data))); err != nil {
		return model.Document{}, err
	}

	doc, err := s.docs.GetDocumentByID(ctx, id, ownerID)
	if err != nil {
		return model.Document{}, err
	}

	locator, err := s.storage.UploadBuffer(ctx, s.documentsBucket, data, fileName, mimeType)
	if err != nil {
		return model.Document{}, err
	}

	if doc.FileURL != nil {
		s.deleteAttachmentBlob(ctx, doc)
	}

	att := model.Attachment{
		FileURL:    locator,
		FileName:   fileName,
		MimeType:   mimeType,
		FileSize:   int64(len(data)),
		UploadedAt: time.Now(),
	}

	updated, err := s.docs.SetAttachment(ctx, id, att)
	if err != nil {
		s.logger.Error("attachment metadata write failed after upload, blob orphaned",
			"document_id", id, "locator", locator, "error", err)
		return model.Document{}, fmt.Errorf("failed to save attachment: %w", err)
	}
	return updated, nil
}

func (s *Service) deleteAttachmentBlob(ctx context.Context, doc model.Document) {
	key := storage.ObjectKeyFromLocator(*doc.FileURL)
	if key == "" && doc.FileName != nil {
		key = *doc.FileName
	}
	if key == "" {
		return
	}
	if err := s.storage.Delete(ctx, s.documentsBucket, key); err != nil {
		s.logger.Error("failed to delete attachment blob",
			"document_id", doc.ID, "key", key, "error", err)
	}
}
