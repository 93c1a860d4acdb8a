package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/model"
)

// Lookups for missing rows resolve to apperror.ErrNotFound so the
// service layer never inspects driver errors.

type UserRepository interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type DocumentRepository interface {
	CreateDocument(ctx context.Context, doc model.Document) (model.Document, error)
	GetDocumentsByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Document, error)
	// GetDocumentByID is scoped to the owner: another user's document
	// behaves as missing.
	GetDocumentByID(ctx context.Context, id, ownerID uuid.UUID) (model.Document, error)
	UpdateDocument(ctx context.Context, id uuid.UUID, patch model.DocumentPatch) (model.Document, error)
	SetAttachment(ctx context.Context, id uuid.UUID, att model.Attachment) (model.Document, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) error
}

type TemplateRepository interface {
	CreateTemplate(ctx context.Context, tpl model.Template) (model.Template, error)
	// GetTemplates and the filtered variants return active records
	// only, newest first.
	GetTemplates(ctx context.Context) ([]model.Template, error)
	GetTemplateByID(ctx context.Context, id uuid.UUID) (model.Template, error)
	UpdateTemplate(ctx context.Context, id uuid.UUID, patch model.TemplatePatch) (model.Template, error)
	DeactivateTemplate(ctx context.Context, id uuid.UUID) error
	SearchTemplates(ctx context.Context, query string) ([]model.Template, error)
	GetTemplatesByMimeType(ctx context.Context, mimeType string) ([]model.Template, error)
}
