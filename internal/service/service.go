// Package service orchestrates the compound operations of the
// backend: "upload blob, then record metadata" and "look up metadata,
// then fetch blob", plus user auth and document CRUD. Blob and
// metadata writes are two independent network operations; the code
// tolerates one succeeding while the other fails.
package service

import (
	"context"
	"log/slog"

	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/repository"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/storage"
)

// Cache is the slice of the redis cache the service needs. A nil
// Cache disables caching.
type Cache interface {
	GetTemplateList(ctx context.Context, key string) ([]byte, error)
	SetTemplateList(ctx context.Context, key string, data []byte) error
	GetTemplateItem(ctx context.Context, key string) ([]byte, error)
	SetTemplateItem(ctx context.Context, key string, data []byte) error
	InvalidateTemplateLists(ctx context.Context) error
	InvalidateTemplateItem(ctx context.Context, key string) error
}

type Service struct {
	users     repository.UserRepository
	docs      repository.DocumentRepository
	templates repository.TemplateRepository
	storage   storage.FileStorage
	cache     Cache
	logger    *slog.Logger

	jwtSecret       []byte
	templatesBucket string
	documentsBucket string
}

func NewService(
	users repository.UserRepository,
	docs repository.DocumentRepository,
	templates repository.TemplateRepository,
	fs storage.FileStorage,
	cache Cache,
	logger *slog.Logger,
	jwtSecret, templatesBucket, documentsBucket string,
) *Service {
	return &Service{
		users:           users,
		docs:            docs,
		templates:       templates,
		storage:         fs,
		cache:           cache,
		logger:          logger,
		jwtSecret:       []byte(jwtSecret),
		templatesBucket: templatesBucket,
		documentsBucket: documentsBucket,
	}
}
