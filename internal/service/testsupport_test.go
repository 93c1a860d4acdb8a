package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/apperror"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/model"
)

// fakeStorage keeps blobs in memory and mints parseable URL locators,
// mirroring the remote backend's key and locator policy.
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	seq     int

	uploadErr error
	deleteErr error
	deleted   []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) objectID(bucket, key string) string {
	return bucket + "/" + key
}

func (f *fakeStorage) UploadBuffer(_ context.Context, bucket string, data []byte, fileName, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.seq++
	key := fmt.Sprintf("%d-%s", f.seq, fileName)
	f.objects[f.objectID(bucket, key)] = append([]byte(nil), data...)
	return fmt.Sprintf("https://files.test/%s/%s", bucket, url.PathEscape(key)), nil
}

func (f *fakeStorage) Download(_ context.Context, bucket, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[f.objectID(bucket, key)]
	if !ok {
		return nil, fmt.Errorf("object %q: %w", key, apperror.ErrNotFound)
	}
	return data, nil
}

func (f *fakeStorage) Delete(_ context.Context, bucket, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, f.objectID(bucket, key))
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, f.objectID(bucket, key))
	return nil
}

func (f *fakeStorage) Exists(_ context.Context, bucket, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[f.objectID(bucket, key)]
	return ok, nil
}

func (f *fakeStorage) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

// fakeTemplateRepo applies the same visibility rules as the SQL
// implementation: active only, newest first.
type fakeTemplateRepo struct {
	mu        sync.Mutex
	records   map[uuid.UUID]model.Template
	createErr error
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{records: make(map[uuid.UUID]model.Template)}
}

func (f *fakeTemplateRepo) CreateTemplate(_ context.Context, tpl model.Template) (model.Template, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return model.Template{}, f.createErr
	}
	f.records[tpl.ID] = tpl
	return tpl, nil
}

func (f *fakeTemplateRepo) activeSorted(keep func(model.Template) bool) []model.Template {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Template
	for _, tpl := range f.records {
		if tpl.IsActive && keep(tpl) {
			out = append(out, tpl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeTemplateRepo) GetTemplates(_ context.Context) ([]model.Template, error) {
	return f.activeSorted(func(model.Template) bool { return true }), nil
}

func (f *fakeTemplateRepo) GetTemplateByID(_ context.Context, id uuid.UUID) (model.Template, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tpl, ok := f.records[id]
	if !ok || !tpl.IsActive {
		return model.Template{}, apperror.ErrNotFound
	}
	return tpl, nil
}

func (f *fakeTemplateRepo) UpdateTemplate(_ context.Context, id uuid.UUID, patch model.TemplatePatch) (model.Template, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tpl, ok := f.records[id]
	if !ok {
		return model.Template{}, apperror.ErrNotFound
	}
	if patch.Name != nil {
		tpl.Name = *patch.Name
	}
	if patch.Description != nil {
		tpl.Description = *patch.Description
	}
	if patch.IsActive != nil {
		tpl.IsActive = *patch.IsActive
	}
	tpl.UpdatedAt = time.Now()
	f.records[id] = tpl
	return tpl, nil
}

func (f *fakeTemplateRepo) DeactivateTemplate(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tpl, ok := f.records[id]
	if !ok {
		return apperror.ErrNotFound
	}
	tpl.IsActive = false
	tpl.UpdatedAt = time.Now()
	f.records[id] = tpl
	return nil
}

func (f *fakeTemplateRepo) SearchTemplates(_ context.Context, query string) ([]model.Template, error) {
	return f.activeSorted(func(tpl model.Template) bool {
		return containsFold(tpl.Name, query) || containsFold(tpl.Description, query)
	}), nil
}

func (f *fakeTemplateRepo) GetTemplatesByMimeType(_ context.Context, mimeType string) ([]model.Template, error) {
	return f.activeSorted(func(tpl model.Template) bool { return tpl.MimeType == mimeType }), nil
}

// raw returns the record regardless of IsActive, like a direct table
// lookup.
func (f *fakeTemplateRepo) raw(id uuid.UUID) (model.Template, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tpl, ok := f.records[id]
	return tpl, ok
}

// fakeDocumentRepo scopes lookups by owner, like the SQL queries.
type fakeDocumentRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]model.Document

	setAttachmentErr error
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{records: make(map[uuid.UUID]model.Document)}
}

func (f *fakeDocumentRepo) CreateDocument(_ context.Context, doc model.Document) (model.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[doc.ID] = doc
	return doc, nil
}

func (f *fakeDocumentRepo) GetDocumentsByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Document
	for _, doc := range f.records {
		if doc.OwnerID == ownerID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) GetDocumentByID(_ context.Context, id, ownerID uuid.UUID) (model.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.records[id]
	if !ok || doc.OwnerID != ownerID {
		return model.Document{}, apperror.ErrNotFound
	}
	return doc, nil
}

func (f *fakeDocumentRepo) UpdateDocument(_ context.Context, id uuid.UUID, patch model.DocumentPatch) (model.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.records[id]
	if !ok {
		return model.Document{}, apperror.ErrNotFound
	}
	if patch.SubmissionDate != nil {
		t, err := time.Parse("2006-01-02", *patch.SubmissionDate)
		if err != nil {
			return model.Document{}, err
		}
		doc.SubmissionDate = t
	}
	if patch.DocumentName != nil {
		doc.DocumentName = *patch.DocumentName
	}
	if patch.Note != nil {
		doc.Note = *patch.Note
	}
	if patch.Delivered != nil {
		doc.Delivered = *patch.Delivered
	}
	f.records[id] = doc
	return doc, nil
}

func (f *fakeDocumentRepo) SetAttachment(_ context.Context, id uuid.UUID, att model.Attachment) (model.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setAttachmentErr != nil {
		return model.Document{}, f.setAttachmentErr
	}
	doc, ok := f.records[id]
	if !ok {
		return model.Document{}, apperror.ErrNotFound
	}
	doc.FileURL = &att.FileURL
	doc.FileName = &att.FileName
	doc.MimeType = &att.MimeType
	doc.FileSize = &att.FileSize
	doc.FileUploadedAt = &att.UploadedAt
	f.records[id] = doc
	return doc, nil
}

func (f *fakeDocumentRepo) DeleteDocument(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return apperror.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]model.User
	byEmail map[string]model.User

	getByEmailErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]model.User),
		byEmail: make(map[string]model.User),
	}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user model.User) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[user.Email]; ok {
		return model.User{}, apperror.ErrEmailTaken
	}
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getByEmailErr != nil {
		return model.User{}, f.getByEmailErr
	}
	user, ok := f.byEmail[email]
	if !ok {
		return model.User{}, apperror.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return model.User{}, apperror.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) ListUsers(_ context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.User
	for _, user := range f.byID {
		out = append(out, user)
	}
	return out, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

type testEnv struct {
	svc       *Service
	storage   *fakeStorage
	templates *fakeTemplateRepo
	docs      *fakeDocumentRepo
	users     *fakeUserRepo
}

func newTestEnv() *testEnv {
	env := &testEnv{
		storage:   newFakeStorage(),
		templates: newFakeTemplateRepo(),
		docs:      newFakeDocumentRepo(),
		users:     newFakeUserRepo(),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env.svc = NewService(env.users, env.docs, env.templates, env.storage, nil, logger,
		"test-secret", "templates", "documents")
	return env
}
