package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/apperror"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/model"
)

type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// uniqueViolation is the postgres error code for duplicate keys.
const uniqueViolation = "23505"

// --- User Repository ---

func (p *Postgres) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, name, email, password, admin, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := p.db.Exec(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash, user.Admin, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.User{}, apperror.ErrEmailTaken
		}
		return model.User{}, err
	}
	return user, nil
}

func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	query := `SELECT id, name, email, password, admin, created_at FROM users WHERE email = $1`
	err := p.db.QueryRow(ctx, query, email).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Admin, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return user, apperror.ErrNotFound
	}
	return user, err
}

func (p *Postgres) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var user model.User
	query := `SELECT id, name, email, password, admin, created_at FROM users WHERE id = $1`
	err := p.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Admin, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return user, apperror.ErrNotFound
	}
	return user, err
}

func (p *Postgres) ListUsers(ctx context.Context) ([]model.User, error) {
	query := `SELECT id, name, email, password, admin, created_at FROM users ORDER BY created_at DESC`
	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Admin, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// --- Document Repository ---

const documentColumns = `id, owner_id, submission_date, document_name, note, delivered,
	file_url, file_name, mime_type, file_size, file_uploaded_at`

func scanDocument(row pgx.Row) (model.Document, error) {
	var doc model.Document
	err := row.Scan(&doc.ID, &doc.OwnerID, &doc.SubmissionDate, &doc.DocumentName, &doc.Note, &doc.Delivered,
		&doc.FileURL, &doc.FileName, &doc.MimeType, &doc.FileSize, &doc.FileUploadedAt)
	return doc, err
}

func (p *Postgres) CreateDocument(ctx context.Context, doc model.Document) (model.Document, error) {
	query := `INSERT INTO documents (id, owner_id, submission_date, document_name, note, delivered)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING ` + documentColumns
	return scanDocument(p.db.QueryRow(ctx, query,
		doc.ID, doc.OwnerID, doc.SubmissionDate, doc.DocumentName, doc.Note, doc.Delivered))
}

func (p *Postgres) GetDocumentsByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE owner_id = $1 ORDER BY submission_date DESC`
	rows, err := p.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []model.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (p *Postgres) GetDocumentByID(ctx context.Context, id, ownerID uuid.UUID) (model.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 AND owner_id = $2`
	doc, err := scanDocument(p.db.QueryRow(ctx, query, id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return doc, apperror.ErrNotFound
	}
	return doc, err
}

func (p *Postgres) UpdateDocument(ctx context.Context, id uuid.UUID, patch model.DocumentPatch) (model.Document, error) {
	query := `UPDATE documents SET
	            submission_date = COALESCE($2::date, submission_date),
	            document_name   = COALESCE($3, document_name),
	            note            = COALESCE($4, note),
	            delivered       = COALESCE($5, delivered)
	          WHERE id = $1
	          RETURNING ` + documentColumns
	doc, err := scanDocument(p.db.QueryRow(ctx, query, id, patch.SubmissionDate, patch.DocumentName, patch.Note, patch.Delivered))
	if errors.Is(err, pgx.ErrNoRows) {
		return doc, apperror.ErrNotFound
	}
	return doc, err
}

func (p *Postgres) SetAttachment(ctx context.Context, id uuid.UUID, att model.Attachment) (model.Document, error) {
	query := `UPDATE documents SET
	            file_url = $2, file_name = $3, mime_type = $4, file_size = $5, file_uploaded_at = $6
	          WHERE id = $1
	          RETURNING ` + documentColumns
	doc, err := scanDocument(p.db.QueryRow(ctx, query, id, att.FileURL, att.FileName, att.MimeType, att.FileSize, att.UploadedAt))
	if errors.Is(err, pgx.ErrNoRows) {
		return doc, apperror.ErrNotFound
	}
	return doc, err
}

func (p *Postgres) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

// --- Template Repository ---

const templateColumns = `id, name, description, file_name, file_url, file_size, mime_type,
	is_active, created_at, updated_at`

func scanTemplate(row pgx.Row) (model.Template, error) {
	var tpl model.Template
	err := row.Scan(&tpl.ID, &tpl.Name, &tpl.Description, &tpl.FileName, &tpl.FileURL, &tpl.FileSize,
		&tpl.MimeType, &tpl.IsActive, &tpl.CreatedAt, &tpl.UpdatedAt)
	return tpl, err
}

func (p *Postgres) queryTemplates(ctx context.Context, query string, args ...any) ([]model.Template, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tpls []model.Template
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		tpls = append(tpls, tpl)
	}
	return tpls, rows.Err()
}

func (p *Postgres) CreateTemplate(ctx context.Context, tpl model.Template) (model.Template, error) {
	query := `INSERT INTO templates (id, name, description, file_name, file_url, file_size, mime_type, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING ` + templateColumns
	return scanTemplate(p.db.QueryRow(ctx, query,
		tpl.ID, tpl.Name, tpl.Description, tpl.FileName, tpl.FileURL, tpl.FileSize,
		tpl.MimeType, tpl.IsActive, tpl.CreatedAt, tpl.UpdatedAt))
}

func (p *Postgres) GetTemplates(ctx context.Context) ([]model.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE is_active = TRUE ORDER BY created_at DESC`
	return p.queryTemplates(ctx, query)
}

func (p *Postgres) GetTemplateByID(ctx context.Context, id uuid.UUID) (model.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE id = $1 AND is_active = TRUE`
	tpl, err := scanTemplate(p.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return tpl, apperror.ErrNotFound
	}
	return tpl, err
}

func (p *Postgres) UpdateTemplate(ctx context.Context, id uuid.UUID, patch model.TemplatePatch) (model.Template, error) {
	// File columns are never part of a patch: the blob and its
	// metadata change only through upload and remove.
	query := `UPDATE templates SET
	            name        = COALESCE($2, name),
	            description = COALESCE($3, description),
	            is_active   = COALESCE($4, is_active),
	            updated_at  = NOW()
	          WHERE id = $1
	          RETURNING ` + templateColumns
	tpl, err := scanTemplate(p.db.QueryRow(ctx, query, id, patch.Name, patch.Description, patch.IsActive))
	if errors.Is(err, pgx.ErrNoRows) {
		return tpl, apperror.ErrNotFound
	}
	return tpl, err
}

func (p *Postgres) DeactivateTemplate(ctx context.Context, id uuid.UUID) error {
	tag, err := p.db.Exec(ctx, `UPDATE templates SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (p *Postgres) SearchTemplates(ctx context.Context, search string) ([]model.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates
	          WHERE is_active = TRUE AND (name ILIKE $1 OR description ILIKE $1)
	          ORDER BY created_at DESC`
	return p.queryTemplates(ctx, query, fmt.Sprintf("%%%s%%", search))
}

func (p *Postgres) GetTemplatesByMimeType(ctx context.Context, mimeType string) ([]model.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates
	          WHERE is_active = TRUE AND mime_type = $1
	          ORDER BY created_at DESC`
	return p.queryTemplates(ctx, query, mimeType)
}
