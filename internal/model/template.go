package model

import (
	"time"

	"github.com/google/uuid"
)

// Template is an admin-managed reusable file. FileURL is the blob
// locator: non-nil exactly when a blob was persisted for the record.
// IsActive=false marks soft-deletion.
type Template struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	FileName    string    `json:"file_name" db:"file_name"`
	FileURL     *string   `json:"file_url" db:"file_url"`
	FileSize    int64     `json:"file_size" db:"file_size"`
	MimeType    string    `json:"mime_type" db:"mime_type"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TemplateUpload bundles the multipart form data for createWithUpload.
type TemplateUpload struct {
	Name        string
	Description string
	FileName    string
	FileSize    int64
	MimeType    string
	Data        []byte
}

// TemplatePatch is a metadata-only patch. File fields never appear
// here: the blob and its metadata change only together, through
// upload and remove.
type TemplatePatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}
