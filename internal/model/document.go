package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	OwnerID        uuid.UUID  `json:"owner_id" db:"owner_id"`
	SubmissionDate time.Time  `json:"submission_date" db:"submission_date"`
	DocumentName   string     `json:"document_name" db:"document_name"`
	Note           string     `json:"note" db:"note"`
	Delivered      bool       `json:"delivered" db:"delivered"`
	FileURL        *string    `json:"file_url" db:"file_url"`
	FileName       *string    `json:"file_name" db:"file_name"`
	MimeType       *string    `json:"mime_type" db:"mime_type"`
	FileSize       *int64     `json:"file_size" db:"file_size"`
	FileUploadedAt *time.Time `json:"file_uploaded_at" db:"file_uploaded_at"`
}

type CreateDocumentRequest struct {
	SubmissionDate string `json:"submission_date"` // YYYY-MM-DD
	DocumentName   string `json:"document_name"`
	Note           string `json:"note"`
	Delivered      bool   `json:"delivered"`
}

// DocumentPatch carries only the metadata fields a PATCH may touch.
// Attachment fields are deliberately absent: they change solely
// through the attachment upload path.
type DocumentPatch struct {
	SubmissionDate *string `json:"submission_date"`
	DocumentName   *string `json:"document_name"`
	Note           *string `json:"note"`
	Delivered      *bool   `json:"delivered"`
}

// Attachment is the single write applied to a document after its blob
// has been uploaded.
type Attachment struct {
	FileURL    string
	FileName   string
	MimeType   string
	FileSize   int64
	UploadedAt time.Time
}
