package utils

import (
	"net/mail"
	"time"

	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/apperror"
)

// Template uploads accept only the document formats the frontend can
// render: PDF, DOCX and XLSX.
var allowedTemplateMimeTypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       true,
}

// MaxUploadSize caps both template and attachment uploads.
const MaxUploadSize = 10 << 20 // 10 MiB

func ValidateTemplateName(name string) error {
	if len(name) < 5 || len(name) > 50 {
		return apperror.Validation("name must be between 5 and 50 characters")
	}
	return nil
}

func ValidateTemplateDescription(description string) error {
	if len(description) < 1 || len(description) > 255 {
		return apperror.Validation("description must be between 1 and 255 characters")
	}
	return nil
}

func ValidateTemplateMimeType(mimeType string) error {
	if !allowedTemplateMimeTypes[mimeType] {
		return apperror.Validation("unsupported mime type %q", mimeType)
	}
	return nil
}

func ValidateFileSize(size int64) error {
	if size <= 0 {
		return apperror.Validation("file is empty")
	}
	if size > MaxUploadSize {
		return apperror.Validation("file exceeds the %d byte limit", MaxUploadSize)
	}
	return nil
}

func ValidateEmail(email string) error {
	if email == "" {
		return apperror.Validation("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperror.Validation("invalid email address")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return apperror.Validation("password must be at least 8 characters long")
	}
	return nil
}

func ValidateName(name string) error {
	if len(name) < 3 || len(name) > 120 {
		return apperror.Validation("name must be between 3 and 120 characters")
	}
	return nil
}

func ValidateDocumentName(name string) error {
	if len(name) < 1 || len(name) > 50 {
		return apperror.Validation("document_name must be between 1 and 50 characters")
	}
	return nil
}

func ValidateNote(note string) error {
	if len(note) > 50 {
		return apperror.Validation("note must be at most 50 characters")
	}
	return nil
}

// ParseDate parses the YYYY-MM-DD submission date format.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperror.Validation("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}
