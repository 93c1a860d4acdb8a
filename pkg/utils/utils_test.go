package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/apperror"
)

func assertValidation(t *testing.T, err error) {
	t.Helper()
	var verr *apperror.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestValidateTemplateName(t *testing.T) {
	assert.NoError(t, ValidateTemplateName("Enrollment Form"))
	assert.NoError(t, ValidateTemplateName(strings.Repeat("a", 5)))
	assert.NoError(t, ValidateTemplateName(strings.Repeat("a", 50)))
	assertValidation(t, ValidateTemplateName("abcd"))
	assertValidation(t, ValidateTemplateName(strings.Repeat("a", 51)))
}

func TestValidateTemplateDescription(t *testing.T) {
	assert.NoError(t, ValidateTemplateDescription("a"))
	assert.NoError(t, ValidateTemplateDescription(strings.Repeat("a", 255)))
	assertValidation(t, ValidateTemplateDescription(""))
	assertValidation(t, ValidateTemplateDescription(strings.Repeat("a", 256)))
}

func TestValidateTemplateMimeType(t *testing.T) {
	for _, mime := range []string{
		"application/pdf",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	} {
		assert.NoError(t, ValidateTemplateMimeType(mime))
	}
	assertValidation(t, ValidateTemplateMimeType("image/png"))
	assertValidation(t, ValidateTemplateMimeType(""))
}

func TestValidateFileSize(t *testing.T) {
	assert.NoError(t, ValidateFileSize(1))
	assert.NoError(t, ValidateFileSize(MaxUploadSize))
	assertValidation(t, ValidateFileSize(0))
	assertValidation(t, ValidateFileSize(-1))
	assertValidation(t, ValidateFileSize(MaxUploadSize+1))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("maria@example.com"))
	assertValidation(t, ValidateEmail(""))
	assertValidation(t, ValidateEmail("not-an-email"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("12345678"))
	assertValidation(t, ValidatePassword("1234567"))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Ana"))
	assertValidation(t, ValidateName("ab"))
	assertValidation(t, ValidateName(strings.Repeat("a", 121)))
}

func TestValidateDocumentName(t *testing.T) {
	assert.NoError(t, ValidateDocumentName("Transcript"))
	assertValidation(t, ValidateDocumentName(""))
	assertValidation(t, ValidateDocumentName(strings.Repeat("a", 51)))
}

func TestValidateNote(t *testing.T) {
	assert.NoError(t, ValidateNote(""))
	assert.NoError(t, ValidateNote(strings.Repeat("a", 50)))
	assertValidation(t, ValidateNote(strings.Repeat("a", 51)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", d.Format("2006-01-02"))

	for _, bad := range []string{"", "15/03/2026", "2026-13-01", "yesterday"} {
		_, err := ParseDate(bad)
		assertValidation(t, err)
	}
}
