package upload

import (
	"regexp"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// MaxFileSize is the upload size ceiling in bytes (10 MiB). The comparison
// is strictly greater-than: a file of exactly MaxFileSize is accepted, one
// byte more is rejected.
const MaxFileSize = 10 * 1024 * 1024

// Browsers report office-document MIME types inconsistently, so the
// extension check is an accepted fallback, not a replacement. The OR
// combination of the two checks must be preserved.
var acceptedMIMETypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
}

var acceptedExtensions = regexp.MustCompile(`(?i)\.(pdf|docx|txt)$`)

// Validate checks a candidate file against the type and size constraints.
// It is a pure predicate over file metadata: no content sniffing, no side
// effects. Size is checked first so oversized files are rejected as
// too-large regardless of type.
func Validate(meta types.FileMeta) error {
	if meta.ByteSize > MaxFileSize {
		return errors.NewValidationError(errors.ErrCodeFileTooLarge,
			"file exceeds the 10MB upload limit", nil).
			WithContext("byte_size", meta.ByteSize)
	}

	if acceptedMIMETypes[meta.MIMEType] || acceptedExtensions.MatchString(meta.Name) {
		return nil
	}

	return errors.NewValidationError(errors.ErrCodeUnsupportedType,
		"file is not a PDF, DOCX, or TXT document", nil).
		WithContext("mime_type", meta.MIMEType).
		WithContext("filename", meta.Name)
}
