package upload

import (
	"testing"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		file         types.FileMeta
		expectError  bool
		expectedCode string
	}{
		{
			name:        "valid PDF by MIME type",
			file:        types.FileMeta{Name: "resume.pdf", MIMEType: "application/pdf", ByteSize: 1024},
			expectError: false,
		},
		{
			name:        "valid DOCX by MIME type",
			file:        types.FileMeta{Name: "resume.docx", MIMEType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", ByteSize: 2048},
			expectError: false,
		},
		{
			name:        "valid TXT by MIME type",
			file:        types.FileMeta{Name: "resume.txt", MIMEType: "text/plain", ByteSize: 512},
			expectError: false,
		},
		{
			name:        "unknown MIME but accepted extension",
			file:        types.FileMeta{Name: "resume.pdf", MIMEType: "application/octet-stream", ByteSize: 1024},
			expectError: false,
		},
		{
			name:        "extension check is case insensitive",
			file:        types.FileMeta{Name: "RESUME.PDF", MIMEType: "", ByteSize: 1024},
			expectError: false,
		},
		{
			name:         "unsupported type",
			file:         types.FileMeta{Name: "photo.png", MIMEType: "image/png", ByteSize: 1024},
			expectError:  true,
			expectedCode: errors.ErrCodeUnsupportedType,
		},
		{
			name:         "unsupported extension with no MIME",
			file:         types.FileMeta{Name: "resume.doc", MIMEType: "", ByteSize: 1024},
			expectError:  true,
			expectedCode: errors.ErrCodeUnsupportedType,
		},
		{
			name:        "exactly at the size limit is accepted",
			file:        types.FileMeta{Name: "resume.pdf", MIMEType: "application/pdf", ByteSize: MaxFileSize},
			expectError: false,
		},
		{
			name:         "one byte over the limit is rejected",
			file:         types.FileMeta{Name: "resume.pdf", MIMEType: "application/pdf", ByteSize: MaxFileSize + 1},
			expectError:  true,
			expectedCode: errors.ErrCodeFileTooLarge,
		},
		{
			name:         "oversized file of unsupported type reports the size problem",
			file:         types.FileMeta{Name: "archive.zip", MIMEType: "application/zip", ByteSize: MaxFileSize + 1},
			expectError:  true,
			expectedCode: errors.ErrCodeFileTooLarge,
		},
		{
			name:        "zero byte file of accepted type passes",
			file:        types.FileMeta{Name: "resume.txt", MIMEType: "text/plain", ByteSize: 0},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.file)

			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				appErr, ok := err.(*errors.AppError)
				if !ok {
					t.Fatalf("expected *errors.AppError, got %T", err)
				}
				if appErr.Code != tt.expectedCode {
					t.Errorf("expected code %q, got %q", tt.expectedCode, appErr.Code)
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestMaxFileSizeValue(t *testing.T) {
	// The limit is 10 binary megabytes, not 10 million bytes.
	if MaxFileSize != 10485760 {
		t.Errorf("expected limit of 10485760 bytes, got %d", MaxFileSize)
	}
}
