package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"resumelens/internal/errors"
	"resumelens/internal/types"
	"resumelens/internal/utils"
)

// FileProcessor handles common file operations
type FileProcessor struct {
	logger *errors.Logger
}

// NewFileProcessor creates a new file processor instance
func NewFileProcessor(logger *errors.Logger) *FileProcessor {
	return &FileProcessor{logger: logger}
}

// ReadFile reads content from a file with proper error handling. Resumes
// may be binary (PDF, DOCX), so content is returned as raw bytes.
func (fp *FileProcessor) ReadFile(filename string) ([]byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewIOError(errors.ErrCodeFileNotFound,
				fmt.Sprintf("File not found: %s", filename), err)
		}
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot read file: %s", filename), err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			// Log the error but don't override the main operation result
			if fp.logger != nil {
				fp.logger.Warn("Failed to close file", "filename", filename, "error", err)
			}
		}
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Failed to read file content: %s", filename), err)
	}

	return content, nil
}

// ReadResume validates and reads a candidate resume, returning its
// metadata alongside the raw content. The MIME type comes from the
// extension mapping with content sniffing as fallback, mirroring what a
// browser reports for a picked file.
func (fp *FileProcessor) ReadResume(filename string) (types.FileMeta, []byte, error) {
	if err := utils.ValidateInputFile(filename); err != nil {
		return types.FileMeta{}, nil, errors.NewValidationError("INVALID_INPUT_FILE",
			fmt.Sprintf("Invalid file %s", filename), err)
	}

	if !utils.IsResumeFile(filename) {
		if fp.logger != nil {
			fp.logger.Warn("File does not have a typical resume extension",
				"filename", filename)
		}
	}

	content, err := fp.ReadFile(filename)
	if err != nil {
		return types.FileMeta{}, nil, err
	}

	meta := types.FileMeta{
		Name:     filepath.Base(filename),
		MIMEType: utils.DetectMIMEType(filename, content),
		ByteSize: int64(len(content)),
	}
	return meta, content, nil
}

// WriteFile writes content to a file with directory creation
func (fp *FileProcessor) WriteFile(filename, content string) error {
	dir := filepath.Dir(filename)
	if dir != "." {
		err := os.MkdirAll(dir, 0750)
		if err != nil {
			return errors.NewIOError("DIRECTORY_CREATE_FAILED",
				fmt.Sprintf("Cannot create directory: %s", dir), err)
		}
	}

	err := os.WriteFile(filename, []byte(content), 0600)
	if err != nil {
		return errors.NewIOError("FILE_WRITE_FAILED",
			fmt.Sprintf("Cannot write file: %s", filename), err)
	}

	return nil
}

// ValidateOutputFile validates output file path
func (fp *FileProcessor) ValidateOutputFile(filename string) error {
	if filename == "" {
		return nil // stdout is valid
	}

	if err := utils.ValidateOutputFile(filename); err != nil {
		return errors.NewValidationError("INVALID_OUTPUT_FILE",
			fmt.Sprintf("Invalid output file: %s", filename), err)
	}

	return nil
}
