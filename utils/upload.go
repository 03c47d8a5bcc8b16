package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadSize is the per-file upload limit.
const MaxUploadSize = 10 * 1024 * 1024 // 10MB

// allowedExtensions lists the accepted upload types: PDF, Word and Excel.
var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".xls":  {},
	".xlsx": {},
}

// ValidateUploadFile checks extension and size before anything is written
// to disk or the database.
func ValidateUploadFile(fh *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return fmt.Errorf("invalid file type %q: only PDF, Word and Excel files are allowed", ext)
	}
	if fh.Size > MaxUploadSize {
		return fmt.Errorf("file %q exceeds the %d MB limit", fh.Filename, MaxUploadSize/(1024*1024))
	}
	return nil
}

// StoredFilename builds a unique on-disk name for an upload, keeping the
// original extension.
func StoredFilename(originalName string) string {
	return "files-" + uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
}
