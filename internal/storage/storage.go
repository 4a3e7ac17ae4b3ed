package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/gramseva/portal/internal/apperr"
)

// Kind names the per-resource directory an attachment is stored under.
type Kind string

const (
	KindProfile Kind = "profiles"
	KindNotice  Kind = "notices"
	KindScheme  Kind = "schemes"
	KindJob     Kind = "jobs"
	KindWork    Kind = "works"
)

// MaxImageSize caps uploads at 5 MB.
const MaxImageSize = 5 * 1024 * 1024

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Store persists image attachments and returns relative paths to embed in
// records. Remove is the compensating half for failed registrations/creates.
type Store interface {
	Save(ctx context.Context, kind Kind, file *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, path string) error
}

// ValidateImage checks extension, declared content type and size before any
// bytes are written.
func ValidateImage(file *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return apperr.InvalidInput("Images only (jpeg, jpg, png, gif, webp) are allowed")
	}
	if ct := file.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return apperr.InvalidInput("Images only (jpeg, jpg, png, gif, webp) are allowed")
	}
	if file.Size > MaxImageSize {
		return apperr.InvalidInput("Image too large. Max 5MB")
	}
	return nil
}

// objectName builds a collision-free file name preserving the extension.
func objectName(kind Kind, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s-%s%s", kind, uuid.NewString(), ext)
}
