package file

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/jago-app/jago-api/internal/domain"
	s3infra "github.com/jago-app/jago-api/internal/infrastructure/s3"
	"github.com/jago-app/jago-api/internal/pkg/id"
)

// FileStore persists file metadata rows.
type FileStore interface {
	Put(ctx context.Context, f *domain.File) error
	Get(ctx context.Context, fileID string) (*domain.File, error)
}

// ObjectStore is the blob backend.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}

type UploadInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
	UploaderID  string
}

type Service interface {
	Upload(ctx context.Context, input UploadInput) (*domain.File, error)
	Download(ctx context.Context, fileID string) (io.ReadCloser, *domain.File, error)
}

type service struct {
	objects ObjectStore
	files   FileStore
}

func NewService(objects ObjectStore, files FileStore) Service {
	return &service{objects: objects, files: files}
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*domain.File, error) {
	safeName := sanitizeFilename(input.Filename)
	contentType := input.ContentType
	if contentType == "" {
		contentType = s3infra.DetectContentType(safeName)
	}

	fileID := id.New()
	key := fmt.Sprintf("uploads/%s/%s-%s", input.UploaderID, fileID, safeName)
	if _, err := s.objects.Upload(ctx, key, input.Reader, contentType); err != nil {
		return nil, err
	}

	f := &domain.File{
		FileID:           fileID,
		Object:           key,
		Name:             safeName,
		Type:             contentType,
		Size:             input.Size,
		UploadedByUserID: input.UploaderID,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.files.Put(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Download(ctx context.Context, fileID string) (io.ReadCloser, *domain.File, error) {
	f, err := s.files.Get(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}
	body, err := s.objects.Download(ctx, f.Object)
	if err != nil {
		return nil, nil, err
	}
	return body, f, nil
}

// sanitizeFilename strips path components and characters unsafe for S3 keys.
func sanitizeFilename(name string) string {
	name = path.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
