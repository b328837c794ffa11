package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/models"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/repository"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/storage"
)

type FileStore interface {
	GetByID(ctx context.Context, id string) (models.File, error)
}

type Download struct {
	Body     io.ReadCloser
	Size     int64
	MimeType string
	Filename string
}

// FileService resolves file records to their uploaded bytes.
type FileService struct {
	files   FileStore
	backend storage.Backend
	prefix  string
	log     zerolog.Logger
}

func NewFileService(files FileStore, backend storage.Backend, publicPrefix string, log zerolog.Logger) *FileService {
	return &FileService{
		files:   files,
		backend: backend,
		prefix:  publicPrefix,
		log:     log,
	}
}

// Open returns the file body for id. The caller must close Body. Size is
// the physical size, which is what gets streamed.
func (s *FileService) Open(ctx context.Context, id string) (Download, error) {
	file, err := s.files.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			return Download{}, ErrFileNotFound
		}
		return Download{}, fmt.Errorf("get file: %w", err)
	}

	rel := storage.RelativePath(file.Path, s.prefix)
	obj, err := s.backend.Open(ctx, rel)
	if err != nil {
		if errors.Is(err, storage.ErrObjectMissing) {
			s.log.Error().
				Str("file_id", file.ID).
				Str("resolved_path", s.backend.Location(rel)).
				Str("stored_path", file.Path).
				Msg("file not found on disk")
			return Download{}, ErrFileMissing
		}
		return Download{}, fmt.Errorf("open file: %w", err)
	}

	return Download{
		Body:     obj.Body,
		Size:     obj.Size,
		MimeType: file.MimeType,
		Filename: lastSegment(file.Path),
	}, nil
}

func lastSegment(p string) string {
	return p[strings.LastIndex(p, "/")+1:]
}
