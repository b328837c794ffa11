package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/models"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/storage"
)

type FileWalker interface {
	Each(ctx context.Context, fn func(models.File) error) error
}

type AuditReport struct {
	Checked int
	Missing int
}

// FileAuditor finds file records whose upload is gone from storage.
type FileAuditor struct {
	files   FileWalker
	backend storage.Backend
	prefix  string
	log     zerolog.Logger
}

func NewFileAuditor(files FileWalker, backend storage.Backend, publicPrefix string, log zerolog.Logger) *FileAuditor {
	return &FileAuditor{
		files:   files,
		backend: backend,
		prefix:  publicPrefix,
		log:     log,
	}
}

func (a *FileAuditor) Run(ctx context.Context) (AuditReport, error) {
	var report AuditReport
	err := a.files.Each(ctx, func(file models.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		rel := storage.RelativePath(file.Path, a.prefix)
		ok, err := a.backend.Exists(ctx, rel)
		if err != nil {
			return fmt.Errorf("check %s: %w", file.ID, err)
		}

		report.Checked++
		if !ok {
			report.Missing++
			a.log.Error().
				Str("file_id", file.ID).
				Str("solicitud_id", file.SolicitudID).
				Str("resolved_path", a.backend.Location(rel)).
				Str("stored_path", file.Path).
				Msg("file not found on disk")
		}
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("audit files: %w", err)
	}
	return report, nil
}
