package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/models"
)

var ErrFileNotFound = errors.New("file not found")

type FileRepository struct {
	pool *pgxpool.Pool
}

func NewFileRepository(pool *pgxpool.Pool) *FileRepository {
	return &FileRepository{pool: pool}
}

func (r *FileRepository) GetByID(ctx context.Context, id string) (models.File, error) {
	const query = `
		SELECT id, solicitud_id, path, mime_type, size_bytes
		FROM files WHERE id = $1
	`

	var f models.File
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&f.ID,
		&f.SolicitudID,
		&f.Path,
		&f.MimeType,
		&f.SizeBytes,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.File{}, ErrFileNotFound
		}
		return models.File{}, err
	}
	return f, nil
}

// Each streams every file record to fn in id order. Iteration stops at the
// first error fn returns.
func (r *FileRepository) Each(ctx context.Context, fn func(models.File) error) error {
	const query = `
		SELECT id, solicitud_id, path, mime_type, size_bytes
		FROM files
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var f models.File
		if err := rows.Scan(&f.ID, &f.SolicitudID, &f.Path, &f.MimeType, &f.SizeBytes); err != nil {
			return err
		}
		if err := fn(f); err != nil {
			return err
		}
	}
	return rows.Err()
}
