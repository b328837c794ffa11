package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/database"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/models"
)

var ErrSolicitudNotFound = errors.New("solicitud not found")

type SolicitudRepository struct {
	pool *pgxpool.Pool
}

func NewSolicitudRepository(pool *pgxpool.Pool) *SolicitudRepository {
	return &SolicitudRepository{pool: pool}
}

// List returns every solicitud, most recent first, with its catalog names
// and attached files.
func (r *SolicitudRepository) List(ctx context.Context) ([]models.Solicitud, error) {
	const query = `
		SELECT s.id,
		       s.primer_nombre, s.segundo_nombre, s.primer_apellido, s.segundo_apellido, s.dpi,
		       s.correo_institucional, s.correo_personal, a.email, s.telefono,
		       s.entidad_name, e.name, s.institucion_name, i.name, s.dependencia_name, d.name,
		       s.renglon, s.etnia, s.colegio, s.municipio_name, s.departamento_name,
		       s.status, s.submitted_at, s.created_at, s.approved_at, s.rejected_at
		FROM solicitudes s
		LEFT JOIN users a ON a.id = s.applicant_id
		LEFT JOIN entidades e ON e.id = s.entidad_id
		LEFT JOIN instituciones i ON i.id = s.institucion_id
		LEFT JOIN dependencias d ON d.id = s.dependencia_id
		ORDER BY COALESCE(s.submitted_at, s.created_at) DESC, s.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		solicitudes []models.Solicitud
		ids         []string
	)
	for rows.Next() {
		var s models.Solicitud
		if err := rows.Scan(
			&s.ID,
			&s.PrimerNombre,
			&s.SegundoNombre,
			&s.PrimerApellido,
			&s.SegundoApellido,
			&s.DPI,
			&s.CorreoInstitucional,
			&s.CorreoPersonal,
			&s.ApplicantEmail,
			&s.Telefono,
			&s.EntidadName,
			&s.JoinedEntidad,
			&s.InstitucionName,
			&s.JoinedInstitucion,
			&s.DependenciaName,
			&s.JoinedDependencia,
			&s.Renglon,
			&s.Etnia,
			&s.Colegio,
			&s.MunicipioName,
			&s.DepartamentoName,
			&s.Status,
			&s.SubmittedAt,
			&s.CreatedAt,
			&s.ApprovedAt,
			&s.RejectedAt,
		); err != nil {
			return nil, err
		}
		solicitudes = append(solicitudes, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return solicitudes, nil
	}

	files, err := r.filesFor(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load files: %w", err)
	}
	for i := range solicitudes {
		solicitudes[i].Files = files[solicitudes[i].ID]
	}

	return solicitudes, nil
}

func (r *SolicitudRepository) filesFor(ctx context.Context, solicitudIDs []string) (map[string][]models.File, error) {
	const query = `
		SELECT id, solicitud_id, path, mime_type, size_bytes
		FROM files
		WHERE solicitud_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, solicitudIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make(map[string][]models.File, len(solicitudIDs))
	for rows.Next() {
		var f models.File
		if err := rows.Scan(&f.ID, &f.SolicitudID, &f.Path, &f.MimeType, &f.SizeBytes); err != nil {
			return nil, err
		}
		files[f.SolicitudID] = append(files[f.SolicitudID], f)
	}
	return files, rows.Err()
}

const (
	lockSolicitudQuery = `SELECT status FROM solicitudes WHERE id = $1 FOR UPDATE`

	// A NULL timestamp parameter keeps the stored column, so stamping one
	// of approved_at/rejected_at never clears the other.
	updateStatusQuery = `
		UPDATE solicitudes
		SET status = $2,
		    approved_at = COALESCE($3, approved_at),
		    rejected_at = COALESCE($4, rejected_at)
		WHERE id = $1
	`

	insertNoteQuery = `
		INSERT INTO review_notes (id, solicitud_id, message, created_at)
		VALUES ($1, $2, $3, $4)
	`
)

// updateStatusArgs binds change to updateStatusQuery. An unset timestamp
// is passed as NULL.
func updateStatusArgs(change models.StatusChange) []any {
	args := []any{change.SolicitudID, string(change.Status), nil, nil}
	if change.ApprovedAt != nil {
		args[2] = *change.ApprovedAt
	}
	if change.RejectedAt != nil {
		args[3] = *change.RejectedAt
	}
	return args
}

// ApplyStatusChange locks the solicitud, writes the new status and
// timestamp and appends the review note, all in one transaction: any
// failure rolls back every write. It returns the status the solicitud had
// before the change.
func (r *SolicitudRepository) ApplyStatusChange(ctx context.Context, change models.StatusChange) (models.SolicitudStatus, error) {
	var previous models.SolicitudStatus
	err := database.InTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, lockSolicitudQuery, change.SolicitudID).Scan(&previous); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrSolicitudNotFound
			}
			return fmt.Errorf("lock solicitud: %w", err)
		}

		cmd, err := tx.Exec(ctx, updateStatusQuery, updateStatusArgs(change)...)
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return fmt.Errorf("update status: no rows affected for %s", change.SolicitudID)
		}

		if change.Note != nil {
			if _, err := tx.Exec(ctx, insertNoteQuery,
				change.Note.ID,
				change.SolicitudID,
				change.Note.Message,
				change.Note.CreatedAt,
			); err != nil {
				return fmt.Errorf("insert review note: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return previous, nil
}
