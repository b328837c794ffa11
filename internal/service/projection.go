package service

import (
	"sort"
	"strings"
	"time"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/models"
)

const (
	defaultEntidad     = "SOCIEDAD CIVIL"
	defaultInstitucion = "NO APLICA"

	// Same shape as JavaScript's Date.toISOString.
	isoMillis = "2006-01-02T15:04:05.000Z07:00"
)

type FileView struct {
	ID        string `json:"id"`
	Path      string `json:"path"`
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `json:"sizeBytes"`
}

// SubmissionView is one row of the admin listing.
type SubmissionView struct {
	ID              string            `json:"id"`
	Email           string            `json:"email"`
	PrimerNombre    string            `json:"primerNombre"`
	SegundoNombre   *string           `json:"segundoNombre,omitempty"`
	PrimerApellido  string            `json:"primerApellido"`
	SegundoApellido *string           `json:"segundoApellido,omitempty"`
	DPI             string            `json:"dpi"`
	Entidad         string            `json:"entidad"`
	Institucion     string            `json:"institucion"`
	Renglon         string            `json:"renglon"`
	Status          ApplicationStatus `json:"status"`
	SubmittedAt     string            `json:"submittedAt"`
	Etnia           *string           `json:"etnia,omitempty"`
	Dependencia     *string           `json:"dependencia,omitempty"`
	Colegio         *string           `json:"colegio,omitempty"`
	Telefono        *string           `json:"telefono,omitempty"`
	Direccion       *string           `json:"direccion,omitempty"`
	Files           []FileView        `json:"files"`
}

func projectSolicitud(s models.Solicitud) SubmissionView {
	view := SubmissionView{
		ID:              s.ID,
		Email:           firstOf(s.CorreoInstitucional, s.CorreoPersonal, s.ApplicantEmail),
		PrimerNombre:    s.PrimerNombre,
		SegundoNombre:   s.SegundoNombre,
		PrimerApellido:  s.PrimerApellido,
		SegundoApellido: s.SegundoApellido,
		DPI:             s.DPI,
		Entidad:         valueOr(firstPtr(s.EntidadName, s.JoinedEntidad), defaultEntidad),
		Institucion:     valueOr(firstPtr(s.InstitucionName, s.JoinedInstitucion), defaultInstitucion),
		Renglon:         RenglonLabel(s.Renglon),
		Status:          StatusFromStored(s.Status),
		SubmittedAt:     effectiveSubmittedAt(s).UTC().Format(isoMillis),
		Etnia:           s.Etnia,
		Dependencia:     firstPtr(s.DependenciaName, s.JoinedDependencia),
		Colegio:         s.Colegio,
		Telefono:        s.Telefono,
		Direccion:       direccion(s.MunicipioName, s.DepartamentoName),
		Files:           make([]FileView, 0, len(s.Files)),
	}

	for _, f := range s.Files {
		view.Files = append(view.Files, FileView{
			ID:        f.ID,
			Path:      f.Path,
			MimeType:  f.MimeType,
			SizeBytes: f.SizeBytes,
		})
	}

	return view
}

// sortSolicitudes orders by effective submission time, newest first, then
// by creation time. A missing SubmittedAt competes with its CreatedAt.
func sortSolicitudes(items []models.Solicitud) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := effectiveSubmittedAt(items[i]), effectiveSubmittedAt(items[j])
		if !a.Equal(b) {
			return a.After(b)
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func effectiveSubmittedAt(s models.Solicitud) time.Time {
	if s.SubmittedAt != nil {
		return *s.SubmittedAt
	}
	return s.CreatedAt
}

// firstPtr returns the first non-nil value. An empty string counts as
// present, only nil falls through.
func firstPtr(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstOf(values ...*string) string {
	return valueOr(firstPtr(values...), "")
}

func valueOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}

func direccion(municipio, departamento *string) *string {
	parts := make([]string, 0, 2)
	for _, p := range []*string{municipio, departamento} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	joined := strings.Join(parts, ", ")
	return &joined
}
