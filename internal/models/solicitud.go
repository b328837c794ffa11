package models

import "time"

// SolicitudStatus is the status as persisted.
type SolicitudStatus string

const (
	SolicitudPending             SolicitudStatus = "PENDING"
	SolicitudInReview            SolicitudStatus = "IN_REVIEW"
	SolicitudApproved            SolicitudStatus = "APPROVED"
	SolicitudRejected            SolicitudStatus = "REJECTED"
	SolicitudRevalidationPending SolicitudStatus = "REVALIDATION_PENDING"
)

// Renglon is the budget line a submission is filed under.
type Renglon string

const (
	RenglonPersonalPermanente011 Renglon = "PERSONAL_PERMANENTE_011"
	RenglonGrupo029              Renglon = "GRUPO_029"
	RenglonSubgrupo18Y022        Renglon = "SUBGRUPO_18_Y_022"
	RenglonNoAplica              Renglon = "NO_APLICA"
	Renglon021                   Renglon = "RENGLON_021"
)

// Solicitud is an applicant's submission with the joined names of its
// catalog references. The *Name fields are snapshots taken at intake; the
// Joined* fields come from the catalog tables and may be nil.
type Solicitud struct {
	ID string

	PrimerNombre    string
	SegundoNombre   *string
	PrimerApellido  string
	SegundoApellido *string
	DPI             string

	CorreoInstitucional *string
	CorreoPersonal      *string
	ApplicantEmail      *string
	Telefono            *string

	EntidadName       *string
	JoinedEntidad     *string
	InstitucionName   *string
	JoinedInstitucion *string
	DependenciaName   *string
	JoinedDependencia *string
	Renglon           Renglon
	Etnia             *string
	Colegio           *string
	MunicipioName     *string
	DepartamentoName  *string

	Status      SolicitudStatus
	SubmittedAt *time.Time
	CreatedAt   time.Time
	ApprovedAt  *time.Time
	RejectedAt  *time.Time

	Files []File
}

// StatusChange is a single status write, optionally with a review note.
// At most one of ApprovedAt and RejectedAt is set; a nil field leaves the
// stored value untouched.
type StatusChange struct {
	SolicitudID string
	Status      SolicitudStatus
	ApprovedAt  *time.Time
	RejectedAt  *time.Time
	Note        *ReviewNote
}

type ReviewNote struct {
	ID          string
	SolicitudID string
	Message     string
	CreatedAt   time.Time
}

type File struct {
	ID          string
	SolicitudID string
	Path        string
	MimeType    string
	SizeBytes   int64
}
