package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/models"
)

func TestListOrdering(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)
	t3 := t2.Add(24 * time.Hour)

	store := &fakeSolicitudes{listFn: func(ctx context.Context) ([]models.Solicitud, error) {
		return []models.Solicitud{
			{ID: "C", SubmittedAt: &t1, CreatedAt: t1},
			{ID: "A", SubmittedAt: &t2, CreatedAt: t1},
			{ID: "B", CreatedAt: t3},
		}, nil
	}}
	svc := NewReviewService(store, nil, zerolog.Nop())

	views, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	got := make([]string, 0, len(views))
	for _, v := range views {
		got = append(got, v.ID)
	}
	if len(got) != 3 || got[0] != "B" || got[1] != "A" || got[2] != "C" {
		t.Fatalf("order=%v, want [B A C]", got)
	}
}

func TestListOrderingTieBreaksOnCreatedAt(t *testing.T) {
	submitted := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	store := &fakeSolicitudes{listFn: func(ctx context.Context) ([]models.Solicitud, error) {
		return []models.Solicitud{
			{ID: "older", SubmittedAt: &submitted, CreatedAt: submitted.Add(-2 * time.Hour)},
			{ID: "newer", SubmittedAt: &submitted, CreatedAt: submitted.Add(-time.Hour)},
		}, nil
	}}
	svc := NewReviewService(store, nil, zerolog.Nop())

	views, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if views[0].ID != "newer" || views[1].ID != "older" {
		t.Fatalf("order=[%s %s], want [newer older]", views[0].ID, views[1].ID)
	}
}

func TestListStoreFailure(t *testing.T) {
	store := &fakeSolicitudes{listFn: func(ctx context.Context) ([]models.Solicitud, error) {
		return nil, errors.New("timeout")
	}}
	svc := NewReviewService(store, nil, zerolog.Nop())

	if _, err := svc.List(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestProjectSolicitudDefaults(t *testing.T) {
	created := time.Date(2025, 4, 2, 8, 15, 30, 123000000, time.FixedZone("CST", -6*3600))

	view := projectSolicitud(models.Solicitud{
		ID:             "sol-1",
		PrimerNombre:   "Ana",
		PrimerApellido: "López",
		DPI:            "1234567890101",
		Renglon:        "RENGLON_FUTURO",
		Status:         "ARCHIVED",
		CreatedAt:      created,
	})

	if view.Email != "" {
		t.Fatalf("email=%q, want empty", view.Email)
	}
	if view.Entidad != "SOCIEDAD CIVIL" {
		t.Fatalf("entidad=%q", view.Entidad)
	}
	if view.Institucion != "NO APLICA" {
		t.Fatalf("institucion=%q", view.Institucion)
	}
	if view.Dependencia != nil {
		t.Fatalf("dependencia=%q, want nil", *view.Dependencia)
	}
	if view.Renglon != "NO APLICA" {
		t.Fatalf("renglon=%q", view.Renglon)
	}
	if view.Status != StatusPending {
		t.Fatalf("status=%q", view.Status)
	}
	if view.SubmittedAt != "2025-04-02T14:15:30.123Z" {
		t.Fatalf("submittedAt=%q", view.SubmittedAt)
	}
	if view.Direccion != nil {
		t.Fatalf("direccion=%q, want nil", *view.Direccion)
	}
	if view.Files == nil || len(view.Files) != 0 {
		t.Fatalf("files=%v, want empty slice", view.Files)
	}
}

func TestProjectSolicitudPreferences(t *testing.T) {
	submitted := time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC)

	view := projectSolicitud(models.Solicitud{
		ID:                  "sol-2",
		CorreoInstitucional: nil,
		CorreoPersonal:      strPtr("ana@gmail.com"),
		ApplicantEmail:      strPtr("cuenta@example.gt"),
		EntidadName:         strPtr("MINEDUC"),
		JoinedEntidad:       strPtr("Ministerio de Educación"),
		JoinedInstitucion:   strPtr("Escuela 12"),
		JoinedDependencia:   strPtr("DIDEDUC Guatemala"),
		Renglon:             models.Renglon021,
		Status:              models.SolicitudRevalidationPending,
		SubmittedAt:         &submitted,
		CreatedAt:           submitted.Add(-time.Hour),
		MunicipioName:       strPtr("Mixco"),
		DepartamentoName:    strPtr(""),
		Files: []models.File{
			{ID: "f-1", SolicitudID: "sol-2", Path: "/uploads/sol-2/dpi/cedula.pdf", MimeType: "application/pdf", SizeBytes: 2048},
		},
	})

	if view.Email != "ana@gmail.com" {
		t.Fatalf("email=%q", view.Email)
	}
	if view.Entidad != "MINEDUC" {
		t.Fatalf("entidad=%q", view.Entidad)
	}
	if view.Institucion != "Escuela 12" {
		t.Fatalf("institucion=%q", view.Institucion)
	}
	if view.Dependencia == nil || *view.Dependencia != "DIDEDUC Guatemala" {
		t.Fatalf("dependencia=%v", view.Dependencia)
	}
	if view.Renglon != "RENGLÓN 021" {
		t.Fatalf("renglon=%q", view.Renglon)
	}
	if view.Status != StatusInReview {
		t.Fatalf("status=%q", view.Status)
	}
	if view.SubmittedAt != "2025-04-02T08:00:00.000Z" {
		t.Fatalf("submittedAt=%q", view.SubmittedAt)
	}
	if view.Direccion == nil || *view.Direccion != "Mixco" {
		t.Fatalf("direccion=%v", view.Direccion)
	}
	if len(view.Files) != 1 {
		t.Fatalf("files=%v", view.Files)
	}
	f := view.Files[0]
	if f.ID != "f-1" || f.Path != "/uploads/sol-2/dpi/cedula.pdf" || f.MimeType != "application/pdf" || f.SizeBytes != 2048 {
		t.Fatalf("file=%+v", f)
	}
}

func TestDireccionJoinsBothParts(t *testing.T) {
	got := direccion(strPtr("Mixco"), strPtr("Guatemala"))
	if got == nil || *got != "Mixco, Guatemala" {
		t.Fatalf("direccion=%v", got)
	}
	if got := direccion(nil, strPtr("Guatemala")); got == nil || *got != "Guatemala" {
		t.Fatalf("direccion=%v", got)
	}
}
