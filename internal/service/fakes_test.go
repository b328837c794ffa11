package service

import (
	"context"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/events"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/models"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/repository"
)

type fakeSessions struct {
	findFn func(ctx context.Context, token string) (models.SessionWithUser, error)
	calls  int
}

func (f *fakeSessions) FindByToken(ctx context.Context, token string) (models.SessionWithUser, error) {
	f.calls++
	return f.findFn(ctx, token)
}

type fakeSolicitudes struct {
	listFn   func(ctx context.Context) ([]models.Solicitud, error)
	applyFn  func(ctx context.Context, change models.StatusChange) (models.SolicitudStatus, error)
	applied  []models.StatusChange
	listings int
}

func (f *fakeSolicitudes) List(ctx context.Context) ([]models.Solicitud, error) {
	f.listings++
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx)
}

func (f *fakeSolicitudes) ApplyStatusChange(ctx context.Context, change models.StatusChange) (models.SolicitudStatus, error) {
	f.applied = append(f.applied, change)
	if f.applyFn == nil {
		return models.SolicitudPending, nil
	}
	return f.applyFn(ctx, change)
}

type fakeNotifier struct {
	events []events.StatusChanged
	err    error
}

func (f *fakeNotifier) StatusChanged(_ context.Context, ev events.StatusChanged) error {
	f.events = append(f.events, ev)
	return f.err
}

type fakeFiles struct {
	files map[string]models.File
	err   error
}

func (f fakeFiles) GetByID(_ context.Context, id string) (models.File, error) {
	if f.err != nil {
		return models.File{}, f.err
	}
	file, ok := f.files[id]
	if !ok {
		return models.File{}, repository.ErrFileNotFound
	}
	return file, nil
}

func (f fakeFiles) Each(_ context.Context, fn func(models.File) error) error {
	for _, file := range f.files {
		if err := fn(file); err != nil {
			return err
		}
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}
