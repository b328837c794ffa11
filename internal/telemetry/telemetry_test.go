package telemetry

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/config"
)

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	shutdown := Setup(config.TelemetryConfig{ServiceName: "solicitudes-admin-api"}, "test", zerolog.Nop())
	if shutdown == nil {
		t.Fatalf("expected shutdown func")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
