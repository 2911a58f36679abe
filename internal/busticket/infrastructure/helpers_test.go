package infrastructure_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
	"github.com/mateusmacedo/go-busstation/internal/busticket/infrastructure"
	pkgApp "github.com/mateusmacedo/go-busstation/pkg/application"
	zapAdapter "github.com/mateusmacedo/go-busstation/pkg/infrastructure/zaplogger/adapter"
)

var (
	_ domain.TicketRepository = (*infrastructure.JSONTicketRepository)(nil)
	_ domain.TicketRepository = (*infrastructure.InMemoryTicketRepository)(nil)
)

func nopLogger() pkgApp.AppLogger {
	return zapAdapter.NewZapAppLoggerFrom(zap.NewNop())
}

func observedLogger() (pkgApp.AppLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zapAdapter.NewZapAppLoggerFrom(zap.New(core)), logs
}

func sampleTicket(lastName string) domain.Ticket {
	return domain.Ticket{
		Route:         infrastructure.DefaultRoutes()[0],
		Passenger:     domain.Passenger{LastName: lastName, FirstName: "Olena", MiddleName: "Petrivna", Phone: "+380501112233", Document: "ab123456"},
		Date:          time.Date(2026, 5, 1, 0, 0, 0, 0, time.Local),
		Price:         decimal.RequireFromString("427.5"),
		TicketType:    domain.TicketTypeRegular,
		PaymentMethod: domain.PaymentOnline,
		Status:        domain.StatusActive,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func requireSameState(t *testing.T, want, got domain.Snapshot) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func addTicket(t *testing.T, repo domain.TicketRepository, lastName string) domain.Ticket {
	t.Helper()
	ticket := sampleTicket(lastName)
	repo.AddTicket(context.Background(), &ticket)
	return ticket
}
