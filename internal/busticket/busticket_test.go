package busticket_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mateusmacedo/go-busstation/internal/busticket"
	"github.com/mateusmacedo/go-busstation/internal/busticket/application"
	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
	"github.com/mateusmacedo/go-busstation/internal/busticket/infrastructure"
	"github.com/mateusmacedo/go-busstation/internal/config"
	pkgInfra "github.com/mateusmacedo/go-busstation/pkg/infrastructure"
	zapAdapter "github.com/mateusmacedo/go-busstation/pkg/infrastructure/zaplogger/adapter"
)

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local)

func newSlice(t *testing.T, autoExport bool) (*busticket.BusTicketSlice, config.Config) {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.DataFile = filepath.Join(dir, "tickets_data.json")
	cfg.AuditLog = filepath.Join(dir, "ticket_system.log")
	cfg.ExportDir = filepath.Join(dir, "ExportedTickets")
	cfg.AutoExport = autoExport

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	slice, err := busticket.NewBusTicketSlice(ctx, busticket.Options{
		Config: cfg,
		Now:    func() time.Time { return fixedNow },
	}, pkgInfra.UUIDGenerator(), zapAdapter.NewZapAppLoggerFrom(zap.NewNop()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = slice.Close() })

	return slice, cfg
}

func sell(t *testing.T, slice *busticket.BusTicketSlice) domain.Ticket {
	t.Helper()
	sold, err := slice.Service.Sell(context.Background(), application.SaleRequest{
		RouteID:       3,
		Date:          fixedNow.AddDate(0, 0, 2),
		PaymentMethod: domain.PaymentCard,
		Orders: []application.PassengerOrder{
			{Passenger: domain.Passenger{LastName: "Shevchenko", FirstName: "Taras"}, TicketType: domain.TicketTypeDiscount},
		},
	})
	require.NoError(t, err)
	require.Len(t, sold, 1)
	return sold[0]
}

func Test_BusTicketSlice_Sale_Persists_And_Audits(t *testing.T) {
	t.Parallel()

	slice, cfg := newSlice(t, false)
	ticket := sell(t, slice)
	assert.Equal(t, "308.70", ticket.Price.StringFixed(2))

	data, err := os.ReadFile(cfg.DataFile)
	require.NoError(t, err)
	_, tickets, _, err := infrastructure.DecodeDocument(data)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, ticket.ID, tickets[0].ID)

	_, err = slice.Service.Cancel(context.Background(), ticket.ID)
	require.NoError(t, err)
	require.NoError(t, slice.Close())

	audit, err := os.ReadFile(cfg.AuditLog)
	require.NoError(t, err)
	assert.Contains(t, string(audit), "] Ticket #1 created for Shevchenko Taras\n")
	assert.Contains(t, string(audit), "] Ticket #1 cancelled for Shevchenko Taras\n")
}

func Test_BusTicketSlice_Undo_Persists_Removal(t *testing.T) {
	t.Parallel()

	slice, cfg := newSlice(t, false)
	sell(t, slice)

	_, err := slice.Service.Undo(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.DataFile)
	require.NoError(t, err)
	_, tickets, _, err := infrastructure.DecodeDocument(data)
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func Test_BusTicketSlice_Auto_Export_Writes_Ticket_File(t *testing.T) {
	t.Parallel()

	slice, cfg := newSlice(t, true)
	ticket := sell(t, slice)

	want := filepath.Join(cfg.ExportDir, "Ticket_1_20260301_093000.txt")
	require.Eventually(t, func() bool {
		_, err := os.Stat(want)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Ticket number: 1")
	assert.Equal(t, 1, ticket.ID)
}
