package infrastructure_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
	"github.com/mateusmacedo/go-busstation/internal/busticket/infrastructure"
)

var issuedAt = time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local)

func Test_RenderTicketText_Lists_Route_Passenger_And_Fiscal_Data(t *testing.T) {
	t.Parallel()

	ticket := sampleTicket("Koval")
	ticket.ID = 7
	ticket.TicketType = domain.TicketTypeChild

	text := infrastructure.RenderTicketText(ticket, issuedAt)

	for _, want := range []string{
		"  Київ → Львів\n",
		"  Date: 01.05.2026\n",
		"  Time: 08:00\n",
		"  Bus: 107\n",
		"  Seat: 8\n",
		"  Name: KOVAL OLENA Petrivna\n",
		"  Document: AB123456\n",
		"  Ticket number: 7\n",
		"  Type: Child\n",
		"  Price: 427.50\n",
		"  Issued: 01.03.2026 09:30\n",
		"  Status: Active\n",
	} {
		assert.Contains(t, text, want)
	}
}

func Test_RenderTicketText_Fills_Missing_Values(t *testing.T) {
	t.Parallel()

	ticket := domain.Ticket{ID: 1, Price: decimal.NewFromInt(-5), Status: domain.StatusCancelled}

	text := infrastructure.RenderTicketText(ticket, issuedAt)

	assert.Contains(t, text, "  Not specified → Not specified\n")
	assert.Contains(t, text, "  Date: 01.03.2026\n")
	assert.Contains(t, text, "  Time: Not specified\n")
	assert.Contains(t, text, "  Name: Not specified\n")
	assert.NotContains(t, text, "Document:")
	assert.Contains(t, text, "  Price: 0.00\n")
	assert.Contains(t, text, "  Status: Cancelled\n")
}

func Test_TextExporter_Export_Writes_Named_File(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "ExportedTickets")
	exporter := infrastructure.NewTextExporter(dir, func() time.Time { return issuedAt }, nopLogger())
	ticket := sampleTicket("Koval")
	ticket.ID = 12

	path, err := exporter.Export(context.Background(), ticket)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Ticket_12_20260301_093000.txt"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, infrastructure.RenderTicketText(ticket, issuedAt), string(data))
}

func Test_TextExporter_Export_Fails_When_Dir_Unusable(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "blocker")
	writeFile(t, blocker, "")
	exporter := infrastructure.NewTextExporter(blocker, func() time.Time { return issuedAt }, nopLogger())

	_, err := exporter.Export(context.Background(), sampleTicket("Koval"))

	assert.Error(t, err)
}
