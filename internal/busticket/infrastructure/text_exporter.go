package infrastructure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"github.com/shopspring/decimal"

	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
	pkgApp "github.com/mateusmacedo/go-busstation/pkg/application"
)

const (
	doubleRule = "═══════════════════════════════════════════════════════"
	singleRule = "───────────────────────────────────────────────────────"
	notGiven   = "Not specified"
)

// TextExporter grava o comprovante da passagem em texto puro.
type TextExporter struct {
	dir    string
	now    func() time.Time
	logger pkgApp.AppLogger
}

func NewTextExporter(dir string, now func() time.Time, logger pkgApp.AppLogger) *TextExporter {
	if now == nil {
		now = time.Now
	}
	return &TextExporter{dir: dir, now: now, logger: logger}
}

// Export grava <dir>/Ticket_<id>_<yyyymmdd_hhmmss>.txt e devolve o caminho.
func (e *TextExporter) Export(ctx context.Context, ticket domain.Ticket) (string, error) {
	issuedAt := e.now()
	path := filepath.Join(e.dir, fmt.Sprintf("Ticket_%d_%s.txt", ticket.ID, issuedAt.Format("20060102_150405")))

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		pkgApp.LogError(ctx, e.logger, "Erro ao criar pasta de exportação", err, map[string]interface{}{"dir": e.dir})
		return "", fmt.Errorf("create export dir: %w", err)
	}
	if err := atomic.WriteFile(path, strings.NewReader(RenderTicketText(ticket, issuedAt))); err != nil {
		pkgApp.LogError(ctx, e.logger, "Erro ao exportar passagem", err, map[string]interface{}{"path": path})
		return "", fmt.Errorf("write ticket file: %w", err)
	}

	pkgApp.LogInfo(ctx, e.logger, "Passagem exportada", map[string]interface{}{"ticket_id": ticket.ID, "path": path})
	return path, nil
}

// RenderTicketText monta o comprovante. Ônibus e poltrona derivam do id da passagem.
func RenderTicketText(ticket domain.Ticket, issuedAt time.Time) string {
	var b strings.Builder
	line := func(text string, args ...interface{}) {
		if len(args) > 0 {
			text = fmt.Sprintf(text, args...)
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}

	line(doubleRule)
	line("                   BUS STATION")
	line("                 BOARDING PASS")
	line(doubleRule)
	line("")

	line("ROUTE:")
	line("  %s → %s", orDefault(ticket.Route.Departure, notGiven), orDefault(ticket.Route.Arrival, notGiven))
	line("")

	date := ticket.Date
	if date.IsZero() {
		date = issuedAt
	}
	departure := notGiven
	if ticket.Route.DepartureTime != 0 {
		departure = ticket.Route.DepartureTime.Short()
	}
	line("DEPARTURE:")
	line("  Date: %s", date.Format("02.01.2006"))
	line("  Time: %s", departure)
	line("")

	id := ticket.ID
	if id < 0 {
		id = -id
	}
	line("TRANSPORT:")
	line("  Bus: %d", 100+id%50)
	line("  Seat: %d", 1+id%50)
	line("")
	line(singleRule)
	line("")

	line("PASSENGER:")
	line("  Name: %s", passengerLabel(ticket.Passenger))
	if doc := strings.TrimSpace(ticket.Passenger.Document); doc != "" {
		line("  Document: %s", strings.ToUpper(doc))
	}
	line("")
	line(singleRule)
	line("")

	line("TICKET UID:")
	line("  %04d-%04d-%04d-%04d", id, issuedAt.Nanosecond()/int(time.Millisecond), id%10000, id%10000)
	line("")
	line(singleRule)
	line("")

	price := ticket.Price
	if price.IsNegative() {
		price = decimal.Zero
	}
	line("FISCAL INFORMATION:")
	line("  Ticket number: %d", ticket.ID)
	line("  Type: %s", ticketTypeLabel(ticket.TicketType))
	line("  Price: %s", price.StringFixed(2))
	line("  Issued: %s", issuedAt.Format("02.01.2006 15:04"))
	line("  Status: %s", statusLabel(ticket.Status))
	line("")
	line(doubleRule)

	return b.String()
}

func passengerLabel(p domain.Passenger) string {
	name := strings.TrimSpace(p.LastName + " " + p.FirstName)
	if name == "" {
		return notGiven
	}
	name = strings.ToUpper(name)
	if middle := strings.TrimSpace(p.MiddleName); middle != "" {
		name += " " + middle
	}
	return name
}

func ticketTypeLabel(t domain.TicketType) string {
	switch t {
	case domain.TicketTypeDiscount:
		return "Discount"
	case domain.TicketTypeChild:
		return "Child"
	default:
		return "Regular"
	}
}

func statusLabel(s domain.Status) string {
	switch s {
	case domain.StatusCancelled:
		return "Cancelled"
	case domain.StatusUsed:
		return "Used"
	default:
		return "Active"
	}
}
