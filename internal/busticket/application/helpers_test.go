package application_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mateusmacedo/go-busstation/internal/busticket/application"
	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
	"github.com/mateusmacedo/go-busstation/internal/busticket/infrastructure"
	pkgApp "github.com/mateusmacedo/go-busstation/pkg/application"
	zapAdapter "github.com/mateusmacedo/go-busstation/pkg/infrastructure/zaplogger/adapter"
)

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local)

func clock() time.Time { return fixedNow }

func nopLogger() pkgApp.AppLogger {
	return zapAdapter.NewZapAppLoggerFrom(zap.NewNop())
}

func newRepo() *infrastructure.InMemoryTicketRepository {
	return infrastructure.NewInMemoryTicketRepository(nil, nopLogger())
}

func kyivLviv() domain.Route {
	return infrastructure.DefaultRoutes()[0]
}

func sampleTicket(status domain.Status) domain.Ticket {
	return domain.Ticket{
		Route:         kyivLviv(),
		Passenger:     domain.Passenger{LastName: "Koval", FirstName: "Olena"},
		Date:          fixedNow.AddDate(0, 0, 5),
		Price:         decimal.NewFromInt(450),
		TicketType:    domain.TicketTypeRegular,
		PaymentMethod: domain.PaymentCash,
		Status:        status,
	}
}

// addTicket insere uma passagem e devolve o id atribuído.
func addTicket(t *testing.T, repo domain.TicketRepository, status domain.Status) int {
	t.Helper()
	ticket := sampleTicket(status)
	repo.AddTicket(context.Background(), &ticket)
	require.NotZero(t, ticket.ID)
	return ticket.ID
}

type notification struct {
	kind     string
	ticketID int
	from, to domain.Status
}

type recordingObserver struct {
	mu     sync.Mutex
	name   string
	log    *[]string
	events []notification
	err    error
	panic  bool
}

func (o *recordingObserver) record(n notification) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.log != nil {
		*o.log = append(*o.log, o.name)
	}
	o.events = append(o.events, n)
	if o.panic {
		panic("boom")
	}
	return o.err
}

func (o *recordingObserver) OnCreated(ctx context.Context, ticket domain.Ticket) error {
	return o.record(notification{kind: "created", ticketID: ticket.ID})
}

func (o *recordingObserver) OnCancelled(ctx context.Context, ticket domain.Ticket) error {
	return o.record(notification{kind: "cancelled", ticketID: ticket.ID})
}

func (o *recordingObserver) OnStatusChanged(ctx context.Context, ticket domain.Ticket, oldStatus, newStatus domain.Status) error {
	return o.record(notification{kind: "status_changed", ticketID: ticket.ID, from: oldStatus, to: newStatus})
}

func (o *recordingObserver) Events() []notification {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]notification(nil), o.events...)
}

var _ application.TicketObserver = (*recordingObserver)(nil)
