package infrastructure

import (
	"context"
	"slices"
	"sync"

	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
	pkgApp "github.com/mateusmacedo/go-busstation/pkg/application"
)

// InMemoryTicketRepository é uma implementação em memória do repositório de passagens.
// SaveAll e LoadAll não tocam disco.
type InMemoryTicketRepository struct {
	mu           sync.Mutex
	routes       []domain.Route
	tickets      []domain.Ticket
	nextTicketID int
	logger       pkgApp.AppLogger
}

func NewInMemoryTicketRepository(routes []domain.Route, logger pkgApp.AppLogger) *InMemoryTicketRepository {
	if len(routes) == 0 {
		routes = DefaultRoutes()
	}
	return &InMemoryTicketRepository{
		routes:       slices.Clone(routes),
		nextTicketID: 1,
		logger:       logger,
	}
}

func (r *InMemoryTicketRepository) AddTicket(ctx context.Context, ticket *domain.Ticket) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ticket.ID == 0 {
		ticket.ID = r.nextTicketID
		r.nextTicketID++
	} else if ticket.ID >= r.nextTicketID {
		r.nextTicketID = ticket.ID + 1
	}
	r.tickets = append(r.tickets, *ticket)

	pkgApp.LogDebug(ctx, r.logger, "ticket saved", map[string]interface{}{"ticket_id": ticket.ID})
}

func (r *InMemoryTicketRepository) RemoveTicket(ctx context.Context, id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idx := slices.IndexFunc(r.tickets, func(t domain.Ticket) bool { return t.ID == id }); idx >= 0 {
		r.tickets = slices.Delete(r.tickets, idx, idx+1)
	}
}

func (r *InMemoryTicketRepository) UpdateTicket(ctx context.Context, ticket domain.Ticket) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.tickets, func(t domain.Ticket) bool { return t.ID == ticket.ID })
	if idx < 0 {
		pkgApp.LogDebug(ctx, r.logger, "ticket not found", map[string]interface{}{"ticket_id": ticket.ID})
		return false
	}
	r.tickets[idx] = ticket
	return true
}

func (r *InMemoryTicketRepository) GetTicket(ctx context.Context, id int) (domain.Ticket, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tickets {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Ticket{}, false
}

func (r *InMemoryTicketRepository) ListTickets(ctx context.Context) []domain.Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.tickets)
}

func (r *InMemoryTicketRepository) ListRoutes(ctx context.Context) []domain.Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.routes)
}

func (r *InMemoryTicketRepository) Snapshot(ctx context.Context) domain.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return domain.Snapshot{Routes: slices.Clone(r.routes), Tickets: slices.Clone(r.tickets)}
}

func (r *InMemoryTicketRepository) SaveAll(ctx context.Context) {}

func (r *InMemoryTicketRepository) LoadAll(ctx context.Context) {}
