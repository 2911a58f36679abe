package domain

import "context"

// Snapshot é uma cópia independente do estado do repositório.
type Snapshot struct {
	Routes  []Route
	Tickets []Ticket
}

// FindTicket procura uma passagem no snapshot pelo id.
func (s Snapshot) FindTicket(id int) (Ticket, bool) {
	for _, t := range s.Tickets {
		if t.ID == id {
			return t, true
		}
	}
	return Ticket{}, false
}

func (s Snapshot) FindRoute(id int) (Route, bool) {
	for _, r := range s.Routes {
		if r.ID == id {
			return r, true
		}
	}
	return Route{}, false
}

// TicketRepository é o dono exclusivo do estado de rotas e passagens.
type TicketRepository interface {
	AddTicket(ctx context.Context, ticket *Ticket)
	RemoveTicket(ctx context.Context, id int)
	UpdateTicket(ctx context.Context, ticket Ticket) bool
	GetTicket(ctx context.Context, id int) (Ticket, bool)
	ListTickets(ctx context.Context) []Ticket
	ListRoutes(ctx context.Context) []Route
	SaveAll(ctx context.Context)
	LoadAll(ctx context.Context)
	Snapshot(ctx context.Context) Snapshot
}
