package application

import (
	"time"

	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
	pkgDomain "github.com/mateusmacedo/go-busstation/pkg/domain"
)

const (
	EventTicketCreated       = "ticket.created"
	EventTicketCancelled     = "ticket.cancelled"
	EventTicketStatusChanged = "ticket.status_changed"
)

// TicketEventData é o payload publicado no broker para cada evento do ciclo de vida.
type TicketEventData struct {
	TicketID      int           `json:"ticket_id"`
	PassengerName string        `json:"passenger_name"`
	RouteID       int           `json:"route_id"`
	OldStatus     domain.Status `json:"old_status,omitempty"`
	NewStatus     domain.Status `json:"new_status"`
}

type ticketEvent struct {
	id         string
	name       string
	occurredAt time.Time
	data       TicketEventData
}

func (e ticketEvent) EventID() string {
	return e.id
}

func (e ticketEvent) EventName() string {
	return e.name
}

func (e ticketEvent) OccurredAt() time.Time {
	return e.occurredAt
}

func (e ticketEvent) Payload() TicketEventData {
	return e.data
}

func newTicketEvent(id, name string, ticket domain.Ticket, oldStatus domain.Status) pkgDomain.Event[TicketEventData] {
	return ticketEvent{
		id:         id,
		name:       name,
		occurredAt: time.Now(),
		data: TicketEventData{
			TicketID:      ticket.ID,
			PassengerName: ticket.Passenger.FullName(),
			RouteID:       ticket.Route.ID,
			OldStatus:     oldStatus,
			NewStatus:     ticket.Status,
		},
	}
}

// NewTicketCreatedEvent cria o evento de passagem vendida.
func NewTicketCreatedEvent(id string, ticket domain.Ticket) pkgDomain.Event[TicketEventData] {
	return newTicketEvent(id, EventTicketCreated, ticket, "")
}

func NewTicketCancelledEvent(id string, ticket domain.Ticket) pkgDomain.Event[TicketEventData] {
	return newTicketEvent(id, EventTicketCancelled, ticket, "")
}

func NewTicketStatusChangedEvent(id string, ticket domain.Ticket, oldStatus domain.Status) pkgDomain.Event[TicketEventData] {
	return newTicketEvent(id, EventTicketStatusChanged, ticket, oldStatus)
}
