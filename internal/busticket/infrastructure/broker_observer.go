package infrastructure

import (
	"context"

	"github.com/mateusmacedo/go-busstation/internal/busticket/application"
	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
	pkgDomain "github.com/mateusmacedo/go-busstation/pkg/domain"
)

// EventPublisher publica eventos do ciclo de vida num broker.
type EventPublisher interface {
	Publish(ctx context.Context, event pkgDomain.Event[application.TicketEventData]) error
}

// BrokerObserver repassa os eventos das passagens ao broker.
type BrokerObserver struct {
	publisher   EventPublisher
	idGenerator pkgDomain.IDGenerator[string]
}

func NewBrokerObserver(publisher EventPublisher, idGenerator pkgDomain.IDGenerator[string]) *BrokerObserver {
	return &BrokerObserver{publisher: publisher, idGenerator: idGenerator}
}

func (o *BrokerObserver) OnCreated(ctx context.Context, ticket domain.Ticket) error {
	return o.publisher.Publish(ctx, application.NewTicketCreatedEvent(o.idGenerator(), ticket))
}

func (o *BrokerObserver) OnCancelled(ctx context.Context, ticket domain.Ticket) error {
	return o.publisher.Publish(ctx, application.NewTicketCancelledEvent(o.idGenerator(), ticket))
}

func (o *BrokerObserver) OnStatusChanged(ctx context.Context, ticket domain.Ticket, oldStatus, newStatus domain.Status) error {
	ticket.Status = newStatus
	return o.publisher.Publish(ctx, application.NewTicketStatusChangedEvent(o.idGenerator(), ticket, oldStatus))
}
