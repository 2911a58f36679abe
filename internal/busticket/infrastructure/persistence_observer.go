package infrastructure

import (
	"context"

	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
)

// PersistenceObserver salva o repositório inteiro a cada evento.
type PersistenceObserver struct {
	repository domain.TicketRepository
}

func NewPersistenceObserver(repository domain.TicketRepository) *PersistenceObserver {
	return &PersistenceObserver{repository: repository}
}

func (o *PersistenceObserver) OnCreated(ctx context.Context, ticket domain.Ticket) error {
	o.repository.SaveAll(ctx)
	return nil
}

func (o *PersistenceObserver) OnCancelled(ctx context.Context, ticket domain.Ticket) error {
	o.repository.SaveAll(ctx)
	return nil
}

func (o *PersistenceObserver) OnStatusChanged(ctx context.Context, ticket domain.Ticket, oldStatus, newStatus domain.Status) error {
	o.repository.SaveAll(ctx)
	return nil
}
