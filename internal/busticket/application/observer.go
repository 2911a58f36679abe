package application

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/multierr"

	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
	pkgApp "github.com/mateusmacedo/go-busstation/pkg/application"
)

// TicketObserver recebe os eventos do ciclo de vida das passagens.
type TicketObserver interface {
	OnCreated(ctx context.Context, ticket domain.Ticket) error
	OnCancelled(ctx context.Context, ticket domain.Ticket) error
	OnStatusChanged(ctx context.Context, ticket domain.Ticket, oldStatus, newStatus domain.Status) error
}

// Subject distribui eventos aos observadores, em ordem de registro, na goroutine de quem chama.
// A falha de um observador não impede a entrega aos demais.
type Subject struct {
	mu        sync.RWMutex
	observers []TicketObserver
	logger    pkgApp.AppLogger
}

func NewSubject(logger pkgApp.AppLogger) *Subject {
	return &Subject{logger: logger}
}

func (s *Subject) Attach(observer TicketObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Detach remove a primeira ocorrência do observador. Observadores de tipo não
// comparável nunca são encontrados; registre-os por ponteiro para poder removê-los.
func (s *Subject) Detach(observer TicketObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.observers {
		if sameObserver(o, observer) {
			s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
			return
		}
	}
}

func sameObserver(a, b TicketObserver) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return va.Equal(vb)
}

func (s *Subject) NotifyCreated(ctx context.Context, ticket domain.Ticket) error {
	return s.notify(ctx, "created", ticket, func(o TicketObserver) error {
		return o.OnCreated(ctx, ticket)
	})
}

func (s *Subject) NotifyCancelled(ctx context.Context, ticket domain.Ticket) error {
	return s.notify(ctx, "cancelled", ticket, func(o TicketObserver) error {
		return o.OnCancelled(ctx, ticket)
	})
}

func (s *Subject) NotifyStatusChanged(ctx context.Context, ticket domain.Ticket, oldStatus, newStatus domain.Status) error {
	return s.notify(ctx, "status_changed", ticket, func(o TicketObserver) error {
		return o.OnStatusChanged(ctx, ticket, oldStatus, newStatus)
	})
}

func (s *Subject) notify(ctx context.Context, event string, ticket domain.Ticket, call func(TicketObserver) error) error {
	s.mu.RLock()
	observers := make([]TicketObserver, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	var errs error
	for _, observer := range observers {
		if err := safeCall(observer, call); err != nil {
			pkgApp.LogError(ctx, s.logger, "observer failed", err, map[string]interface{}{
				"event":     event,
				"observer":  fmt.Sprintf("%T", observer),
				"ticket_id": ticket.ID,
			})
			errs = multierr.Append(errs, fmt.Errorf("%T: %w", observer, err))
		}
	}
	return errs
}

func safeCall(observer TicketObserver, call func(TicketObserver) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("observer panic: %v", r)
		}
	}()
	return call(observer)
}
