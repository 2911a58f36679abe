package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
	pkgApp "github.com/mateusmacedo/go-busstation/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-busstation/pkg/domain"
)

// PassengerOrder é um passageiro dentro de uma venda.
type PassengerOrder struct {
	Passenger  domain.Passenger
	TicketType domain.TicketType
}

// SaleRequest descreve uma venda: uma rota, uma data e um ou mais passageiros.
type SaleRequest struct {
	RouteID       int
	Date          time.Time
	PaymentMethod domain.PaymentMethod
	Orders        []PassengerOrder
	AddOns        []AddOn
}

// TicketService coordena montagem, comandos e notificações das passagens.
type TicketService struct {
	repository domain.TicketRepository
	subject    *Subject
	processor  *TicketProcessor
	history    *History
	logger     pkgApp.AppLogger
}

func NewTicketService(
	repository domain.TicketRepository,
	subject *Subject,
	processor *TicketProcessor,
	history *History,
	logger pkgApp.AppLogger,
) *TicketService {
	return &TicketService{
		repository: repository,
		subject:    subject,
		processor:  processor,
		history:    history,
		logger:     logger,
	}
}

// Sell monta e valida todas as passagens antes de gravar qualquer uma.
// Cada passagem é comprada por um comando próprio; o último fica no topo do histórico.
func (s *TicketService) Sell(ctx context.Context, req SaleRequest) ([]domain.Ticket, error) {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, s.logger, "Contexto cancelado", ctx.Err(), nil)
		return nil, ctx.Err()
	}

	if len(req.Orders) == 0 {
		return nil, &domain.ValidationError{Field: "passengers", Message: "at least one passenger is required"}
	}

	route, ok := s.findRoute(ctx, req.RouteID)
	if !ok {
		return nil, fmt.Errorf("%w: #%d", domain.ErrRouteNotFound, req.RouteID)
	}

	strategy := PaymentStrategyFor(req.PaymentMethod)
	builder := NewTicketBuilder()
	prepared := make([]domain.Ticket, 0, len(req.Orders))
	for i, order := range req.Orders {
		factory := TicketFactoryFor(order.TicketType)
		ticket := builder.Reset().
			WithRoute(route).
			WithPassenger(order.Passenger).
			WithDate(req.Date).
			WithTicketType(factory.TicketType).
			WithPaymentMethod(strategy.Method).
			WithPrice(strategy.Apply(factory.Price(route))).
			Build()

		if err := s.processor.Process(&ticket); err != nil {
			pkgApp.LogError(ctx, s.logger, "Passagem rejeitada", err, map[string]interface{}{
				"route_id":  route.ID,
				"passenger": i + 1,
			})
			return nil, fmt.Errorf("passenger %d: %w", i+1, err)
		}
		ticket.Price = ApplyAddOns(ticket.Price, req.AddOns)
		prepared = append(prepared, ticket)
	}

	sold := make([]domain.Ticket, 0, len(prepared))
	for _, ticket := range prepared {
		command := NewPurchaseCommand(s.repository, ticket)
		if err := command.Execute(ctx); err != nil {
			pkgApp.LogError(ctx, s.logger, "Erro ao comprar passagem", err, nil)
			return sold, err
		}
		s.history.Push(command)

		bought := command.Ticket()
		s.reportObservers(ctx, "created", bought.ID, s.subject.NotifyCreated(ctx, bought))
		sold = append(sold, bought)

		pkgApp.LogInfo(ctx, s.logger, "Passagem vendida", map[string]interface{}{
			"ticket_id": bought.ID,
			"route_id":  route.ID,
			"price":     bought.Price.StringFixed(2),
		})
	}
	return sold, nil
}

// Cancel cancela a passagem. Cancelar uma passagem já cancelada não gera evento.
func (s *TicketService) Cancel(ctx context.Context, id int) (domain.Ticket, error) {
	command := NewCancellationCommand(s.repository, id)
	if err := command.Execute(ctx); err != nil {
		pkgApp.LogError(ctx, s.logger, "Erro ao cancelar passagem", err, map[string]interface{}{"ticket_id": id})
		return domain.Ticket{}, err
	}

	ticket := command.Ticket()
	if command.PriorStatus() == ticket.Status {
		return ticket, nil
	}

	s.history.Push(command)
	s.reportObservers(ctx, "cancelled", id, s.subject.NotifyCancelled(ctx, ticket))
	pkgApp.LogInfo(ctx, s.logger, "Passagem cancelada", map[string]interface{}{"ticket_id": id})
	return ticket, nil
}

// ChangeStatus leva a passagem ao status desejado pela máquina de estados.
func (s *TicketService) ChangeStatus(ctx context.Context, id int, target domain.Status) (domain.Ticket, error) {
	command := NewStatusChangeCommand(s.repository, id, target)
	if err := command.Execute(ctx); err != nil {
		pkgApp.LogError(ctx, s.logger, "Erro ao alterar status", err, map[string]interface{}{
			"ticket_id": id,
			"target":    target,
		})
		return domain.Ticket{}, err
	}

	ticket := command.Ticket()
	oldStatus := command.PriorStatus()
	if oldStatus == ticket.Status {
		return ticket, nil
	}

	s.history.Push(command)
	s.reportObservers(ctx, "status_changed", id, s.subject.NotifyStatusChanged(ctx, ticket, oldStatus, ticket.Status))
	return ticket, nil
}

// Undo desfaz o último comando e persiste o resultado.
func (s *TicketService) Undo(ctx context.Context) (pkgDomain.Command, error) {
	command, err := s.history.Undo(ctx)
	if err != nil {
		return command, err
	}
	s.repository.SaveAll(ctx)
	pkgApp.LogInfo(ctx, s.logger, "Comando desfeito", map[string]interface{}{"command": command.CommandName()})
	return command, nil
}

func (s *TicketService) Get(ctx context.Context, id int) (domain.Ticket, bool) {
	return s.repository.GetTicket(ctx, id)
}

func (s *TicketService) List(ctx context.Context, filter TicketFilter) []domain.Ticket {
	return FilterTickets(s.repository.ListTickets(ctx), filter)
}

func (s *TicketService) Routes(ctx context.Context) []domain.Route {
	return s.repository.ListRoutes(ctx)
}

func (s *TicketService) Save(ctx context.Context) {
	s.repository.SaveAll(ctx)
}

func (s *TicketService) findRoute(ctx context.Context, id int) (domain.Route, bool) {
	for _, r := range s.repository.ListRoutes(ctx) {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Route{}, false
}

// reportObservers registra falhas de notificação sem desfazer a operação.
func (s *TicketService) reportObservers(ctx context.Context, event string, ticketID int, err error) {
	if err == nil {
		return
	}
	pkgApp.LogError(ctx, s.logger, "Notificação incompleta", err, map[string]interface{}{
		"event":     event,
		"ticket_id": ticketID,
		"failures":  len(multierr.Errors(err)),
	})
}
