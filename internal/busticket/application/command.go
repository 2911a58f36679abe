package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
	pkgDomain "github.com/mateusmacedo/go-busstation/pkg/domain"
)

var ErrNothingToUndo = errors.New("nothing to undo")

// PurchaseCommand insere uma passagem no repositório. Undo a remove.
type PurchaseCommand struct {
	repository domain.TicketRepository
	ticket     domain.Ticket
	executed   bool
}

func NewPurchaseCommand(repository domain.TicketRepository, ticket domain.Ticket) *PurchaseCommand {
	return &PurchaseCommand{repository: repository, ticket: ticket}
}

func (c *PurchaseCommand) CommandName() string {
	return "PurchaseTicket"
}

func (c *PurchaseCommand) Execute(ctx context.Context) error {
	if c.executed {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	c.repository.AddTicket(ctx, &c.ticket)
	c.executed = true
	return nil
}

func (c *PurchaseCommand) Undo(ctx context.Context) error {
	if !c.executed {
		return nil
	}
	c.repository.RemoveTicket(ctx, c.ticket.ID)
	c.executed = false
	return nil
}

// Ticket devolve a passagem com o id atribuído pelo repositório.
func (c *PurchaseCommand) Ticket() domain.Ticket {
	return c.ticket
}

// statusCommand aplica uma ação da máquina de estados a uma passagem persistida.
type statusCommand struct {
	name       string
	repository domain.TicketRepository
	ticketID   int
	apply      func(*domain.StateMachine) error
	prior      domain.Status
	ticket     domain.Ticket
	executed   bool
	unchanged  bool
}

func (c *statusCommand) CommandName() string {
	return c.name
}

func (c *statusCommand) Execute(ctx context.Context) error {
	if c.executed {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	ticket, ok := c.repository.GetTicket(ctx, c.ticketID)
	if !ok {
		return fmt.Errorf("%w: #%d", domain.ErrTicketNotFound, c.ticketID)
	}

	machine, err := domain.RestoreStateMachine(ticket.Status)
	if err != nil {
		return fmt.Errorf("ticket #%d: %w", ticket.ID, err)
	}
	if err := c.apply(machine); err != nil {
		return err
	}

	c.prior = ticket.Status
	c.unchanged = machine.Current() == ticket.Status
	if c.unchanged {
		c.ticket = ticket
		c.executed = true
		return nil
	}

	ticket.Status = machine.Current()
	if !c.repository.UpdateTicket(ctx, ticket) {
		return fmt.Errorf("%w: #%d", domain.ErrTicketNotFound, c.ticketID)
	}

	c.ticket = ticket
	c.executed = true
	return nil
}

// Undo restaura o status anterior como compensação, fora da máquina de estados.
func (c *statusCommand) Undo(ctx context.Context) error {
	if !c.executed {
		return nil
	}
	if c.unchanged {
		c.executed = false
		return nil
	}

	ticket, ok := c.repository.GetTicket(ctx, c.ticketID)
	if !ok {
		return fmt.Errorf("%w: #%d", domain.ErrTicketNotFound, c.ticketID)
	}

	ticket.Status = c.prior
	if !c.repository.UpdateTicket(ctx, ticket) {
		return fmt.Errorf("%w: #%d", domain.ErrTicketNotFound, c.ticketID)
	}

	c.ticket = ticket
	c.executed = false
	return nil
}

// PriorStatus é o status antes da última execução.
func (c *statusCommand) PriorStatus() domain.Status {
	return c.prior
}

func (c *statusCommand) Ticket() domain.Ticket {
	return c.ticket
}

// CancellationCommand cancela uma passagem respeitando a máquina de estados.
type CancellationCommand struct {
	statusCommand
}

func NewCancellationCommand(repository domain.TicketRepository, ticketID int) *CancellationCommand {
	return &CancellationCommand{statusCommand{
		name:       "CancelTicket",
		repository: repository,
		ticketID:   ticketID,
		apply:      (*domain.StateMachine).Cancel,
	}}
}

// StatusChangeCommand leva a passagem ao status informado.
type StatusChangeCommand struct {
	statusCommand
	target domain.Status
}

func NewStatusChangeCommand(repository domain.TicketRepository, ticketID int, target domain.Status) *StatusChangeCommand {
	return &StatusChangeCommand{
		statusCommand: statusCommand{
			name:       "ChangeTicketStatus",
			repository: repository,
			ticketID:   ticketID,
			apply: func(m *domain.StateMachine) error {
				return m.Transition(target)
			},
		},
		target: target,
	}
}

func (c *StatusChangeCommand) Target() domain.Status {
	return c.target
}

// History guarda comandos executados para desfazer. limit <= 0 não limita.
type History struct {
	mu       sync.Mutex
	limit    int
	commands []pkgDomain.Command
}

func NewHistory(limit int) *History {
	return &History{limit: limit}
}

func (h *History) Push(command pkgDomain.Command) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.commands = append(h.commands, command)
	if h.limit > 0 && len(h.commands) > h.limit {
		h.commands = h.commands[len(h.commands)-h.limit:]
	}
}

// Undo desfaz o comando mais recente. Em caso de falha ele volta para a pilha.
func (h *History) Undo(ctx context.Context) (pkgDomain.Command, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.commands) == 0 {
		return nil, ErrNothingToUndo
	}

	last := len(h.commands) - 1
	command := h.commands[last]
	if err := command.Undo(ctx); err != nil {
		return command, fmt.Errorf("undo %s: %w", command.CommandName(), err)
	}
	h.commands = h.commands[:last]
	return command, nil
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.commands)
}
