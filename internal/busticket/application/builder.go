package application

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
)

// TicketBuilder acumula os dados de uma passagem antes do processamento.
type TicketBuilder struct {
	ticket domain.Ticket
}

func NewTicketBuilder() *TicketBuilder {
	b := &TicketBuilder{}
	b.Reset()
	return b
}

// Reset recomeça com os valores padrão: Regular, Cash, Active e preço zero.
func (b *TicketBuilder) Reset() *TicketBuilder {
	b.ticket = domain.Ticket{
		Price:         decimal.Zero,
		TicketType:    domain.TicketTypeRegular,
		PaymentMethod: domain.PaymentCash,
		Status:        domain.StatusActive,
	}
	return b
}

func (b *TicketBuilder) WithID(id int) *TicketBuilder {
	b.ticket.ID = id
	return b
}

func (b *TicketBuilder) WithRoute(route domain.Route) *TicketBuilder {
	b.ticket.Route = route
	return b
}

func (b *TicketBuilder) WithPassenger(passenger domain.Passenger) *TicketBuilder {
	b.ticket.Passenger = passenger
	return b
}

func (b *TicketBuilder) WithDate(date time.Time) *TicketBuilder {
	b.ticket.Date = date
	return b
}

func (b *TicketBuilder) WithPrice(price decimal.Decimal) *TicketBuilder {
	b.ticket.Price = price
	return b
}

func (b *TicketBuilder) WithTicketType(ticketType domain.TicketType) *TicketBuilder {
	b.ticket.TicketType = ticketType
	return b
}

func (b *TicketBuilder) WithPaymentMethod(method domain.PaymentMethod) *TicketBuilder {
	b.ticket.PaymentMethod = method
	return b
}

func (b *TicketBuilder) WithStatus(status domain.Status) *TicketBuilder {
	b.ticket.Status = status
	return b
}

// Build devolve uma cópia; o estado do builder não muda.
func (b *TicketBuilder) Build() domain.Ticket {
	return b.ticket
}
