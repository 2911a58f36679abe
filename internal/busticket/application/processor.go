package application

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
)

const earlyBookingDays = 30

var earlyBookingMultiplier = decimal.RequireFromString("0.95")

// TicketProcessor executa as etapas fixas de processamento: validação,
// verificação de preço, descontos e finalização.
type TicketProcessor struct {
	now func() time.Time
}

func NewTicketProcessor(now func() time.Time) *TicketProcessor {
	if now == nil {
		now = time.Now
	}
	return &TicketProcessor{now: now}
}

func (p *TicketProcessor) Process(ticket *domain.Ticket) error {
	if err := p.validate(*ticket); err != nil {
		return err
	}
	if err := p.checkPrice(*ticket); err != nil {
		return err
	}
	p.applyDiscounts(ticket)
	ticket.Status = domain.StatusActive
	return nil
}

func (p *TicketProcessor) today() time.Time {
	return truncateDay(p.now())
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (p *TicketProcessor) validate(ticket domain.Ticket) error {
	if ticket.Route.ID == 0 {
		return &domain.ValidationError{Field: "route", Message: "route is required"}
	}
	if strings.TrimSpace(ticket.Passenger.LastName) == "" || strings.TrimSpace(ticket.Passenger.FirstName) == "" {
		return &domain.ValidationError{Field: "passenger", Message: "last and first name are required"}
	}
	if ticket.Date.Before(p.today()) {
		return &domain.ValidationError{Field: "date", Message: "travel date cannot be in the past"}
	}
	return nil
}

// checkPrice exige 0 < preço <= 2 × preço base da rota.
func (p *TicketProcessor) checkPrice(ticket domain.Ticket) error {
	if !ticket.Price.IsPositive() {
		return &domain.ValidationError{Field: "price", Message: "price must be greater than zero"}
	}
	if ticket.Price.GreaterThan(ticket.Route.BasePrice.Mul(decimal.NewFromInt(2))) {
		return &domain.ValidationError{Field: "price", Message: "price exceeds the allowed limit"}
	}
	return nil
}

func (p *TicketProcessor) applyDiscounts(ticket *domain.Ticket) {
	days := int(math.Round(truncateDay(ticket.Date).Sub(p.today()).Hours() / 24))
	if days >= earlyBookingDays && ticket.TicketType == domain.TicketTypeRegular {
		ticket.Price = ticket.Price.Mul(earlyBookingMultiplier).Round(2)
	}
}
