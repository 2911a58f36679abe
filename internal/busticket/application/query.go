package application

import (
	"strings"

	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
)

// TicketFilter restringe a listagem. Campos vazios não filtram.
type TicketFilter struct {
	PassengerName string
	Status        domain.Status
}

func (f TicketFilter) matches(ticket domain.Ticket) bool {
	if f.Status != "" && ticket.Status != f.Status {
		return false
	}
	if f.PassengerName != "" {
		name := strings.ToLower(ticket.Passenger.FullName())
		if !strings.Contains(name, strings.ToLower(strings.TrimSpace(f.PassengerName))) {
			return false
		}
	}
	return true
}

func FilterTickets(tickets []domain.Ticket, filter TicketFilter) []domain.Ticket {
	result := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if filter.matches(t) {
			result = append(result, t)
		}
	}
	return result
}
