package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TicketType string

const (
	TicketTypeRegular  TicketType = "Regular"
	TicketTypeDiscount TicketType = "Discount"
	TicketTypeChild    TicketType = "Child"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Cash"
	PaymentCard   PaymentMethod = "Card"
	PaymentOnline PaymentMethod = "Online"
)

// Status representa o estado de uma passagem no ciclo de vida.
type Status string

const (
	StatusActive    Status = "Active"
	StatusCancelled Status = "Cancelled"
	StatusUsed      Status = "Used"
)

// Route é uma linha de ônibus. Passagens guardam uma cópia completa da rota.
type Route struct {
	ID            int
	Departure     string
	Arrival       string
	DistanceKm    int
	BasePrice     decimal.Decimal
	DepartureTime TimeOfDay
}

func (r Route) DisplayName() string {
	return fmt.Sprintf("%s → %s (%s)", r.Departure, r.Arrival, r.DepartureTime.Short())
}

type Passenger struct {
	LastName   string
	FirstName  string
	MiddleName string
	Phone      string
	Document   string
}

// FullName concatena sobrenome, nome e nome do meio.
func (p Passenger) FullName() string {
	return strings.TrimSpace(strings.Join([]string{p.LastName, p.FirstName, p.MiddleName}, " "))
}

// Ticket é a passagem. ID 0 significa que ainda não foi atribuído pelo repositório.
type Ticket struct {
	ID            int
	Route         Route
	Passenger     Passenger
	Date          time.Time
	Price         decimal.Decimal
	TicketType    TicketType
	PaymentMethod PaymentMethod
	Status        Status
}

func ParseStatus(s string) (Status, error) {
	for _, st := range []Status{StatusActive, StatusCancelled, StatusUsed} {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

func ParseTicketType(s string) (TicketType, error) {
	for _, tt := range []TicketType{TicketTypeRegular, TicketTypeDiscount, TicketTypeChild} {
		if strings.EqualFold(s, string(tt)) {
			return tt, nil
		}
	}
	return "", &ValidationError{Field: "ticket_type", Message: fmt.Sprintf("unknown ticket type %q", s)}
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for _, pm := range []PaymentMethod{PaymentCash, PaymentCard, PaymentOnline} {
		if strings.EqualFold(s, string(pm)) {
			return pm, nil
		}
	}
	return "", &ValidationError{Field: "payment_method", Message: fmt.Sprintf("unknown payment method %q", s)}
}
