package application_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mateusmacedo/go-busstation/internal/busticket/application"
	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
)

func Test_TicketBuilder_Defaults(t *testing.T) {
	t.Parallel()

	ticket := application.NewTicketBuilder().Build()

	assert.Equal(t, domain.TicketTypeRegular, ticket.TicketType)
	assert.Equal(t, domain.PaymentCash, ticket.PaymentMethod)
	assert.Equal(t, domain.StatusActive, ticket.Status)
	assert.True(t, ticket.Price.IsZero())
	assert.Zero(t, ticket.ID)
}

func Test_TicketBuilder_Build_Does_Not_Change_Builder(t *testing.T) {
	t.Parallel()

	builder := application.NewTicketBuilder().
		WithRoute(kyivLviv()).
		WithPassenger(domain.Passenger{LastName: "Koval", FirstName: "Olena"}).
		WithPrice(decimal.NewFromInt(300)).
		WithTicketType(domain.TicketTypeChild).
		WithPaymentMethod(domain.PaymentCard)

	first := builder.Build()
	first.Price = decimal.NewFromInt(1)
	first.Passenger.LastName = "Changed"
	second := builder.Build()

	assert.Equal(t, "300", second.Price.String())
	assert.Equal(t, "Koval", second.Passenger.LastName)
	assert.Equal(t, domain.TicketTypeChild, second.TicketType)
	assert.Equal(t, domain.PaymentCard, second.PaymentMethod)
}

func Test_TicketBuilder_Reset_Starts_Fresh(t *testing.T) {
	t.Parallel()

	builder := application.NewTicketBuilder().
		WithID(9).
		WithRoute(kyivLviv()).
		WithStatus(domain.StatusUsed)

	ticket := builder.Reset().Build()

	assert.Zero(t, ticket.ID)
	assert.Zero(t, ticket.Route.ID)
	assert.Equal(t, domain.StatusActive, ticket.Status)
}
