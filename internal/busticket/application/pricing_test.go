package application_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mateusmacedo/go-busstation/internal/busticket/application"
	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
)

func Test_QuotePrice_Applies_Type_Then_Payment(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		ticketType domain.TicketType
		method     domain.PaymentMethod
		want       string
	}{
		{name: "regular cash", ticketType: domain.TicketTypeRegular, method: domain.PaymentCash, want: "450.00"},
		{name: "regular card", ticketType: domain.TicketTypeRegular, method: domain.PaymentCard, want: "441.00"},
		{name: "discount online", ticketType: domain.TicketTypeDiscount, method: domain.PaymentOnline, want: "299.25"},
		{name: "child online", ticketType: domain.TicketTypeChild, method: domain.PaymentOnline, want: "213.75"},
		{name: "unknown type falls back to regular", ticketType: domain.TicketType("VIP"), method: domain.PaymentCash, want: "450.00"},
		{name: "unknown method falls back to cash", ticketType: domain.TicketTypeChild, method: domain.PaymentMethod("Barter"), want: "225.00"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := application.QuotePrice(kyivLviv(), tc.ticketType, tc.method)
			assert.Equal(t, tc.want, got.StringFixed(2))
		})
	}
}

func Test_ApplyAddOns_Adds_Line_Items_In_Order(t *testing.T) {
	t.Parallel()

	got := application.ApplyAddOns(decimal.RequireFromString("427.5"), []application.AddOn{
		application.InsuranceAddOn,
		application.BaggageAddOn,
	})

	assert.Equal(t, "507.50", got.StringFixed(2))
	assert.Equal(t, "100.00", application.ApplyAddOns(decimal.NewFromInt(100), nil).StringFixed(2))
}
