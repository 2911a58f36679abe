package application

import (
	"github.com/shopspring/decimal"

	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
)

// PaymentStrategy ajusta o preço conforme a forma de pagamento.
type PaymentStrategy struct {
	Method     domain.PaymentMethod
	Multiplier decimal.Decimal
}

func (s PaymentStrategy) Apply(price decimal.Decimal) decimal.Decimal {
	return price.Mul(s.Multiplier).Round(2)
}

var paymentStrategies = map[domain.PaymentMethod]PaymentStrategy{
	domain.PaymentCash:   {Method: domain.PaymentCash, Multiplier: decimal.NewFromInt(1)},
	domain.PaymentCard:   {Method: domain.PaymentCard, Multiplier: decimal.RequireFromString("0.98")},
	domain.PaymentOnline: {Method: domain.PaymentOnline, Multiplier: decimal.RequireFromString("0.95")},
}

// PaymentStrategyFor devolve a estratégia do método; desconhecido cai em dinheiro.
func PaymentStrategyFor(method domain.PaymentMethod) PaymentStrategy {
	if s, ok := paymentStrategies[method]; ok {
		return s
	}
	return paymentStrategies[domain.PaymentCash]
}

// TicketFactory aplica o coeficiente do tipo de passagem ao preço base da rota.
type TicketFactory struct {
	TicketType  domain.TicketType
	Coefficient decimal.Decimal
}

func (f TicketFactory) Price(route domain.Route) decimal.Decimal {
	return route.BasePrice.Mul(f.Coefficient).Round(2)
}

var ticketFactories = map[domain.TicketType]TicketFactory{
	domain.TicketTypeRegular:  {TicketType: domain.TicketTypeRegular, Coefficient: decimal.NewFromInt(1)},
	domain.TicketTypeDiscount: {TicketType: domain.TicketTypeDiscount, Coefficient: decimal.RequireFromString("0.7")},
	domain.TicketTypeChild:    {TicketType: domain.TicketTypeChild, Coefficient: decimal.RequireFromString("0.5")},
}

// TicketFactoryFor devolve a fábrica do tipo; desconhecido cai em Regular.
func TicketFactoryFor(ticketType domain.TicketType) TicketFactory {
	if f, ok := ticketFactories[ticketType]; ok {
		return f
	}
	return ticketFactories[domain.TicketTypeRegular]
}

// AddOn é um item adicional somado ao preço.
type AddOn struct {
	Name   string
	Amount decimal.Decimal
}

var (
	InsuranceAddOn = AddOn{Name: "Insurance", Amount: decimal.NewFromInt(50)}
	BaggageAddOn   = AddOn{Name: "Baggage", Amount: decimal.NewFromInt(30)}
)

// ApplyAddOns soma os adicionais na ordem recebida.
func ApplyAddOns(price decimal.Decimal, addOns []AddOn) decimal.Decimal {
	total := price
	for _, a := range addOns {
		total = total.Add(a.Amount)
	}
	return total.Round(2)
}

// QuotePrice calcula o preço antes do processamento: tipo da passagem e depois pagamento.
func QuotePrice(route domain.Route, ticketType domain.TicketType, method domain.PaymentMethod) decimal.Decimal {
	return PaymentStrategyFor(method).Apply(TicketFactoryFor(ticketType).Price(route))
}
