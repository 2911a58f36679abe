package infrastructure

import (
	"github.com/shopspring/decimal"

	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
)

// DefaultRoutes é a lista fixa usada quando o arquivo não existe ou não traz rotas.
func DefaultRoutes() []domain.Route {
	return []domain.Route{
		{ID: 1, Departure: "Київ", Arrival: "Львів", DistanceKm: 540, BasePrice: decimal.NewFromInt(450), DepartureTime: domain.NewTimeOfDay(8, 0, 0)},
		{ID: 2, Departure: "Київ", Arrival: "Одеса", DistanceKm: 480, BasePrice: decimal.NewFromInt(380), DepartureTime: domain.NewTimeOfDay(10, 30, 0)},
		{ID: 3, Departure: "Львів", Arrival: "Київ", DistanceKm: 540, BasePrice: decimal.NewFromInt(450), DepartureTime: domain.NewTimeOfDay(14, 0, 0)},
		{ID: 4, Departure: "Одеса", Arrival: "Київ", DistanceKm: 480, BasePrice: decimal.NewFromInt(380), DepartureTime: domain.NewTimeOfDay(16, 0, 0)},
		{ID: 5, Departure: "Харків", Arrival: "Київ", DistanceKm: 480, BasePrice: decimal.NewFromInt(400), DepartureTime: domain.NewTimeOfDay(9, 0, 0)},
	}
}
