package infrastructure_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
	"github.com/mateusmacedo/go-busstation/internal/busticket/infrastructure"
)

func Test_EncodeDocument_Uses_Fixed_Date_And_Time_Formats(t *testing.T) {
	t.Parallel()

	data, err := infrastructure.EncodeDocument(infrastructure.DefaultRoutes()[:1], []domain.Ticket{sampleTicket("Koval")})
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, `"DepartureTime": "08:00:00"`)
	assert.Contains(t, text, `"Date": "2026-05-01T00:00:00"`)
	assert.Contains(t, text, `"BasePrice": 450`)
	assert.Contains(t, text, `"Price": 427.5`)
	assert.True(t, strings.HasPrefix(text, "{\n  \"Routes\": ["))
}

func Test_Codec_Round_Trip_Preserves_Every_Field(t *testing.T) {
	t.Parallel()

	routes := infrastructure.DefaultRoutes()
	zeroDate := sampleTicket("Zero")
	zeroDate.ID = 2
	zeroDate.Date = time.Time{}
	first := sampleTicket("Koval")
	first.ID = 1
	tickets := []domain.Ticket{first, zeroDate}

	data, err := infrastructure.EncodeDocument(routes, tickets)
	require.NoError(t, err)

	gotRoutes, gotTickets, issues, err := infrastructure.DecodeDocument(data)
	require.NoError(t, err)
	assert.Empty(t, issues)

	if diff := cmp.Diff(routes, gotRoutes); diff != "" {
		t.Fatalf("routes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(tickets, gotTickets); diff != "" {
		t.Fatalf("tickets mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, gotTickets[1].Date.IsZero())
}

func Test_DecodeDocument_Salvages_Partial_Data(t *testing.T) {
	t.Parallel()

	data := `{
		"Routes": [
			{"Id": 1, "Departure": "Kyiv", "Arrival": "Lviv", "Distance": "far", "BasePrice": 450, "DepartureTime": "08:00"},
			42,
			{"Id": 2, "Departure": "Kyiv", "Arrival": "Odesa", "Distance": 480, "BasePrice": 380, "DepartureTime": "10:30:00", "Extra": true}
		],
		"Tickets": [
			{"Id": 5, "Passenger": {"LastName": "Koval", "FirstName": "Olena"}, "Date": "2026-05-01", "Price": 450}
		]
	}`

	routes, tickets, issues, err := infrastructure.DecodeDocument([]byte(data))

	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, "Lviv", routes[0].Arrival)
	assert.Zero(t, routes[0].DistanceKm)
	assert.Equal(t, "08:00:00", routes[0].DepartureTime.String())
	assert.Equal(t, 480, routes[1].DistanceKm)
	assert.Len(t, issues, 2)

	require.Len(t, tickets, 1)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.Local), tickets[0].Date)
	assert.Equal(t, domain.TicketTypeRegular, tickets[0].TicketType)
	assert.Equal(t, domain.PaymentCash, tickets[0].PaymentMethod)
	assert.Equal(t, domain.StatusActive, tickets[0].Status)
}

func Test_DecodeDocument_Returns_Error_When_Syntax_Broken(t *testing.T) {
	t.Parallel()

	_, _, _, err := infrastructure.DecodeDocument([]byte(`{"Routes": [`))

	assert.ErrorIs(t, err, infrastructure.ErrMalformedDocument)
}

func Test_DecodeDocument_Falls_Back_To_Zero_For_Bad_Dates(t *testing.T) {
	t.Parallel()

	data := `{"Routes": [], "Tickets": [{"Id": 1, "Date": "01/05/2026", "Route": {"Id": 1, "DepartureTime": "noon"}}]}`

	_, tickets, issues, err := infrastructure.DecodeDocument([]byte(data))

	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.True(t, tickets[0].Date.IsZero())
	assert.Zero(t, tickets[0].Route.DepartureTime)
	assert.Len(t, issues, 2)
}

func Test_DecodeDocument_Flags_Structural_Issues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		content    string
		structural bool
	}{
		{name: "top level array", content: `[1, 2]`, structural: true},
		{name: "tickets string", content: `{"Routes": [], "Tickets": "oops"}`, structural: true},
		{name: "route not an object", content: `{"Routes": [42], "Tickets": []}`, structural: true},
		{name: "bad field value", content: `{"Routes": [{"Id": 1, "DepartureTime": "noon"}], "Tickets": []}`},
		{name: "clean", content: `{"Routes": [], "Tickets": []}`},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, issues, err := infrastructure.DecodeDocument([]byte(tc.content))

			require.NoError(t, err)
			assert.Equal(t, tc.structural, infrastructure.HasStructuralIssue(issues))
		})
	}
}

func Test_DecodeDocument_Clamps_Negative_Base_Price(t *testing.T) {
	t.Parallel()

	data := `{
		"Routes": [{"Id": 1, "Departure": "Київ", "Arrival": "Львів", "Distance": 540, "BasePrice": -450, "DepartureTime": "08:00:00"}],
		"Tickets": [{"Id": 1, "Route": {"Id": 1, "BasePrice": -1.5}, "Price": 450}]
	}`

	routes, tickets, issues, err := infrastructure.DecodeDocument([]byte(data))

	require.NoError(t, err)
	require.Len(t, routes, 1)
	require.Len(t, tickets, 1)
	assert.True(t, routes[0].BasePrice.IsZero())
	assert.True(t, tickets[0].Route.BasePrice.IsZero())
	require.Len(t, issues, 2)
	assert.Equal(t, "Routes[0].BasePrice", issues[0].Path)
	assert.Equal(t, "Tickets[0].Route.BasePrice", issues[1].Path)
	assert.False(t, infrastructure.HasStructuralIssue(issues))
}
