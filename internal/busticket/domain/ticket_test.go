package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
)

func Test_Passenger_FullName_Trims_Missing_Parts(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		passenger domain.Passenger
		want      string
	}{
		{name: "all parts", passenger: domain.Passenger{LastName: "Shevchenko", FirstName: "Taras", MiddleName: "Hryhorovych"}, want: "Shevchenko Taras Hryhorovych"},
		{name: "no middle name", passenger: domain.Passenger{LastName: "Shevchenko", FirstName: "Taras"}, want: "Shevchenko Taras"},
		{name: "empty", passenger: domain.Passenger{}, want: ""},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.passenger.FullName())
		})
	}
}

func Test_TimeOfDay_Parses_And_Formats(t *testing.T) {
	t.Parallel()

	tod, err := domain.ParseTimeOfDay("08:00:00")
	require.NoError(t, err)
	assert.Equal(t, domain.NewTimeOfDay(8, 0, 0), tod)
	assert.Equal(t, "08:00:00", tod.String())
	assert.Equal(t, "08:00", tod.Short())

	short, err := domain.ParseTimeOfDay("14:30")
	require.NoError(t, err)
	assert.Equal(t, "14:30:00", short.String())

	_, err = domain.ParseTimeOfDay("25:99")
	assert.Error(t, err)
}

func Test_Parse_Enums_Are_Case_Insensitive(t *testing.T) {
	t.Parallel()

	status, err := domain.ParseStatus("cancelled")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, status)

	tt, err := domain.ParseTicketType("CHILD")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketTypeChild, tt)

	pm, err := domain.ParsePaymentMethod("online")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentOnline, pm)

	_, err = domain.ParsePaymentMethod("barter")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
