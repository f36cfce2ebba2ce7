package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRentalDays(t *testing.T) {
	tests := []struct {
		name   string
		pickup string
		drop   string
		want   int
	}{
		{"one day floors to two", "2024-01-01", "2024-01-02", 2},
		{"same day floors to two", "2024-01-01", "2024-01-01", 2},
		{"drop before pickup floors to two", "2024-01-05", "2024-01-01", 2},
		{"four days", "2024-01-01", "2024-01-05", 4},
		{"two days exact", "2024-06-01", "2024-06-03", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RentalDays(date(tt.pickup), date(tt.drop)))
		})
	}
}

func TestRentalDaysPartialDayRoundsUp(t *testing.T) {
	pickup := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	drop := time.Date(2024, 1, 4, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, 4, RentalDays(pickup, drop))
}

func TestQuoteWorkedScenario(t *testing.T) {
	// €50/day, 2 days, one daily €10 option with quantity 1.
	opts := []Option{{ID: "gps", Name: "GPS", Price: 10, Billing: BillingPerDay, Quantity: 1}}
	s := Quote(50, date("2024-06-01"), date("2024-06-03"), opts)

	assert.Equal(t, 2, s.Days)
	assert.Equal(t, 100.0, s.BasePrice)
	assert.Equal(t, 20.0, s.OptionsTotal)
	assert.Equal(t, 120.0, s.TotalAmount)
	assert.Equal(t, 60.0, s.Deposit)
	require.Len(t, s.Lines, 1)
	assert.Equal(t, 20.0, s.Lines[0].Total)
}

func TestQuoteFlatAndPerDayOptions(t *testing.T) {
	opts := []Option{
		{ID: "cdw", Name: "Collision damage waiver", Price: 15, Billing: BillingPerDay, Quantity: 1},
		{ID: "booster", Name: "Booster seat", Price: 8, Billing: BillingPerDay, Quantity: 2},
		{ID: "wifi", Name: "Wifi hotspot", Price: 25, Billing: BillingFlat, Quantity: 1},
	}
	s := Quote(40, date("2024-03-01"), date("2024-03-05"), opts)

	assert.Equal(t, 4, s.Days)
	assert.Equal(t, 160.0, s.BasePrice)
	// 15*4 + 8*4*2 + 25 = 60 + 64 + 25
	assert.Equal(t, 149.0, s.OptionsTotal)
	assert.Equal(t, 309.0, s.TotalAmount)
	assert.Equal(t, s.BasePrice+s.OptionsTotal, s.TotalAmount)
	assert.Equal(t, 154.5, s.Deposit)
}

func TestQuoteSkipsZeroQuantityOptions(t *testing.T) {
	opts := []Option{
		{ID: "gps", Price: 10, Billing: BillingPerDay, Quantity: 0},
		{ID: "wifi", Price: 25, Billing: BillingFlat, Quantity: -1},
	}
	s := Quote(50, date("2024-06-01"), date("2024-06-03"), opts)
	assert.Equal(t, 0.0, s.OptionsTotal)
	assert.Empty(t, s.Lines)
}

func TestQuoteClampsNegativeAndNaNInputs(t *testing.T) {
	opts := []Option{
		{ID: "bad", Price: -5, Billing: BillingFlat, Quantity: 1},
		{ID: "nan", Price: math.NaN(), Billing: BillingPerDay, Quantity: 1},
	}
	s := Quote(-50, date("2024-06-01"), date("2024-06-03"), opts)
	assert.Equal(t, 0.0, s.BasePrice)
	assert.Equal(t, 0.0, s.OptionsTotal)
	assert.Equal(t, 0.0, s.TotalAmount)
	assert.Equal(t, 0.0, s.Deposit)
}

func TestQuoteIsDeterministic(t *testing.T) {
	opts := []Option{{ID: "gps", Price: 10, Billing: BillingPerDay, Quantity: 1}}
	first := Quote(50, date("2024-06-01"), date("2024-06-05"), opts)
	second := Quote(50, date("2024-06-01"), date("2024-06-05"), opts)
	assert.Equal(t, first, second)
}
