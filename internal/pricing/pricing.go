package pricing

import (
	"math"
	"time"
)

// MinRentalDays is the business minimum rental length. Day counts below it
// are floored up to it even when upstream validation was bypassed.
const MinRentalDays = 2

// DepositRate is the fraction of the total due at booking time.
const DepositRate = 0.5

// BillingMode says how an option is charged.
type BillingMode string

const (
	BillingFlat   BillingMode = "flat"    // charged once per booking
	BillingPerDay BillingMode = "per_day" // charged per rental day
)

// Option is an extra selected for a booking (booster seat, GPS, CDW, ...).
type Option struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Price    float64     `json:"price"`
	Billing  BillingMode `json:"billing"`
	Quantity int         `json:"quantity"`
}

// Line is the priced-out form of a selected option.
type Line struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Price    float64     `json:"price"`
	Billing  BillingMode `json:"billing"`
	Quantity int         `json:"quantity"`
	Total    float64     `json:"total"`
}

// Summary is the full price breakdown for a rental.
type Summary struct {
	Days         int     `json:"days"`
	BasePrice    float64 `json:"base_price"`
	OptionsTotal float64 `json:"options_total"`
	TotalAmount  float64 `json:"total_amount"`
	Deposit      float64 `json:"deposit"`
	Lines        []Line  `json:"lines,omitempty"`
}

// RentalDays returns the number of billable days between pickup and drop,
// floored at MinRentalDays. Partial days round up.
func RentalDays(pickup, drop time.Time) int {
	diff := drop.Sub(pickup)
	days := int(math.Ceil(diff.Hours() / 24))
	if days < MinRentalDays {
		return MinRentalDays
	}
	return days
}

// Quote derives the price breakdown for a car at dailyPrice over the given
// dates with the selected options. It is deterministic and side-effect free;
// the UI recomputes it on every option change. Negative money or quantity
// inputs clamp to zero so the result can never go negative.
func Quote(dailyPrice float64, pickup, drop time.Time, opts []Option) Summary {
	days := RentalDays(pickup, drop)
	base := clamp(dailyPrice) * float64(days)

	var lines []Line
	var optionsTotal float64
	for _, opt := range opts {
		if opt.Quantity <= 0 {
			continue
		}
		price := clamp(opt.Price)
		var total float64
		switch opt.Billing {
		case BillingPerDay:
			total = price * float64(days) * float64(opt.Quantity)
		default:
			total = price * float64(opt.Quantity)
		}
		optionsTotal += total
		lines = append(lines, Line{
			ID:       opt.ID,
			Name:     opt.Name,
			Price:    price,
			Billing:  opt.Billing,
			Quantity: opt.Quantity,
			Total:    total,
		})
	}

	total := base + optionsTotal
	return Summary{
		Days:         days,
		BasePrice:    base,
		OptionsTotal: optionsTotal,
		TotalAmount:  total,
		Deposit:      total * DepositRate,
		Lines:        lines,
	}
}

func clamp(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
