package entities

import "carhire/internal/pricing"

// QuoteRequest prices a rental from raw inputs. It is safe to call on every
// option change; the calculation is deterministic.
type QuoteRequest struct {
	CarID      int              `json:"carId"`
	PickupDate string           `json:"pickupDate"`
	DropDate   string           `json:"dropDate"`
	Options    []pricing.Option `json:"options,omitempty"`
}

type QuoteResponse struct {
	CarID   int             `json:"carId"`
	Summary pricing.Summary `json:"summary"`
}
