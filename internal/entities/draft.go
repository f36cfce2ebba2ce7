package entities

import "carhire/internal/pricing"

// DraftRequest creates or updates an in-progress booking draft. All fields
// are optional on update; dates are the usual starting point, the car and
// options follow as the customer walks through the flow.
type DraftRequest struct {
	PickupDate  string           `json:"pickupDate,omitempty"`
	DropDate    string           `json:"dropDate,omitempty"`
	PickupTime  string           `json:"pickupTime,omitempty"`
	DropTime    string           `json:"dropTime,omitempty"`
	PickupPlace string           `json:"pickupPlace,omitempty"`
	DropPlace   string           `json:"dropPlace,omitempty"`
	CarID       int              `json:"carId,omitempty"`
	Options     []pricing.Option `json:"options,omitempty"`
}

// DraftResponse is the draft as the client sees it, including the running
// price summary once a car has been chosen.
type DraftResponse struct {
	ID          string           `json:"id"`
	State       string           `json:"state"`
	PickupDate  string           `json:"pickupDate,omitempty"`
	DropDate    string           `json:"dropDate,omitempty"`
	PickupTime  string           `json:"pickupTime,omitempty"`
	DropTime    string           `json:"dropTime,omitempty"`
	PickupPlace string           `json:"pickupPlace,omitempty"`
	DropPlace   string           `json:"dropPlace,omitempty"`
	CarID       int              `json:"carId,omitempty"`
	CustomerID  int              `json:"customerId,omitempty"`
	Options     []pricing.Option `json:"options,omitempty"`
	Summary     *pricing.Summary `json:"summary,omitempty"`
}
