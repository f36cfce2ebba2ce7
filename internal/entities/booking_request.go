package entities

import "carhire/internal/pricing"

// CreateBookingRequest is the inbound booking payload. Field names follow the
// client contract: customerId, carId and the dates are required; times,
// places and a caller-proposed bookingRef are optional.
type CreateBookingRequest struct {
	CustomerID    int              `json:"customerId"`
	CarID         int              `json:"carId"`
	PickupDate    string           `json:"pickupDate"`
	DropDate      string           `json:"dropDate"`
	PickupTime    string           `json:"pickupTime,omitempty"`
	DropTime      string           `json:"dropTime,omitempty"`
	PickupPlace   string           `json:"pickupPlace,omitempty"`
	DropPlace     string           `json:"dropPlace,omitempty"`
	Options       []pricing.Option `json:"options,omitempty"`
	BookingRef    string           `json:"bookingRef,omitempty"`
	CustomerEmail string           `json:"customerEmail"`
	CustomerName  string           `json:"customerName"`
	DraftID       string           `json:"draftId,omitempty"`
}

type CreateBookingResponse struct {
	ID         int    `json:"id"`
	BookingRef string `json:"bookingRef"`
	Message    string `json:"message"`
}
