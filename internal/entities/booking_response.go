package entities

// BookingOptionView is one selected extra as it was priced at booking time.
type BookingOptionView struct {
	OptionID string  `json:"option_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Billing  string  `json:"billing"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

// BookingResponse is the booking view returned by GET /api/bookings/{ref},
// joining the customer and car the booking points at.
type BookingResponse struct {
	BookingRef    string              `json:"booking_ref"`
	PickupDate    string              `json:"pickup_date"`
	DropDate      string              `json:"drop_date"`
	PickupTime    string              `json:"pickup_time,omitempty"`
	DropTime      string              `json:"drop_time,omitempty"`
	PickupPlace   string              `json:"pickup_place,omitempty"`
	DropPlace     string              `json:"drop_place,omitempty"`
	TotalAmount   float64             `json:"total_amount"`
	DepositAmount float64             `json:"deposit_amount"`
	FirstName     string              `json:"first_name"`
	LastName      string              `json:"last_name"`
	Email         string              `json:"email"`
	Phone         string              `json:"phone,omitempty"`
	Make          string              `json:"make"`
	Model         string              `json:"model"`
	CarCode       string              `json:"car_code"`
	Options       []BookingOptionView `json:"options,omitempty"`
}
