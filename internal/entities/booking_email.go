package entities

// BookingEmailData feeds the confirmation email template.
type BookingEmailData struct {
	CustomerName        string
	BookingRef          string
	CarMake             string
	CarModel            string
	PickupDateFormatted string
	DropDateFormatted   string
	TotalAmount         float64
	DepositAmount       float64
	CurrentYear         int
}
