package db

import (
	"database/sql"
	"time"
)

// Car is reference data; rows are seeded, never created by the booking flow.
type Car struct {
	ID           int
	Make         string
	Model        string
	CarCode      string
	DailyPrice   float64
	Seats        int
	Doors        int
	Fuel         string
	Transmission string
	ImageURL     string
}

// RentalOption is the extras catalog (GPS, child seats, CDW, ...).
type RentalOption struct {
	ID        string
	Name      string
	Price     float64
	Billing   string // "flat" or "per_day"
	MaxAmount int
}

type Customer struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
	Phone     sql.NullString
	Address   string
	ZipCode   sql.NullString
	City      sql.NullString
	Country   string
	DOB       string
	Flight    sql.NullString
	CreatedAt time.Time
}

type Booking struct {
	ID            int
	BookingRef    string
	CustomerID    int
	CarID         int
	PickupDate    time.Time
	DropDate      time.Time
	PickupTime    sql.NullString
	DropTime      sql.NullString
	PickupPlace   sql.NullString
	DropPlace     sql.NullString
	TotalAmount   float64
	DepositAmount float64
	CreatedAt     time.Time
}

// BookingOptionLine is a selected option captured at booking time, with the
// unit price and line total frozen as they were quoted.
type BookingOptionLine struct {
	ID        int
	BookingID int
	OptionID  string
	Name      string
	Price     float64
	Billing   string
	Quantity  int
	Total     float64
}
