package service

import (
	"time"

	"carhire/internal/db"
	"carhire/internal/entities"
)

// CarStore provides the vehicle and extras reference data.
type CarStore interface {
	ListCars() ([]db.Car, error)
	GetCar(id int) (*db.Car, error)
	FindAvailableCars(pickupDate, dropDate time.Time) ([]db.Car, error)
	ListOptions() ([]db.RentalOption, error)
}

// CustomerStore owns the customer records, keyed naturally by email.
type CustomerStore interface {
	CreateCustomer(c *db.Customer) (id int, existed bool, err error)
	GetCustomer(id int) (*db.Customer, error)
}

// BookingStore owns the persisted bookings.
type BookingStore interface {
	ReferenceExists(ref string) (bool, error)
	InsertBooking(b *db.Booking, lines []db.BookingOptionLine) (int, error)
	GetBookingByRef(ref string) (*entities.BookingResponse, error)
	DeleteBookingByRef(ref string) (int64, error)
}

// Notifier is the fire-and-forget notification side-channel. Implementations
// must never block the booking outcome; failures go to the logs.
type Notifier interface {
	SendBookingConfirmation(view entities.BookingResponse)
	SendBookingCancellation(view entities.BookingResponse)
}
