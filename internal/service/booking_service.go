package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"carhire/internal/booking"
	"carhire/internal/db"
	"carhire/internal/entities"
	apierrors "carhire/internal/errors"
	"carhire/internal/pricing"
	"carhire/internal/repository"
	"carhire/internal/session"
)

const dateLayout = "2006-01-02"

type BookingService struct {
	Cars      CarStore
	Customers CustomerStore
	Bookings  BookingStore
	Notifier  Notifier
	Drafts    *session.DraftStore
	RefGen    *booking.ReferenceGenerator
}

func NewBookingService(cars CarStore, customers CustomerStore, bookings BookingStore,
	notifier Notifier, drafts *session.DraftStore) *BookingService {
	return &BookingService{
		Cars:      cars,
		Customers: customers,
		Bookings:  bookings,
		Notifier:  notifier,
		Drafts:    drafts,
		RefGen:    booking.NewReferenceGenerator(),
	}
}

func (s *BookingService) ListCars() ([]entities.CarResponse, error) {
	cars, err := s.Cars.ListCars()
	if err != nil {
		zap.S().Errorw("listing cars failed", "error", err)
		return nil, apierrors.Dependency("Internal Server Error")
	}
	return toCarResponses(cars), nil
}

func (s *BookingService) ListOptions() ([]entities.OptionResponse, error) {
	opts, err := s.Cars.ListOptions()
	if err != nil {
		zap.S().Errorw("listing rental options failed", "error", err)
		return nil, apierrors.Dependency("Internal Server Error")
	}
	resp := make([]entities.OptionResponse, 0, len(opts))
	for _, o := range opts {
		resp = append(resp, entities.OptionResponse{
			ID:        o.ID,
			Name:      o.Name,
			Price:     o.Price,
			Billing:   o.Billing,
			MaxAmount: o.MaxAmount,
		})
	}
	return resp, nil
}

// CheckAvailability returns the cars free over [pickup, drop]. Both dates are
// required; a booking touching either boundary counts as a conflict.
func (s *BookingService) CheckAvailability(pickupDate, dropDate string) ([]entities.CarResponse, error) {
	if pickupDate == "" || dropDate == "" {
		return nil, apierrors.Validation("pickup_date and drop_date are required")
	}
	pickup, err := time.Parse(dateLayout, pickupDate)
	if err != nil {
		return nil, apierrors.Validation("pickup_date must be formatted YYYY-MM-DD")
	}
	drop, err := time.Parse(dateLayout, dropDate)
	if err != nil {
		return nil, apierrors.Validation("drop_date must be formatted YYYY-MM-DD")
	}

	cars, err := s.Cars.FindAvailableCars(pickup, drop)
	if err != nil {
		zap.S().Errorw("availability query failed", "pickup", pickupDate, "drop", dropDate, "error", err)
		return nil, apierrors.Dependency("Internal Server Error")
	}
	return toCarResponses(cars), nil
}

// Quote prices a rental for the given car, dates and options. Deterministic,
// so clients may call it on every option change.
func (s *BookingService) Quote(req entities.QuoteRequest) (*entities.QuoteResponse, error) {
	if req.CarID <= 0 {
		return nil, apierrors.Validation("carId is required")
	}
	pickup, drop, err := parseDates(req.PickupDate, req.DropDate)
	if err != nil {
		return nil, err
	}
	if err := validateOptions(req.Options); err != nil {
		return nil, err
	}

	car, err := s.Cars.GetCar(req.CarID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierrors.NotFound("Car not found")
		}
		zap.S().Errorw("car lookup failed", "car_id", req.CarID, "error", err)
		return nil, apierrors.Dependency("Internal Server Error")
	}

	summary := pricing.Quote(car.DailyPrice, pickup, drop, req.Options)
	return &entities.QuoteResponse{CarID: car.ID, Summary: summary}, nil
}

// IdentifyCustomer creates the customer, or resolves the existing one when
// the email is already registered (idempotent upsert-by-email).
func (s *BookingService) IdentifyCustomer(req entities.CreateCustomerRequest) (*entities.CreateCustomerResponse, error) {
	if req.Email == "" || req.Address == "" || req.Country == "" || req.DOB == "" ||
		req.FirstName == "" || req.LastName == "" {
		return nil, apierrors.Validation("firstName, lastName, email, address, country, dob are required")
	}

	customer := &db.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Address:   req.Address,
		Country:   req.Country,
		DOB:       req.DOB,
		Phone:     nullString(req.Phone),
		ZipCode:   nullString(req.ZipCode),
		City:      nullString(req.City),
		Flight:    nullString(req.Flight),
	}

	id, existed, err := s.Customers.CreateCustomer(customer)
	if err != nil {
		zap.S().Errorw("customer upsert failed", "email", req.Email, "error", err)
		return nil, apierrors.Dependency("Internal Server Error")
	}
	return &entities.CreateCustomerResponse{ID: id, Existed: existed}, nil
}

func (s *BookingService) GetCustomer(id int) (*entities.CustomerResponse, error) {
	if id <= 0 {
		return nil, apierrors.Validation("Invalid customer id")
	}
	c, err := s.Customers.GetCustomer(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierrors.NotFound("Customer not found")
		}
		zap.S().Errorw("customer lookup failed", "customer_id", id, "error", err)
		return nil, apierrors.Dependency("Internal Server Error")
	}
	return &entities.CustomerResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone.String,
		Address:   c.Address,
	}, nil
}

// CreateBooking runs the Submitting leg of the lifecycle: validate, price
// from the stored car rate, allocate a unique reference within the retry
// bound, persist transactionally, then dispatch the confirmation
// notification without letting it touch the outcome.
func (s *BookingService) CreateBooking(req entities.CreateBookingRequest) (*entities.CreateBookingResponse, error) {
	if req.CustomerID <= 0 || req.CarID <= 0 || req.PickupDate == "" || req.DropDate == "" ||
		req.CustomerEmail == "" || req.CustomerName == "" {
		return nil, apierrors.Validation("Required fields missing")
	}
	pickup, drop, err := parseDates(req.PickupDate, req.DropDate)
	if err != nil {
		return nil, err
	}
	if err := validateOptions(req.Options); err != nil {
		return nil, err
	}

	car, err := s.Cars.GetCar(req.CarID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierrors.Validation("Unknown car")
		}
		zap.S().Errorw("car lookup failed", "car_id", req.CarID, "error", err)
		return nil, apierrors.Dependency("Internal Server Error")
	}

	summary := pricing.Quote(car.DailyPrice, pickup, drop, req.Options)

	b := &db.Booking{
		CustomerID:    req.CustomerID,
		CarID:         req.CarID,
		PickupDate:    pickup,
		DropDate:      drop,
		PickupTime:    nullString(req.PickupTime),
		DropTime:      nullString(req.DropTime),
		PickupPlace:   nullString(req.PickupPlace),
		DropPlace:     nullString(req.DropPlace),
		TotalAmount:   summary.TotalAmount,
		DepositAmount: summary.Deposit,
	}
	lines := toOptionLines(summary)

	id, ref, err := s.insertWithUniqueRef(b, lines, req.BookingRef)
	if err != nil {
		return nil, err
	}

	if req.DraftID != "" {
		s.Drafts.Delete(req.DraftID)
	}

	s.notifyConfirmed(ref)

	return &entities.CreateBookingResponse{
		ID:         id,
		BookingRef: ref,
		Message:    "Booking created and confirmation email sent",
	}, nil
}

// insertWithUniqueRef allocates a reference and inserts, regenerating on
// collision. The pre-check mirrors the classic flow; the UNIQUE constraint
// on booking_ref is what actually closes the race, so a 23505 from the
// insert re-enters the same loop.
func (s *BookingService) insertWithUniqueRef(b *db.Booking, lines []db.BookingOptionLine, proposedRef string) (int, string, error) {
	for attempt := 0; attempt < booking.MaxRefAttempts; attempt++ {
		ref := proposedRef
		if ref == "" || attempt > 0 {
			ref = s.RefGen.Generate()
		}

		exists, err := s.Bookings.ReferenceExists(ref)
		if err != nil {
			zap.S().Errorw("reference pre-check failed", "ref", ref, "error", err)
			return 0, "", apierrors.Dependency("Internal Server Error")
		}
		if exists {
			zap.S().Infow("booking reference collision, regenerating", "ref", ref, "attempt", attempt+1)
			continue
		}

		b.BookingRef = ref
		id, err := s.Bookings.InsertBooking(b, lines)
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateReference) {
				zap.S().Infow("booking reference lost insert race, regenerating", "ref", ref, "attempt", attempt+1)
				continue
			}
			zap.S().Errorw("booking insert failed", "ref", ref, "error", err)
			return 0, "", apierrors.Dependency("Internal Server Error")
		}
		return id, ref, nil
	}

	zap.S().Errorw("could not allocate unique booking reference", "attempts", booking.MaxRefAttempts)
	return 0, "", apierrors.Dependency("Failed to generate unique bookingRef")
}

func (s *BookingService) GetBookingByRef(ref string) (*entities.BookingResponse, error) {
	view, err := s.Bookings.GetBookingByRef(ref)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierrors.NotFound("Booking not found")
		}
		zap.S().Errorw("booking lookup failed", "ref", ref, "error", err)
		return nil, apierrors.Dependency("Internal Server Error")
	}
	return view, nil
}

// CancelBooking removes the booking entirely. Cancelling an unknown or
// already-cancelled reference reports not found, never success.
func (s *BookingService) CancelBooking(ref string) error {
	view, err := s.Bookings.GetBookingByRef(ref)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		zap.S().Errorw("booking lookup before cancel failed", "ref", ref, "error", err)
		return apierrors.Dependency("Internal Server Error")
	}

	affected, err := s.Bookings.DeleteBookingByRef(ref)
	if err != nil {
		zap.S().Errorw("booking delete failed", "ref", ref, "error", err)
		return apierrors.Dependency("Internal Server Error")
	}
	if affected == 0 {
		return apierrors.NotFound("Booking not found")
	}

	if view != nil {
		s.Notifier.SendBookingCancellation(*view)
	}
	return nil
}

func (s *BookingService) notifyConfirmed(ref string) {
	view, err := s.Bookings.GetBookingByRef(ref)
	if err != nil {
		zap.S().Errorw("booking created but confirmation lookup failed", "ref", ref, "error", err)
		return
	}
	s.Notifier.SendBookingConfirmation(*view)
}

func parseDates(pickupDate, dropDate string) (time.Time, time.Time, error) {
	if pickupDate == "" || dropDate == "" {
		return time.Time{}, time.Time{}, apierrors.Validation("pickupDate and dropDate are required")
	}
	pickup, err := time.Parse(dateLayout, pickupDate)
	if err != nil {
		return time.Time{}, time.Time{}, apierrors.Validation("pickupDate must be formatted YYYY-MM-DD")
	}
	drop, err := time.Parse(dateLayout, dropDate)
	if err != nil {
		return time.Time{}, time.Time{}, apierrors.Validation("dropDate must be formatted YYYY-MM-DD")
	}
	return pickup, drop, nil
}

// validateOptions rejects malformed option inputs at the boundary instead of
// silently zeroing them the way the classic client did.
func validateOptions(opts []pricing.Option) error {
	for _, opt := range opts {
		if opt.Price < 0 {
			return apierrors.Validation(fmt.Sprintf("option %q has a negative price", opt.ID))
		}
		if opt.Quantity < 0 {
			return apierrors.Validation(fmt.Sprintf("option %q has a negative quantity", opt.ID))
		}
		switch opt.Billing {
		case pricing.BillingFlat, pricing.BillingPerDay, "":
		default:
			return apierrors.Validation(fmt.Sprintf("option %q has unknown billing mode %q", opt.ID, opt.Billing))
		}
	}
	return nil
}

func toOptionLines(summary pricing.Summary) []db.BookingOptionLine {
	lines := make([]db.BookingOptionLine, 0, len(summary.Lines))
	for _, l := range summary.Lines {
		billing := string(l.Billing)
		if billing == "" {
			billing = string(pricing.BillingFlat)
		}
		lines = append(lines, db.BookingOptionLine{
			OptionID: l.ID,
			Name:     l.Name,
			Price:    l.Price,
			Billing:  billing,
			Quantity: l.Quantity,
			Total:    l.Total,
		})
	}
	return lines
}

func toCarResponses(cars []db.Car) []entities.CarResponse {
	resp := make([]entities.CarResponse, 0, len(cars))
	for _, c := range cars {
		resp = append(resp, entities.CarResponse{
			ID:           c.ID,
			Make:         c.Make,
			Model:        c.Model,
			CarCode:      c.CarCode,
			Price:        c.DailyPrice,
			Seats:        c.Seats,
			Doors:        c.Doors,
			Fuel:         c.Fuel,
			Transmission: c.Transmission,
			Image:        c.ImageURL,
		})
	}
	return resp
}

func nullString(s string) (ns sql.NullString) {
	if s != "" {
		ns.String = s
		ns.Valid = true
	}
	return ns
}
