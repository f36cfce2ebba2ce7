package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carhire/internal/booking"
	"carhire/internal/db"
	"carhire/internal/entities"
	apierrors "carhire/internal/errors"
	"carhire/internal/pricing"
	"carhire/internal/repository"
	"carhire/internal/session"
)

type carBooking struct {
	carID        int
	pickup, drop time.Time
}

type fakeCarStore struct {
	cars     map[int]db.Car
	bookings []carBooking
	options  []db.RentalOption
}

func (f *fakeCarStore) ListCars() ([]db.Car, error) {
	var cars []db.Car
	for _, c := range f.cars {
		cars = append(cars, c)
	}
	return cars, nil
}

func (f *fakeCarStore) GetCar(id int) (*db.Car, error) {
	c, ok := f.cars[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCarStore) FindAvailableCars(pickupDate, dropDate time.Time) ([]db.Car, error) {
	var free []db.Car
	for _, c := range f.cars {
		blocked := false
		for _, b := range f.bookings {
			if b.carID == c.ID && booking.Overlaps(b.pickup, b.drop, pickupDate, dropDate) {
				blocked = true
				break
			}
		}
		if !blocked {
			free = append(free, c)
		}
	}
	return free, nil
}

func (f *fakeCarStore) ListOptions() ([]db.RentalOption, error) {
	return f.options, nil
}

type fakeCustomerStore struct {
	byEmail map[string]int
	byID    map[int]db.Customer
	nextID  int
}

func (f *fakeCustomerStore) CreateCustomer(c *db.Customer) (int, bool, error) {
	if id, ok := f.byEmail[c.Email]; ok {
		return id, true, nil
	}
	f.nextID++
	id := f.nextID
	f.byEmail[c.Email] = id
	stored := *c
	stored.ID = id
	f.byID[id] = stored
	return id, false, nil
}

func (f *fakeCustomerStore) GetCustomer(id int) (*db.Customer, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

type fakeBookingStore struct {
	byRef        map[string]*entities.BookingResponse
	taken        map[string]bool
	insertRaces  int // inserts that fail with ErrDuplicateReference before one succeeds
	nextID       int
	insertedRefs []string
}

func (f *fakeBookingStore) ReferenceExists(ref string) (bool, error) {
	return f.taken[ref], nil
}

func (f *fakeBookingStore) InsertBooking(b *db.Booking, lines []db.BookingOptionLine) (int, error) {
	if f.insertRaces > 0 {
		f.insertRaces--
		return 0, repository.ErrDuplicateReference
	}
	if f.taken[b.BookingRef] {
		return 0, repository.ErrDuplicateReference
	}
	f.nextID++
	f.taken[b.BookingRef] = true
	f.insertedRefs = append(f.insertedRefs, b.BookingRef)
	f.byRef[b.BookingRef] = &entities.BookingResponse{
		BookingRef:    b.BookingRef,
		PickupDate:    b.PickupDate.Format("2006-01-02"),
		DropDate:      b.DropDate.Format("2006-01-02"),
		TotalAmount:   b.TotalAmount,
		DepositAmount: b.DepositAmount,
	}
	return f.nextID, nil
}

func (f *fakeBookingStore) GetBookingByRef(ref string) (*entities.BookingResponse, error) {
	v, ok := f.byRef[ref]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return v, nil
}

func (f *fakeBookingStore) DeleteBookingByRef(ref string) (int64, error) {
	if !f.taken[ref] {
		return 0, nil
	}
	delete(f.taken, ref)
	delete(f.byRef, ref)
	return 1, nil
}

type fakeNotifier struct {
	confirmed []string
	cancelled []string
}

func (f *fakeNotifier) SendBookingConfirmation(view entities.BookingResponse) {
	f.confirmed = append(f.confirmed, view.BookingRef)
}

func (f *fakeNotifier) SendBookingCancellation(view entities.BookingResponse) {
	f.cancelled = append(f.cancelled, view.BookingRef)
}

func newTestService() (*BookingService, *fakeCarStore, *fakeCustomerStore, *fakeBookingStore, *fakeNotifier) {
	cars := &fakeCarStore{
		cars: map[int]db.Car{
			1: {ID: 1, Make: "Toyota", Model: "Yaris", DailyPrice: 50},
			2: {ID: 2, Make: "Kia", Model: "Picanto", DailyPrice: 35},
		},
	}
	customers := &fakeCustomerStore{
		byEmail: map[string]int{},
		byID:    map[int]db.Customer{},
	}
	bookings := &fakeBookingStore{
		byRef: map[string]*entities.BookingResponse{},
		taken: map[string]bool{},
	}
	notifier := &fakeNotifier{}
	svc := NewBookingService(cars, customers, bookings, notifier, session.NewDraftStore(time.Hour))
	return svc, cars, customers, bookings, notifier
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	httpErr, ok := err.(*apierrors.HTTPError)
	require.True(t, ok, "expected *HTTPError, got %T: %v", err, err)
	return httpErr.Code
}

func TestCheckAvailabilityRequiresBothDates(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.CheckAvailability("", "2024-03-06")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))

	_, err = svc.CheckAvailability("2024-03-04", "")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))

	_, err = svc.CheckAvailability("not-a-date", "2024-03-06")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}

func TestCheckAvailabilityExcludesOverlappingBookings(t *testing.T) {
	svc, cars, _, _, _ := newTestService()
	cars.bookings = []carBooking{{
		carID:  1,
		pickup: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		drop:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}}

	// Overlapping range: only the free car shows up.
	free, err := svc.CheckAvailability("2024-03-04", "2024-03-06")
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, 2, free[0].ID)

	// Pickup on the existing drop day still conflicts.
	free, err = svc.CheckAvailability("2024-03-05", "2024-03-08")
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, 2, free[0].ID)

	// Touching ranges the day after do not conflict.
	free, err = svc.CheckAvailability("2024-03-06", "2024-03-10")
	require.NoError(t, err)
	assert.Len(t, free, 2)
}

func TestQuoteUsesStoredDailyPrice(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	resp, err := svc.Quote(entities.QuoteRequest{
		CarID:      1,
		PickupDate: "2024-06-01",
		DropDate:   "2024-06-03",
		Options: []pricing.Option{
			{ID: "gps", Name: "GPS", Price: 10, Billing: pricing.BillingPerDay, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Summary.Days)
	assert.Equal(t, 100.0, resp.Summary.BasePrice)
	assert.Equal(t, 120.0, resp.Summary.TotalAmount)
	assert.Equal(t, 60.0, resp.Summary.Deposit)
}

func TestQuoteRejectsNegativeOptionInputs(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Quote(entities.QuoteRequest{
		CarID:      1,
		PickupDate: "2024-06-01",
		DropDate:   "2024-06-03",
		Options:    []pricing.Option{{ID: "gps", Price: -10, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))

	_, err = svc.Quote(entities.QuoteRequest{
		CarID:      1,
		PickupDate: "2024-06-01",
		DropDate:   "2024-06-03",
		Options:    []pricing.Option{{ID: "gps", Price: 10, Quantity: -1}},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}

func TestIdentifyCustomerUpsertByEmail(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	req := entities.CreateCustomerRequest{
		FirstName: "Ana",
		LastName:  "Rossi",
		Email:     "ana@example.com",
		Address:   "Main St 1",
		Country:   "IT",
		DOB:       "1990-04-12",
	}

	first, err := svc.IdentifyCustomer(req)
	require.NoError(t, err)
	assert.False(t, first.Existed)

	second, err := svc.IdentifyCustomer(req)
	require.NoError(t, err)
	assert.True(t, second.Existed)
	assert.Equal(t, first.ID, second.ID)
}

func TestIdentifyCustomerRequiresFields(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.IdentifyCustomer(entities.CreateCustomerRequest{Email: "x@example.com"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}

func validBookingRequest() entities.CreateBookingRequest {
	return entities.CreateBookingRequest{
		CustomerID:    1,
		CarID:         1,
		PickupDate:    "2024-06-01",
		DropDate:      "2024-06-03",
		CustomerEmail: "ana@example.com",
		CustomerName:  "Ana Rossi",
		Options: []pricing.Option{
			{ID: "gps", Name: "GPS", Price: 10, Billing: pricing.BillingPerDay, Quantity: 1},
		},
	}
}

func TestCreateBookingHappyPath(t *testing.T) {
	svc, _, _, bookings, notifier := newTestService()

	resp, err := svc.CreateBooking(validBookingRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.BookingRef)
	assert.Equal(t, "BK", resp.BookingRef[:2])

	view, err := svc.GetBookingByRef(resp.BookingRef)
	require.NoError(t, err)
	assert.Equal(t, 120.0, view.TotalAmount)
	assert.Equal(t, 60.0, view.DepositAmount)

	require.Len(t, bookings.insertedRefs, 1)
	assert.Equal(t, []string{resp.BookingRef}, notifier.confirmed)
}

func TestCreateBookingValidatesRequiredFields(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	req := validBookingRequest()
	req.CustomerEmail = ""
	_, err := svc.CreateBooking(req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))

	req = validBookingRequest()
	req.CarID = 0
	_, err = svc.CreateBooking(req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}

func TestCreateBookingRetriesOnReferenceCollision(t *testing.T) {
	svc, _, _, bookings, _ := newTestService()

	// Pin the generator so the proposed ref and the first regeneration
	// collide with refs already in the store.
	i := 0
	svc.RefGen = booking.NewReferenceGeneratorWith(
		func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) },
		func(n int) int { i++; return i },
	)
	bookings.taken["BK000000000000000001"] = true
	bookings.taken["BK240601000000000001"] = true

	req := validBookingRequest()
	req.BookingRef = "BK000000000000000001" // client-proposed ref already taken

	resp, err := svc.CreateBooking(req)
	require.NoError(t, err)
	assert.Equal(t, "BK240601000000000002", resp.BookingRef)
}

func TestCreateBookingRetriesOnInsertRace(t *testing.T) {
	svc, _, _, bookings, _ := newTestService()
	bookings.insertRaces = 2 // first two inserts lose the unique-constraint race

	resp, err := svc.CreateBooking(validBookingRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.BookingRef)
	require.Len(t, bookings.insertedRefs, 1)
}

func TestCreateBookingFailsAfterExhaustingRetries(t *testing.T) {
	svc, _, _, bookings, notifier := newTestService()
	bookings.insertRaces = booking.MaxRefAttempts

	_, err := svc.CreateBooking(validBookingRequest())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, httpCode(t, err))
	assert.Empty(t, bookings.insertedRefs)
	assert.Empty(t, notifier.confirmed)
}

func TestCancelBooking(t *testing.T) {
	svc, _, _, _, notifier := newTestService()

	resp, err := svc.CreateBooking(validBookingRequest())
	require.NoError(t, err)

	require.NoError(t, svc.CancelBooking(resp.BookingRef))
	assert.Equal(t, []string{resp.BookingRef}, notifier.cancelled)

	_, err = svc.GetBookingByRef(resp.BookingRef)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))

	// Repeating the cancellation reports not found, not success.
	err = svc.CancelBooking(resp.BookingRef)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
	assert.Len(t, notifier.cancelled, 1)
}

func TestCancelBookingUnknownRef(t *testing.T) {
	svc, _, _, _, notifier := newTestService()

	err := svc.CancelBooking("BK999999999999999999")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
	assert.Empty(t, notifier.cancelled)
}

func TestGetCustomer(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	created, err := svc.IdentifyCustomer(entities.CreateCustomerRequest{
		FirstName: "Ana", LastName: "Rossi", Email: "ana@example.com",
		Address: "Main St 1", Country: "IT", DOB: "1990-04-12",
	})
	require.NoError(t, err)

	got, err := svc.GetCustomer(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.Email)

	_, err = svc.GetCustomer(0)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))

	_, err = svc.GetCustomer(9999)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}
