package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"carhire/internal/db"
	"carhire/internal/entities"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

// ReferenceExists is a cheap pre-check before inserting. Uniqueness itself is
// guaranteed by the constraint on bookings.booking_ref, not by this query.
func (r *BookingRepository) ReferenceExists(ref string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM bookings WHERE booking_ref = $1)`, ref).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking booking reference: %w", err)
	}
	return exists, nil
}

// InsertBooking writes the booking row plus one booking_options row per
// selected option in a single transaction. A unique-violation on the
// reference surfaces as ErrDuplicateReference so the caller can regenerate.
func (r *BookingRepository) InsertBooking(b *db.Booking, lines []db.BookingOptionLine) (int, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("error opening booking transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO bookings
		(booking_ref, customer_id, car_id, pickup_date, drop_date, pickup_time,
		 drop_time, pickup_place, drop_place, total_amount, deposit_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err = tx.QueryRow(query,
		b.BookingRef, b.CustomerID, b.CarID, b.PickupDate, b.DropDate,
		b.PickupTime, b.DropTime, b.PickupPlace, b.DropPlace,
		b.TotalAmount, b.DepositAmount,
	).Scan(&b.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateReference
		}
		return 0, fmt.Errorf("error inserting booking: %w", err)
	}

	for _, line := range lines {
		_, err = tx.Exec(`
			INSERT INTO booking_options (booking_id, option_id, name, price, billing, quantity, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			b.ID, line.OptionID, line.Name, line.Price, line.Billing, line.Quantity, line.Total,
		)
		if err != nil {
			return 0, fmt.Errorf("error inserting booking option %s: %w", line.OptionID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing booking: %w", err)
	}
	return b.ID, nil
}

// GetBookingByRef returns the booking view joined with its customer, car and
// option lines.
func (r *BookingRepository) GetBookingByRef(ref string) (*entities.BookingResponse, error) {
	var res entities.BookingResponse
	var pickupDate, dropDate sql.NullTime
	var pickupTime, dropTime, pickupPlace, dropPlace, phone sql.NullString
	var bookingID int

	query := `
		SELECT
			b.id, b.booking_ref, b.pickup_date, b.drop_date, b.pickup_time,
			b.drop_time, b.pickup_place, b.drop_place, b.total_amount, b.deposit_amount,
			c.first_name, c.last_name, c.email, c.phone,
			car.make, car.model, car.car_code
		FROM bookings b
		LEFT JOIN customers c ON b.customer_id = c.id
		LEFT JOIN cars car ON b.car_id = car.id
		WHERE b.booking_ref = $1
		LIMIT 1`

	err := r.DB.QueryRow(query, ref).Scan(
		&bookingID, &res.BookingRef, &pickupDate, &dropDate, &pickupTime,
		&dropTime, &pickupPlace, &dropPlace, &res.TotalAmount, &res.DepositAmount,
		&res.FirstName, &res.LastName, &res.Email, &phone,
		&res.Make, &res.Model, &res.CarCode,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying booking '%s': %w", ref, err)
	}

	if pickupDate.Valid {
		res.PickupDate = pickupDate.Time.Format("2006-01-02")
	}
	if dropDate.Valid {
		res.DropDate = dropDate.Time.Format("2006-01-02")
	}
	res.PickupTime = pickupTime.String
	res.DropTime = dropTime.String
	res.PickupPlace = pickupPlace.String
	res.DropPlace = dropPlace.String
	res.Phone = phone.String

	rows, err := r.DB.Query(`
		SELECT option_id, name, price, billing, quantity, total
		FROM booking_options WHERE booking_id = $1 ORDER BY option_id`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("error querying booking options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var o entities.BookingOptionView
		if err := rows.Scan(&o.OptionID, &o.Name, &o.Price, &o.Billing, &o.Quantity, &o.Total); err != nil {
			return nil, fmt.Errorf("error scanning booking option: %w", err)
		}
		res.Options = append(res.Options, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking option rows: %w", err)
	}

	return &res, nil
}

// DeleteBookingByRef removes the booking row entirely; the booking_options
// rows go with it via ON DELETE CASCADE. Returns how many rows were deleted.
func (r *BookingRepository) DeleteBookingByRef(ref string) (int64, error) {
	result, err := r.DB.Exec(`DELETE FROM bookings WHERE booking_ref = $1`, ref)
	if err != nil {
		return 0, fmt.Errorf("error deleting booking '%s': %w", ref, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error reading affected rows: %w", err)
	}
	return affected, nil
}
