package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carhire/internal/db"
)

type CarRepository struct {
	DB *sql.DB
}

func NewCarRepository(database *sql.DB) *CarRepository {
	return &CarRepository{DB: database}
}

const carColumns = `id, make, model, car_code, daily_price, seats, doors, fuel, transmission, image_url`

func scanCar(row interface{ Scan(...any) error }, c *db.Car) error {
	return row.Scan(&c.ID, &c.Make, &c.Model, &c.CarCode, &c.DailyPrice,
		&c.Seats, &c.Doors, &c.Fuel, &c.Transmission, &c.ImageURL)
}

func (r *CarRepository) ListCars() ([]db.Car, error) {
	rows, err := r.DB.Query(`SELECT ` + carColumns + ` FROM cars ORDER BY make, model`)
	if err != nil {
		return nil, fmt.Errorf("error querying cars: %w", err)
	}
	defer rows.Close()

	var cars []db.Car
	for rows.Next() {
		var c db.Car
		if err := scanCar(rows, &c); err != nil {
			return nil, fmt.Errorf("error scanning car: %w", err)
		}
		cars = append(cars, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating car rows: %w", err)
	}
	return cars, nil
}

func (r *CarRepository) GetCar(id int) (*db.Car, error) {
	var c db.Car
	row := r.DB.QueryRow(`SELECT `+carColumns+` FROM cars WHERE id = $1`, id)
	if err := scanCar(row, &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying car %d: %w", id, err)
	}
	return &c, nil
}

// FindAvailableCars returns every car with no booking overlapping the
// requested range. The bounds are inclusive on both ends: a booking that
// drops off the day the new rental starts still blocks the car.
func (r *CarRepository) FindAvailableCars(pickupDate, dropDate time.Time) ([]db.Car, error) {
	query := `
		SELECT ` + carColumns + `
		FROM cars
		WHERE id NOT IN (
			SELECT car_id FROM bookings
			WHERE pickup_date <= $1 AND drop_date >= $2
		)
		ORDER BY make, model`

	rows, err := r.DB.Query(query, dropDate, pickupDate)
	if err != nil {
		return nil, fmt.Errorf("error querying available cars: %w", err)
	}
	defer rows.Close()

	var cars []db.Car
	for rows.Next() {
		var c db.Car
		if err := scanCar(rows, &c); err != nil {
			return nil, fmt.Errorf("error scanning available car: %w", err)
		}
		cars = append(cars, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating available car rows: %w", err)
	}
	return cars, nil
}

func (r *CarRepository) ListOptions() ([]db.RentalOption, error) {
	rows, err := r.DB.Query(`SELECT id, name, price, billing, max_amount FROM rental_options ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error querying rental options: %w", err)
	}
	defer rows.Close()

	var opts []db.RentalOption
	for rows.Next() {
		var o db.RentalOption
		if err := rows.Scan(&o.ID, &o.Name, &o.Price, &o.Billing, &o.MaxAmount); err != nil {
			return nil, fmt.Errorf("error scanning rental option: %w", err)
		}
		opts = append(opts, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rental option rows: %w", err)
	}
	return opts, nil
}
