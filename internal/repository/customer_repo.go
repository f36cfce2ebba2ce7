package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"carhire/internal/db"
)

type CustomerRepository struct {
	DB *sql.DB
}

func NewCustomerRepository(database *sql.DB) *CustomerRepository {
	return &CustomerRepository{DB: database}
}

// CreateCustomer inserts the customer and returns the new id. The email
// column carries a UNIQUE constraint; when it fires, the existing record is
// resolved by email and returned with existed = true instead of an error.
func (r *CustomerRepository) CreateCustomer(c *db.Customer) (id int, existed bool, err error) {
	query := `
		INSERT INTO customers (first_name, last_name, email, address, zip_code, country, dob, city, phone, flight)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err = r.DB.QueryRow(query,
		c.FirstName, c.LastName, c.Email, c.Address, c.ZipCode,
		c.Country, c.DOB, c.City, c.Phone, c.Flight,
	).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !isUniqueViolation(err) {
		return 0, false, fmt.Errorf("error inserting customer: %w", err)
	}

	err = r.DB.QueryRow(`SELECT id FROM customers WHERE email = $1 LIMIT 1`, c.Email).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, ErrDuplicateEmail
		}
		return 0, false, fmt.Errorf("error resolving existing customer by email: %w", err)
	}
	return id, true, nil
}

func (r *CustomerRepository) GetCustomer(id int) (*db.Customer, error) {
	var c db.Customer
	query := `
		SELECT id, first_name, last_name, email, phone, address, zip_code, city, country, dob, flight, created_at
		FROM customers WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Address,
		&c.ZipCode, &c.City, &c.Country, &c.DOB, &c.Flight, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying customer %d: %w", id, err)
	}
	return &c, nil
}
