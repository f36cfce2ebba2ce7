package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound reports a lookup that matched nothing.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateReference reports that an insert hit the UNIQUE constraint
	// on bookings.booking_ref; the caller should regenerate and retry.
	ErrDuplicateReference = errors.New("duplicate booking reference")
	// ErrDuplicateEmail reports that a customer insert hit the email natural
	// key; the existing record should be resolved instead.
	ErrDuplicateEmail = errors.New("duplicate customer email")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
