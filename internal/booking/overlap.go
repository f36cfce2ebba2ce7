package booking

import "time"

// Overlaps is the availability conflict rule: an existing booking blocks a
// requested range when bookingPickup <= requestedDrop AND bookingDrop >=
// requestedPickup, inclusive on both ends. A booking dropping off the day a
// new rental starts still conflicts; there is no partial-day granularity.
// The NOT IN subquery in CarRepository.FindAvailableCars mirrors this rule.
func Overlaps(bookingPickup, bookingDrop, requestedPickup, requestedDrop time.Time) bool {
	return !bookingPickup.After(requestedDrop) && !bookingDrop.Before(requestedPickup)
}
