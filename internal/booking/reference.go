package booking

import (
	"fmt"
	"math/rand"
	"time"
)

// MaxRefAttempts bounds the reference allocation loop for a single
// booking-creation request. After this many collisions the request fails.
const MaxRefAttempts = 3

// ReferenceGenerator produces human-readable booking references of the form
// BK + YYMMDDHHMMSSmmm + 3 random digits. The random suffix improves, but
// does not guarantee, uniqueness; callers must check against the store and
// regenerate on collision.
type ReferenceGenerator struct {
	now  func() time.Time
	intn func(n int) int
}

func NewReferenceGenerator() *ReferenceGenerator {
	return &ReferenceGenerator{
		now:  time.Now,
		intn: rand.Intn,
	}
}

// NewReferenceGeneratorWith injects the clock and random source, for tests.
func NewReferenceGeneratorWith(now func() time.Time, intn func(n int) int) *ReferenceGenerator {
	return &ReferenceGenerator{now: now, intn: intn}
}

// Generate returns a fresh reference. Calling it again after a collision
// picks up both a new random suffix and, normally, a new timestamp.
func (g *ReferenceGenerator) Generate() string {
	t := g.now()
	millis := t.Nanosecond() / int(time.Millisecond)
	return fmt.Sprintf("BK%s%03d%03d", t.Format("060102150405"), millis, g.intn(1000))
}
