package domain

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// IDGenerator produces identifiers for new records
type IDGenerator interface {
	NewID() string
}

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// UUIDGenerator issues time-ordered UUIDv7 identifiers
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Today returns the clock's current local calendar date
func Today(c Clock) civil.Date {
	return civil.DateOf(c.Now())
}

// ParseDate parses a YYYY-MM-DD date, wrapping failures in ErrInvalidDate
func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, ErrInvalidDate
	}
	return d, nil
}
