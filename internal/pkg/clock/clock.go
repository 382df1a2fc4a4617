// Package clock provides a swappable time source
package clock

import "time"

// Clock provides the current time
type Clock interface {
	Now() time.Time
}

// Real implements Clock using the system time
type Real struct{}

// Now returns the current UTC time
func (c *Real) Now() time.Time {
	return time.Now().UTC()
}

// New returns a real clock
func New() Clock {
	return &Real{}
}

// Fixed always reports the same instant
type Fixed struct {
	At time.Time
}

// Now returns the fixed instant
func (c *Fixed) Now() time.Time {
	return c.At
}
