// Sentinel errors shared by the booking, check-in and ticket services.
// Handlers translate these into HTTP status codes in one place; the
// services themselves never format responses.
package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFlightNotFound   = errors.New("flight not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNoPendingBooking = errors.New("no pending booking")

	// ErrInsufficientSeats means the flight cannot hold the requested
	// passenger count. Raised both at staging (advisory) and inside the
	// commit transaction (authoritative).
	ErrInsufficientSeats = errors.New("not enough available seats")

	ErrNameMismatch     = errors.New("last name does not match booking")
	ErrUnauthorized     = errors.New("booking belongs to another user")
	ErrInvalidSeatMap   = errors.New("invalid seat map")
	ErrNotCheckedIn     = errors.New("booking is not checked in")
	ErrBookingCancelled = errors.New("booking is cancelled")

	// ErrPNRTaken is returned by the booking repository when the unique
	// index on bookings.pnr rejects an insert. The commit engine retries
	// with a fresh code; it never reaches callers.
	ErrPNRTaken = errors.New("pnr already taken")
)

// ValidationError identifies the offending field of a staging request.
// Passenger is 1-based; zero means the error is not tied to a passenger.
type ValidationError struct {
	Passenger int
	Field     string
	Reason    string
}

func (e *ValidationError) Error() string {
	if e.Passenger > 0 {
		return fmt.Sprintf("passenger %d: %s %s", e.Passenger, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
