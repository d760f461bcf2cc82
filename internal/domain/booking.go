package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCheckedIn BookingStatus = "CHECKED_IN"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type Booking struct {
	ID             int64
	UserID         int64
	FlightID       int64
	PNR            string
	Status         BookingStatus
	PassengerCount int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Passenger struct {
	ID        int64
	BookingID int64
	FirstName string
	LastName  string
	Age       int
	Gender    string
	// Passport is optional and may be empty.
	Passport string
	// SeatNumber is empty until seat assignment.
	SeatNumber string
}
