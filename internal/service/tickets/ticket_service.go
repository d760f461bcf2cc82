package tickets

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/aerovia/aerovia/internal/domain"
	"github.com/aerovia/aerovia/internal/repository"
)

type TicketUseCase interface {
	GetTicket(ctx context.Context, pnr string, userID int64) (*Ticket, error)
	BoardingPass(ctx context.Context, pnr string, userID int64) (*BoardingPass, error)
}

// Ticket is a read-only projection of a booking; building one never
// mutates seat counts, status or timestamps.
type Ticket struct {
	Booking         *domain.Booking
	Flight          *domain.Flight
	Passengers      []domain.Passenger
	Duration        string
	TotalPriceCents int64
}

type BoardingPass struct {
	Ticket
	Gate string
}

type TicketService struct {
	bookings repository.BookingRepository
	flights  repository.FlightRepository
}

func NewTicketService(bookings repository.BookingRepository, flights repository.FlightRepository) *TicketService {
	return &TicketService{bookings: bookings, flights: flights}
}

func (s *TicketService) GetTicket(ctx context.Context, pnr string, userID int64) (*Ticket, error) {
	booking, passengers, err := s.bookings.GetByPNR(ctx, domain.NormalizePNR(pnr))
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	flight, err := s.flights.GetByID(ctx, booking.FlightID)
	if err != nil {
		return nil, err
	}

	return &Ticket{
		Booking:         booking,
		Flight:          flight,
		Passengers:      passengers,
		Duration:        FormatDuration(flight.Duration()),
		TotalPriceCents: flight.PriceCents * int64(booking.PassengerCount),
	}, nil
}

// BoardingPass requires a checked-in booking and adds a gate. Gates are
// not persisted; they are assigned at render time like the rest of the
// projection.
func (s *TicketService) BoardingPass(ctx context.Context, pnr string, userID int64) (*BoardingPass, error) {
	ticket, err := s.GetTicket(ctx, pnr, userID)
	if err != nil {
		return nil, err
	}
	if ticket.Booking.Status == domain.BookingStatusCancelled {
		return nil, domain.ErrBookingCancelled
	}
	if ticket.Booking.Status != domain.BookingStatusCheckedIn {
		return nil, domain.ErrNotCheckedIn
	}

	return &BoardingPass{
		Ticket: *ticket,
		Gate:   randomGate(),
	}, nil
}

// FormatDuration renders a flight time as whole hours and minutes,
// truncating seconds: 2h30m45s becomes "2h 30m".
func FormatDuration(d time.Duration) string {
	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

func randomGate() string {
	terminals := []string{"A", "B", "C"}
	return fmt.Sprintf("%s%d", terminals[rand.Intn(len(terminals))], rand.Intn(30)+1)
}

var _ TicketUseCase = (*TicketService)(nil)
