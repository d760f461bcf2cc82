package checkin

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/aerovia/aerovia/internal/domain"
	"github.com/aerovia/aerovia/internal/kafka"
	"github.com/aerovia/aerovia/internal/repository"
)

type CheckinUseCase interface {
	CheckIn(ctx context.Context, pnr, lastName string) (*domain.Booking, error)
	AssignSeats(ctx context.Context, pnr string, seats []string) (*domain.Booking, []domain.Passenger, error)
}

type Producer interface {
	PublishWithRetry(ctx context.Context, topic, key string, value interface{}, maxRetries int) error
}

const publishRetries = 3

type CheckinService struct {
	bookings repository.BookingRepository
	producer Producer
	topic    string
}

func NewCheckinService(bookings repository.BookingRepository, producer Producer, topic string) *CheckinService {
	return &CheckinService{bookings: bookings, producer: producer, topic: topic}
}

// CheckIn transitions a confirmed booking to CHECKED_IN. The caller is
// authenticated by PNR plus a case-insensitive match against any
// passenger's last name. Re-checking-in an already checked-in booking is
// a no-op success.
func (s *CheckinService) CheckIn(ctx context.Context, pnr, lastName string) (*domain.Booking, error) {
	booking, passengers, err := s.bookings.GetByPNR(ctx, domain.NormalizePNR(pnr))
	if err != nil {
		return nil, err
	}

	match := false
	for _, p := range passengers {
		if strings.EqualFold(p.LastName, strings.TrimSpace(lastName)) {
			match = true
			break
		}
	}
	if !match {
		return nil, domain.ErrNameMismatch
	}

	switch booking.Status {
	case domain.BookingStatusCheckedIn:
		return booking, nil
	case domain.BookingStatusCancelled:
		return nil, domain.ErrBookingCancelled
	}

	updated, err := s.bookings.UpdateStatus(ctx, booking.PNR, domain.BookingStatusCheckedIn)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "booking_checked_in", updated)
	return updated, nil
}

// AssignSeats replaces the booking's whole seat map: every prior
// assignment is cleared and seats[i] goes to passenger i in creation
// order. Requires CHECKED_IN status.
func (s *CheckinService) AssignSeats(ctx context.Context, pnr string, seats []string) (*domain.Booking, []domain.Passenger, error) {
	booking, passengers, err := s.bookings.GetByPNR(ctx, domain.NormalizePNR(pnr))
	if err != nil {
		return nil, nil, err
	}
	if booking.Status == domain.BookingStatusCancelled {
		return nil, nil, domain.ErrBookingCancelled
	}
	if booking.Status != domain.BookingStatusCheckedIn {
		return nil, nil, domain.ErrNotCheckedIn
	}

	if len(seats) > len(passengers) {
		return nil, nil, domain.ErrInvalidSeatMap
	}
	normalized := make([]string, len(seats))
	seen := make(map[string]struct{}, len(seats))
	for i, seat := range seats {
		code := strings.ToUpper(strings.TrimSpace(seat))
		if code == "" {
			return nil, nil, domain.ErrInvalidSeatMap
		}
		if _, dup := seen[code]; dup {
			// Дубликат внутри одного запроса.
			return nil, nil, domain.ErrInvalidSeatMap
		}
		seen[code] = struct{}{}
		normalized[i] = code
	}

	if err := s.bookings.ReplaceSeats(ctx, booking.ID, normalized); err != nil {
		return nil, nil, err
	}

	for i := range passengers {
		if i < len(normalized) {
			passengers[i].SeatNumber = normalized[i]
		} else {
			passengers[i].SeatNumber = ""
		}
	}

	s.publish(ctx, "seats_assigned", booking)
	return booking, passengers, nil
}

func (s *CheckinService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:           eventType,
		PNR:            booking.PNR,
		UserID:         booking.UserID,
		FlightID:       booking.FlightID,
		PassengerCount: booking.PassengerCount,
		Status:         string(booking.Status),
		OccurredAt:     time.Now().UTC(),
	}
	if err := s.producer.PublishWithRetry(ctx, s.topic, booking.PNR, event, publishRetries); err != nil {
		log.Printf("WARNING: failed to publish %s event for %s: %v", eventType, booking.PNR, err)
	}
}

var _ CheckinUseCase = (*CheckinService)(nil)
