package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aerovia/aerovia/internal/domain"
	"github.com/aerovia/aerovia/internal/kafka"
	"github.com/aerovia/aerovia/internal/repository"
	"github.com/aerovia/aerovia/internal/staging"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	Stage(ctx context.Context, sessionID string, input StageInput) (*staging.Draft, error)
	Commit(ctx context.Context, sessionID string, userID int64) (*CommitResult, error)
	Cancel(ctx context.Context, pnr string, userID int64) (*domain.Booking, error)
	ListBookings(ctx context.Context, userID int64) ([]domain.Booking, error)
}

// DraftStore is the session-scoped staging area for pending bookings.
type DraftStore interface {
	Put(ctx context.Context, sessionID string, draft *staging.Draft) error
	Get(ctx context.Context, sessionID string) (*staging.Draft, error)
	Clear(ctx context.Context, sessionID string) error
}

type Producer interface {
	PublishWithRetry(ctx context.Context, topic, key string, value interface{}, maxRetries int) error
}

type StageInput struct {
	FlightID   int64                    `json:"flight_id"`
	Passengers []staging.PassengerDraft `json:"passengers"`
}

type CommitResult struct {
	Booking         *domain.Booking
	Passengers      []domain.Passenger
	TotalPriceCents int64
}

const (
	defaultPNRAttempts = 5
	publishRetries     = 3
)

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	drafts             DraftStore
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	pnrAttempts        int
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithPNRAttempts(attempts int) BookingServiceOption {
	return func(s *BookingService) {
		if attempts > 0 {
			s.pnrAttempts = attempts
		}
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	drafts DraftStore,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		drafts:       drafts,
		producer:     producer,
		bookingTopic: bookingTopic,
		pnrAttempts:  defaultPNRAttempts,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Stage validates the request and stores the draft under the session,
// replacing any prior draft. Nothing durable is written; the seat
// availability check here is advisory and is repeated inside Commit.
func (s *BookingService) Stage(ctx context.Context, sessionID string, input StageInput) (*staging.Draft, error) {
	if len(input.Passengers) == 0 {
		return nil, &domain.ValidationError{Field: "passengers", Reason: "at least one passenger is required"}
	}
	for i, p := range input.Passengers {
		if strings.TrimSpace(p.FirstName) == "" {
			return nil, &domain.ValidationError{Passenger: i + 1, Field: "first_name", Reason: "is required"}
		}
		if strings.TrimSpace(p.LastName) == "" {
			return nil, &domain.ValidationError{Passenger: i + 1, Field: "last_name", Reason: "is required"}
		}
		if p.Age <= 0 {
			return nil, &domain.ValidationError{Passenger: i + 1, Field: "age", Reason: "must be positive"}
		}
		if strings.TrimSpace(p.Gender) == "" {
			return nil, &domain.ValidationError{Passenger: i + 1, Field: "gender", Reason: "is required"}
		}
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}
	if flight.AvailableSeats < len(input.Passengers) {
		return nil, domain.ErrInsufficientSeats
	}

	draft := &staging.Draft{
		ID:         uuid.NewString(),
		FlightID:   input.FlightID,
		Passengers: input.Passengers,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.drafts.Put(ctx, sessionID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Commit converts the session's staged draft into a confirmed booking.
// Availability is re-checked inside the repository transaction; a stale
// draft against a sold-out flight fails with ErrInsufficientSeats and
// leaves all state unchanged.
func (s *BookingService) Commit(ctx context.Context, sessionID string, userID int64) (*CommitResult, error) {
	draft, err := s.drafts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, domain.ErrNoPendingBooking
	}

	flight, err := s.flights.GetByID(ctx, draft.FlightID)
	if err != nil {
		return nil, err
	}

	var booking *domain.Booking
	var passengers []domain.Passenger
	for attempt := 0; attempt < s.pnrAttempts; attempt++ {
		candidate := &domain.Booking{
			UserID:         userID,
			FlightID:       draft.FlightID,
			PNR:            domain.NewPNR(),
			PassengerCount: len(draft.Passengers),
		}
		batch := make([]domain.Passenger, len(draft.Passengers))
		for i, p := range draft.Passengers {
			batch[i] = domain.Passenger{
				FirstName: p.FirstName,
				LastName:  p.LastName,
				Age:       p.Age,
				Gender:    p.Gender,
				Passport:  p.Passport,
			}
		}

		err = s.bookings.CreateConfirmed(ctx, candidate, batch)
		if errors.Is(err, domain.ErrPNRTaken) {
			// Коллизия PNR, пробуем новый код.
			continue
		}
		if err != nil {
			return nil, err
		}
		booking = candidate
		passengers = batch
		break
	}
	if booking == nil {
		return nil, fmt.Errorf("allocate pnr after %d attempts: %w", s.pnrAttempts, err)
	}

	if err := s.drafts.Clear(ctx, sessionID); err != nil {
		log.Printf("WARNING: failed to clear staged draft for session %s: %v", sessionID, err)
	}

	if err := s.publish(ctx, "booking_confirmed", booking); err != nil {
		log.Printf("WARNING: failed to publish booking_confirmed event for %s: %v", booking.PNR, err)
	}

	return &CommitResult{
		Booking:         booking,
		Passengers:      passengers,
		TotalPriceCents: flight.PriceCents * int64(booking.PassengerCount),
	}, nil
}

// Cancel flips a booking to CANCELLED and restores its seats. Cancelling
// an already cancelled booking is a no-op.
func (s *BookingService) Cancel(ctx context.Context, pnr string, userID int64) (*domain.Booking, error) {
	pnr = domain.NormalizePNR(pnr)
	current, _, err := s.bookings.GetByPNR(ctx, pnr)
	if err != nil {
		return nil, err
	}
	if current.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	if current.Status == domain.BookingStatusCancelled {
		return current, nil
	}

	updated, err := s.bookings.Cancel(ctx, pnr)
	if err != nil {
		return nil, err
	}
	if err := s.publish(ctx, "booking_cancelled", updated); err != nil {
		log.Printf("WARNING: failed to publish booking_cancelled event for %s: %v", updated.PNR, err)
	}
	return updated, nil
}

func (s *BookingService) ListBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
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
	if err := s.producer.PublishWithRetry(ctx, s.bookingTopic, booking.PNR, event, publishRetries); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.PublishWithRetry(ctx, s.notificationsTopic, booking.PNR, event, publishRetries)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
