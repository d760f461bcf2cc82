package api

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aerovia/aerovia/internal/domain"
	"github.com/aerovia/aerovia/internal/repository"
	"github.com/aerovia/aerovia/internal/service/booking"
	"github.com/aerovia/aerovia/internal/service/checkin"
	"github.com/aerovia/aerovia/internal/service/tickets"
	"github.com/aerovia/aerovia/internal/staging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// Mock структуры

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Stage(ctx context.Context, sessionID string, input booking.StageInput) (*staging.Draft, error) {
	args := m.Called(ctx, sessionID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staging.Draft), args.Error(1)
}

func (m *MockBookingUseCase) Commit(ctx context.Context, sessionID string, userID int64) (*booking.CommitResult, error) {
	args := m.Called(ctx, sessionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.CommitResult), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, pnr string, userID int64) (*domain.Booking, error) {
	args := m.Called(ctx, pnr, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockCheckinUseCase struct {
	mock.Mock
}

func (m *MockCheckinUseCase) CheckIn(ctx context.Context, pnr, lastName string) (*domain.Booking, error) {
	args := m.Called(ctx, pnr, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockCheckinUseCase) AssignSeats(ctx context.Context, pnr string, seats []string) (*domain.Booking, []domain.Passenger, error) {
	args := m.Called(ctx, pnr, seats)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Booking), args.Get(1).([]domain.Passenger), args.Error(2)
}

type MockTicketUseCase struct {
	mock.Mock
}

func (m *MockTicketUseCase) GetTicket(ctx context.Context, pnr string, userID int64) (*tickets.Ticket, error) {
	args := m.Called(ctx, pnr, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tickets.Ticket), args.Error(1)
}

func (m *MockTicketUseCase) BoardingPass(ctx context.Context, pnr string, userID int64) (*tickets.BoardingPass, error) {
	args := m.Called(ctx, pnr, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tickets.BoardingPass), args.Error(1)
}

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Search(ctx context.Context, q repository.FlightSearch) ([]domain.Flight, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

var _ booking.BookingUseCase = (*MockBookingUseCase)(nil)
var _ checkin.CheckinUseCase = (*MockCheckinUseCase)(nil)
var _ tickets.TicketUseCase = (*MockTicketUseCase)(nil)

// asUser подменяет identity-middleware в тестах.
func asUser(id int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", id)
		c.Next()
	}
}

func performRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func init() {
	gin.SetMode(gin.TestMode)
}
