package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/aerovia/aerovia/internal/domain"
	"github.com/aerovia/aerovia/internal/service/booking"
	"github.com/aerovia/aerovia/internal/staging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func bookingRouter(service *MockBookingUseCase, userID int64) *gin.Engine {
	router := gin.New()
	group := router.Group("/bookings", asUser(userID))
	NewBookingHandler(service).Register(group)
	return router
}

func TestBookingHandler_Stage_Created(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := bookingRouter(mockService, 7)

	draft := &staging.Draft{
		ID:       "d1",
		FlightID: 4,
		Passengers: []staging.PassengerDraft{
			{FirstName: "Ivan", LastName: "Petrov", Age: 34, Gender: "male"},
		},
	}
	mockService.On("Stage", mock.Anything, "7", mock.AnythingOfType("booking.StageInput")).Return(draft, nil).Once()

	w := performRequest(t, router, http.MethodPost, "/bookings/stage",
		`{"flight_id":4,"passengers":[{"first_name":"Ivan","last_name":"Petrov","age":34,"gender":"male"}]}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"draft_id":"d1","flight_id":4,"passenger_count":1}`, w.Body.String())
}

func TestBookingHandler_Stage_ValidationError(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := bookingRouter(mockService, 7)

	vErr := &domain.ValidationError{Passenger: 2, Field: "age", Reason: "must be positive"}
	mockService.On("Stage", mock.Anything, "7", mock.Anything).Return(nil, vErr).Once()

	w := performRequest(t, router, http.MethodPost, "/bookings/stage",
		`{"flight_id":4,"passengers":[{"first_name":"Ivan","last_name":"Petrov","age":34,"gender":"male"},{"first_name":"Anna","last_name":"Petrova","age":0,"gender":"female"}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"passenger 2: age must be positive","field":"age","passenger":2}`, w.Body.String())
}

func TestBookingHandler_Commit_Created(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := bookingRouter(mockService, 7)

	result := &booking.CommitResult{
		Booking: &domain.Booking{
			PNR:            "ABC12345",
			Status:         domain.BookingStatusConfirmed,
			PassengerCount: 2,
		},
		TotalPriceCents: 1000000,
	}
	mockService.On("Commit", mock.Anything, "7", int64(7)).Return(result, nil).Once()

	w := performRequest(t, router, http.MethodPost, "/bookings/commit", "")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"pnr":"ABC12345","status":"CONFIRMED","passenger_count":2,"total_price_cents":1000000}`, w.Body.String())
}

func TestBookingHandler_Commit_NoPendingBooking(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := bookingRouter(mockService, 7)

	mockService.On("Commit", mock.Anything, "7", int64(7)).Return(nil, domain.ErrNoPendingBooking).Once()

	w := performRequest(t, router, http.MethodPost, "/bookings/commit", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingHandler_Commit_SoldOut(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := bookingRouter(mockService, 7)

	mockService.On("Commit", mock.Anything, "7", int64(7)).Return(nil, domain.ErrInsufficientSeats).Once()

	w := performRequest(t, router, http.MethodPost, "/bookings/commit", "")

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBookingHandler_List(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := bookingRouter(mockService, 7)

	created := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)
	bookings := []domain.Booking{
		{PNR: "ABC12345", FlightID: 4, Status: domain.BookingStatusConfirmed, PassengerCount: 2, CreatedAt: created},
	}
	mockService.On("ListBookings", mock.Anything, int64(7)).Return(bookings, nil).Once()

	w := performRequest(t, router, http.MethodGet, "/bookings/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"pnr":"ABC12345","flight_id":4,"status":"CONFIRMED","passenger_count":2,"created_at":"2026-08-30T15:00:00Z"}]`, w.Body.String())
}

func TestBookingHandler_Cancel_Forbidden(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := bookingRouter(mockService, 7)

	mockService.On("Cancel", mock.Anything, "ABC12345", int64(7)).Return(nil, domain.ErrUnauthorized).Once()

	w := performRequest(t, router, http.MethodDelete, "/bookings/ABC12345", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"forbidden"}`, w.Body.String())
}
