package api

import (
	"net/http"
	"testing"

	"github.com/aerovia/aerovia/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func checkinRouter(service *MockCheckinUseCase) *gin.Engine {
	router := gin.New()
	NewCheckinHandler(service).Register(router.Group("/checkin"))
	return router
}

func TestCheckinHandler_CheckIn_Success(t *testing.T) {
	mockService := &MockCheckinUseCase{}
	router := checkinRouter(mockService)

	booking := &domain.Booking{PNR: "ABC12345", Status: domain.BookingStatusCheckedIn}
	mockService.On("CheckIn", mock.Anything, "ABC12345", "Doe").Return(booking, nil).Once()

	w := performRequest(t, router, http.MethodPost, "/checkin/", `{"pnr":"ABC12345","last_name":"Doe"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"pnr":"ABC12345","status":"CHECKED_IN"}`, w.Body.String())
}

func TestCheckinHandler_CheckIn_MissingFields(t *testing.T) {
	mockService := &MockCheckinUseCase{}
	router := checkinRouter(mockService)

	w := performRequest(t, router, http.MethodPost, "/checkin/", `{"pnr":"ABC12345"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CheckIn")
}

func TestCheckinHandler_CheckIn_SamePayloadForMismatchAndMissing(t *testing.T) {
	// Ответ не должен позволять отличить чужой PNR от несуществующего.
	mockService := &MockCheckinUseCase{}
	router := checkinRouter(mockService)

	mockService.On("CheckIn", mock.Anything, "ABC12345", "Smith").Return(nil, domain.ErrNameMismatch).Once()
	mockService.On("CheckIn", mock.Anything, "ZZZZZZZZ", "Smith").Return(nil, domain.ErrBookingNotFound).Once()

	mismatch := performRequest(t, router, http.MethodPost, "/checkin/", `{"pnr":"ABC12345","last_name":"Smith"}`)
	missing := performRequest(t, router, http.MethodPost, "/checkin/", `{"pnr":"ZZZZZZZZ","last_name":"Smith"}`)

	assert.Equal(t, http.StatusNotFound, mismatch.Code)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, mismatch.Body.String(), missing.Body.String())
}

func TestCheckinHandler_AssignSeats_Success(t *testing.T) {
	mockService := &MockCheckinUseCase{}
	router := checkinRouter(mockService)

	booking := &domain.Booking{ID: 42, PNR: "ABC12345", Status: domain.BookingStatusCheckedIn}
	passengers := []domain.Passenger{
		{FirstName: "John", LastName: "Doe", SeatNumber: "12A"},
		{FirstName: "Amy", LastName: "Lee"},
	}
	mockService.On("AssignSeats", mock.Anything, "ABC12345", []string{"12A"}).Return(booking, passengers, nil).Once()

	w := performRequest(t, router, http.MethodPut, "/checkin/ABC12345/seats", `{"seats":["12A"]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	// Пассажир без места сериализуется без seat_number.
	assert.JSONEq(t, `{
		"pnr": "ABC12345",
		"status": "CHECKED_IN",
		"passengers": [
			{"first_name": "John", "last_name": "Doe", "seat_number": "12A"},
			{"first_name": "Amy", "last_name": "Lee"}
		]
	}`, w.Body.String())
}

func TestCheckinHandler_AssignSeats_Invalid(t *testing.T) {
	mockService := &MockCheckinUseCase{}
	router := checkinRouter(mockService)

	mockService.On("AssignSeats", mock.Anything, "ABC12345", []string{"12A", "12A"}).Return(nil, nil, domain.ErrInvalidSeatMap).Once()

	w := performRequest(t, router, http.MethodPut, "/checkin/ABC12345/seats", `{"seats":["12A","12A"]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckinHandler_AssignSeats_NotCheckedIn(t *testing.T) {
	mockService := &MockCheckinUseCase{}
	router := checkinRouter(mockService)

	mockService.On("AssignSeats", mock.Anything, "ABC12345", []string{"12A"}).Return(nil, nil, domain.ErrNotCheckedIn).Once()

	w := performRequest(t, router, http.MethodPut, "/checkin/ABC12345/seats", `{"seats":["12A"]}`)

	assert.Equal(t, http.StatusConflict, w.Code)
}
