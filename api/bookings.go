package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aerovia/aerovia/internal/domain"
	"github.com/aerovia/aerovia/internal/middleware"
	"github.com/aerovia/aerovia/internal/service/booking"
	"github.com/aerovia/aerovia/internal/staging"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type stageBookingRequest struct {
	FlightID   int64                    `json:"flight_id"`
	Passengers []staging.PassengerDraft `json:"passengers"`
}

type stagedDraftResponse struct {
	DraftID        string `json:"draft_id"`
	FlightID       int64  `json:"flight_id"`
	PassengerCount int    `json:"passenger_count"`
}

type commitResponse struct {
	PNR             string `json:"pnr"`
	Status          string `json:"status"`
	PassengerCount  int    `json:"passenger_count"`
	TotalPriceCents int64  `json:"total_price_cents"`
}

type bookingResponse struct {
	PNR            string `json:"pnr"`
	FlightID       int64  `json:"flight_id"`
	Status         string `json:"status"`
	PassengerCount int    `json:"passenger_count"`
	CreatedAt      string `json:"created_at"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/stage", h.stage)
	router.POST("/commit", h.commit)
	router.GET("/", h.list)
	router.DELETE("/:pnr", h.cancel)
}

func (h *BookingHandler) stage(c *gin.Context) {
	var req stageBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.service.Stage(c.Request.Context(), sessionID(c), booking.StageInput{
		FlightID:   req.FlightID,
		Passengers: req.Passengers,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, stagedDraftResponse{
		DraftID:        draft.ID,
		FlightID:       draft.FlightID,
		PassengerCount: len(draft.Passengers),
	})
}

func (h *BookingHandler) commit(c *gin.Context) {
	result, err := h.service.Commit(c.Request.Context(), sessionID(c), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, commitResponse{
		PNR:             result.Booking.PNR,
		Status:          string(result.Booking.Status),
		PassengerCount:  result.Booking.PassengerCount,
		TotalPriceCents: result.TotalPriceCents,
	})
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, toBookingResponse(&b))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	updated, err := h.service.Cancel(c.Request.Context(), c.Param("pnr"), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(updated))
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		PNR:            b.PNR,
		FlightID:       b.FlightID,
		Status:         string(b.Status),
		PassengerCount: b.PassengerCount,
		CreatedAt:      b.CreatedAt.Format(time.RFC3339),
	}
}

// Drafts are scoped to the authenticated session; the user id is the
// session identity.
func sessionID(c *gin.Context) string {
	return strconv.FormatInt(middleware.UserID(c), 10)
}
