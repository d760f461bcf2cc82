package api

import (
	"net/http"

	"github.com/aerovia/aerovia/internal/domain"
	"github.com/aerovia/aerovia/internal/service/checkin"
	"github.com/gin-gonic/gin"
)

// CheckinHandler serves the unauthenticated check-in flow: PNR plus
// passenger last name act as the credential.
type CheckinHandler struct {
	service checkin.CheckinUseCase
}

type checkinRequest struct {
	PNR      string `json:"pnr"`
	LastName string `json:"last_name"`
}

type assignSeatsRequest struct {
	Seats []string `json:"seats"`
}

type checkinResponse struct {
	PNR    string `json:"pnr"`
	Status string `json:"status"`
}

type passengerSeatResponse struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	SeatNumber string `json:"seat_number,omitempty"`
}

type seatMapResponse struct {
	PNR        string                  `json:"pnr"`
	Status     string                  `json:"status"`
	Passengers []passengerSeatResponse `json:"passengers"`
}

func NewCheckinHandler(service checkin.CheckinUseCase) *CheckinHandler {
	return &CheckinHandler{service: service}
}

func (h *CheckinHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.checkIn)
	router.PUT("/:pnr/seats", h.assignSeats)
}

func (h *CheckinHandler) checkIn(c *gin.Context) {
	var req checkinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.PNR == "" || req.LastName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pnr and last_name are required"})
		return
	}

	booking, err := h.service.CheckIn(c.Request.Context(), req.PNR, req.LastName)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, checkinResponse{
		PNR:    booking.PNR,
		Status: string(booking.Status),
	})
}

func (h *CheckinHandler) assignSeats(c *gin.Context) {
	var req assignSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, passengers, err := h.service.AssignSeats(c.Request.Context(), c.Param("pnr"), req.Seats)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSeatMapResponse(booking, passengers))
}

func toSeatMapResponse(b *domain.Booking, passengers []domain.Passenger) seatMapResponse {
	resp := seatMapResponse{
		PNR:        b.PNR,
		Status:     string(b.Status),
		Passengers: make([]passengerSeatResponse, 0, len(passengers)),
	}
	for _, p := range passengers {
		resp.Passengers = append(resp.Passengers, passengerSeatResponse{
			FirstName:  p.FirstName,
			LastName:   p.LastName,
			SeatNumber: p.SeatNumber,
		})
	}
	return resp
}
