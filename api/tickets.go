package api

import (
	"net/http"
	"time"

	"github.com/aerovia/aerovia/internal/middleware"
	"github.com/aerovia/aerovia/internal/service/tickets"
	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	service tickets.TicketUseCase
}

type ticketResponse struct {
	PNR             string                  `json:"pnr"`
	Status          string                  `json:"status"`
	FlightNumber    string                  `json:"flight_number"`
	Airline         string                  `json:"airline"`
	FromAirport     string                  `json:"from_airport"`
	ToAirport       string                  `json:"to_airport"`
	DepartureTime   string                  `json:"departure_time"`
	ArrivalTime     string                  `json:"arrival_time"`
	Duration        string                  `json:"duration"`
	TotalPriceCents int64                   `json:"total_price_cents"`
	Passengers      []passengerSeatResponse `json:"passengers"`
}

type boardingPassResponse struct {
	ticketResponse
	Gate string `json:"gate"`
}

func NewTicketHandler(service tickets.TicketUseCase) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) Register(router *gin.RouterGroup) {
	router.GET("/:pnr", h.ticket)
	router.GET("/:pnr/boarding-pass", h.boardingPass)
}

func (h *TicketHandler) ticket(c *gin.Context) {
	ticket, err := h.service.GetTicket(c.Request.Context(), c.Param("pnr"), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTicketResponse(ticket))
}

func (h *TicketHandler) boardingPass(c *gin.Context) {
	pass, err := h.service.BoardingPass(c.Request.Context(), c.Param("pnr"), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, boardingPassResponse{
		ticketResponse: toTicketResponse(&pass.Ticket),
		Gate:           pass.Gate,
	})
}

func toTicketResponse(t *tickets.Ticket) ticketResponse {
	resp := ticketResponse{
		PNR:             t.Booking.PNR,
		Status:          string(t.Booking.Status),
		FlightNumber:    t.Flight.FlightNumber,
		Airline:         t.Flight.Airline,
		FromAirport:     t.Flight.FromAirport,
		ToAirport:       t.Flight.ToAirport,
		DepartureTime:   t.Flight.DepartureTime.Format(time.RFC3339),
		ArrivalTime:     t.Flight.ArrivalTime.Format(time.RFC3339),
		Duration:        t.Duration,
		TotalPriceCents: t.TotalPriceCents,
		Passengers:      make([]passengerSeatResponse, 0, len(t.Passengers)),
	}
	for _, p := range t.Passengers {
		resp.Passengers = append(resp.Passengers, passengerSeatResponse{
			FirstName:  p.FirstName,
			LastName:   p.LastName,
			SeatNumber: p.SeatNumber,
		})
	}
	return resp
}
