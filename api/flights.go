package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aerovia/aerovia/internal/repository"
	"github.com/aerovia/aerovia/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/search", h.search)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) list(c *gin.Context) {
	flights, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) search(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}
	passengers, err := strconv.Atoi(c.DefaultQuery("passengers", "1"))
	if err != nil || passengers <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid passengers"})
		return
	}
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" || from == to {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to must be distinct airports"})
		return
	}

	result, err := h.service.Search(c.Request.Context(), repository.FlightSearch{
		FromAirport: from,
		ToAirport:   to,
		Date:        date,
		Passengers:  passengers,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
