package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/aerovia/aerovia/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError maps the domain's sentinel errors onto HTTP responses.
// ErrBookingNotFound and ErrNameMismatch deliberately produce the same
// payload: callers must not be able to probe whether a PNR exists by
// varying the last name.
func writeError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		body := gin.H{"error": vErr.Error(), "field": vErr.Field}
		if vErr.Passenger > 0 {
			body["passenger"] = vErr.Passenger
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, domain.ErrInvalidSeatMap):
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidSeatMap.Error()})
	case errors.Is(err, domain.ErrBookingNotFound), errors.Is(err, domain.ErrNameMismatch):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
	case errors.Is(err, domain.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrFlightNotFound.Error()})
	case errors.Is(err, domain.ErrNoPendingBooking):
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrNoPendingBooking.Error()})
	case errors.Is(err, domain.ErrInsufficientSeats):
		c.JSON(http.StatusConflict, gin.H{"error": domain.ErrInsufficientSeats.Error()})
	case errors.Is(err, domain.ErrNotCheckedIn):
		c.JSON(http.StatusConflict, gin.H{"error": domain.ErrNotCheckedIn.Error()})
	case errors.Is(err, domain.ErrBookingCancelled):
		c.JSON(http.StatusConflict, gin.H{"error": domain.ErrBookingCancelled.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
