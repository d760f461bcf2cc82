package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aerovia/aerovia/api"
	"github.com/aerovia/aerovia/config"
	"github.com/aerovia/aerovia/internal/middleware"
	"github.com/aerovia/aerovia/internal/service/booking"
	"github.com/aerovia/aerovia/internal/service/checkin"
	"github.com/aerovia/aerovia/internal/service/flights"
	"github.com/aerovia/aerovia/internal/service/tickets"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Services struct {
	Flights  flights.FlightUseCase
	Bookings booking.BookingUseCase
	Checkin  checkin.CheckinUseCase
	Tickets  tickets.TicketUseCase
}

// Run starts the HTTP server and blocks until the context is canceled
// or the server fails.
func Run(ctx context.Context, cfg *config.Config, services Services) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(cfg, services),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter wires the handlers. Flight browsing and the PNR-based
// check-in flow are public; booking and ticket routes require the
// identity middleware.
func NewRouter(cfg *config.Config, services Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	api.NewFlightHandler(services.Flights).Register(router.Group("/flights"))
	api.NewCheckinHandler(services.Checkin).Register(router.Group("/checkin"))

	identity := middleware.Identity(cfg.HTTP.JWTSecret)
	api.NewBookingHandler(services.Bookings).Register(router.Group("/bookings", identity))
	api.NewTicketHandler(services.Tickets).Register(router.Group("/tickets", identity))

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/openapi.json"),
		)))
	}

	return router
}
