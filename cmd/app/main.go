package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aerovia/aerovia/config"
	"github.com/aerovia/aerovia/internal/bootstrap"
	"github.com/aerovia/aerovia/internal/cache"
	"github.com/aerovia/aerovia/internal/kafka"
	"github.com/aerovia/aerovia/internal/repository"
	"github.com/aerovia/aerovia/internal/service/booking"
	"github.com/aerovia/aerovia/internal/service/checkin"
	"github.com/aerovia/aerovia/internal/service/flights"
	"github.com/aerovia/aerovia/internal/service/tickets"
	"github.com/aerovia/aerovia/internal/staging"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	flightsCacheTTL := time.Duration(cfg.Booking.FlightsCacheTTL) * time.Second
	redisCache := cache.NewRedisCache(cfg.Redis, flightsCacheTTL)
	draftStore := staging.NewRedisStore(cfg.Redis, time.Duration(cfg.Booking.DraftTTLMinutes)*time.Minute)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	flightService := flights.NewFlightService(flightRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		flightRepo,
		draftStore,
		producer,
		cfg.Kafka.BookingEventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithPNRAttempts(cfg.Booking.PNRCommitAttempts),
	)
	checkinService := checkin.NewCheckinService(bookingRepo, producer, cfg.Kafka.BookingEventsTopic)
	ticketService := tickets.NewTicketService(bookingRepo, flightRepo)

	err = bootstrap.Run(ctx, cfg, bootstrap.Services{
		Flights:  flightService,
		Bookings: bookingService,
		Checkin:  checkinService,
		Tickets:  ticketService,
	})
	if err != nil {
		log.Fatalf("server error: %v", err)
	}
}
