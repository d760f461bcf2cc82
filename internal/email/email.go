package email

import (
	"context"
	"fmt"

	"github.com/aerovia/aerovia/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("notify user %d: booking %s is %s (%s)\n", event.UserID, event.PNR, event.Status, event.Type)
	return nil
}
