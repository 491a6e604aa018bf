package consumer

import (
	"encoding/json"

	"github.com/Powromita/EazyVenue/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type Broadcaster interface {
	Broadcast(update models.AvailabilityUpdate) int
}

// AvailabilityConsumer relays availability updates from the broker to the
// websocket clients of this process.
type AvailabilityConsumer struct {
	hub Broadcaster
	log zerolog.Logger
}

func NewAvailabilityConsumer(hub Broadcaster, log zerolog.Logger) *AvailabilityConsumer {
	return &AvailabilityConsumer{hub: hub, log: log}
}

// Start relays messages until msgs is closed. The returned channel is closed
// when the consumer stops.
func (ac *AvailabilityConsumer) Start(msgs <-chan amqp.Delivery) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			ac.handleMessage(msg)
		}
		ac.log.Info().Msg("delivery channel closed, stopping consumer")
	}()
	return done
}

func (ac *AvailabilityConsumer) handleMessage(msg amqp.Delivery) {
	var update models.AvailabilityUpdate
	if err := json.Unmarshal(msg.Body, &update); err != nil || update.VenueID == "" || update.Date == "" {
		ac.log.Warn().Err(err).Str("routing_key", msg.RoutingKey).Msg("dropping malformed availability update")
		_ = msg.Nack(false, false)
		return
	}

	n := ac.hub.Broadcast(update)
	ac.log.Debug().
		Str("venue_id", update.VenueID).
		Str("date", update.Date).
		Int("clients", n).
		Msg("relayed availability update")
	_ = msg.Ack(false)
}
