package realtime

import (
	"context"

	"github.com/Powromita/EazyVenue/internal/metrics"
	"github.com/Powromita/EazyVenue/internal/models"
	"github.com/rs/zerolog"
)

const RoutingKeyAvailabilityUpdated = "availability.updated"

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// BrokerNotifier publishes updates to the message broker so that every
// instance's consumer relays them to its own hub. If publishing fails the
// update is delivered to local clients only.
type BrokerNotifier struct {
	pub   Publisher
	local *Hub
	log   zerolog.Logger
}

func NewBrokerNotifier(pub Publisher, local *Hub, log zerolog.Logger) *BrokerNotifier {
	return &BrokerNotifier{pub: pub, local: local, log: log}
}

func (n *BrokerNotifier) NotifyAvailability(ctx context.Context, update models.AvailabilityUpdate) error {
	if err := n.pub.Publish(ctx, RoutingKeyAvailabilityUpdated, update); err != nil {
		n.log.Error().Err(err).Str("venue_id", update.VenueID).Msg("publish availability update, falling back to local broadcast")
		return n.local.NotifyAvailability(ctx, update)
	}
	metrics.IncBroadcast("rabbitmq")
	return nil
}
