package consumer

import (
	"sync"
	"testing"

	"github.com/Powromita/EazyVenue/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// --- Mock Acknowledger ---

type mockAck struct {
	mu      sync.Mutex
	acked   []uint64
	nacked  []uint64
	requeue []bool
}

func (m *mockAck) Ack(tag uint64, multiple bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acked = append(m.acked, tag)
	return nil
}

func (m *mockAck) Nack(tag uint64, multiple, requeue bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nacked = append(m.nacked, tag)
	m.requeue = append(m.requeue, requeue)
	return nil
}

func (m *mockAck) Reject(tag uint64, requeue bool) error {
	return m.Nack(tag, false, requeue)
}

// --- Mock Broadcaster ---

type mockHub struct {
	updates []models.AvailabilityUpdate
}

func (m *mockHub) Broadcast(u models.AvailabilityUpdate) int {
	m.updates = append(m.updates, u)
	return 1
}

// --- Tests ---

func TestAvailabilityConsumer_RelaysAndAcks(t *testing.T) {
	hub := &mockHub{}
	ack := &mockAck{}
	msgs := make(chan amqp.Delivery, 3)
	msgs <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: []byte(`{"venueId":"v1","date":"2099-01-02","status":"BOOKED","bookingId":"b1"}`)}
	msgs <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 2, Body: []byte(`not json`)}
	msgs <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 3, Body: []byte(`{"date":"2099-01-02"}`)}
	close(msgs)

	done := NewAvailabilityConsumer(hub, zerolog.Nop()).Start(msgs)
	<-done

	assert.Len(t, hub.updates, 1)
	assert.Equal(t, "v1", hub.updates[0].VenueID)
	assert.Equal(t, models.AvailabilityBooked, hub.updates[0].Status)
	assert.Equal(t, []uint64{1}, ack.acked)
	assert.Equal(t, []uint64{2, 3}, ack.nacked)
	assert.Equal(t, []bool{false, false}, ack.requeue)
}
