package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Powromita/EazyVenue/internal/metrics"
	"github.com/Powromita/EazyVenue/internal/models"
	"github.com/rs/zerolog"
)

const (
	EventAvailabilityUpdated = "availability-updated"

	ActionJoinVenue  = "join-venue"
	ActionLeaveVenue = "leave-venue"

	sendBuffer = 32
)

// RoomName returns the room that receives updates for a venue.
func RoomName(venueID string) string {
	return "venue-" + venueID
}

// Envelope is the server-to-client frame.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub tracks which clients are subscribed to which venue rooms and fans
// availability updates out to them. Delivery is at-most-once: a client whose
// send buffer is full misses the update.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
	log   zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
		log:   log,
	}
}

func (h *Hub) Join(c *Client, venueID string) {
	room := RoomName(venueID)
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	c.rooms[room] = struct{}{}
}

func (h *Hub) Leave(c *Client, venueID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c, RoomName(venueID))
}

// Remove drops the client from every room and closes its send channel.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room := range c.rooms {
		h.leaveLocked(c, room)
	}
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (h *Hub) leaveLocked(c *Client, room string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(c.rooms, room)
}

// RoomSize reports the number of clients in a venue room.
func (h *Hub) RoomSize(venueID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[RoomName(venueID)])
}

// Broadcast sends the update to every client in the venue's room and returns
// how many clients accepted it.
func (h *Hub) Broadcast(update models.AvailabilityUpdate) int {
	frame, err := json.Marshal(Envelope{Event: EventAvailabilityUpdated, Data: update})
	if err != nil {
		h.log.Error().Err(err).Msg("marshal availability update")
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for c := range h.rooms[RoomName(update.VenueID)] {
		select {
		case c.send <- frame:
			delivered++
		default:
			h.log.Warn().Str("client", c.id).Str("venue_id", update.VenueID).Msg("client buffer full, dropping update")
		}
	}
	return delivered
}

// NotifyAvailability broadcasts to clients connected to this process.
func (h *Hub) NotifyAvailability(_ context.Context, update models.AvailabilityUpdate) error {
	n := h.Broadcast(update)
	metrics.IncBroadcast("local")
	h.log.Debug().
		Str("venue_id", update.VenueID).
		Str("date", update.Date).
		Str("status", string(update.Status)).
		Int("clients", n).
		Msg("availability broadcast")
	return nil
}
