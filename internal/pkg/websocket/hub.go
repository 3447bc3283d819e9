package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Channel names clients can subscribe to
const (
	SettingsChannel = "settings"
	threadPrefix    = "thread:"
	communityPrefix = "community:"
)

// ThreadChannel carries new messages of one thread
func ThreadChannel(threadID string) string { return threadPrefix + threadID }

// CommunityChannel carries new posts of one community
func CommunityChannel(communityID string) string { return communityPrefix + communityID }

// ParseChannel validates a channel name and returns its kind and id
func ParseChannel(name string) (kind, id string, err error) {
	switch {
	case name == SettingsChannel:
		return SettingsChannel, "", nil
	case strings.HasPrefix(name, threadPrefix) && len(name) > len(threadPrefix):
		return "thread", strings.TrimPrefix(name, threadPrefix), nil
	case strings.HasPrefix(name, communityPrefix) && len(name) > len(communityPrefix):
		return "community", strings.TrimPrefix(name, communityPrefix), nil
	default:
		return "", "", fmt.Errorf("unknown channel %q", name)
	}
}

// Message is the envelope pushed to subscribers
type Message struct {
	// Type names the event, e.g. "settings.changed"
	Type      string          `json:"type"`
	Channel   string          `json:"channel"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// Hub maintains the set of active clients and fans messages out per channel
type Hub struct {
	// Registered clients organized by channel name
	clients map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// Run serves registrations and broadcasts until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.channel]; !ok {
		h.clients[client.channel] = make(map[*Client]bool)
	}
	h.clients[client.channel][client] = true

	h.logger.Info().
		Str("channel", client.channel).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.channel]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.channel)
	}

	h.logger.Info().
		Str("channel", client.channel).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client unregistered")
}

func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().Err(err).Str("channel", message.Channel).Msg("Failed to marshal message for broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[message.Channel]
	if !ok {
		h.logger.Debug().Str("channel", message.Channel).Msg("No clients on channel for broadcast")
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			// send buffer full, drop the slow client
			h.removeLocked(client)
		}
	}

	h.logger.Debug().
		Str("channel", message.Channel).
		Str("type", message.Type).
		Int("clientCount", len(clients)).
		Msg("Message broadcasted to channel")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

// Publish queues payload for every subscriber of channel.
// It drops the message when the hub has stopped or its queue is full.
func (h *Hub) Publish(channel, eventType string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error().Err(err).Str("channel", channel).Msg("Failed to encode payload")
		return
	}
	msg := &Message{Type: eventType, Channel: channel, Payload: raw, Timestamp: time.Now().UTC()}

	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		h.logger.Warn().Str("channel", channel).Str("type", eventType).Msg("Broadcast queue full, dropping message")
	}
}

// ClientsCount returns the number of connected clients on a channel
func (h *Hub) ClientsCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[channel])
}
