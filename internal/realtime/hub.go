package realtime

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/yungbote/lessonbridge-backend/internal/platform/logger"
)

type Client struct {
	ID       uuid.UUID
	Channels map[string]bool
	Outbound chan Message

	closeOnce sync.Once
}

// Hub fans messages out to subscribed clients. A slow client whose buffer is
// full misses messages rather than blocking the broadcaster.
type Hub struct {
	mu            sync.RWMutex
	log           *logger.Logger
	subscriptions map[string]map[*Client]bool
	bufferSize    int
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:           log.With("component", "RealtimeHub"),
		subscriptions: make(map[string]map[*Client]bool),
		bufferSize:    16,
	}
}

func (h *Hub) NewClient() *Client {
	return &Client{
		ID:       uuid.New(),
		Channels: make(map[string]bool),
		Outbound: make(chan Message, h.bufferSize),
	}
}

func (h *Hub) AddChannel(c *Client, channel string) {
	channel = strings.TrimSpace(channel)
	if c == nil || channel == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	c.Channels[channel] = true
	clients, ok := h.subscriptions[channel]
	if !ok {
		clients = make(map[*Client]bool)
		h.subscriptions[channel] = clients
	}
	clients[c] = true
	h.log.Debug("client subscribed", "client_id", c.ID, "channel", channel)
}

func (h *Hub) RemoveChannel(c *Client, channel string) {
	channel = strings.TrimSpace(channel)
	if c == nil || channel == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unsubscribeLocked(c, channel)
}

func (h *Hub) unsubscribeLocked(c *Client, channel string) {
	delete(c.Channels, channel)
	if subs, ok := h.subscriptions[channel]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.subscriptions, channel)
		}
	}
}

// CloseClient unsubscribes c everywhere and closes its outbound channel.
func (h *Hub) CloseClient(c *Client) {
	if c == nil {
		return
	}
	h.mu.Lock()
	for ch := range c.Channels {
		h.unsubscribeLocked(c, ch)
	}
	h.mu.Unlock()
	c.closeOnce.Do(func() { close(c.Outbound) })
	h.log.Debug("client closed", "client_id", c.ID)
}

// CloseAll closes every connected client, ending their sockets, and reports
// how many were closed.
func (h *Hub) CloseAll() int {
	h.mu.RLock()
	seen := make(map[*Client]bool)
	for _, subs := range h.subscriptions {
		for c := range subs {
			seen[c] = true
		}
	}
	h.mu.RUnlock()
	for c := range seen {
		h.CloseClient(c)
	}
	return len(seen)
}

func (h *Hub) Broadcast(msg Message) {
	if msg.Channel == "" {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.subscriptions[msg.Channel] {
		select {
		case c.Outbound <- msg:
		default:
			h.log.Warn("dropping realtime message; outbound buffer full", "client_id", c.ID, "channel", msg.Channel)
		}
	}
}

// Subscribers reports how many clients listen on channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscriptions[channel])
}
