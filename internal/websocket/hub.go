// internal/websocket/hub.go
package websocket

import (
	"context"
	"sync"

	"backoffice-service/internal/domain/message"
	wstypes "backoffice-service/internal/domain/ws"
	"backoffice-service/internal/pkg/jwt"

	"go.uber.org/zap"
)

// Verifier validates a compact session token.
type Verifier interface {
	Verify(token string) (*jwt.Claims, error)
}

// Hub fans notification and system events out to connected clients.
// One user can hold several connections; each connection tracks its
// own channel subscriptions.
type Hub struct {
	// Registered clients by user ID
	clients map[int64]map[*Client]bool
	mu      sync.RWMutex

	// Registration/unregistration
	Register   chan *Client
	unregister chan *Client

	// Broadcasting
	broadcast chan *BroadcastMessage

	// Handler registry for modular message handling
	handlerRegistry *HandlerRegistry

	verifier Verifier
	logger   *zap.Logger
}

type BroadcastMessage struct {
	// UserIDs nil means every connected client.
	UserIDs []int64
	Channel wstypes.ChannelType
	Message *wstypes.Message
}

func NewHub(verifier Verifier, logger *zap.Logger) *Hub {
	return &Hub{
		clients:         make(map[int64]map[*Client]bool),
		Register:        make(chan *Client),
		unregister:      make(chan *Client),
		broadcast:       make(chan *BroadcastMessage, 256),
		handlerRegistry: NewHandlerRegistry(),
		verifier:        verifier,
		logger:          logger,
	}
}

// AuthenticateClient validates the session token handed over during
// the connection handshake.
func (h *Hub) AuthenticateClient(ctx context.Context, token string) (*ClientAuth, error) {
	claims, err := h.verifier.Verify(token)
	if err != nil {
		return nil, err
	}

	return &ClientAuth{
		UserID:       claims.User.ID,
		TokenID:      claims.ID,
		Email:        claims.User.Email,
		IsSuperAdmin: claims.IsSuperAdmin,
		IsAdmin:      claims.IsAdmin,
		Roles:        claims.Roles,
		Claims:       claims.Claims,
	}, nil
}

// RegisterHandler registers a message handler
func (h *Hub) RegisterHandler(handler MessageHandler) {
	h.handlerRegistry.Register(handler)
}

// HandleClientMessage processes a message from a client using registered handlers
func (h *Hub) HandleClientMessage(ctx context.Context, client *Client, msg *wstypes.Message) error {
	handler, exists := h.handlerRegistry.GetHandler(msg.Type)
	if !exists {
		return nil // Will be handled by client's default handler
	}
	return handler.HandleMessage(ctx, client, msg)
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.BroadcastMessage(msg)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.userID] == nil {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	// Every connection starts on the notification feed.
	client.Subscribe(wstypes.ChannelNotifications)

	h.logger.Info("websocket client connected",
		zap.Int64("user_id", client.userID),
		zap.Int("total", h.totalClients()),
	)

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"user_id": client.userID,
		"roles":   client.roles,
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.userID]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			client.Close()

			if len(clients) == 0 {
				delete(h.clients, client.userID)
			}

			h.logger.Info("websocket client disconnected",
				zap.Int64("user_id", client.userID),
				zap.Int("total", h.totalClients()),
			)
		}
	}
}

func (h *Hub) BroadcastMessage(msg *BroadcastMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if msg.UserIDs == nil {
		for _, clients := range h.clients {
			for client := range clients {
				if client.IsSubscribed(msg.Channel) {
					client.SendMessage(msg.Message)
				}
			}
		}
		return
	}

	for _, userID := range msg.UserIDs {
		if clients, ok := h.clients[userID]; ok {
			for client := range clients {
				if client.IsSubscribed(msg.Channel) {
					client.SendMessage(msg.Message)
				}
			}
		}
	}
}

func (h *Hub) GetConnectedClients(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if clients, ok := h.clients[userID]; ok {
		return len(clients)
	}
	return 0
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalClients()
}

// Public methods for broadcasting

// BroadcastNotification pushes a freshly stored message to its owner.
func (h *Hub) BroadcastNotification(userID int64, m *message.Message) {
	h.broadcast <- &BroadcastMessage{
		UserIDs: []int64{userID},
		Channel: wstypes.ChannelNotifications,
		Message: wstypes.NewMessage(wstypes.EventTypeNotification, m),
	}
}

// BroadcastUnreadCount keeps the client badge in sync after reads.
func (h *Hub) BroadcastUnreadCount(userID int64, count int) {
	h.broadcast <- &BroadcastMessage{
		UserIDs: []int64{userID},
		Channel: wstypes.ChannelNotifications,
		Message: wstypes.NewMessage(wstypes.EventTypeNotificationCount, map[string]interface{}{
			"unread_count": count,
		}),
	}
}

// BroadcastSystemAlert reaches every client on the system channel.
func (h *Hub) BroadcastSystemAlert(alert *wstypes.SystemAlertData) {
	h.broadcast <- &BroadcastMessage{
		UserIDs: nil,
		Channel: wstypes.ChannelSystem,
		Message: wstypes.NewMessage(wstypes.EventTypeSystemAlert, alert),
	}
}

// IsUserConnected checks if a user has any active connections
func (h *Hub) IsUserConnected(userID int64) bool {
	return h.GetConnectedClients(userID) > 0
}

func (h *Hub) totalClients() int {
	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			client.Close()
		}
	}
}
