package handlers

import (
	"log"
	"os"

	"github.com/Chakshita2123/Campus-Marketplace/internal/cache"
	"github.com/Chakshita2123/Campus-Marketplace/internal/events"
	"github.com/Chakshita2123/Campus-Marketplace/internal/handlers/ws"
	"github.com/Chakshita2123/Campus-Marketplace/internal/service"
	"github.com/gofiber/websocket/v2"
)

type WebSocketHandler struct {
	chatService *service.ChatService
	userService *service.UserService
	hub         *ws.Hub
	broadcaster *ws.Broadcaster
	userCache   *cache.UserCache
	publisher   events.Publisher
}

func NewWebSocketHandler(chatService *service.ChatService, userService *service.UserService, chatCache *cache.ChatCache, userCache *cache.UserCache, publisher events.Publisher) *WebSocketHandler {
	hub := ws.NewHub()
	return &WebSocketHandler{
		chatService: chatService,
		userService: userService,
		hub:         hub,
		broadcaster: ws.NewBroadcaster(hub, chatService, chatCache, publisher),
		userCache:   userCache,
		publisher:   publisher,
	}
}

// GetHub returns the hub instance (useful for sending messages from other handlers)
func (h *WebSocketHandler) GetHub() *ws.Hub {
	return h.hub
}

// GetBroadcaster exposes the fan-out pipeline so REST handlers can reuse it
func (h *WebSocketHandler) GetBroadcaster() *ws.Broadcaster {
	return h.broadcaster
}

func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	userID := c.Locals("userID").(uint)
	wsDebug := os.Getenv("WS_DEBUG") == "true"

	// Register client in hub
	h.hub.Register(userID, c)

	// Update user status to online
	go func() {
		if h.userCache != nil {
			if err := h.userCache.SetUserOnline(userID); err != nil {
				log.Printf("Failed to set user %d online in cache: %v", userID, err)
			}
		}
		if err := h.userService.SetUserOnline(userID); err != nil {
			log.Printf("Failed to set user %d online in DB: %v", userID, err)
		}
	}()

	h.hub.Broadcast(map[string]interface{}{
		"type": "presence",
		"payload": map[string]interface{}{
			"user_id": userID,
			"online":  true,
		},
	})

	defer func() {
		h.hub.Unregister(userID)
		h.hub.Broadcast(map[string]interface{}{
			"type": "presence",
			"payload": map[string]interface{}{
				"user_id": userID,
				"online":  false,
			},
		})
		// Update user status to offline
		go func() {
			if h.userCache != nil {
				if err := h.userCache.SetUserOffline(userID); err != nil {
					log.Printf("Failed to set user %d offline in cache: %v", userID, err)
				}
			}
			if err := h.userService.SetUserOffline(userID); err != nil {
				log.Printf("Failed to set user %d offline in DB: %v", userID, err)
			}
		}()
	}()

	log.Printf("User %d connected via WebSocket", userID)

	// Create message context
	ctx := &ws.MessageContext{
		UserID:      userID,
		Conn:        c,
		Hub:         h.hub,
		ChatService: h.chatService,
		UserService: h.userService,
		Broadcaster: h.broadcaster,
		UserCache:   h.userCache,
		Publisher:   h.publisher,
	}

	// Handle incoming messages
	for {
		messageType, messageBytes, err := c.ReadMessage()
		if err != nil {
			log.Printf("Error reading message from user %d: %v", userID, err)
			break
		}

		if wsDebug {
			log.Printf("ws_recv user_id=%d frame_type=%d size=%d", userID, messageType, len(messageBytes))
		}

		// Deserialize message
		msg, err := ws.Deserialize(messageBytes)
		if err != nil {
			log.Printf("Error deserializing message from user %d: %v", userID, err)
			ws.SendError(c, "invalid_message", "Invalid message format", err.Error())
			continue
		}

		// Process message
		if err := msg.Process(ctx); err != nil {
			log.Printf("Error processing message %s from user %d: %v", msg.GetType(), userID, err)
			ws.SendError(c, "processing_failed", "Failed to process message", err.Error())
		}
	}

	log.Printf("User %d disconnected from WebSocket", userID)
}
