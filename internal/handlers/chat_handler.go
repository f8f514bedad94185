package handlers

import (
	"errors"
	"strconv"

	"github.com/Chakshita2123/Campus-Marketplace/internal/cache"
	"github.com/Chakshita2123/Campus-Marketplace/internal/handlers/ws"
	"github.com/Chakshita2123/Campus-Marketplace/internal/httpx"
	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
	"github.com/Chakshita2123/Campus-Marketplace/internal/service"
	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	chatService *service.ChatService
	chatCache   *cache.ChatCache
	broadcaster *ws.Broadcaster
}

func NewChatHandler(chatService *service.ChatService, chatCache *cache.ChatCache, broadcaster *ws.Broadcaster) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		chatCache:   chatCache,
		broadcaster: broadcaster,
	}
}

// StartChat resolves (or creates) the conversation with another user.
// Calling it again with the same peer returns the same thread.
func (h *ChatHandler) StartChat(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input struct {
		PeerID uint `json:"peer_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	thread, created, err := h.chatService.StartThread(userID, input.PeerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingParticipant), errors.Is(err, service.ErrSelfConversation):
			return httpx.BadRequest(c, "invalid_peer", err.Error())
		default:
			return httpx.Internal(c, "start_chat_failed")
		}
	}

	if created && h.broadcaster != nil {
		h.broadcaster.ThreadStarted(thread, userID)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"thread_id": thread.ID,
		"peer_id":   thread.PeerOf(userID),
		"created":   created,
	})
}

// SendMessage stores a direct message and runs the live fan-out.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input service.SendMessageInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	message, thread, err := h.chatService.SendMessage(userID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingParticipant),
			errors.Is(err, service.ErrSelfConversation),
			errors.Is(err, service.ErrEmptyMessage),
			errors.Is(err, service.ErrMessageTooLong):
			return httpx.BadRequest(c, "invalid_message", err.Error())
		default:
			return httpx.Internal(c, "send_message_failed")
		}
	}

	if h.broadcaster != nil {
		h.broadcaster.MessageSent(message, thread)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message.ToResponse(),
	})
}

// ListConversations returns the caller's inbox, newest activity first,
// with per-thread unread counts. Served from cache when fresh.
func (h *ChatHandler) ListConversations(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	if h.chatCache != nil {
		if rows, ok := h.chatCache.GetConversationList(userID); ok {
			return c.JSON(fiber.Map{"chats": rows})
		}
	}

	rows, err := h.chatService.ListConversations(userID)
	if err != nil {
		return httpx.Internal(c, "list_chats_failed")
	}

	if h.chatCache != nil {
		_ = h.chatCache.SetConversationList(userID, rows)
	}

	return c.JSON(fiber.Map{"chats": rows})
}

// GetMessages returns the conversation history with a peer, oldest first.
// No conversation yet means an empty list, not an error.
func (h *ChatHandler) GetMessages(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	peerID, err := paramUint(c, "peer_id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_peer", "Invalid peer id")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	messages, err := h.chatService.History(userID, peerID, limit)
	if err != nil {
		return httpx.Internal(c, "get_messages_failed")
	}

	responses := make([]models.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, messages[i].ToResponse())
	}

	return c.JSON(fiber.Map{"messages": responses})
}

// GetUnread returns the caller's unread totals, overall and per chat.
func (h *ChatHandler) GetUnread(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	summary, err := h.chatService.UnreadSummary(userID)
	if err != nil {
		return httpx.Internal(c, "get_unread_failed")
	}

	if h.chatCache != nil {
		_ = h.chatCache.SetUnreadTotal(userID, summary.Total)
	}

	return c.JSON(summary)
}

// GetUnreadTotal serves the navbar badge: just the overall count, cached
// briefly so frequent polls stay off the database.
func (h *ChatHandler) GetUnreadTotal(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	if h.chatCache != nil {
		if total, ok := h.chatCache.GetUnreadTotal(userID); ok {
			return c.JSON(fiber.Map{"total": total})
		}
	}

	total, err := h.chatService.UnreadTotal(userID)
	if err != nil {
		return httpx.Internal(c, "get_unread_failed")
	}

	if h.chatCache != nil {
		_ = h.chatCache.SetUnreadTotal(userID, total)
	}

	return c.JSON(fiber.Map{"total": total})
}

// MarkRead flips every message from the peer to read. Idempotent: a
// repeat call reports zero changed rows and succeeds.
func (h *ChatHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	peerID, err := paramUint(c, "peer_id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_peer", "Invalid peer id")
	}

	changed, err := h.chatService.MarkRead(userID, peerID)
	if err != nil {
		return httpx.Internal(c, "mark_read_failed")
	}

	if h.broadcaster != nil {
		h.broadcaster.ReadMarked(userID, peerID, changed)
	}

	return c.JSON(fiber.Map{
		"peer_id": peerID,
		"changed": changed,
	})
}

func paramUint(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(parsed), nil
}
