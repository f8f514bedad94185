package ws

import (
	"errors"
	"log"

	"github.com/Chakshita2123/Campus-Marketplace/internal/service"
)

// MessageChat sends a direct message to another user over the socket.
// Same semantics as POST /api/chats/send: the thread is resolved or
// created, the message stored, and the fan-out runs. The sender gets an
// ack carrying the stored message and the client id they supplied.
type MessageChat struct {
	ClientID    string `json:"client_id"`
	RecipientID uint   `json:"recipient_id"`
	Body        string `json:"body"`
}

func (msg *MessageChat) GetType() string {
	return "chat"
}

func (msg *MessageChat) Process(ctx *MessageContext) error {
	stored, thread, err := ctx.ChatService.SendMessage(ctx.UserID, service.SendMessageInput{
		RecipientID: msg.RecipientID,
		Body:        msg.Body,
		ClientID:    msg.ClientID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingParticipant),
			errors.Is(err, service.ErrSelfConversation),
			errors.Is(err, service.ErrEmptyMessage),
			errors.Is(err, service.ErrMessageTooLong):
			return SendError(ctx.Conn, "invalid_message", err.Error(), "")
		default:
			log.Printf("Failed to store message from user %d: %v", ctx.UserID, err)
			return SendError(ctx.Conn, "send_failed", "could not send message", "")
		}
	}

	// Sender is in the conversation they just wrote to.
	ctx.Hub.JoinThread(thread.ID, ctx.UserID)

	if err := ctx.Conn.WriteJSON(map[string]interface{}{
		"type": "ack",
		"payload": map[string]interface{}{
			"client_id": msg.ClientID,
			"message":   stored.ToResponse(),
		},
	}); err != nil {
		log.Printf("Failed to ack message to user %d: %v", ctx.UserID, err)
	}

	ctx.Broadcaster.MessageSent(stored, thread)
	return nil
}
