package ws

import (
	"log"
)

// MessageRead marks every message from peer_id in the shared conversation
// as read. Only the counterpart's messages flip; the caller's own stay
// untouched. Re-sending when nothing is unread is a harmless no-op.
type MessageRead struct {
	PeerID uint `json:"peer_id"`
}

func (msg *MessageRead) GetType() string {
	return "mark_read"
}

func (msg *MessageRead) Process(ctx *MessageContext) error {
	changed, err := ctx.ChatService.MarkRead(ctx.UserID, msg.PeerID)
	if err != nil {
		log.Printf("User %d failed to mark chat with %d read: %v", ctx.UserID, msg.PeerID, err)
		return SendError(ctx.Conn, "mark_read_failed", "could not mark messages read", "")
	}

	ctx.Broadcaster.ReadMarked(ctx.UserID, msg.PeerID, changed)

	return ctx.Conn.WriteJSON(map[string]interface{}{
		"type": "read_ack",
		"payload": map[string]interface{}{
			"peer_id": msg.PeerID,
			"changed": changed,
		},
	})
}
