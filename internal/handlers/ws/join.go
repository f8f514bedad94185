package ws

import (
	"log"
)

// MessageJoinChat puts the caller in the room for their conversation with
// peer_id, resolving (or creating) the thread first. Room membership only
// affects live fan-out; history and unread state live in the store.
type MessageJoinChat struct {
	PeerID uint `json:"peer_id"`
}

func (msg *MessageJoinChat) GetType() string {
	return "join_chat"
}

func (msg *MessageJoinChat) Process(ctx *MessageContext) error {
	thread, created, err := ctx.ChatService.StartThread(ctx.UserID, msg.PeerID)
	if err != nil {
		log.Printf("User %d failed to join chat with %d: %v", ctx.UserID, msg.PeerID, err)
		return SendError(ctx.Conn, "join_failed", "could not join chat", "")
	}

	ctx.Hub.JoinThread(thread.ID, ctx.UserID)

	if created {
		ctx.Broadcaster.ThreadStarted(thread, ctx.UserID)
	}

	return ctx.Conn.WriteJSON(map[string]interface{}{
		"type": "joined",
		"payload": map[string]interface{}{
			"thread_id": thread.ID,
			"peer_id":   msg.PeerID,
		},
	})
}
