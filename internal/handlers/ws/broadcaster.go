package ws

import (
	"context"
	"log"
	"time"

	"github.com/Chakshita2123/Campus-Marketplace/internal/cache"
	"github.com/Chakshita2123/Campus-Marketplace/internal/events"
	"github.com/Chakshita2123/Campus-Marketplace/internal/metrics"
	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
	"github.com/Chakshita2123/Campus-Marketplace/internal/service"
)

// Broadcaster fans out chat side effects after a successful mutation:
// live events to whoever is connected, cache invalidation so the next
// REST read recomputes, and an audit publish. Every push is best-effort;
// an offline participant simply misses the live event and catches up
// from the store on next fetch.
type Broadcaster struct {
	Hub       *Hub
	Chat      *service.ChatService
	ChatCache *cache.ChatCache
	Publisher events.Publisher
}

func NewBroadcaster(hub *Hub, chat *service.ChatService, chatCache *cache.ChatCache, publisher events.Publisher) *Broadcaster {
	return &Broadcaster{
		Hub:       hub,
		Chat:      chat,
		ChatCache: chatCache,
		Publisher: publisher,
	}
}

// MessageSent runs the post-append fan-out for a freshly stored message:
// the message to the thread room, a conversation-list refresh hint to both
// participants, and the recipient's recomputed unread total.
func (b *Broadcaster) MessageSent(message *models.Message, thread *models.Thread) {
	recipientID := thread.PeerOf(message.SenderID)

	if b.ChatCache != nil {
		b.ChatCache.InvalidatePair(message.SenderID, recipientID)
	}

	// Both participants get the message on their own connection, joined to
	// the thread room or not. An offline participant catches up from the
	// store.
	for _, userID := range []uint{message.SenderID, recipientID} {
		b.Hub.SendToUser(userID, map[string]interface{}{
			"type":    "new_message",
			"payload": message.ToResponse(),
		})
		b.Hub.SendToUser(userID, map[string]interface{}{
			"type": "chat_list_updated",
			"payload": map[string]interface{}{
				"peer_id": thread.PeerOf(userID),
			},
		})
	}

	b.pushUnreadTotal(recipientID)

	metrics.MessagesSent.Inc()

	b.publish("chat.message.sent", events.Envelope{
		Event:   "chat.message.sent",
		At:      time.Now().UTC(),
		ActorID: message.SenderID,
		Data: map[string]interface{}{
			"thread_id":    thread.ID,
			"message_id":   message.ID,
			"recipient_id": recipientID,
		},
	})
}

// ReadMarked pushes the reader's updated unread total after a mark-read.
// changed is the number of rows flipped; zero still refreshes the badge.
func (b *Broadcaster) ReadMarked(userID, peerID uint, changed int64) {
	if b.ChatCache != nil {
		b.ChatCache.InvalidateUser(userID)
	}

	b.pushUnreadTotal(userID)

	if changed > 0 {
		// Read receipt for whoever has the thread open right now.
		if thread, _, err := b.Chat.StartThread(userID, peerID); err == nil {
			b.Hub.BroadcastToThread(thread.ID, map[string]interface{}{
				"type": "messages_read",
				"payload": map[string]interface{}{
					"reader_id": userID,
					"changed":   changed,
				},
			})
		}

		b.publish("chat.thread.read", events.Envelope{
			Event:   "chat.thread.read",
			At:      time.Now().UTC(),
			ActorID: userID,
			Data: map[string]interface{}{
				"peer_id": peerID,
				"changed": changed,
			},
		})
	}
}

// ThreadStarted notifies the peer that a new conversation exists.
func (b *Broadcaster) ThreadStarted(thread *models.Thread, starterID uint) {
	peerID := thread.PeerOf(starterID)

	b.Hub.SendToUser(peerID, map[string]interface{}{
		"type": "chat_list_updated",
		"payload": map[string]interface{}{
			"peer_id": starterID,
		},
	})

	b.publish("chat.thread.started", events.Envelope{
		Event:   "chat.thread.started",
		At:      time.Now().UTC(),
		ActorID: starterID,
		Data: map[string]interface{}{
			"thread_id": thread.ID,
			"peer_id":   peerID,
		},
	})
}

func (b *Broadcaster) pushUnreadTotal(userID uint) {
	if !b.Hub.IsOnline(userID) {
		return
	}

	total, err := b.Chat.UnreadTotal(userID)
	if err != nil {
		log.Printf("Failed to recompute unread total for user %d: %v", userID, err)
		return
	}

	b.Hub.SendToUser(userID, map[string]interface{}{
		"type": "unread_count",
		"payload": map[string]interface{}{
			"total": total,
		},
	})
}

func (b *Broadcaster) publish(routingKey string, envelope events.Envelope) {
	if b.Publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := b.Publisher.Publish(ctx, routingKey, envelope); err != nil {
		log.Printf("Failed to publish %s event: %v", routingKey, err)
	}
}
