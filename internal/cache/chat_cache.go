package cache

import (
	"fmt"
	"time"

	"github.com/Chakshita2123/Campus-Marketplace/internal/repository"
	"github.com/vmihailenco/msgpack/v5"
)

// TTLs are short on purpose: cached unread data is a read-through
// convenience, the store stays the source of truth.
const (
	ConversationListTTL = 2 * time.Minute
	UnreadTotalTTL      = 1 * time.Minute
)

// ChatCache holds short-lived projections of the message store: the inbox
// listing and the unread total. Every send and mark-read invalidates both
// sides of the affected pair. All methods are nil-safe so the service runs
// unchanged when Redis is down.
type ChatCache struct {
	redis *RedisCache
}

func NewChatCache(redis *RedisCache) *ChatCache {
	return &ChatCache{redis: redis}
}

func conversationListKey(userID uint) string {
	return fmt.Sprintf("convlist:%d", userID)
}

func unreadTotalKey(userID uint) string {
	return fmt.Sprintf("unread:%d", userID)
}

// GetConversationList retrieves the cached inbox for a user
func (cc *ChatCache) GetConversationList(userID uint) ([]repository.ConversationRow, bool) {
	if cc == nil || cc.redis == nil {
		return nil, false
	}
	data, err := cc.redis.Get(conversationListKey(userID))
	if err != nil || data == nil {
		return nil, false
	}

	var rows []repository.ConversationRow
	if err := msgpack.Unmarshal(data, &rows); err != nil {
		return nil, false
	}
	return rows, true
}

// SetConversationList caches the inbox for a user
func (cc *ChatCache) SetConversationList(userID uint, rows []repository.ConversationRow) error {
	if cc == nil || cc.redis == nil {
		return nil
	}
	data, err := msgpack.Marshal(rows)
	if err != nil {
		return err
	}
	return cc.redis.Set(conversationListKey(userID), data, ConversationListTTL)
}

// GetUnreadTotal retrieves the cached unread total for a user
func (cc *ChatCache) GetUnreadTotal(userID uint) (int64, bool) {
	if cc == nil || cc.redis == nil {
		return 0, false
	}
	data, err := cc.redis.Get(unreadTotalKey(userID))
	if err != nil || data == nil {
		return 0, false
	}

	var total int64
	if err := msgpack.Unmarshal(data, &total); err != nil {
		return 0, false
	}
	return total, true
}

// SetUnreadTotal caches the unread total for a user
func (cc *ChatCache) SetUnreadTotal(userID uint, total int64) error {
	if cc == nil || cc.redis == nil {
		return nil
	}
	data, err := msgpack.Marshal(total)
	if err != nil {
		return err
	}
	return cc.redis.Set(unreadTotalKey(userID), data, UnreadTotalTTL)
}

// InvalidateUser drops both cached projections for one user.
func (cc *ChatCache) InvalidateUser(userID uint) error {
	if cc == nil || cc.redis == nil {
		return nil
	}
	if err := cc.redis.Delete(conversationListKey(userID)); err != nil {
		return err
	}
	return cc.redis.Delete(unreadTotalKey(userID))
}

// InvalidatePair drops the cached projections of both thread participants,
// called after a send or a mark-read touches their shared thread.
func (cc *ChatCache) InvalidatePair(userID1, userID2 uint) {
	_ = cc.InvalidateUser(userID1)
	_ = cc.InvalidateUser(userID2)
}
