package repository

import (
	"errors"
	"time"

	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
	"gorm.io/gorm"
)

type ThreadRepository struct {
	db *gorm.DB
}

func NewThreadRepository(db *gorm.DB) *ThreadRepository {
	return &ThreadRepository{db: db}
}

// FindByPair returns the thread for an unordered participant pair.
func (r *ThreadRepository) FindByPair(userID1, userID2 uint) (*models.Thread, error) {
	a, b := models.NormalizePair(userID1, userID2)
	var thread models.Thread
	err := r.db.Where("participant_a = ? AND participant_b = ?", a, b).First(&thread).Error
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

// FindOrCreate resolves the single thread between two users, creating it if
// needed. The unique index on the sorted pair closes the check-then-act race:
// if a concurrent call wins the insert, the duplicate-key error is treated as
// "thread already exists" and the lookup is retried. The second return value
// reports whether this call created the thread.
func (r *ThreadRepository) FindOrCreate(userID1, userID2 uint) (*models.Thread, bool, error) {
	if thread, err := r.FindByPair(userID1, userID2); err == nil {
		return thread, false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	a, b := models.NormalizePair(userID1, userID2)
	thread := &models.Thread{
		ParticipantA: a,
		ParticipantB: b,
		LastActivity: time.Now(),
	}
	err := r.db.Create(thread).Error
	if err == nil {
		return thread, true, nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		thread, ferr := r.FindByPair(userID1, userID2)
		return thread, false, ferr
	}
	return nil, false, err
}

// ListForUser returns the user's threads, most recently active first.
func (r *ThreadRepository) ListForUser(userID uint) ([]models.Thread, error) {
	var threads []models.Thread
	err := r.db.
		Where("participant_a = ? OR participant_b = ?", userID, userID).
		Order("last_activity DESC").
		Find(&threads).Error
	return threads, err
}

// AppendMessage persists a message and bumps the thread's last activity in
// one transaction. The message's CreatedAt is assigned by the store.
func (r *ThreadRepository) AppendMessage(message *models.Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&models.Thread{}).
			Where("id = ?", message.ThreadID).
			Update("last_activity", message.CreatedAt).Error
	})
}

// MessagesForThread returns the thread's messages in chronological order.
func (r *ThreadRepository) MessagesForThread(threadID uint, limit int) ([]models.Message, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	var messages []models.Message
	err := r.db.
		Where("thread_id = ?", threadID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

// UnreadTotal counts, across all of the user's threads, the messages that
// are addressed to them and still unread. Computed from the store on every
// call; never maintained incrementally.
func (r *ThreadRepository) UnreadTotal(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Joins("JOIN threads ON threads.id = messages.thread_id").
		Where("threads.participant_a = ? OR threads.participant_b = ?", userID, userID).
		Where("messages.sender_id <> ? AND messages.is_read = false", userID).
		Count(&count).Error
	return count, err
}

// UnreadByThread returns one row per thread of the user with that thread's
// unread count, newest activity first. Threads with no unread messages are
// included with a zero count so the listing doubles as the conversation list.
func (r *ThreadRepository) UnreadByThread(userID uint) ([]models.ThreadUnread, error) {
	var rows []models.ThreadUnread
	err := r.db.Raw(`
SELECT
	CASE WHEN t.participant_a = ? THEN t.participant_b ELSE t.participant_a END AS peer_id,
	COUNT(m.id) FILTER (WHERE m.sender_id <> ? AND m.is_read = false) AS unread_count
FROM threads t
LEFT JOIN messages m ON m.thread_id = t.id
WHERE t.participant_a = ? OR t.participant_b = ?
GROUP BY t.id
ORDER BY t.last_activity DESC
`, userID, userID, userID, userID).Scan(&rows).Error
	return rows, err
}

// ConversationRow is a denormalized listing row: the peer's profile plus the
// thread's unread count and last activity, for the inbox view.
type ConversationRow struct {
	ThreadID     uint       `gorm:"column:thread_id" json:"thread_id"`
	PeerID       uint       `gorm:"column:peer_id" json:"peer_id"`
	PeerUsername string     `gorm:"column:peer_username" json:"peer_username"`
	PeerFullName string     `gorm:"column:peer_full_name" json:"peer_full_name"`
	PeerAvatar   string     `gorm:"column:peer_avatar" json:"peer_avatar"`
	PeerIsOnline bool       `gorm:"column:peer_is_online" json:"peer_is_online"`
	PeerLastSeen *time.Time `gorm:"column:peer_last_seen" json:"peer_last_seen"`
	UnreadCount  int64      `gorm:"column:unread_count" json:"unread_count"`
	LastActivity time.Time  `gorm:"column:last_activity" json:"last_activity"`
}

// ListConversations builds the inbox in a single query: no N+1, peer profile
// joined, unread counted per thread.
func (r *ThreadRepository) ListConversations(userID uint) ([]ConversationRow, error) {
	var rows []ConversationRow
	err := r.db.Raw(`
WITH mine AS (
	SELECT
		t.id AS thread_id,
		CASE WHEN t.participant_a = ? THEN t.participant_b ELSE t.participant_a END AS peer_id,
		t.last_activity,
		COUNT(m.id) FILTER (WHERE m.sender_id <> ? AND m.is_read = false) AS unread_count
	FROM threads t
	LEFT JOIN messages m ON m.thread_id = t.id
	WHERE t.participant_a = ? OR t.participant_b = ?
	GROUP BY t.id
)
SELECT
	mine.thread_id,
	mine.peer_id,
	peer.username AS peer_username,
	peer.full_name AS peer_full_name,
	peer.avatar AS peer_avatar,
	peer.is_online AS peer_is_online,
	peer.last_seen AS peer_last_seen,
	mine.unread_count,
	mine.last_activity
FROM mine
JOIN users peer ON peer.id = mine.peer_id
ORDER BY mine.last_activity DESC
`, userID, userID, userID, userID).Scan(&rows).Error
	return rows, err
}

// MarkThreadRead flips read=true on every message in the thread that was
// sent by the counterpart and is still unread, and returns how many changed.
// Re-running with nothing left unread updates zero rows and is not an error.
func (r *ThreadRepository) MarkThreadRead(threadID, counterpartID uint) (int64, error) {
	res := r.db.Model(&models.Message{}).
		Where("thread_id = ? AND sender_id = ? AND is_read = false", threadID, counterpartID).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
