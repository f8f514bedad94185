package models

import (
	"time"
)

// Thread is the single conversation between two participants. The pair is
// stored sorted (ParticipantA < ParticipantB) and carries a unique composite
// index, so two concurrent first-contact sends cannot create a duplicate
// thread: the loser gets a duplicate-key error and re-runs the lookup.
type Thread struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ParticipantA uint `gorm:"not null;uniqueIndex:idx_thread_pair,priority:1;index" json:"participant_a"`
	ParticipantB uint `gorm:"not null;uniqueIndex:idx_thread_pair,priority:2" json:"participant_b"`

	LastActivity time.Time `gorm:"index" json:"last_activity"`

	Messages []Message `gorm:"foreignKey:ThreadID" json:"-"`
}

// NormalizePair returns the two user ids in canonical (ascending) order.
func NormalizePair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// HasParticipant reports whether the user is one of the two participants.
func (t *Thread) HasParticipant(userID uint) bool {
	return t.ParticipantA == userID || t.ParticipantB == userID
}

// PeerOf returns the other participant of the thread.
func (t *Thread) PeerOf(userID uint) uint {
	if t.ParticipantA == userID {
		return t.ParticipantB
	}
	return t.ParticipantA
}

// Message is one unit of text inside a Thread. Append-only: messages are
// never edited or deleted, and the read flag only ever moves false -> true.
type Message struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Optional client-supplied id, used to correlate websocket acks.
	ClientID string `gorm:"type:varchar(36)" json:"client_id"`

	ThreadID uint   `gorm:"not null;index" json:"thread_id"`
	SenderID uint   `gorm:"not null;index" json:"sender_id"`
	Sender   User   `gorm:"foreignKey:SenderID" json:"-"`
	Body     string `gorm:"type:text;not null" json:"body"`
	IsRead   bool   `gorm:"not null;default:false;index" json:"read"`
}

type MessageResponse struct {
	ID        uint      `json:"id"`
	ClientID  string    `json:"client_id,omitempty"`
	ThreadID  uint      `json:"thread_id"`
	SenderID  uint      `json:"sender_id"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *Message) ToResponse() MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		ClientID:  m.ClientID,
		ThreadID:  m.ThreadID,
		SenderID:  m.SenderID,
		Body:      m.Body,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}

// ThreadUnread is one entry of the per-thread unread listing: the peer and
// how many of their messages the user has not read yet.
type ThreadUnread struct {
	PeerID      uint  `json:"peer_id"`
	UnreadCount int64 `json:"unread_count"`
}

// UnreadSummary is the full unread report for one user. Total always equals
// the sum of the per-chat counts; both are recomputed from the store.
type UnreadSummary struct {
	Total   int64          `json:"total"`
	PerChat []ThreadUnread `json:"per_chat"`
}
