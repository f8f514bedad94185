package service

import (
	"sort"
	"time"

	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
	"github.com/Chakshita2123/Campus-Marketplace/internal/repository"
	"gorm.io/gorm"
)

// MockThreadRepository is an in-memory ThreadRepositoryInterface that keeps
// the same semantics as the real one: sorted pairs, one thread per pair,
// store-assigned timestamps, unread counted per counterpart.
type MockThreadRepository struct {
	threads       map[uint]*models.Thread
	messages      map[uint]*models.Message
	nextThreadID  uint
	nextMessageID uint
}

func NewMockThreadRepository() *MockThreadRepository {
	return &MockThreadRepository{
		threads:       make(map[uint]*models.Thread),
		messages:      make(map[uint]*models.Message),
		nextThreadID:  1,
		nextMessageID: 1,
	}
}

func (m *MockThreadRepository) FindByPair(userID1, userID2 uint) (*models.Thread, error) {
	a, b := models.NormalizePair(userID1, userID2)
	for _, t := range m.threads {
		if t.ParticipantA == a && t.ParticipantB == b {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockThreadRepository) FindOrCreate(userID1, userID2 uint) (*models.Thread, bool, error) {
	if t, err := m.FindByPair(userID1, userID2); err == nil {
		return t, false, nil
	}
	a, b := models.NormalizePair(userID1, userID2)
	t := &models.Thread{
		ID:           m.nextThreadID,
		ParticipantA: a,
		ParticipantB: b,
		CreatedAt:    time.Now(),
		LastActivity: time.Now(),
	}
	m.nextThreadID++
	m.threads[t.ID] = t
	return t, true, nil
}

func (m *MockThreadRepository) ListForUser(userID uint) ([]models.Thread, error) {
	var result []models.Thread
	for _, t := range m.threads {
		if t.HasParticipant(userID) {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *MockThreadRepository) AppendMessage(message *models.Message) error {
	message.ID = m.nextMessageID
	m.nextMessageID++
	message.CreatedAt = time.Now()
	m.messages[message.ID] = message
	if t, ok := m.threads[message.ThreadID]; ok {
		t.LastActivity = message.CreatedAt
	}
	return nil
}

func (m *MockThreadRepository) MessagesForThread(threadID uint, limit int) ([]models.Message, error) {
	var result []models.Message
	for _, msg := range m.messages {
		if msg.ThreadID == threadID {
			result = append(result, *msg)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockThreadRepository) UnreadTotal(userID uint) (int64, error) {
	var total int64
	for _, msg := range m.messages {
		t, ok := m.threads[msg.ThreadID]
		if !ok || !t.HasParticipant(userID) {
			continue
		}
		if msg.SenderID != userID && !msg.IsRead {
			total++
		}
	}
	return total, nil
}

func (m *MockThreadRepository) UnreadByThread(userID uint) ([]models.ThreadUnread, error) {
	counts := make(map[uint]int64)
	for _, msg := range m.messages {
		t, ok := m.threads[msg.ThreadID]
		if !ok || !t.HasParticipant(userID) {
			continue
		}
		if msg.SenderID != userID && !msg.IsRead {
			counts[t.PeerOf(userID)]++
		}
	}
	result := make([]models.ThreadUnread, 0, len(counts))
	for peerID, count := range counts {
		result = append(result, models.ThreadUnread{PeerID: peerID, UnreadCount: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PeerID < result[j].PeerID })
	return result, nil
}

func (m *MockThreadRepository) ListConversations(userID uint) ([]repository.ConversationRow, error) {
	var result []repository.ConversationRow
	for _, t := range m.threads {
		if !t.HasParticipant(userID) {
			continue
		}
		row := repository.ConversationRow{
			ThreadID:     t.ID,
			PeerID:       t.PeerOf(userID),
			LastActivity: t.LastActivity,
		}
		for _, msg := range m.messages {
			if msg.ThreadID == t.ID && msg.SenderID != userID && !msg.IsRead {
				row.UnreadCount++
			}
		}
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].LastActivity.After(result[j].LastActivity) })
	return result, nil
}

func (m *MockThreadRepository) MarkThreadRead(threadID, counterpartID uint) (int64, error) {
	var changed int64
	for _, msg := range m.messages {
		if msg.ThreadID == threadID && msg.SenderID == counterpartID && !msg.IsRead {
			msg.IsRead = true
			changed++
		}
	}
	return changed, nil
}
