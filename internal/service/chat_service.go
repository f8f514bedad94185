package service

import (
	"errors"
	"strings"

	"github.com/Chakshita2123/Campus-Marketplace/internal/models"
	"github.com/Chakshita2123/Campus-Marketplace/internal/repository"
	"github.com/Chakshita2123/Campus-Marketplace/internal/validation"
	"gorm.io/gorm"
)

// ChatService owns the conversation flow: pair resolution, message append,
// unread computation and read marking. Real-time fan-out lives one layer up;
// everything here is the durable side.
type ChatService struct {
	threadRepo repository.ThreadRepositoryInterface
}

func NewChatService(threadRepo repository.ThreadRepositoryInterface) *ChatService {
	return &ChatService{threadRepo: threadRepo}
}

// StartThread resolves the single thread between two users, order
// independent, creating an empty one on first contact. The bool reports
// whether this call created the thread.
func (s *ChatService) StartThread(userID, peerID uint) (*models.Thread, bool, error) {
	if userID == 0 || peerID == 0 {
		return nil, false, ErrMissingParticipant
	}
	if userID == peerID {
		return nil, false, ErrSelfConversation
	}
	return s.threadRepo.FindOrCreate(userID, peerID)
}

type SendMessageInput struct {
	RecipientID uint   `json:"recipient_id"`
	Body        string `json:"body"`
	ClientID    string `json:"client_id"`
}

// SendMessage appends one message: resolve the thread (creating if needed),
// persist the message unread with a store-assigned timestamp, bump the
// thread's last activity. All input checks happen before any mutation.
func (s *ChatService) SendMessage(senderID uint, input SendMessageInput) (*models.Message, *models.Thread, error) {
	if senderID == 0 || input.RecipientID == 0 {
		return nil, nil, ErrMissingParticipant
	}
	if senderID == input.RecipientID {
		return nil, nil, ErrSelfConversation
	}
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, nil, ErrEmptyMessage
	}
	if len(body) > validation.MaxMessageLength() {
		return nil, nil, ErrMessageTooLong
	}

	thread, _, err := s.threadRepo.FindOrCreate(senderID, input.RecipientID)
	if err != nil {
		return nil, nil, err
	}

	message := &models.Message{
		ClientID: input.ClientID,
		ThreadID: thread.ID,
		SenderID: senderID,
		Body:     body,
	}
	if err := s.threadRepo.AppendMessage(message); err != nil {
		return nil, nil, err
	}
	return message, thread, nil
}

// History returns the chronological messages of the pair's thread. A pair
// that never talked gets an empty history, not an error.
func (s *ChatService) History(userID, peerID uint, limit int) ([]models.Message, error) {
	if userID == 0 || peerID == 0 {
		return nil, ErrMissingParticipant
	}
	thread, err := s.threadRepo.FindByPair(userID, peerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.Message{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.threadRepo.MessagesForThread(thread.ID, limit)
}

// UnreadTotal recomputes the user's unread total from the store.
func (s *ChatService) UnreadTotal(userID uint) (int64, error) {
	if userID == 0 {
		return 0, ErrMissingParticipant
	}
	return s.threadRepo.UnreadTotal(userID)
}

// UnreadSummary returns the per-thread unread counts together with their
// sum. Total always equals the sum of the per-chat entries since both come
// from the same scan.
func (s *ChatService) UnreadSummary(userID uint) (*models.UnreadSummary, error) {
	if userID == 0 {
		return nil, ErrMissingParticipant
	}
	rows, err := s.threadRepo.UnreadByThread(userID)
	if err != nil {
		return nil, err
	}

	summary := &models.UnreadSummary{PerChat: rows}
	for _, row := range rows {
		summary.Total += row.UnreadCount
	}
	if summary.PerChat == nil {
		summary.PerChat = []models.ThreadUnread{}
	}
	return summary, nil
}

// ListConversations returns the user's inbox: one row per thread with the
// peer profile, unread count and last activity.
func (s *ChatService) ListConversations(userID uint) ([]repository.ConversationRow, error) {
	if userID == 0 {
		return nil, ErrMissingParticipant
	}
	return s.threadRepo.ListConversations(userID)
}

// MarkRead flips every unread message from the counterpart in the shared
// thread to read, returning how many changed. Idempotent: with nothing left
// unread, or no thread at all, it reports zero and succeeds.
func (s *ChatService) MarkRead(userID, peerID uint) (int64, error) {
	if userID == 0 || peerID == 0 {
		return 0, ErrMissingParticipant
	}
	thread, err := s.threadRepo.FindByPair(userID, peerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return s.threadRepo.MarkThreadRead(thread.ID, peerID)
}
