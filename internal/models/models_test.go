package models

import (
	"testing"
	"time"
)

func TestNormalizePair(t *testing.T) {
	tests := []struct {
		name  string
		a, b  uint
		wantA uint
		wantB uint
	}{
		{"already sorted", 1, 2, 1, 2},
		{"reversed", 9, 3, 3, 9},
		{"equal", 7, 7, 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := NormalizePair(tt.a, tt.b)
			if a != tt.wantA || b != tt.wantB {
				t.Errorf("NormalizePair(%d, %d) = (%d, %d), want (%d, %d)", tt.a, tt.b, a, b, tt.wantA, tt.wantB)
			}
		})
	}
}

func TestThreadPeerOf(t *testing.T) {
	thread := &Thread{ParticipantA: 1, ParticipantB: 2}

	if got := thread.PeerOf(1); got != 2 {
		t.Errorf("PeerOf(1) = %d, want 2", got)
	}
	if got := thread.PeerOf(2); got != 1 {
		t.Errorf("PeerOf(2) = %d, want 1", got)
	}
	if !thread.HasParticipant(1) || !thread.HasParticipant(2) {
		t.Errorf("HasParticipant should be true for both participants")
	}
	if thread.HasParticipant(3) {
		t.Errorf("HasParticipant(3) should be false")
	}
}

func TestMessageToResponse(t *testing.T) {
	createdAt := time.Now()
	message := &Message{
		ID:        1,
		CreatedAt: createdAt,
		ClientID:  "client-123",
		ThreadID:  4,
		SenderID:  2,
		Body:      "hi",
		IsRead:    false,
	}

	response := message.ToResponse()

	if response.ID != message.ID {
		t.Errorf("ToResponse ID = %d, want %d", response.ID, message.ID)
	}
	if response.ThreadID != message.ThreadID {
		t.Errorf("ToResponse ThreadID = %d, want %d", response.ThreadID, message.ThreadID)
	}
	if response.SenderID != message.SenderID {
		t.Errorf("ToResponse SenderID = %d, want %d", response.SenderID, message.SenderID)
	}
	if response.Body != message.Body {
		t.Errorf("ToResponse Body = %q, want %q", response.Body, message.Body)
	}
	if response.IsRead {
		t.Errorf("ToResponse IsRead = true, want false")
	}
	if !response.CreatedAt.Equal(createdAt) {
		t.Errorf("ToResponse CreatedAt = %v, want %v", response.CreatedAt, createdAt)
	}
}

func TestProductDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		want     ProductStatus
	}{
		{"in stock", 5, ProductActive},
		{"single unit", 1, ProductActive},
		{"sold out", 0, ProductSoldOut},
		{"negative treated as sold out", -1, ProductSoldOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{Quantity: tt.quantity}
			p.DeriveStatus()
			if p.Status != tt.want {
				t.Errorf("DeriveStatus with quantity %d = %q, want %q", tt.quantity, p.Status, tt.want)
			}
		})
	}
}

func TestUserToResponse(t *testing.T) {
	now := time.Now()
	user := &User{
		ID:       1,
		Username: "alice",
		Email:    "alice@example.edu",
		FullName: "Alice Doe",
		Avatar:   "https://example.com/a.jpg",
		Role:     "user",
		IsOnline: true,
		LastSeen: &now,
	}

	response := user.ToResponse()

	if response.ID != user.ID {
		t.Errorf("ToResponse ID = %d, want %d", response.ID, user.ID)
	}
	if response.Username != user.Username {
		t.Errorf("ToResponse Username = %q, want %q", response.Username, user.Username)
	}
	if response.IsOnline != user.IsOnline {
		t.Errorf("ToResponse IsOnline = %v, want %v", response.IsOnline, user.IsOnline)
	}
	if response.LastSeen == nil {
		t.Errorf("ToResponse LastSeen is nil")
	}
}
