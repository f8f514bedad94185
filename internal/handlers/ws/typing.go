package ws

// MessageTyping relays a typing indicator to the peer. Pure presence
// signal: nothing is stored, and an offline peer just never sees it.
type MessageTyping struct {
	PeerID uint `json:"peer_id"`
	Typing bool `json:"typing"`
}

func (msg *MessageTyping) GetType() string {
	return "typing"
}

func (msg *MessageTyping) Process(ctx *MessageContext) error {
	ctx.Hub.SendToUser(msg.PeerID, map[string]interface{}{
		"type": "typing",
		"payload": map[string]interface{}{
			"user_id": ctx.UserID,
			"typing":  msg.Typing,
		},
	})
	return nil
}
