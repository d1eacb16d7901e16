package models

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderBot  Sender = "bot"
	SenderUser Sender = "user"
)

// ChatMessage is one entry of the append-only conversation log.
type ChatMessage struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Sender  Sender   `json:"sender"`
	Options []string `json:"options,omitempty"`
}

// ChatRequest is the payload of POST /api/chat/sessions/:id/messages.
type ChatRequest struct {
	Text string `json:"text" binding:"required"`
}

// ChatStartRequest optionally identifies a known user when a session opens.
type ChatStartRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ChatResponse is returned for every chat turn.
type ChatResponse struct {
	SessionID   string            `json:"sessionId"`
	State       ConversationState `json:"state"`
	Messages    []ChatMessage     `json:"messages"`
	RedirectURL string            `json:"redirectUrl,omitempty"`
}
