package model

// Role represents the role of a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single conversation message. Messages are immutable
// once created; flows only append or slice the sequence, never edit in place.
type Message struct {
	Role      Role     `json:"role"`
	Content   string   `json:"content"`
	Images    []string `json:"images,omitempty"` // base64-encoded attachments
	Timestamp int64    `json:"timestamp"`        // epoch milliseconds
}

// SendMessageRequest is the request to send a new message in the active chat.
type SendMessageRequest struct {
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

// SendMessageResponse is the response after a send/regenerate/explain flow.
type SendMessageResponse struct {
	Messages []Message `json:"messages"`
}
