// Package model defines data structures for the chat application state.
package model

// ChatMetadata is the lightweight roster entry for a conversation. The full
// roster of these is kept resident at all times; message bodies are not.
type ChatMetadata struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Chat is a conversation with its full message body. At most one chat (the
// active one) is resident in memory with messages at any time.
type Chat struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Messages []Message `json:"messages"`
}

// Metadata returns the roster entry for this chat.
func (c Chat) Metadata() ChatMetadata {
	return ChatMetadata{ID: c.ID, Title: c.Title}
}

// CreateChatRequest is the request to create a new conversation.
type CreateChatRequest struct {
	Title string `json:"title,omitempty"`
}

// RenameChatRequest is the request to rename a conversation.
type RenameChatRequest struct {
	Title string `json:"title"`
}

// SaveChatRequest saves a feature-generated conversation (question/image
// chats) as a regular roster entry with its messages as the active body.
type SaveChatRequest struct {
	Title    string    `json:"title"`
	Messages []Message `json:"messages"`
}

// ListChatsResponse is the roster presented to the UI.
type ListChatsResponse struct {
	Chats    []ChatMetadata `json:"chats"`
	ActiveID string         `json:"active_id,omitempty"`
}
