package models

import "time"

// ChatRole is the author of a chat turn. The assistant side uses
// "model" to match the upstream generative API's role vocabulary.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage is one turn of an assistant conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// SavedChat is an assistant transcript pinned to an account.
type SavedChat struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Messages []ChatMessage `json:"messages"`
	SavedAt  time.Time     `json:"savedAt"`
}
