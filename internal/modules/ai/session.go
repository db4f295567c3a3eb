package ai

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rahmasleam/NexusMenaV2/internal/models"
)

// historyWindow bounds how many past turns are forwarded upstream. The
// full transcript stays in the session; only the newest turns travel.
const historyWindow = 10

var ErrBlankMessage = errors.New("ai: message is empty")

// conversation is one assistant chat transcript.
type conversation struct {
	id       string
	messages []models.ChatMessage
}

// sessionStore keeps assistant conversations in process memory.
type sessionStore struct {
	mu    sync.Mutex
	convs map[string]*conversation
}

func newSessionStore() *sessionStore {
	return &sessionStore{convs: make(map[string]*conversation)}
}

// open returns the conversation for id, creating one when id is empty
// or unknown.
func (s *sessionStore) open(id string) *conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if conv, ok := s.convs[id]; ok {
			return conv
		}
	}
	conv := &conversation{id: uuid.New().String()}
	s.convs[conv.id] = conv
	return conv
}

// append records a turn on the transcript.
func (s *sessionStore) append(conv *conversation, role models.ChatRole, content string) models.ChatMessage {
	msg := models.ChatMessage{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
	s.mu.Lock()
	conv.messages = append(conv.messages, msg)
	s.mu.Unlock()
	return msg
}

// history returns a copy of the full transcript.
func (s *sessionStore) history(conv *conversation) []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(conv.messages))
	copy(out, conv.messages)
	return out
}

// windowContents maps the newest turns of a transcript onto the wire
// format, oldest first.
func windowContents(history []models.ChatMessage) []geminiContent {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	contents := make([]geminiContent, 0, len(history))
	for _, msg := range history {
		contents = append(contents, geminiContent{
			Role:  string(msg.Role),
			Parts: []geminiPart{{Text: msg.Content}},
		})
	}
	return contents
}

// validateChatInput rejects blank messages before any network call.
func validateChatInput(message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrBlankMessage
	}
	return nil
}
