package ai

import (
	"fmt"
	"testing"

	"github.com/rahmasleam/NexusMenaV2/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowContentsBound(t *testing.T) {
	store := newSessionStore()
	conv := store.open("")

	// 15 user/model pairs
	for i := 0; i < 15; i++ {
		store.append(conv, models.RoleUser, fmt.Sprintf("question %d", i))
		store.append(conv, models.RoleModel, fmt.Sprintf("answer %d", i))
	}

	history := store.history(conv)
	require.Len(t, history, 30, "full transcript is retained")

	contents := windowContents(history)
	require.Len(t, contents, historyWindow)

	// Oldest-first ordering: the window holds pairs 10..14.
	assert.Equal(t, "question 10", contents[0].Parts[0].Text)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "answer 14", contents[len(contents)-1].Parts[0].Text)
	assert.Equal(t, "model", contents[len(contents)-1].Role)
}

func TestWindowContentsShortHistory(t *testing.T) {
	history := []models.ChatMessage{
		{Role: models.RoleUser, Content: "hi"},
		{Role: models.RoleModel, Content: "hello"},
	}
	contents := windowContents(history)
	require.Len(t, contents, 2)
	assert.Equal(t, "hi", contents[0].Parts[0].Text)
}

func TestSessionStoreOpen(t *testing.T) {
	store := newSessionStore()

	a := store.open("")
	b := store.open(a.id)
	assert.Same(t, a, b, "known id reuses the conversation")

	c := store.open("nonexistent")
	assert.NotEqual(t, a.id, c.id, "unknown id starts fresh")
}

func TestValidateChatInput(t *testing.T) {
	assert.NoError(t, validateChatInput("hello"))
	assert.ErrorIs(t, validateChatInput(""), ErrBlankMessage)
	assert.ErrorIs(t, validateChatInput("   \n\t "), ErrBlankMessage)
}
