package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendChatRing(t *testing.T) {
	var history []ChatMessage
	for i := 0; i < 250; i++ {
		history = AppendChat(history, ChatMessage{
			Id:   fmt.Sprintf("msg-%d", i),
			Text: fmt.Sprintf("message %d", i),
		}, DefaultChatHistoryLimit)
	}

	assert.Len(t, history, DefaultChatHistoryLimit)
	assert.Equal(t, "msg-50", history[0].Id)
	assert.Equal(t, "msg-249", history[len(history)-1].Id)

	// eviction order is oldest first
	for i := 1; i < len(history); i++ {
		assert.Equal(t, fmt.Sprintf("msg-%d", 50+i), history[i].Id)
	}
}

func TestAppendChatNoLimit(t *testing.T) {
	var history []ChatMessage
	for i := 0; i < 10; i++ {
		history = AppendChat(history, ChatMessage{Id: fmt.Sprintf("%d", i)}, 0)
	}

	assert.Len(t, history, 10)
}
