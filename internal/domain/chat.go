package domain

// DefaultChatHistoryLimit bounds the per-room chat ring.
const DefaultChatHistoryLimit = 200

type ChatMessage struct {
	Id     string `json:"id"`
	UserId string `json:"userId"`
	Name   string `json:"name"`
	Text   string `json:"text"`
	Ts     int64  `json:"ts"`
}

// AppendChat appends msg and evicts the oldest messages beyond limit.
func AppendChat(history []ChatMessage, msg ChatMessage, limit int) []ChatMessage {
	history = append(history, msg)
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}

	return history
}
