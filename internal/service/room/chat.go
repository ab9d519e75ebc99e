package room

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/syncroom/server/internal/domain"
	roomRepo "github.com/syncroom/server/internal/repository/room"
)

type PostChatMessageParams struct {
	RoomId string
	UserId string
	Text   string
}

type PostChatMessageResponse struct {
	Message domain.ChatMessage
}

// PostChatMessage appends a message to the room's bounded history and
// broadcasts it to every member, the sender included. Whitespace-only text
// is rejected before anything is stored.
func (s *service) PostChatMessage(ctx context.Context, params *PostChatMessageParams) (PostChatMessageResponse, error) {
	text := strings.TrimSpace(params.Text)
	if text == "" {
		return PostChatMessageResponse{}, ErrEmptyMessage
	}

	unlock := s.lockRoom(params.RoomId)
	defer unlock()

	state, err := s.store.GetRoom(ctx, params.RoomId)
	if errors.Is(err, roomRepo.ErrRoomNotFound) {
		return PostChatMessageResponse{}, ErrRoomNotFound
	}
	if err != nil {
		return PostChatMessageResponse{}, fmt.Errorf("failed to get room: %w", err)
	}

	user, ok := state.State.GetUser(params.UserId)
	if !ok {
		return PostChatMessageResponse{}, ErrUserNotFound
	}

	msg := domain.ChatMessage{
		Id:     uuid.NewString(),
		UserId: user.Id,
		Name:   user.Name,
		Text:   text,
		Ts:     time.Now().UnixMilli(),
	}
	state.Chat = domain.AppendChat(state.Chat, msg, s.cfg.ChatHistoryLimit)

	if err := s.store.SetRoom(ctx, params.RoomId, state); err != nil {
		return PostChatMessageResponse{}, fmt.Errorf("failed to set room: %w", err)
	}

	s.broadcast(ctx, &state.State, &Output{
		Type:    "chatNew",
		Payload: msg,
	})

	return PostChatMessageResponse{Message: msg}, nil
}
