package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/syncroom/server/internal/domain"
	roomRepo "github.com/syncroom/server/internal/repository/room"
)

type JoinRoomParams struct {
	RoomId   string
	Name     string
	IsPublic bool
	Conn     *websocket.Conn
}

type JoinRoomResponse struct {
	User domain.User
	Room domain.Room
}

// JoinRoom adds a user to a room, creating the room on first join. The
// first member becomes the owner; IsPublic only takes effect at creation.
// The joiner receives the chat history and every member, the joiner
// included, receives a full snapshot. A failure after the member has been
// stored rolls the join back so no ghost member or leaked presence count
// survives the error.
func (s *service) JoinRoom(ctx context.Context, params *JoinRoomParams) (JoinRoomResponse, error) {
	unlock := s.lockRoom(params.RoomId)
	defer unlock()

	state, err := s.store.GetRoom(ctx, params.RoomId)
	created := false
	switch {
	case errors.Is(err, roomRepo.ErrRoomNotFound):
		state = domain.NewRoom(params.RoomId, params.IsPublic)
		created = true
	case err != nil:
		return JoinRoomResponse{}, fmt.Errorf("failed to get room: %w", err)
	}

	prev := state.Clone()

	user := domain.User{
		Id:      uuid.NewString(),
		Name:    params.Name,
		IsOwner: len(state.State.Users) == 0,
	}
	if user.IsOwner {
		state.State.OwnerName = user.Name
	}

	state.State.Users = append(state.State.Users, user)
	state.State.Version++

	if err := s.connRepo.Add(params.Conn, user.Id); err != nil {
		return JoinRoomResponse{}, fmt.Errorf("failed to add connection: %w", err)
	}

	if err := s.store.SetRoom(ctx, params.RoomId, state); err != nil {
		s.connRepo.RemoveByUserId(user.Id)
		return JoinRoomResponse{}, fmt.Errorf("failed to set room: %w", err)
	}

	if _, err := s.store.IncUsers(ctx); err != nil {
		s.undoJoin(ctx, params.RoomId, user.Id, created, prev, false)
		return JoinRoomResponse{}, fmt.Errorf("failed to increment user count: %w", err)
	}

	if err := s.connRepo.Send(params.Conn, &Output{
		Type:    "chatHistory",
		Payload: state.Chat,
	}); err != nil {
		s.undoJoin(ctx, params.RoomId, user.Id, created, prev, true)
		return JoinRoomResponse{}, fmt.Errorf("failed to send chat history: %w", err)
	}

	s.broadcastUpdate(ctx, &state.State)

	s.logger.InfoContext(ctx, "user joined room",
		"room_id", params.RoomId, "user_id", user.Id, "is_owner", user.IsOwner)

	return JoinRoomResponse{User: user, Room: state}, nil
}

// undoJoin reverses a partially applied join. Callers hold the room lock.
// A room that only exists because of the failed join is deleted outright;
// otherwise the pre-join state is restored.
func (s *service) undoJoin(ctx context.Context, roomId, userId string, created bool, prev domain.Room, decCounter bool) {
	s.connRepo.RemoveByUserId(userId)

	if created {
		if _, err := s.store.DeleteRoom(ctx, roomId); err != nil {
			s.logger.WarnContext(ctx, "failed to undo room creation", "room_id", roomId, "error", err)
		}
	} else if err := s.store.SetRoom(ctx, roomId, prev); err != nil {
		s.logger.WarnContext(ctx, "failed to restore room state", "room_id", roomId, "error", err)
	}

	if decCounter {
		if _, err := s.store.DecUsers(ctx); err != nil {
			s.logger.WarnContext(ctx, "failed to restore user count", "room_id", roomId, "error", err)
		}
	}
}

type DisconnectUserParams struct {
	RoomId string
	UserId string
}

// DisconnectUser removes a user from the room's member set and the global
// presence count. If the owner leaves, ownership passes to the earliest
// remaining joiner. Empty rooms are retained until explicitly deleted.
func (s *service) DisconnectUser(ctx context.Context, params *DisconnectUserParams) error {
	unlock := s.lockRoom(params.RoomId)
	defer unlock()

	s.connRepo.RemoveByUserId(params.UserId)

	state, err := s.store.GetRoom(ctx, params.RoomId)
	if errors.Is(err, roomRepo.ErrRoomNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}

	removed := false
	wasOwner := false
	users := make([]domain.User, 0, len(state.State.Users))
	for _, u := range state.State.Users {
		if u.Id == params.UserId {
			removed = true
			wasOwner = u.IsOwner
			continue
		}
		users = append(users, u)
	}
	if !removed {
		return nil
	}

	state.State.Users = users
	if wasOwner && len(users) > 0 {
		state.State.Users[0].IsOwner = true
		state.State.OwnerName = state.State.Users[0].Name
	}
	state.State.Version++

	if err := s.store.SetRoom(ctx, params.RoomId, state); err != nil {
		return fmt.Errorf("failed to set room: %w", err)
	}

	if _, err := s.store.DecUsers(ctx); err != nil {
		return fmt.Errorf("failed to decrement user count: %w", err)
	}

	s.broadcastUpdate(ctx, &state.State)

	s.logger.InfoContext(ctx, "user left room",
		"room_id", params.RoomId, "user_id", params.UserId)

	return nil
}

func (s *service) GetRoomState(ctx context.Context, roomId string) (domain.RoomState, error) {
	state, err := s.store.GetRoom(ctx, roomId)
	if errors.Is(err, roomRepo.ErrRoomNotFound) {
		return domain.RoomState{}, ErrRoomNotFound
	}
	if err != nil {
		return domain.RoomState{}, fmt.Errorf("failed to get room: %w", err)
	}

	return state.State, nil
}

func (s *service) ListPublicRooms(ctx context.Context) ([]RoomSummary, error) {
	rooms, err := s.store.ListPublicRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list public rooms: %w", err)
	}

	summaries := make([]RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		summaries = append(summaries, RoomSummary{
			Id:          r.State.Id,
			OwnerName:   r.State.OwnerName,
			MemberCount: len(r.State.Users),
		})
	}

	return summaries, nil
}

func (s *service) DeleteRoom(ctx context.Context, roomId string) (bool, error) {
	unlock := s.lockRoom(roomId)
	defer unlock()

	deleted, err := s.store.DeleteRoom(ctx, roomId)
	if err != nil {
		return false, fmt.Errorf("failed to delete room: %w", err)
	}

	return deleted, nil
}

func (s *service) Wipe(ctx context.Context) error {
	if err := s.store.Wipe(ctx); err != nil {
		return fmt.Errorf("failed to wipe store: %w", err)
	}

	return nil
}

func (s *service) GetStats(ctx context.Context) (Stats, error) {
	rooms, err := s.store.CountRooms(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count rooms: %w", err)
	}

	users, err := s.store.CountUsers(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count users: %w", err)
	}

	return Stats{Rooms: rooms, Users: users}, nil
}

// GenerateRoomId produces a lowercase alphabetic room identifier.
func (s *service) GenerateRoomId() string {
	return s.generator.GenerateRandomString(s.cfg.RoomIdLength)
}
