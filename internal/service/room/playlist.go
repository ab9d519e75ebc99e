package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/syncroom/server/internal/domain"
	roomRepo "github.com/syncroom/server/internal/repository/room"
)

type UpdatePlaylistParams struct {
	RoomId   string
	UserId   string
	Playlist domain.Playlist
}

type UpdatePlaylistResponse struct {
	// NoOp is set when the submission equals the current playlist; nothing
	// was stored or broadcast, which stops client echo loops at the hub.
	NoOp    bool
	Version int64
}

// UpdatePlaylist replaces the room's playlist wholesale, last writer wins.
// Clients submit the full rebased value; the hub validates it, drops
// structural no-ops, bumps the room version and broadcasts a snapshot.
func (s *service) UpdatePlaylist(ctx context.Context, params *UpdatePlaylistParams) (UpdatePlaylistResponse, error) {
	if err := params.Playlist.Validate(); err != nil {
		return UpdatePlaylistResponse{}, fmt.Errorf("%w: %w", ErrInvalidPlaylist, err)
	}

	unlock := s.lockRoom(params.RoomId)
	defer unlock()

	state, err := s.store.GetRoom(ctx, params.RoomId)
	if errors.Is(err, roomRepo.ErrRoomNotFound) {
		return UpdatePlaylistResponse{}, ErrRoomNotFound
	}
	if err != nil {
		return UpdatePlaylistResponse{}, fmt.Errorf("failed to get room: %w", err)
	}

	if !state.State.HasUser(params.UserId) {
		return UpdatePlaylistResponse{}, ErrUserNotFound
	}

	if state.State.TargetState.Playlist.Equal(params.Playlist) {
		return UpdatePlaylistResponse{NoOp: true, Version: state.State.Version}, nil
	}

	state.State.TargetState.Playlist = params.Playlist.Normalize()
	state.State.Version++

	if err := s.store.SetRoom(ctx, params.RoomId, state); err != nil {
		return UpdatePlaylistResponse{}, fmt.Errorf("failed to set room: %w", err)
	}

	s.broadcastUpdate(ctx, &state.State)

	return UpdatePlaylistResponse{Version: state.State.Version}, nil
}
