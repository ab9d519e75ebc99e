package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/syncroom/server/internal/domain"
	roomRepo "github.com/syncroom/server/internal/repository/room"
)

type UpdatePlayerStateParams struct {
	RoomId       string
	UserId       string
	Playing      bool
	Paused       bool
	Progress     float64
	Duration     float64
	Volume       float64
	Muted        bool
	PlaybackRate float64
	Loop         bool
	Fullscreen   bool
}

type UpdatePlayerStateResponse struct {
	Version int64
}

// UpdatePlayerState replaces the playback portion of the target state. Only
// the room owner may do this; the playlist is untouched and changes only
// through UpdatePlaylist.
func (s *service) UpdatePlayerState(ctx context.Context, params *UpdatePlayerStateParams) (UpdatePlayerStateResponse, error) {
	unlock := s.lockRoom(params.RoomId)
	defer unlock()

	state, err := s.store.GetRoom(ctx, params.RoomId)
	if errors.Is(err, roomRepo.ErrRoomNotFound) {
		return UpdatePlayerStateResponse{}, ErrRoomNotFound
	}
	if err != nil {
		return UpdatePlayerStateResponse{}, fmt.Errorf("failed to get room: %w", err)
	}

	user, ok := state.State.GetUser(params.UserId)
	if !ok {
		return UpdatePlayerStateResponse{}, ErrUserNotFound
	}
	if !user.IsOwner {
		return UpdatePlayerStateResponse{}, ErrNotOwner
	}

	state.State.TargetState = domain.TargetState{
		Playlist:     state.State.TargetState.Playlist,
		Playing:      params.Playing,
		Paused:       params.Paused,
		Progress:     params.Progress,
		Duration:     params.Duration,
		Volume:       params.Volume,
		Muted:        params.Muted,
		PlaybackRate: params.PlaybackRate,
		Loop:         params.Loop,
		Fullscreen:   params.Fullscreen,
	}
	state.State.Version++

	if err := s.store.SetRoom(ctx, params.RoomId, state); err != nil {
		return UpdatePlayerStateResponse{}, fmt.Errorf("failed to set room: %w", err)
	}

	s.broadcastUpdate(ctx, &state.State)

	return UpdatePlayerStateResponse{Version: state.State.Version}, nil
}
