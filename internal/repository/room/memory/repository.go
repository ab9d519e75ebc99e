// Package memory holds room state in process memory. This is the default
// backend: one server process owns all rooms and nothing survives restart.
package memory

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/syncroom/server/internal/domain"
	"github.com/syncroom/server/internal/repository/room"
)

type repo struct {
	mu     sync.RWMutex
	rooms  map[string]domain.Room
	users  int
	logger *slog.Logger
}

func NewRepo(logger *slog.Logger) *repo {
	return &repo{
		rooms:  make(map[string]domain.Room),
		logger: logger,
	}
}

func (r *repo) GetRoom(_ context.Context, roomId string) (domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.rooms[roomId]
	if !ok {
		return domain.Room{}, room.ErrRoomNotFound
	}

	return state.Clone(), nil
}

func (r *repo) RoomExists(_ context.Context, roomId string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rooms[roomId]
	return ok, nil
}

func (r *repo) SetRoom(ctx context.Context, roomId string, state domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rooms[roomId] = state.Clone()
	r.logger.DebugContext(ctx, "room stored", "room_id", roomId, "version", state.State.Version)
	return nil
}

func (r *repo) DeleteRoom(ctx context.Context, roomId string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[roomId]; !ok {
		return false, nil
	}

	delete(r.rooms, roomId)
	r.logger.DebugContext(ctx, "room deleted", "room_id", roomId)
	return true, nil
}

func (r *repo) ListRooms(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := maps.Keys(r.rooms)
	slices.Sort(ids)
	return ids, nil
}

func (r *repo) ListPublicRooms(_ context.Context) ([]domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := maps.Keys(r.rooms)
	slices.Sort(ids)

	public := make([]domain.Room, 0)
	for _, id := range ids {
		if state := r.rooms[id]; state.State.IsPublic {
			public = append(public, state.Clone())
		}
	}

	return public, nil
}

func (r *repo) CountRooms(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rooms), nil
}

func (r *repo) CountUsers(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.users, nil
}

func (r *repo) IncUsers(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users++
	return r.users, nil
}

// DecUsers clamps at zero so unbalanced disconnect paths can never drive
// the counter negative.
func (r *repo) DecUsers(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.users > 0 {
		r.users--
	}

	return r.users, nil
}

func (r *repo) Wipe(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rooms = make(map[string]domain.Room)
	r.users = 0
	r.logger.InfoContext(ctx, "store wiped")
	return nil
}
