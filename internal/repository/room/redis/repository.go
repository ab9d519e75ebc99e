// Package redis backs the room store with redis so the protocol layer can
// later be fronted by more than one process. Room aggregates are stored as
// JSON values; cross-process mutation ordering is not provided here and
// still requires a single writing instance per room.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slices"

	"github.com/syncroom/server/internal/domain"
	roomRepo "github.com/syncroom/server/internal/repository/room"
)

const (
	roomKeyPrefix = "room:"
	roomsSetKey   = "rooms"
	userCountKey  = "users:count"
)

// decrClamp decrements the user counter and clamps it at zero in one
// atomic step. redis.Script handles EVALSHA with a NOSCRIPT fallback, so
// no load step at construction is needed.
var decrClamp = redis.NewScript(`
	local value = redis.call('DECR', KEYS[1])
	if value < 0 then
		redis.call('SET', KEYS[1], 0)
		return 0
	end
	return value
`)

type repo struct {
	rc     *redis.Client
	logger *slog.Logger
}

func NewRepo(rc *redis.Client, logger *slog.Logger) *repo {
	return &repo{
		rc:     rc,
		logger: logger,
	}
}

func (r repo) roomKey(roomId string) string {
	return roomKeyPrefix + roomId
}

func (r repo) GetRoom(ctx context.Context, roomId string) (domain.Room, error) {
	raw, err := r.rc.Get(ctx, r.roomKey(roomId)).Result()
	if err == redis.Nil {
		return domain.Room{}, roomRepo.ErrRoomNotFound
	}
	if err != nil {
		return domain.Room{}, fmt.Errorf("failed to get room: %w", err)
	}

	var state domain.Room
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return domain.Room{}, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	return state, nil
}

func (r repo) RoomExists(ctx context.Context, roomId string) (bool, error) {
	n, err := r.rc.Exists(ctx, r.roomKey(roomId)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check room existence: %w", err)
	}

	return n > 0, nil
}

func (r repo) SetRoom(ctx context.Context, roomId string, state domain.Room) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	pipe := r.rc.TxPipeline()
	pipe.Set(ctx, r.roomKey(roomId), raw, 0)
	pipe.SAdd(ctx, roomsSetKey, roomId)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set room: %w", err)
	}

	return nil
}

func (r repo) DeleteRoom(ctx context.Context, roomId string) (bool, error) {
	pipe := r.rc.TxPipeline()
	delCmd := pipe.Del(ctx, r.roomKey(roomId))
	pipe.SRem(ctx, roomsSetKey, roomId)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to delete room: %w", err)
	}

	return delCmd.Val() > 0, nil
}

func (r repo) ListRooms(ctx context.Context) ([]string, error) {
	ids, err := r.rc.SMembers(ctx, roomsSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	slices.Sort(ids)
	return ids, nil
}

func (r repo) ListPublicRooms(ctx context.Context) ([]domain.Room, error) {
	ids, err := r.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	public := make([]domain.Room, 0)
	for _, id := range ids {
		state, err := r.GetRoom(ctx, id)
		if err == roomRepo.ErrRoomNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}

		if state.State.IsPublic {
			public = append(public, state)
		}
	}

	return public, nil
}

func (r repo) CountRooms(ctx context.Context) (int, error) {
	n, err := r.rc.SCard(ctx, roomsSetKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}

	return int(n), nil
}

func (r repo) CountUsers(ctx context.Context) (int, error) {
	n, err := r.rc.Get(ctx, userCountKey).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return n, nil
}

func (r repo) IncUsers(ctx context.Context) (int, error) {
	n, err := r.rc.Incr(ctx, userCountKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment user count: %w", err)
	}

	return int(n), nil
}

func (r repo) DecUsers(ctx context.Context) (int, error) {
	n, err := decrClamp.Run(ctx, r.rc, []string{userCountKey}).Int()
	if err != nil {
		return 0, fmt.Errorf("failed to decrement user count: %w", err)
	}

	return n, nil
}

func (r repo) Wipe(ctx context.Context) error {
	ids, err := r.rc.SMembers(ctx, roomsSetKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list rooms: %w", err)
	}

	pipe := r.rc.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, r.roomKey(id))
	}
	pipe.Del(ctx, roomsSetKey)
	pipe.Del(ctx, userCountKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to wipe store: %w", err)
	}

	r.logger.InfoContext(ctx, "store wiped")
	return nil
}
