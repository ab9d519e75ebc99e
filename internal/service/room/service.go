package room

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/syncroom/server/internal/domain"
	"github.com/syncroom/server/pkg/randstr"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrNotOwner        = errors.New("only the room owner may control playback")
	ErrEmptyMessage    = errors.New("empty chat message")
	ErrInvalidPlaylist = errors.New("invalid playlist")
)

// Store is the authoritative room state store. The default backend is
// process memory; a shared backend can replace it without touching the
// protocol layer.
type Store interface {
	GetRoom(context.Context, string) (domain.Room, error)
	RoomExists(context.Context, string) (bool, error)
	SetRoom(context.Context, string, domain.Room) error
	DeleteRoom(context.Context, string) (bool, error)
	ListRooms(context.Context) ([]string, error)
	ListPublicRooms(context.Context) ([]domain.Room, error)
	CountRooms(context.Context) (int, error)
	CountUsers(context.Context) (int, error)
	IncUsers(context.Context) (int, error)
	DecUsers(context.Context) (int, error)
	Wipe(context.Context) error
}

type iConnRepo interface {
	Add(conn *websocket.Conn, userId string) error
	RemoveByUserId(userId string) error
	RemoveByConn(conn *websocket.Conn) error
	GetConn(userId string) (*websocket.Conn, error)
	GetUserId(conn *websocket.Conn) (string, error)
	Send(conn *websocket.Conn, v any) error
}

type iGenerator interface {
	GenerateRandomString(length int) string
}

type Config struct {
	ChatHistoryLimit int
	RoomIdLength     int
}

// service is the hub: the single writer of authoritative room state. Every
// mutation for a room runs under that room's lock, and the resulting
// broadcast happens before the lock is released, so all members observe
// the same total order of updates per room.
type service struct {
	store     Store
	connRepo  iConnRepo
	generator iGenerator
	cfg       *Config
	logger    *slog.Logger

	roomLocks sync.Map
}

func NewService(store Store, connRepo iConnRepo, cfg *Config, logger *slog.Logger) *service {
	s := service{
		store:    store,
		connRepo: connRepo,
		cfg:      cfg,
		logger:   logger,
	}

	s.generator = randstr.New([]byte("abcdefghijklmnopqrstuvwxyz"))

	return &s
}

// lockRoom serializes mutations for one room. Lock entries live as long as
// the process; rooms are few and small, so they are never reclaimed.
func (s *service) lockRoom(roomId string) func() {
	v, _ := s.roomLocks.LoadOrStore(roomId, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
