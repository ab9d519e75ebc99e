// Package inmemory tracks which websocket connection belongs to which user
// and serializes writes per connection, since gorilla allows only one
// concurrent writer.
package inmemory

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/syncroom/server/internal/repository/connection"
)

type entry struct {
	conn    *websocket.Conn
	writeMu *sync.Mutex
}

type repo struct {
	mu     sync.RWMutex
	byUser map[string]*entry
	byConn map[*websocket.Conn]string
	logger *slog.Logger
}

func NewRepo(logger *slog.Logger) *repo {
	return &repo{
		byUser: make(map[string]*entry),
		byConn: make(map[*websocket.Conn]string),
		logger: logger,
	}
}

func (r *repo) Add(conn *websocket.Conn, userId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUser[userId]; ok {
		return connection.ErrAlreadyExists
	}
	if _, ok := r.byConn[conn]; ok {
		return connection.ErrAlreadyExists
	}

	r.byUser[userId] = &entry{conn: conn, writeMu: &sync.Mutex{}}
	r.byConn[conn] = userId

	r.logger.Debug("connection added", "user_id", userId)
	return nil
}

func (r *repo) RemoveByUserId(userId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byUser[userId]
	if !ok {
		return connection.ErrNotFound
	}

	delete(r.byUser, userId)
	delete(r.byConn, e.conn)

	r.logger.Debug("connection removed", "user_id", userId)
	return nil
}

func (r *repo) RemoveByConn(conn *websocket.Conn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	userId, ok := r.byConn[conn]
	if !ok {
		return connection.ErrNotFound
	}

	delete(r.byUser, userId)
	delete(r.byConn, conn)

	r.logger.Debug("connection removed", "user_id", userId)
	return nil
}

func (r *repo) GetConn(userId string) (*websocket.Conn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byUser[userId]
	if !ok {
		return nil, connection.ErrNotFound
	}

	return e.conn, nil
}

func (r *repo) GetUserId(conn *websocket.Conn) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userId, ok := r.byConn[conn]
	if !ok {
		return "", connection.ErrNotFound
	}

	return userId, nil
}

// Send writes v as JSON to conn under the connection's write lock. Writes
// to connections that are no longer tracked fall through unserialized,
// which only happens on the error path after removal.
func (r *repo) Send(conn *websocket.Conn, v any) error {
	r.mu.RLock()
	var writeMu *sync.Mutex
	if userId, ok := r.byConn[conn]; ok {
		writeMu = r.byUser[userId].writeMu
	}
	r.mu.RUnlock()

	if writeMu != nil {
		writeMu.Lock()
		defer writeMu.Unlock()
	}

	return conn.WriteJSON(v)
}
