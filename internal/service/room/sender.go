package room

import (
	"context"
	"errors"

	"github.com/gorilla/websocket"

	"github.com/syncroom/server/internal/domain"
)

// Output is the server-to-client message envelope.
type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// broadcast sends out to every connected member of the room. Callers hold
// the room lock, so members of one room always see broadcasts in mutation
// order. A failed write drops the connection; membership cleanup follows
// from the read loop terminating.
func (s *service) broadcast(ctx context.Context, state *domain.RoomState, out *Output) {
	for _, user := range state.Users {
		conn, err := s.connRepo.GetConn(user.Id)
		if err != nil {
			continue
		}

		if err := s.connRepo.Send(conn, out); err != nil {
			s.logger.DebugContext(ctx, "failed to write to member, dropping connection",
				"user_id", user.Id, "error", err)
			s.connRepo.RemoveByConn(conn)
			conn.Close()
		}
	}
}

func (s *service) broadcastUpdate(ctx context.Context, state *domain.RoomState) {
	s.broadcast(ctx, state, &Output{
		Type:    "update",
		Payload: state,
	})
}

// SendError informs a single client that its last submission was rejected.
// No state changed and nobody else hears about it.
func (s *service) SendError(conn *websocket.Conn, err error) error {
	return s.connRepo.Send(conn, &Output{
		Type: "error",
		Payload: errorPayload{
			Code:    errorCode(err),
			Message: err.Error(),
		},
	})
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrUserNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrNotOwner):
		return "FORBIDDEN"
	case errors.Is(err, ErrEmptyMessage), errors.Is(err, ErrInvalidPlaylist),
		errors.Is(err, domain.ErrIndexOutOfRange), errors.Is(err, domain.ErrEmptySource):
		return "VALIDATION"
	default:
		return "INTERNAL"
	}
}
