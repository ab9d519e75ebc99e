package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/syncroom/server/internal/domain"
	"github.com/syncroom/server/internal/service/room"
	"github.com/syncroom/server/pkg/validator"
	"github.com/syncroom/server/pkg/wsrouter"
)

type iRoomService interface {
	JoinRoom(context.Context, *room.JoinRoomParams) (room.JoinRoomResponse, error)
	DisconnectUser(context.Context, *room.DisconnectUserParams) error
	PostChatMessage(context.Context, *room.PostChatMessageParams) (room.PostChatMessageResponse, error)
	UpdatePlaylist(context.Context, *room.UpdatePlaylistParams) (room.UpdatePlaylistResponse, error)
	UpdatePlayerState(context.Context, *room.UpdatePlayerStateParams) (room.UpdatePlayerStateResponse, error)
	GetRoomState(context.Context, string) (domain.RoomState, error)
	ListPublicRooms(context.Context) ([]room.RoomSummary, error)
	DeleteRoom(context.Context, string) (bool, error)
	Wipe(context.Context) error
	GetStats(context.Context) (room.Stats, error)
	GenerateRoomId() string
	SendError(conn *websocket.Conn, err error) error
}

type controller struct {
	roomService iRoomService
	upgrader    websocket.Upgrader
	validate    *validator.Validator
	logger      *slog.Logger
	wsmux       *wsrouter.WSRouter
}

func NewController(roomService iRoomService, logger *slog.Logger) *controller {
	c := &controller{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		roomService: roomService,
		validate:    validator.NewValidator(),
		logger:      logger,
	}
	c.wsmux = c.getWSRouter()

	return c
}
