package controller

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/syncroom/server/internal/domain"
	"github.com/syncroom/server/internal/service/room"
	"github.com/syncroom/server/pkg/ctxlogger"
	"github.com/syncroom/server/pkg/wsrouter"
)

type joinRoomInput struct {
	RoomId string `json:"roomId" validate:"required,min=4,max=64,lowercase,alphanum"`
	Name   string `json:"name" validate:"required,max=32"`
}

// joinRoom upgrades the request to a websocket, joins (or creates) the room
// and serves the connection's event loop until it disconnects.
func (c *controller) joinRoom(w http.ResponseWriter, r *http.Request) {
	input := joinRoomInput{
		RoomId: chi.URLParam(r, "room-id"),
		Name:   r.URL.Query().Get("name"),
	}
	isPublic := r.URL.Query().Get("public") == "true"

	if validationErrors, ok := c.validate.Validate(input); !ok {
		c.logger.DebugContext(r.Context(), "invalid join request", "errors", validationErrors)
		c.writeJSON(w, http.StatusBadRequest, envelope{"errors": validationErrors})
		return
	}

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	joinRoomResponse, err := c.roomService.JoinRoom(r.Context(), &room.JoinRoomParams{
		RoomId:   input.RoomId,
		Name:     input.Name,
		IsPublic: isPublic,
		Conn:     conn,
	})
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to join room", "error", err)
		c.roomService.SendError(conn, err)
		return
	}

	ctx := context.WithValue(r.Context(), roomIdCtxKey, input.RoomId)
	ctx = context.WithValue(ctx, userIdCtxKey, joinRoomResponse.User.Id)
	ctx = ctxlogger.AppendCtx(ctx, slog.String("room_id", input.RoomId))
	ctx = ctxlogger.AppendCtx(ctx, slog.String("user_id", joinRoomResponse.User.Id))

	defer func() {
		if err := c.roomService.DisconnectUser(ctx, &room.DisconnectUserParams{
			RoomId: input.RoomId,
			UserId: joinRoomResponse.User.Id,
		}); err != nil {
			c.logger.WarnContext(ctx, "failed to disconnect user", "error", err)
		}
	}()

	if err := c.wsmux.ServeConn(ctx, conn); err != nil {
		c.logger.InfoContext(ctx, "connection closed", "error", err)
	}
}

func (c *controller) getWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New()

	mux.Use(c.loggerWSMw())

	mux.OnError(func(ctx context.Context, conn *websocket.Conn, err error) {
		c.logger.DebugContext(ctx, "message rejected", "error", err)
		if err := c.roomService.SendError(conn, err); err != nil {
			c.logger.DebugContext(ctx, "failed to send error", "error", err)
		}
	})

	wsrouter.Handle(mux, "alive", c.handleAlive)

	// chat
	wsrouter.Handle(mux, "chatMessage", c.handleChatMessage)

	// playlist
	wsrouter.Handle(mux, "updatePlaylist", c.handleUpdatePlaylist)

	// player
	wsrouter.Handle(mux, "updateState", c.handleUpdateState)

	return mux
}

func (c *controller) loggerWSMw() wsrouter.Middleware {
	return func(next wsrouter.HandlerFunc[any]) wsrouter.HandlerFunc[any] {
		return func(ctx context.Context, conn *websocket.Conn, payload any) error {
			ctx = ctxlogger.AppendCtx(ctx, slog.String("message_type", wsrouter.GetMessageTypeFromCtx(ctx)))

			start := time.Now()
			err := next(ctx, conn, payload)

			c.logger.DebugContext(ctx, "websocket message handled",
				"processing_time_us", time.Since(start).Microseconds(),
				"error", err,
			)

			return err
		}
	}
}

type emptyInput struct{}

func (c *controller) handleAlive(_ context.Context, _ *websocket.Conn, _ emptyInput) error {
	return nil
}

func (c *controller) handleChatMessage(ctx context.Context, _ *websocket.Conn, text string) error {
	if _, err := c.roomService.PostChatMessage(ctx, &room.PostChatMessageParams{
		RoomId: c.getRoomIdFromCtx(ctx),
		UserId: c.getUserIdFromCtx(ctx),
		Text:   text,
	}); err != nil {
		return fmt.Errorf("failed to post chat message: %w", err)
	}

	return nil
}

func (c *controller) handleUpdatePlaylist(ctx context.Context, _ *websocket.Conn, playlist domain.Playlist) error {
	if _, err := c.roomService.UpdatePlaylist(ctx, &room.UpdatePlaylistParams{
		RoomId:   c.getRoomIdFromCtx(ctx),
		UserId:   c.getUserIdFromCtx(ctx),
		Playlist: playlist,
	}); err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	return nil
}

type updateStateInput struct {
	Playing      bool    `json:"playing"`
	Paused       bool    `json:"paused"`
	Progress     float64 `json:"progress"`
	Duration     float64 `json:"duration"`
	Volume       float64 `json:"volume"`
	Muted        bool    `json:"muted"`
	PlaybackRate float64 `json:"playbackRate"`
	Loop         bool    `json:"loop"`
	Fullscreen   bool    `json:"fullscreen"`
}

func (c *controller) handleUpdateState(ctx context.Context, _ *websocket.Conn, input updateStateInput) error {
	if _, err := c.roomService.UpdatePlayerState(ctx, &room.UpdatePlayerStateParams{
		RoomId:       c.getRoomIdFromCtx(ctx),
		UserId:       c.getUserIdFromCtx(ctx),
		Playing:      input.Playing,
		Paused:       input.Paused,
		Progress:     input.Progress,
		Duration:     input.Duration,
		Volume:       input.Volume,
		Muted:        input.Muted,
		PlaybackRate: input.PlaybackRate,
		Loop:         input.Loop,
		Fullscreen:   input.Fullscreen,
	}); err != nil {
		return fmt.Errorf("failed to update player state: %w", err)
	}

	return nil
}
