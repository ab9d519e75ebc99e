package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (c *controller) listPublicRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := c.roomService.ListPublicRooms(r.Context())
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to list public rooms", "error", err)
		c.writeJSON(w, http.StatusInternalServerError, envelope{"error": "internal error"})
		return
	}

	c.writeJSON(w, http.StatusOK, envelope{"rooms": rooms})
}

func (c *controller) generateRoomId(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, envelope{"roomId": c.roomService.GenerateRoomId()})
}

func (c *controller) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.roomService.GetStats(r.Context())
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to get stats", "error", err)
		c.writeJSON(w, http.StatusInternalServerError, envelope{"error": "internal error"})
		return
	}

	c.writeJSON(w, http.StatusOK, stats)
}

func (c *controller) deleteRoom(w http.ResponseWriter, r *http.Request) {
	roomId := chi.URLParam(r, "room-id")

	deleted, err := c.roomService.DeleteRoom(r.Context(), roomId)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to delete room", "error", err)
		c.writeJSON(w, http.StatusInternalServerError, envelope{"error": "internal error"})
		return
	}
	if !deleted {
		c.writeJSON(w, http.StatusNotFound, envelope{"error": "room not found"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *controller) wipe(w http.ResponseWriter, r *http.Request) {
	if err := c.roomService.Wipe(r.Context()); err != nil {
		c.logger.WarnContext(r.Context(), "failed to wipe", "error", err)
		c.writeJSON(w, http.StatusInternalServerError, envelope{"error": "internal error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
