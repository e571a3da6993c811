package api

import (
	"net/http"

	"eventmatch/internal/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	client, err := clientID(r)
	if err != nil {
		h.fail(w, "BOOKMARK", "Client required", err)
		return
	}

	ids, err := h.Bookmarks.List(r.Context(), client)
	if err != nil {
		h.fail(w, "BOOKMARK", "Failed to load bookmarks", err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "Bookmarks", map[string]any{
		"bookmarks": ids,
		"count":     len(ids),
	})
}

func (h *Handler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	client, err := clientID(r)
	if err != nil {
		h.fail(w, "BOOKMARK", "Client required", err)
		return
	}
	eventID := chi.URLParam(r, "eventId")

	ids, bookmarked, err := h.Bookmarks.Toggle(r.Context(), client, eventID)
	if err != nil {
		h.fail(w, "BOOKMARK", "Failed to toggle bookmark", err)
		return
	}

	message := "Bookmark removed"
	if bookmarked {
		message = "Bookmark added"
	}
	utils.WriteSuccess(w, http.StatusOK, message, map[string]any{
		"eventId":    eventID,
		"bookmarked": bookmarked,
		"bookmarks":  ids,
	})
}
