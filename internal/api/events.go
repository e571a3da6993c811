package api

import (
	"fmt"
	"net/http"
	"strconv"

	"eventmatch/internal/events"
	"eventmatch/internal/utils"

	"github.com/go-chi/chi/v5"
)

const (
	defaultFeatured = 3
	defaultQRSize   = 256
	maxQRSize       = 1024
)

// ListEvents applies the catalogue filter: q, category, price and bookmarked.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	band, err := events.ParsePriceBand(params.Get("price"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid price filter", err)
		return
	}

	st := events.State{
		Query:     params.Get("q"),
		Category:  params.Get("category"),
		PriceBand: band,
	}

	if raw := params.Get("bookmarked"); raw != "" {
		st.BookmarkOnly, err = strconv.ParseBool(raw)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid bookmarked flag", err)
			return
		}
	}

	if st.BookmarkOnly {
		client, err := clientID(r)
		if err != nil {
			h.fail(w, "EVENTS", "Client required for bookmarked filter", err)
			return
		}
		st.Bookmarks, err = h.Bookmarks.List(r.Context(), client)
		if err != nil {
			h.fail(w, "EVENTS", "Failed to load bookmarks", err)
			return
		}
	}

	list := h.Catalog.List(st)
	utils.WriteSuccess(w, http.StatusOK, fmt.Sprintf("%d events", len(list)), map[string]any{
		"events": list,
		"count":  len(list),
	})
}

func (h *Handler) FeaturedEvents(w http.ResponseWriter, r *http.Request) {
	limit := defaultFeatured
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.WriteError(w, http.StatusBadRequest, "Invalid limit", fmt.Errorf("limit must be a non-negative integer, got %q", raw))
			return
		}
		limit = n
	}
	utils.WriteSuccess(w, http.StatusOK, "Featured events", h.Catalog.Featured(limit))
}

func (h *Handler) EventStats(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, "Catalogue stats", h.Catalog.Stats())
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	e, err := h.Catalog.Get(eventID)
	if err != nil {
		h.fail(w, "EVENTS", "Event not found", err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "Event details", map[string]any{
		"event":      e,
		"priceLabel": e.Price.Label(),
		"seatsLeft":  e.SeatsLeft(),
		"shareUrl":   events.ShareURL(h.Config.Server.PublicURL, e.ID),
	})
}

// EventQR renders the event's share link as a PNG QR code.
func (h *Handler) EventQR(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	size := defaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxQRSize {
			utils.WriteError(w, http.StatusBadRequest, "Invalid size", fmt.Errorf("size must be between 1 and %d", maxQRSize))
			return
		}
		size = n
	}

	png, err := h.Catalog.ShareQR(eventID, h.Config.Server.PublicURL, size)
	if err != nil {
		h.fail(w, "EVENTS", "Failed to render QR code", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
