package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"eventmatch/internal/assistant"
	"eventmatch/internal/bookmarks"
	"eventmatch/internal/config"
	"eventmatch/internal/events"
	"eventmatch/internal/logger"
	"eventmatch/internal/models"
	"eventmatch/internal/search"
	"eventmatch/internal/sse"
	"eventmatch/internal/utils"
)

const clientHeader = "X-Client-ID"

var errMissingClient = errors.New("X-Client-ID header or client query parameter is required")

// BookmarkService is the part of the bookmark service the handlers use.
type BookmarkService interface {
	List(ctx context.Context, clientID string) ([]string, error)
	Toggle(ctx context.Context, clientID, eventID string) ([]string, bool, error)
}

// SearchService answers hosted or local index queries.
type SearchService interface {
	Search(ctx context.Context, q search.Query) []models.Event
	Featured(ctx context.Context) []models.Event
}

type Handler struct {
	Catalog   *events.Catalog
	Bookmarks BookmarkService
	Search    SearchService
	Chat      *assistant.Manager
	Replies   *sse.ReplyEmitter
	Config    *config.Config
	Logger    *logger.Logger
}

func clientID(r *http.Request) (string, error) {
	if id := strings.TrimSpace(r.Header.Get(clientHeader)); id != "" {
		return id, nil
	}
	if id := strings.TrimSpace(r.URL.Query().Get("client")); id != "" {
		return id, nil
	}
	return "", errMissingClient
}

// statusFor maps domain sentinel errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, events.ErrEventNotFound),
		errors.Is(err, assistant.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, bookmarks.ErrUnknownEvent),
		errors.Is(err, assistant.ErrEmptyMessage),
		errors.Is(err, errMissingClient):
		return http.StatusBadRequest
	case errors.Is(err, assistant.ErrResponsePending):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(w http.ResponseWriter, category, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error(category, message+": "+err.Error())
	} else {
		h.Logger.Debug(category, message+": "+err.Error())
	}
	utils.WriteError(w, status, message, err)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, "ok", map[string]any{
		"events":       h.Catalog.Stats().Events,
		"chatSessions": h.Chat.Count(),
	})
}
