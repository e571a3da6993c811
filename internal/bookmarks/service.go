package bookmarks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eventmatch/internal/kafka"
	"eventmatch/internal/logger"
	"eventmatch/internal/models"
	"eventmatch/internal/monitoring"
)

const keyPrefix = "eventBookmarks:"

var ErrUnknownEvent = errors.New("unknown event")

// EventChecker reports whether an event ID belongs to the catalogue.
type EventChecker interface {
	Exists(id string) bool
}

type Service struct {
	Store     Store
	Events    EventChecker
	Publisher kafka.Publisher
	Topic     string
	Logger    *logger.Logger
}

func NewService(store Store, events EventChecker, publisher kafka.Publisher, topic string, log *logger.Logger) *Service {
	return &Service{
		Store:     store,
		Events:    events,
		Publisher: publisher,
		Topic:     topic,
		Logger:    log,
	}
}

func Key(clientID string) string {
	return keyPrefix + clientID
}

// List returns the client's bookmarked IDs in insertion order. Unreadable data counts as no bookmarks.
func (s *Service) List(ctx context.Context, clientID string) ([]string, error) {
	raw, found, err := s.Store.Get(ctx, Key(clientID))
	if err != nil {
		return nil, fmt.Errorf("load bookmarks for %s: %w", clientID, err)
	}
	return s.decode(clientID, raw, found), nil
}

func (s *Service) decode(clientID, raw string, found bool) []string {
	if !found {
		return []string{}
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.Logger.Warn("BOOKMARK", fmt.Sprintf("Discarding malformed bookmarks for %s: %v", clientID, err))
		return []string{}
	}
	if ids == nil {
		ids = []string{}
	}
	return ids
}

// Toggle adds eventID at the end of the list or removes every occurrence of it,
// persists the result, and reports whether the event is now bookmarked.
// Concurrent toggles for one client are applied one after another.
func (s *Service) Toggle(ctx context.Context, clientID, eventID string) ([]string, bool, error) {
	if !s.Events.Exists(eventID) {
		return nil, false, fmt.Errorf("%s: %w", eventID, ErrUnknownEvent)
	}

	var next []string
	var bookmarked bool
	err := s.Store.Update(ctx, Key(clientID), func(raw string, found bool) (string, error) {
		next, bookmarked = toggle(s.decode(clientID, raw, found), eventID)
		encoded, err := json.Marshal(next)
		if err != nil {
			return "", fmt.Errorf("encode bookmarks: %w", err)
		}
		return string(encoded), nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("save bookmarks for %s: %w", clientID, err)
	}

	s.Logger.LogBookmark(clientID, eventID, bookmarked)
	monitoring.TrackBookmarkToggle(bookmarked)
	s.publish(ctx, models.BookmarkToggled{
		ClientID:   clientID,
		EventID:    eventID,
		Bookmarked: bookmarked,
		Total:      len(next),
		At:         time.Now().UTC(),
	})

	return next, bookmarked, nil
}

func (s *Service) publish(ctx context.Context, msg models.BookmarkToggled) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.Publish(ctx, s.Topic, msg.ClientID, msg); err != nil {
		s.Logger.Warn("BOOKMARK", fmt.Sprintf("Failed to publish toggle for %s: %v", msg.ClientID, err))
		monitoring.TrackPublishFailure(s.Topic)
	}
}

func toggle(ids []string, id string) ([]string, bool) {
	next := make([]string, 0, len(ids)+1)
	removed := false
	for _, existing := range ids {
		if existing == id {
			removed = true
			continue
		}
		next = append(next, existing)
	}
	if removed {
		return next, false
	}
	return append(next, id), true
}
