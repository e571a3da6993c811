package search

import (
	"context"
	"sort"
	"strings"

	"eventmatch/internal/models"
)

// EventSource is the catalogue the local index reads from.
type EventSource interface {
	All() []models.Event
}

// LocalIndex evaluates queries over the in-memory catalogue when no hosted index is configured.
type LocalIndex struct {
	Source EventSource
}

func NewLocalIndex(source EventSource) *LocalIndex {
	return &LocalIndex{Source: source}
}

func (l *LocalIndex) Name() string { return "local" }

// Search keeps events whose searchable attributes contain the text and that pass the filters,
// ranked like the hosted index: featured first, then rating, then earliest date.
func (l *LocalIndex) Search(ctx context.Context, q Query) ([]models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := strings.ToLower(strings.TrimSpace(q.Text))
	hits := make([]models.Event, 0)
	for _, e := range l.Source.All() {
		if q.Filters.Matches(e) && matchesSearchable(e, text) {
			hits = append(hits, e)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.Featured != b.Featured {
			return a.Featured
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.Date.Before(b.Date)
	})

	if n := q.hitsPerPage(); len(hits) > n {
		hits = hits[:n]
	}
	return hits, nil
}

func matchesSearchable(e models.Event, text string) bool {
	if text == "" {
		return true
	}
	fields := []string{
		e.Title,
		e.Description,
		string(e.Category),
		e.Location.City,
		e.Location.Venue,
		e.Organizer,
	}
	fields = append(fields, e.Tags...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), text) {
			return true
		}
	}
	return false
}
