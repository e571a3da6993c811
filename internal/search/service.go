package search

import (
	"context"
	"fmt"

	"eventmatch/internal/logger"
	"eventmatch/internal/models"
	"eventmatch/internal/monitoring"
)

type Backend interface {
	Name() string
	Search(ctx context.Context, q Query) ([]models.Event, error)
}

// Service never surfaces backend failures: they are logged and answered with no hits.
type Service struct {
	Backend     Backend
	Logger      *logger.Logger
	HitsPerPage int
}

func NewService(backend Backend, hitsPerPage int, log *logger.Logger) *Service {
	if hitsPerPage <= 0 {
		hitsPerPage = DefaultHitsPerPage
	}
	return &Service{Backend: backend, Logger: log, HitsPerPage: hitsPerPage}
}

func (s *Service) Search(ctx context.Context, q Query) []models.Event {
	if q.HitsPerPage <= 0 {
		q.HitsPerPage = s.HitsPerPage
	}

	hits, err := s.Backend.Search(ctx, q)
	if err != nil {
		s.Logger.Error("SEARCH", fmt.Sprintf("%s search for %q failed: %v", s.Backend.Name(), q.Text, err))
		monitoring.TrackSearch(s.Backend.Name(), true)
		return []models.Event{}
	}

	s.Logger.LogSearch(s.Backend.Name(), q.Text, len(hits))
	monitoring.TrackSearch(s.Backend.Name(), false)
	if hits == nil {
		hits = []models.Event{}
	}
	return hits
}

// Featured returns the top featured events from the index.
func (s *Service) Featured(ctx context.Context) []models.Event {
	return s.Search(ctx, Query{
		Filters:     Filters{FeaturedOnly: true},
		HitsPerPage: FeaturedHitsPerPage,
	})
}
