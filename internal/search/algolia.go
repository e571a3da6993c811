package search

import (
	"context"
	"errors"
	"strings"

	algolia "github.com/algolia/algoliasearch-client-go/v3/algolia/search"
	"github.com/algolia/algoliasearch-client-go/v3/algolia/opt"
	"github.com/algolia/algoliasearch-client-go/v3/algolia/transport"

	"eventmatch/internal/config"
	"eventmatch/internal/models"
)

var ErrNoAdminKey = errors.New("hosted index admin key not configured")

// DefaultSettings is what the seeder configures on the events index.
var DefaultSettings = algolia.Settings{
	SearchableAttributes: opt.SearchableAttributes("title", "description", "category", "city", "location", "tags", "organizer"),
	AttributesForFaceting: opt.AttributesForFaceting(
		"filterOnly(category)",
		"filterOnly(city)",
		"filterOnly(featured)",
		"filterOnly(price)",
	),
	CustomRanking: opt.CustomRanking("desc(featured)", "desc(rating)", "asc(date)"),
}

// HostedIndex wraps the hosted index. Admin is nil without an admin key.
type HostedIndex struct {
	Read  *algolia.Index
	Admin *algolia.Index
}

func NewHostedIndex(cfg config.SearchConfig) *HostedIndex {
	return newHostedIndex(cfg, nil)
}

func newHostedIndex(cfg config.SearchConfig, requester transport.Requester) *HostedIndex {
	h := &HostedIndex{
		Read: clientFor(cfg, cfg.SearchKey, requester).InitIndex(cfg.Index),
	}
	if cfg.AdminKey != "" {
		h.Admin = clientFor(cfg, cfg.AdminKey, requester).InitIndex(cfg.Index)
	}
	return h
}

// clientFor builds a client for one API key. ALGOLIA_HOST replaces the default DSN and primary hosts.
func clientFor(cfg config.SearchConfig, apiKey string, requester transport.Requester) *algolia.Client {
	conf := algolia.Configuration{
		AppID:        cfg.AppID,
		APIKey:       apiKey,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		Requester:    requester,
	}
	if cfg.Host != "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.Host, "https://"), "http://")
		conf.Hosts = []string{strings.TrimSuffix(host, "/")}
	}
	return algolia.NewClientWithConfig(conf)
}

func (h *HostedIndex) Name() string { return "hosted" }

func (h *HostedIndex) Search(ctx context.Context, q Query) ([]models.Event, error) {
	opts := []interface{}{ctx, opt.HitsPerPage(q.hitsPerPage())}
	if expr := q.Filters.FilterExpression(); expr != "" {
		opts = append(opts, opt.Filters(expr))
	}

	res, err := h.Read.Search(q.Text, opts...)
	if err != nil {
		return nil, err
	}

	var hits []Record
	if err := res.UnmarshalHits(&hits); err != nil {
		return nil, err
	}
	out := make([]models.Event, 0, len(hits))
	for _, hit := range hits {
		out = append(out, hit.ToEvent())
	}
	return out, nil
}

func (h *HostedIndex) SetSettings(ctx context.Context, s algolia.Settings) error {
	if h.Admin == nil {
		return ErrNoAdminKey
	}
	_, err := h.Admin.SetSettings(s, ctx)
	return err
}

// SaveObjects upserts the events by objectID and returns the IDs the index acknowledged.
func (h *HostedIndex) SaveObjects(ctx context.Context, list []models.Event) ([]string, error) {
	if h.Admin == nil {
		return nil, ErrNoAdminKey
	}

	records := make([]Record, 0, len(list))
	for _, e := range list {
		records = append(records, FromEvent(e))
	}

	res, err := h.Admin.SaveObjects(records, ctx)
	if err != nil {
		return nil, err
	}
	var objectIDs []string
	for _, batch := range res.Responses {
		objectIDs = append(objectIDs, batch.ObjectIDs...)
	}
	return objectIDs, nil
}
