package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"eventmatch/internal/search"
	"eventmatch/internal/utils"
)

const maxHitsPerPage = 100

// SearchEvents proxies the search index. Backend failures show up as an empty result.
func (h *Handler) SearchEvents(w http.ResponseWriter, r *http.Request) {
	q, err := parseSearchQuery(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid search parameters", err)
		return
	}

	hits := h.Search.Search(r.Context(), q)
	utils.WriteSuccess(w, http.StatusOK, fmt.Sprintf("%d hits", len(hits)), map[string]any{
		"hits":    hits,
		"count":   len(hits),
		"filters": q.Filters.FilterExpression(),
	})
}

// SearchFeatured returns the index's top featured events.
func (h *Handler) SearchFeatured(w http.ResponseWriter, r *http.Request) {
	hits := h.Search.Featured(r.Context())
	utils.WriteSuccess(w, http.StatusOK, fmt.Sprintf("%d featured hits", len(hits)), hits)
}

func parseSearchQuery(r *http.Request) (search.Query, error) {
	params := r.URL.Query()
	q := search.Query{
		Text: params.Get("q"),
		Filters: search.Filters{
			Category: params.Get("category"),
			City:     params.Get("city"),
		},
	}

	if raw := params.Get("free"); raw != "" {
		free, err := strconv.ParseBool(raw)
		if err != nil {
			return q, fmt.Errorf("free: %w", err)
		}
		q.Filters.FreeOnly = free
	}

	rawMin, rawMax := params.Get("min"), params.Get("max")
	if (rawMin == "") != (rawMax == "") {
		return q, errors.New("min and max must be given together")
	}
	if rawMin != "" {
		lo, err := strconv.ParseFloat(rawMin, 64)
		if err != nil {
			return q, fmt.Errorf("min: %w", err)
		}
		hi, err := strconv.ParseFloat(rawMax, 64)
		if err != nil {
			return q, fmt.Errorf("max: %w", err)
		}
		if lo < 0 || hi < lo {
			return q, fmt.Errorf("invalid price range %v TO %v", lo, hi)
		}
		q.Filters.PriceRange = &search.PriceRange{Min: lo, Max: hi}
	}

	if raw := params.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxHitsPerPage {
			return q, fmt.Errorf("limit must be between 1 and %d", maxHitsPerPage)
		}
		q.HitsPerPage = n
	}
	return q, nil
}
