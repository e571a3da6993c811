package events

import (
	"fmt"
	"strings"

	"eventmatch/internal/models"
)

// CategoryAll disables the category predicate.
const CategoryAll = "all"

type PriceBand string

const (
	PriceAll  PriceBand = "all"
	PriceFree PriceBand = "free"
	PricePaid PriceBand = "paid"
)

func ParsePriceBand(s string) (PriceBand, error) {
	switch band := PriceBand(strings.ToLower(strings.TrimSpace(s))); band {
	case "", PriceAll:
		return PriceAll, nil
	case PriceFree, PricePaid:
		return band, nil
	default:
		return "", fmt.Errorf("unknown price band %q", s)
	}
}

// State is the transient filter state of the catalogue grid.
type State struct {
	Query        string
	Category     string
	PriceBand    PriceBand
	BookmarkOnly bool
	Bookmarks    []string
}

// Filter keeps the events that satisfy every active predicate, in their original order.
func Filter(list []models.Event, st State) []models.Event {
	query := strings.ToLower(st.Query)

	var saved map[string]struct{}
	if st.BookmarkOnly {
		saved = make(map[string]struct{}, len(st.Bookmarks))
		for _, id := range st.Bookmarks {
			saved[id] = struct{}{}
		}
	}

	out := make([]models.Event, 0, len(list))
	for _, e := range list {
		if !matchesText(e, query) {
			continue
		}
		if !matchesCategory(e, st.Category) {
			continue
		}
		if st.BookmarkOnly {
			if _, ok := saved[e.ID]; !ok {
				continue
			}
		}
		if !matchesPrice(e, st.PriceBand) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// query must already be lower-cased.
func matchesText(e models.Event, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Title), query) ||
		strings.Contains(strings.ToLower(e.Description), query) ||
		strings.Contains(strings.ToLower(e.Location.City), query)
}

func matchesCategory(e models.Event, category string) bool {
	return category == "" || category == CategoryAll || string(e.Category) == category
}

func matchesPrice(e models.Event, band PriceBand) bool {
	switch band {
	case PriceFree:
		return e.Price.Amount() == 0
	case PricePaid:
		return e.Price.Amount() > 0
	default:
		return true
	}
}
