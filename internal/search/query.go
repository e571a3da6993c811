package search

import (
	"strconv"
	"strings"

	"eventmatch/internal/models"
)

const (
	DefaultHitsPerPage  = 20
	FeaturedHitsPerPage = 5
)

// PriceRange bounds the price amount, both ends inclusive.
type PriceRange struct {
	Min float64
	Max float64
}

type Filters struct {
	Category     string
	City         string
	FreeOnly     bool
	FeaturedOnly bool
	PriceRange   *PriceRange
}

type Query struct {
	Text        string
	Filters     Filters
	HitsPerPage int
}

// FilterExpression renders the filters in the hosted index syntax, parts joined by " AND ".
func (f Filters) FilterExpression() string {
	var parts []string
	if f.Category != "" && f.Category != "all" {
		parts = append(parts, "category:"+f.Category)
	}
	if f.City != "" {
		parts = append(parts, `city:"`+filterValueEscaper.Replace(f.City)+`"`)
	}
	if f.FreeOnly {
		parts = append(parts, "price=0")
	}
	if f.PriceRange != nil {
		parts = append(parts, "price:"+formatNumber(f.PriceRange.Min)+" TO "+formatNumber(f.PriceRange.Max))
	}
	if f.FeaturedOnly {
		parts = append(parts, "featured:true")
	}
	return strings.Join(parts, " AND ")
}

// Matches applies the same filters to one event, for the in-process index.
func (f Filters) Matches(e models.Event) bool {
	if f.Category != "" && f.Category != "all" && !strings.EqualFold(string(e.Category), f.Category) {
		return false
	}
	if f.City != "" && !strings.EqualFold(e.Location.City, f.City) {
		return false
	}
	if f.FreeOnly && e.Price.Amount() != 0 {
		return false
	}
	if f.PriceRange != nil {
		amount := e.Price.Amount()
		if amount < f.PriceRange.Min || amount > f.PriceRange.Max {
			return false
		}
	}
	if f.FeaturedOnly && !e.Featured {
		return false
	}
	return true
}

func (q Query) hitsPerPage() int {
	if q.HitsPerPage > 0 {
		return q.HitsPerPage
	}
	return DefaultHitsPerPage
}

var filterValueEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
