package events

import (
	"errors"
	"fmt"
	"math"

	"eventmatch/internal/models"

	"github.com/skip2/go-qrcode"
)

var ErrEventNotFound = errors.New("event not found")

// Catalog is the static event set served for the lifetime of the process.
type Catalog struct {
	events []models.Event
	byID   map[string]int
}

type Stats struct {
	Events        int     `json:"events"`
	Cities        int     `json:"cities"`
	Attendees     int     `json:"attendees"`
	AverageRating float64 `json:"averageRating"`
}

func NewCatalog(list []models.Event) (*Catalog, error) {
	if err := Validate(list); err != nil {
		return nil, fmt.Errorf("invalid event dataset: %w", err)
	}
	c := &Catalog{
		events: append([]models.Event(nil), list...),
		byID:   make(map[string]int, len(list)),
	}
	for i, e := range c.events {
		c.byID[e.ID] = i
	}
	return c, nil
}

// All returns a copy of the catalogue in display order.
func (c *Catalog) All() []models.Event {
	return append([]models.Event(nil), c.events...)
}

func (c *Catalog) List(st State) []models.Event {
	return Filter(c.events, st)
}

func (c *Catalog) Get(id string) (models.Event, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Event{}, fmt.Errorf("%s: %w", id, ErrEventNotFound)
	}
	return c.events[i], nil
}

func (c *Catalog) Exists(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Featured returns up to limit featured events; limit <= 0 means no limit.
func (c *Catalog) Featured(limit int) []models.Event {
	out := make([]models.Event, 0)
	for _, e := range c.events {
		if !e.Featured {
			continue
		}
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, e)
	}
	return out
}

func (c *Catalog) Stats() Stats {
	st := Stats{Events: len(c.events)}
	cities := make(map[string]struct{})
	var ratingSum float64
	for _, e := range c.events {
		cities[e.Location.City] = struct{}{}
		st.Attendees += e.Attendees
		ratingSum += e.Rating
	}
	st.Cities = len(cities)
	if st.Events > 0 {
		st.AverageRating = math.Round(ratingSum/float64(st.Events)*10) / 10
	}
	return st
}

// ShareQR encodes the public link of an event as a PNG.
func (c *Catalog) ShareQR(id, publicURL string, size int) ([]byte, error) {
	if _, err := c.Get(id); err != nil {
		return nil, err
	}
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(ShareURL(publicURL, id), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode share QR for %s: %w", id, err)
	}
	return png, nil
}

func ShareURL(publicURL, id string) string {
	for len(publicURL) > 0 && publicURL[len(publicURL)-1] == '/' {
		publicURL = publicURL[:len(publicURL)-1]
	}
	return publicURL + "/events/" + id
}
