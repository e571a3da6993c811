package db

import (
	"encoding/json"
	"time"

	"eventmatch/internal/models"

	"github.com/uptrace/bun"
)

// EventRow is the flattened table form of models.Event. Position keeps the dataset order.
type EventRow struct {
	bun.BaseModel `bun:"table:events"`

	ID           string    `bun:"id,pk"`
	Position     int       `bun:"position,notnull"`
	Title        string    `bun:"title,notnull"`
	Description  string    `bun:"description"`
	Category     string    `bun:"category,notnull"`
	Date         time.Time `bun:"date,notnull"`
	TimeOfDay    string    `bun:"time_of_day"`
	Venue        string    `bun:"venue"`
	City         string    `bun:"city,notnull"`
	Lat          *float64  `bun:"lat"`
	Lng          *float64  `bun:"lng"`
	PriceMin     float64   `bun:"price_min,notnull"`
	PriceMax     float64   `bun:"price_max,notnull"`
	IsFree       bool      `bun:"is_free,notnull"`
	Image        string    `bun:"image"`
	Tags         string    `bun:"tags"`
	Attendees    int       `bun:"attendees,notnull"`
	MaxAttendees int       `bun:"max_attendees,notnull"`
	Featured     bool      `bun:"featured,notnull"`
	Rating       float64   `bun:"rating"`
	Organizer    string    `bun:"organizer"`
}

func toRow(position int, e models.Event) (EventRow, error) {
	tags, err := json.Marshal(e.Tags)
	if err != nil {
		return EventRow{}, err
	}
	return EventRow{
		ID:           e.ID,
		Position:     position,
		Title:        e.Title,
		Description:  e.Description,
		Category:     string(e.Category),
		Date:         e.Date,
		TimeOfDay:    e.Time,
		Venue:        e.Location.Venue,
		City:         e.Location.City,
		Lat:          e.Location.Lat,
		Lng:          e.Location.Lng,
		PriceMin:     e.Price.Min,
		PriceMax:     e.Price.Max,
		IsFree:       e.Price.IsFree,
		Image:        e.Image,
		Tags:         string(tags),
		Attendees:    e.Attendees,
		MaxAttendees: e.MaxAttendees,
		Featured:     e.Featured,
		Rating:       e.Rating,
		Organizer:    e.Organizer,
	}, nil
}

func (r EventRow) toEvent() (models.Event, error) {
	var tags []string
	if r.Tags != "" {
		if err := json.Unmarshal([]byte(r.Tags), &tags); err != nil {
			return models.Event{}, err
		}
	}
	return models.Event{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    models.Category(r.Category),
		Date:        r.Date.UTC(),
		Time:        r.TimeOfDay,
		Location: models.Location{
			Venue: r.Venue,
			City:  r.City,
			Lat:   r.Lat,
			Lng:   r.Lng,
		},
		Price: models.Price{
			Min:    r.PriceMin,
			Max:    r.PriceMax,
			IsFree: r.IsFree,
		},
		Image:        r.Image,
		Tags:         tags,
		Attendees:    r.Attendees,
		MaxAttendees: r.MaxAttendees,
		Featured:     r.Featured,
		Rating:       r.Rating,
		Organizer:    r.Organizer,
	}, nil
}
