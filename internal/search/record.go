package search

import (
	"time"

	"eventmatch/internal/models"
)

const dateLayout = "2006-01-02"

// Record is the flat document stored in the hosted index. Price holds the
// filterable amount; PriceMax and IsFree keep the full range.
type Record struct {
	ObjectID     string   `json:"objectID"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	Location     string   `json:"location"`
	City         string   `json:"city"`
	Price        float64  `json:"price"`
	PriceMax     float64  `json:"priceMax"`
	IsFree       bool     `json:"isFree"`
	Image        string   `json:"image"`
	Attendees    int      `json:"attendees"`
	MaxAttendees int      `json:"maxAttendees"`
	Featured     bool     `json:"featured"`
	Tags         []string `json:"tags"`
	Organizer    string   `json:"organizer"`
	Rating       float64  `json:"rating"`
	Geo          *Geo     `json:"_geoloc,omitempty"`
}

type Geo struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func FromEvent(e models.Event) Record {
	r := Record{
		ObjectID:     e.ID,
		Title:        e.Title,
		Description:  e.Description,
		Category:     string(e.Category),
		Date:         e.Date.Format(dateLayout),
		Time:         e.Time,
		Location:     e.Location.Venue,
		City:         e.Location.City,
		Price:        e.Price.Amount(),
		PriceMax:     e.Price.Max,
		IsFree:       e.Price.IsFree,
		Image:        e.Image,
		Attendees:    e.Attendees,
		MaxAttendees: e.MaxAttendees,
		Featured:     e.Featured,
		Tags:         e.Tags,
		Organizer:    e.Organizer,
		Rating:       e.Rating,
	}
	if e.Location.Lat != nil && e.Location.Lng != nil {
		r.Geo = &Geo{Lat: *e.Location.Lat, Lng: *e.Location.Lng}
	}
	return r
}

func (r Record) ToEvent() models.Event {
	date, _ := time.Parse(dateLayout, r.Date)
	priceMax := r.PriceMax
	if priceMax < r.Price {
		priceMax = r.Price
	}
	e := models.Event{
		ID:          r.ObjectID,
		Title:       r.Title,
		Description: r.Description,
		Category:    models.Category(r.Category),
		Date:        date,
		Time:        r.Time,
		Location:    models.Location{Venue: r.Location, City: r.City},
		Price: models.Price{
			Min:    r.Price,
			Max:    priceMax,
			IsFree: r.IsFree || r.Price == 0,
		},
		Image:        r.Image,
		Tags:         r.Tags,
		Attendees:    r.Attendees,
		MaxAttendees: r.MaxAttendees,
		Featured:     r.Featured,
		Rating:       r.Rating,
		Organizer:    r.Organizer,
	}
	if r.Geo != nil {
		lat, lng := r.Geo.Lat, r.Geo.Lng
		e.Location.Lat, e.Location.Lng = &lat, &lng
	}
	return e
}
