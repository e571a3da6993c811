package models

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Category string

const (
	CategoryMusic     Category = "music"
	CategorySports    Category = "sports"
	CategoryArt       Category = "art"
	CategoryTech      Category = "tech"
	CategoryFood      Category = "food"
	CategoryWellness  Category = "wellness"
	CategoryBusiness  Category = "business"
	CategoryEducation Category = "education"
)

var Categories = []Category{
	CategoryMusic,
	CategorySports,
	CategoryArt,
	CategoryTech,
	CategoryFood,
	CategoryWellness,
	CategoryBusiness,
	CategoryEducation,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Location struct {
	Venue string   `json:"venue"`
	City  string   `json:"city"`
	Lat   *float64 `json:"lat,omitempty"`
	Lng   *float64 `json:"lng,omitempty"`
}

// Price is a range; flat prices have Min == Max. Min == 0 iff IsFree.
type Price struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	IsFree bool    `json:"isFree"`
}

// Amount is the single number the catalogue filters and sorts on.
func (p Price) Amount() float64 {
	return p.Min
}

var rupees = message.NewPrinter(language.English)

// Label renders the price the way cards show it: "Free", "₹1,500" or "₹1,500+".
func (p Price) Label() string {
	if p.IsFree {
		return "Free"
	}
	if p.Min == p.Max {
		return rupees.Sprintf("₹%d", int64(p.Min))
	}
	return rupees.Sprintf("₹%d+", int64(p.Min))
}

type Event struct {
	ID           string    `json:"objectID"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     Category  `json:"category"`
	Date         time.Time `json:"date"`
	Time         string    `json:"time"`
	Location     Location  `json:"location"`
	Price        Price     `json:"price"`
	Image        string    `json:"image"`
	Tags         []string  `json:"tags"`
	Attendees    int       `json:"attendees"`
	MaxAttendees int       `json:"maxAttendees"`
	Featured     bool      `json:"featured"`
	Rating       float64   `json:"rating"`
	Organizer    string    `json:"organizer"`
}

func (e Event) IsFree() bool {
	return e.Price.Amount() == 0
}

func (e Event) SeatsLeft() int {
	if left := e.MaxAttendees - e.Attendees; left > 0 {
		return left
	}
	return 0
}
