package events

import (
	"errors"
	"fmt"
	"time"

	"eventmatch/internal/models"
)

// DatasetVersion is bumped whenever SampleEvents changes so the seeder can log what it pushed.
const DatasetVersion = "2026.10.1"

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func coord(v float64) *float64 {
	return &v
}

func flat(amount float64) models.Price {
	return models.Price{Min: amount, Max: amount, IsFree: amount == 0}
}

func ranged(lo, hi float64) models.Price {
	return models.Price{Min: lo, Max: hi}
}

// SampleEvents returns a fresh copy of the static catalogue in display order.
func SampleEvents() []models.Event {
	return []models.Event{
		{
			ID:           "evt-001",
			Title:        "Sunburn Arena: Neon Nights",
			Description:  "An electronic dance night with international headliners, laser shows and a 40,000 watt sound system.",
			Category:     models.CategoryMusic,
			Date:         day(2026, time.November, 14),
			Time:         "6:00 PM",
			Location:     models.Location{Venue: "NSCI Dome, Worli", City: "Mumbai", Lat: coord(19.0096), Lng: coord(72.8177)},
			Price:        ranged(2499, 4999),
			Image:        "https://images.unsplash.com/photo-1470229722913-7c0e2dbbafd3",
			Tags:         []string{"edm", "nightlife", "live"},
			Attendees:    8200,
			MaxAttendees: 10000,
			Featured:     true,
			Rating:       4.8,
			Organizer:    "Percept Live",
		},
		{
			ID:           "evt-002",
			Title:        "TechSparks Summit 2026",
			Description:  "Two days of keynotes on AI, cloud and startups with product demos from over a hundred companies.",
			Category:     models.CategoryTech,
			Date:         day(2026, time.November, 20),
			Time:         "9:30 AM",
			Location:     models.Location{Venue: "Taj Yeshwantpur", City: "Bangalore", Lat: coord(13.0234), Lng: coord(77.5440)},
			Price:        ranged(1999, 5999),
			Image:        "https://images.unsplash.com/photo-1540575467063-178a50c2df87",
			Tags:         []string{"ai", "startups", "keynotes"},
			Attendees:    3100,
			MaxAttendees: 4000,
			Featured:     true,
			Rating:       4.7,
			Organizer:    "YourStory",
		},
		{
			ID:           "evt-003",
			Title:        "Capital Half Marathon",
			Description:  "A 21 km road race through the heart of the capital with 5 km and 10 km fun runs for families.",
			Category:     models.CategorySports,
			Date:         day(2026, time.November, 22),
			Time:         "5:30 AM",
			Location:     models.Location{Venue: "Jawaharlal Nehru Stadium", City: "Delhi"},
			Price:        flat(1200),
			Image:        "https://images.unsplash.com/photo-1452626038306-9aae5e071dd3",
			Tags:         []string{"running", "fitness", "outdoor"},
			Attendees:    14500,
			MaxAttendees: 20000,
			Rating:       4.5,
			Organizer:    "Procam International",
		},
		{
			ID:           "evt-004",
			Title:        "Contemporary Canvas: India Art Week",
			Description:  "Open studios, installations and curator walks featuring forty emerging painters and sculptors.",
			Category:     models.CategoryArt,
			Date:         day(2026, time.November, 28),
			Time:         "11:00 AM",
			Location:     models.Location{Venue: "Jehangir Art Gallery, Kala Ghoda", City: "Mumbai"},
			Price:        flat(0),
			Image:        "https://images.unsplash.com/photo-1531058020387-3be344556be6",
			Tags:         []string{"painting", "sculpture", "exhibition"},
			Attendees:    950,
			MaxAttendees: 2000,
			Featured:     true,
			Rating:       4.6,
			Organizer:    "Kala Ghoda Association",
		},
		{
			ID:           "evt-005",
			Title:        "Old Quarter Gourmet Trail",
			Description:  "A guided evening walk across twelve legendary kitchens, from kebabs to jalebis.",
			Category:     models.CategoryFood,
			Date:         day(2026, time.December, 3),
			Time:         "7:00 PM",
			Location:     models.Location{Venue: "Chandni Chowk", City: "Delhi"},
			Price:        flat(1500),
			Image:        "https://images.unsplash.com/photo-1504674900247-0877df9cc836",
			Tags:         []string{"street-food", "walk", "heritage"},
			Attendees:    28,
			MaxAttendees: 30,
			Rating:       4.9,
			Organizer:    "Food Tales",
		},
		{
			ID:           "evt-006",
			Title:        "Sunrise Yoga by the Lake",
			Description:  "Community hatha session at dawn. Mats provided, beginners welcome.",
			Category:     models.CategoryWellness,
			Date:         day(2026, time.December, 6),
			Time:         "6:00 AM",
			Location:     models.Location{Venue: "Cubbon Park", City: "Bangalore"},
			Price:        flat(0),
			Image:        "https://images.unsplash.com/photo-1506126613408-eca07ce68773",
			Tags:         []string{"yoga", "outdoor", "community"},
			Attendees:    120,
			MaxAttendees: 200,
			Rating:       4.4,
			Organizer:    "Bengaluru Yoga Collective",
		},
		{
			ID:           "evt-007",
			Title:        "Bollywood Unplugged Live",
			Description:  "Acoustic renditions of classic film songs by a twelve piece band under the stars.",
			Category:     models.CategoryMusic,
			Date:         day(2026, time.December, 12),
			Time:         "7:30 PM",
			Location:     models.Location{Venue: "Jawaharlal Nehru Auditorium", City: "Delhi"},
			Price:        ranged(999, 2999),
			Image:        "https://images.unsplash.com/photo-1501386761578-eac5c94b800a",
			Tags:         []string{"bollywood", "acoustic", "live"},
			Attendees:    1400,
			MaxAttendees: 1800,
			Rating:       4.3,
			Organizer:    "BookMyShow Live",
		},
		{
			ID:           "evt-008",
			Title:        "Open Source Hackathon",
			Description:  "Build for 36 hours with maintainers of popular projects. Meals, mentors and prizes included.",
			Category:     models.CategoryTech,
			Date:         day(2026, time.December, 13),
			Time:         "10:00 AM",
			Location:     models.Location{Venue: "Koregaon Park Hub", City: "Pune"},
			Price:        flat(0),
			Image:        "https://images.unsplash.com/photo-1504384308090-c894fdcc538d",
			Tags:         []string{"coding", "open-source", "prizes"},
			Attendees:    430,
			MaxAttendees: 500,
			Featured:     true,
			Rating:       4.7,
			Organizer:    "FOSS United",
		},
		{
			ID:           "evt-009",
			Title:        "Cricket Fan Park Screening",
			Description:  "Watch the series decider on a giant screen with commentary, quizzes and food stalls.",
			Category:     models.CategorySports,
			Date:         day(2026, time.December, 19),
			Time:         "1:30 PM",
			Location:     models.Location{Venue: "Island Grounds", City: "Chennai"},
			Price:        flat(0),
			Image:        "https://images.unsplash.com/photo-1531415074968-036ba1b575da",
			Tags:         []string{"cricket", "screening", "family"},
			Attendees:    5200,
			MaxAttendees: 12000,
			Rating:       4.2,
			Organizer:    "BCCI Fan Zone",
		},
		{
			ID:           "evt-010",
			Title:        "Founders & Funding Summit",
			Description:  "Pitch sessions, investor office hours and panels on scaling consumer brands.",
			Category:     models.CategoryBusiness,
			Date:         day(2027, time.January, 9),
			Time:         "10:00 AM",
			Location:     models.Location{Venue: "Jio World Convention Centre", City: "Mumbai"},
			Price:        flat(3500),
			Image:        "https://images.unsplash.com/photo-1515187029135-18ee286d815b",
			Tags:         []string{"startups", "investors", "networking"},
			Attendees:    760,
			MaxAttendees: 1200,
			Featured:     true,
			Rating:       4.6,
			Organizer:    "Startup India Network",
		},
		{
			ID:           "evt-011",
			Title:        "Data Science Bootcamp",
			Description:  "A hands-on weekend course covering statistics, Python notebooks and model deployment.",
			Category:     models.CategoryEducation,
			Date:         day(2027, time.January, 16),
			Time:         "9:00 AM",
			Location:     models.Location{Venue: "HITEC City Learning Centre", City: "Hyderabad"},
			Price:        flat(4999),
			Image:        "https://images.unsplash.com/photo-1551288049-bebda4e38f71",
			Tags:         []string{"python", "machine-learning", "workshop"},
			Attendees:    64,
			MaxAttendees: 80,
			Rating:       4.5,
			Organizer:    "Analytics Vidhya",
		},
		{
			ID:           "evt-012",
			Title:        "Margazhi Carnatic Evenings",
			Description:  "A season of classical vocal and veena recitals by celebrated and young artistes.",
			Category:     models.CategoryMusic,
			Date:         day(2027, time.January, 18),
			Time:         "6:30 PM",
			Location:     models.Location{Venue: "Music Academy, Mylapore", City: "Chennai"},
			Price:        flat(500),
			Image:        "https://images.unsplash.com/photo-1514320291840-2e0a9bf2a9ae",
			Tags:         []string{"classical", "carnatic", "recital"},
			Attendees:    600,
			MaxAttendees: 1600,
			Rating:       4.9,
			Organizer:    "The Music Academy",
		},
		{
			ID:           "evt-013",
			Title:        "Street Photography Walk",
			Description:  "Capture the bylanes and bazaars with a professional photographer leading the way.",
			Category:     models.CategoryArt,
			Date:         day(2027, time.January, 24),
			Time:         "7:00 AM",
			Location:     models.Location{Venue: "Hauz Khas Village", City: "Delhi"},
			Price:        flat(0),
			Image:        "https://images.unsplash.com/photo-1452587925148-ce544e77e70d",
			Tags:         []string{"photography", "walk", "outdoor"},
			Attendees:    35,
			MaxAttendees: 40,
			Rating:       4.4,
			Organizer:    "Lens Collective",
		},
		{
			ID:           "evt-014",
			Title:        "Craft Beer & Food Fest",
			Description:  "Thirty microbreweries, smokehouse kitchens and live bands across a sprawling lawn.",
			Category:     models.CategoryFood,
			Date:         day(2027, time.February, 6),
			Time:         "12:00 PM",
			Location:     models.Location{Venue: "Jayamahal Palace Grounds", City: "Bangalore"},
			Price:        flat(799),
			Image:        "https://images.unsplash.com/photo-1555939594-58d7cb561ad1",
			Tags:         []string{"beer", "food", "festival"},
			Attendees:    2300,
			MaxAttendees: 5000,
			Rating:       4.1,
			Organizer:    "Brew Fest India",
		},
		{
			ID:           "evt-015",
			Title:        "Mindful Meditation Retreat",
			Description:  "A silent day retreat with guided breathing, sound baths and a sattvic lunch.",
			Category:     models.CategoryWellness,
			Date:         day(2027, time.February, 13),
			Time:         "8:00 AM",
			Location:     models.Location{Venue: "Osho Gardens", City: "Pune"},
			Price:        flat(2999),
			Image:        "https://images.unsplash.com/photo-1508672019048-805c876b67e2",
			Tags:         []string{"meditation", "retreat", "mindfulness"},
			Attendees:    48,
			MaxAttendees: 60,
			Featured:     true,
			Rating:       4.8,
			Organizer:    "Inner Space",
		},
		{
			ID:           "evt-016",
			Title:        "AI Product Conference",
			Description:  "Product leaders share playbooks for shipping machine learning features at scale.",
			Category:     models.CategoryTech,
			Date:         day(2027, time.February, 20),
			Time:         "9:00 AM",
			Location:     models.Location{Venue: "HICC Novotel", City: "Hyderabad"},
			Price:        flat(2499),
			Image:        "https://images.unsplash.com/photo-1505373877841-8d25f7d46678",
			Tags:         []string{"ai", "product", "conference"},
			Attendees:    900,
			MaxAttendees: 1500,
			Rating:       4.5,
			Organizer:    "ProductNation",
		},
	}
}

// Validate checks the record invariants the catalogue relies on.
func Validate(list []models.Event) error {
	var errs []error
	seen := make(map[string]struct{}, len(list))
	for _, e := range list {
		if e.ID == "" {
			errs = append(errs, fmt.Errorf("event %q: empty identifier", e.Title))
			continue
		}
		if _, dup := seen[e.ID]; dup {
			errs = append(errs, fmt.Errorf("event %s: duplicate identifier", e.ID))
		}
		seen[e.ID] = struct{}{}

		if !e.Category.Valid() {
			errs = append(errs, fmt.Errorf("event %s: unknown category %q", e.ID, e.Category))
		}
		if e.Attendees > e.MaxAttendees {
			errs = append(errs, fmt.Errorf("event %s: %d attendees exceed capacity %d", e.ID, e.Attendees, e.MaxAttendees))
		}
		if (e.Price.Amount() == 0) != e.Price.IsFree {
			errs = append(errs, fmt.Errorf("event %s: price %.2f disagrees with free flag %t", e.ID, e.Price.Amount(), e.Price.IsFree))
		}
		if e.Price.Max < e.Price.Min {
			errs = append(errs, fmt.Errorf("event %s: price range %.2f-%.2f is inverted", e.ID, e.Price.Min, e.Price.Max))
		}
	}
	return errors.Join(errs...)
}
