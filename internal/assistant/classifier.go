package assistant

import (
	"fmt"
	"strings"

	"eventmatch/internal/models"
)

const (
	// MaxMatches bounds the events attached to one assistant reply.
	MaxMatches = 4
	// fallbackFeatured is how many featured events the help reply suggests.
	fallbackFeatured = 3
)

// Result is the outcome of classifying one utterance.
type Result struct {
	Rule     string         `json:"rule"`
	Response string         `json:"response"`
	Events   []models.Event `json:"events"`
}

// Rule is one entry of the ordered dispatch table. The first rule whose keyword
// appears in the lower-cased utterance decides the reply.
type Rule struct {
	Name     string
	Keywords []string
	Select   func([]models.Event) []models.Event
	Reply    func(count int) string
}

func (r Rule) matches(utterance string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(utterance, kw) {
			return true
		}
	}
	return false
}

func (r Rule) apply(list []models.Event) Result {
	selected := r.Select(list)
	return Result{
		Rule:     r.Name,
		Response: r.Reply(len(selected)),
		Events:   truncate(selected, MaxMatches),
	}
}

// Rules is evaluated top to bottom: categories, then cities, then price and time words.
var Rules = []Rule{
	categoryRule(models.CategoryMusic, "🎵 Found %d music events for you! Here are some amazing concerts and live performances:", "music", "concert"),
	categoryRule(models.CategoryTech, "💻 Found %d tech events! From conferences to hackathons, here's what's happening:", "tech", "conference", "hackathon"),
	categoryRule(models.CategorySports, "⚽ Found %d sports events for you! Get ready to cheer:", "sport", "marathon", "cricket"),
	categoryRule(models.CategoryArt, "🎨 Found %d art events! Feast your eyes on creativity:", "art", "exhibition", "gallery"),
	categoryRule(models.CategoryFood, "🍽️ Found %d food events! Get ready for a delicious experience:", "food", "wine", "culinary"),
	categoryRule(models.CategoryWellness, "🧘 Found %d wellness events! Time for some self-care:", "yoga", "wellness", "meditation"),

	cityRule("Mumbai", "Here's what's happening in the city:", "mumbai"),
	cityRule("Bangalore", "Check these out:", "bangalore", "bengaluru"),
	cityRule("Delhi", "The city has lots to offer:", "delhi"),

	{
		Name:     "free",
		Keywords: []string{"free"},
		Select:   where(func(e models.Event) bool { return e.Price.IsFree }),
		Reply:    counted("🆓 Found %d free events! No wallet needed:"),
	},
	{
		// No date arithmetic: these words always get the first events of the catalogue.
		Name:     "upcoming",
		Keywords: []string{"weekend", "today", "tomorrow"},
		Select:   func(list []models.Event) []models.Event { return truncate(list, MaxMatches) },
		Reply:    fixed("📅 Here are some upcoming events you might enjoy:"),
	},
	{
		Name:     "featured",
		Keywords: []string{"featured", "popular", "best"},
		Select:   featured,
		Reply:    fixed("⭐ Here are our featured events - the best of the best:"),
	},
}

// Fallback answers utterances no rule recognises.
var Fallback = Rule{
	Name:   "help",
	Select: func(list []models.Event) []models.Event { return truncate(featured(list), fallbackFeatured) },
	Reply: fixed("I can help you find events! Try asking about specific categories (music, tech, sports), " +
		"cities (Mumbai, Bangalore, Delhi), or budget (free events). Here are some featured events to get you started:"),
}

// Classify maps a free-text utterance to a canned reply and at most MaxMatches events.
func Classify(utterance string, list []models.Event) Result {
	normalized := strings.ToLower(utterance)
	for _, r := range Rules {
		if r.matches(normalized) {
			return r.apply(list)
		}
	}
	return Fallback.apply(list)
}

func categoryRule(c models.Category, format string, keywords ...string) Rule {
	return Rule{
		Name:     "category:" + string(c),
		Keywords: keywords,
		Select:   where(func(e models.Event) bool { return e.Category == c }),
		Reply:    counted(format),
	}
}

func cityRule(city, tagline string, keywords ...string) Rule {
	return Rule{
		Name:     "city:" + strings.ToLower(city),
		Keywords: keywords,
		Select:   where(func(e models.Event) bool { return e.Location.City == city }),
		Reply: func(n int) string {
			return fmt.Sprintf("📍 Found %d events in %s! %s", n, city, tagline)
		},
	}
}

func where(keep func(models.Event) bool) func([]models.Event) []models.Event {
	return func(list []models.Event) []models.Event {
		out := make([]models.Event, 0)
		for _, e := range list {
			if keep(e) {
				out = append(out, e)
			}
		}
		return out
	}
}

var featured = where(func(e models.Event) bool { return e.Featured })

func counted(format string) func(int) string {
	return func(n int) string { return fmt.Sprintf(format, n) }
}

func fixed(text string) func(int) string {
	return func(int) string { return text }
}

func truncate(list []models.Event, n int) []models.Event {
	if len(list) > n {
		list = list[:n]
	}
	return append([]models.Event{}, list...)
}
