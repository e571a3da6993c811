package events

import (
	"testing"

	"eventmatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(list []models.Event) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, e.ID)
	}
	return out
}

// isSublist reports whether sub appears in full in the same relative order.
func isSublist(sub, full []models.Event) bool {
	i := 0
	for _, e := range full {
		if i < len(sub) && sub[i].ID == e.ID {
			i++
		}
	}
	return i == len(sub)
}

func filterStates() []State {
	return []State{
		{},
		{Query: "MUMBAI"},
		{Query: "walk", PriceBand: PriceFree},
		{Category: "music"},
		{Category: "tech", PriceBand: PricePaid},
		{PriceBand: PriceFree},
		{BookmarkOnly: true, Bookmarks: []string{"evt-016", "evt-002", "evt-404"}},
		{BookmarkOnly: true},
		{Query: "festival", Category: "all", PriceBand: PriceAll},
		{Category: "Music"},
	}
}

func TestFilter_EmptyStateReturnsEverything(t *testing.T) {
	all := SampleEvents()
	assert.Equal(t, ids(all), ids(Filter(all, State{Category: CategoryAll, PriceBand: PriceAll})))
}

func TestFilter_SublistAndIdempotent(t *testing.T) {
	all := SampleEvents()
	for _, st := range filterStates() {
		once := Filter(all, st)
		assert.True(t, isSublist(once, all), "state %+v must keep original order", st)
		assert.Equal(t, ids(once), ids(Filter(once, st)), "state %+v must be idempotent", st)
	}
}

func TestFilter_TextMatchesTitleDescriptionOrCity(t *testing.T) {
	all := SampleEvents()

	assert.Equal(t, []string{"evt-001", "evt-004", "evt-010"}, ids(Filter(all, State{Query: "mumbai"})))
	assert.Equal(t, []string{"evt-008"}, ids(Filter(all, State{Query: "HACKATHON"})))
	// description only
	assert.Equal(t, []string{"evt-015"}, ids(Filter(all, State{Query: "sound bath"})))
	// tags and organizer are not searched
	assert.Empty(t, Filter(all, State{Query: "FOSS United"}))
}

func TestFilter_CategoryIsExact(t *testing.T) {
	all := SampleEvents()
	for _, c := range models.Categories {
		for _, e := range Filter(all, State{Category: string(c)}) {
			assert.Equal(t, c, e.Category)
		}
	}
	assert.Equal(t, []string{"evt-001", "evt-007", "evt-012"}, ids(Filter(all, State{Category: "music"})))
	assert.Empty(t, Filter(all, State{Category: "Music"}))
}

func TestFilter_PriceBands(t *testing.T) {
	all := SampleEvents()

	free := Filter(all, State{PriceBand: PriceFree})
	require.NotEmpty(t, free)
	for _, e := range free {
		assert.Equal(t, 0.0, e.Price.Amount())
		assert.True(t, e.Price.IsFree)
	}

	paid := Filter(all, State{PriceBand: PricePaid})
	require.NotEmpty(t, paid)
	for _, e := range paid {
		assert.Greater(t, e.Price.Amount(), 0.0)
	}
	assert.Equal(t, len(all), len(free)+len(paid))
}

func TestFilter_BookmarkOnly(t *testing.T) {
	all := SampleEvents()
	st := State{BookmarkOnly: true, Bookmarks: []string{"evt-016", "evt-002", "evt-404"}}

	// order follows the catalogue, not the bookmark list
	assert.Equal(t, []string{"evt-002", "evt-016"}, ids(Filter(all, st)))
	assert.Empty(t, Filter(all, State{BookmarkOnly: true}))

	st.BookmarkOnly = false
	assert.Len(t, Filter(all, st), len(all))
}

func TestFilter_PredicatesCombineWithAnd(t *testing.T) {
	all := SampleEvents()
	st := State{Query: "delhi", Category: "art", PriceBand: PriceFree}
	assert.Equal(t, []string{"evt-013"}, ids(Filter(all, st)))

	st.PriceBand = PricePaid
	assert.Empty(t, Filter(all, st))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	all := SampleEvents()
	before := ids(all)
	_ = Filter(all, State{Category: "tech"})
	assert.Equal(t, before, ids(all))
}

func TestParsePriceBand(t *testing.T) {
	for in, want := range map[string]PriceBand{"": PriceAll, "all": PriceAll, "FREE": PriceFree, " paid ": PricePaid} {
		got, err := ParsePriceBand(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParsePriceBand("cheap")
	assert.Error(t, err)
}

func TestValidateSampleEvents(t *testing.T) {
	assert.NoError(t, Validate(SampleEvents()))
}

func TestValidateReportsBrokenRecords(t *testing.T) {
	list := SampleEvents()[:2]
	list[1].ID = list[0].ID
	list[0].Attendees = list[0].MaxAttendees + 1
	list[0].Price.IsFree = true

	err := Validate(list)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate identifier")
	assert.Contains(t, err.Error(), "exceed capacity")
	assert.Contains(t, err.Error(), "disagrees with free flag")
}
