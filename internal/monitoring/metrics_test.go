package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTrackSearchSplitsByOutcome(t *testing.T) {
	okBefore := testutil.ToFloat64(searchRequests.WithLabelValues("local", "ok"))
	errBefore := testutil.ToFloat64(searchRequests.WithLabelValues("local", "error"))

	TrackSearch("local", false)
	TrackSearch("local", true)
	TrackSearch("local", true)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(searchRequests.WithLabelValues("local", "ok")))
	assert.Equal(t, errBefore+2, testutil.ToFloat64(searchRequests.WithLabelValues("local", "error")))
}

func TestTrackBookmarkToggle(t *testing.T) {
	before := testutil.ToFloat64(bookmarkToggles.WithLabelValues("added"))
	TrackBookmarkToggle(true)
	assert.Equal(t, before+1, testutil.ToFloat64(bookmarkToggles.WithLabelValues("added")))
}

func TestTrackRequestAndGauges(t *testing.T) {
	TrackRequest("GET", "/api/events", 200, 5*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/events", "200")), 1.0)

	SetChatSessions(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(chatSessions))

	TrackClassification("free")
	assert.GreaterOrEqual(t, testutil.ToFloat64(classifierHits.WithLabelValues("free")), 1.0)
}
