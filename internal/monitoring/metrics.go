package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventmatch_http_requests_total",
			Help: "Total HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eventmatch_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	classifierHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventmatch_classifier_rule_hits_total",
			Help: "Chat utterances answered per classifier rule",
		},
		[]string{"rule"},
	)

	searchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventmatch_search_requests_total",
			Help: "Search requests per backend and outcome",
		},
		[]string{"backend", "status"},
	)

	bookmarkToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventmatch_bookmark_toggles_total",
			Help: "Bookmark toggles by direction",
		},
		[]string{"action"},
	)

	chatSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "eventmatch_chat_sessions_active",
			Help: "Chat sessions currently held in memory",
		},
	)

	activityFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventmatch_activity_publish_failures_total",
			Help: "Activity messages that could not be published",
		},
		[]string{"topic"},
	)
)

func TrackRequest(method, route string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func TrackClassification(rule string) {
	classifierHits.WithLabelValues(rule).Inc()
}

// TrackSearch records one search call; failed searches are the ones degraded to an empty list.
func TrackSearch(backend string, failed bool) {
	status := "ok"
	if failed {
		status = "error"
	}
	searchRequests.WithLabelValues(backend, status).Inc()
}

func TrackBookmarkToggle(bookmarked bool) {
	action := "removed"
	if bookmarked {
		action = "added"
	}
	bookmarkToggles.WithLabelValues(action).Inc()
}

func SetChatSessions(n int) {
	chatSessions.Set(float64(n))
}

func TrackPublishFailure(topic string) {
	activityFailures.WithLabelValues(topic).Inc()
}
