// Package metrics holds the Prometheus collectors of the auction service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// BidsPlaced counts accepted bids.
	BidsPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auction_bids_placed_total",
		Help: "Total number of accepted bids",
	})

	// BidsRejected counts rejected bids by reason.
	BidsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_bids_rejected_total",
		Help: "Total number of rejected bids by reason",
	}, []string{"reason"})

	// BidAmount records accepted bid amounts.
	BidAmount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "auction_bid_amount",
		Help:    "Accepted bid amounts",
		Buckets: prometheus.ExponentialBuckets(10, 4, 8),
	})

	// Reactions counts like/dislike toggles by resulting action.
	Reactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_reactions_total",
		Help: "Total number of reaction toggles by action and reaction",
	}, []string{"action", "reaction"})

	// CacheLookups counts cache hits and misses by cache name.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_cache_lookups_total",
		Help: "Cache lookups by cache and result",
	}, []string{"cache", "result"})

	// HTTPRequestDuration records request latency by route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "auction_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
