package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ChatRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mosdac_bot_chat_requests_total",
			Help: "Chat messages handled, by resolved intent and status",
		},
		[]string{"intent", "status"},
	)

	ChatDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mosdac_bot_chat_duration_seconds",
			Help:    "End-to-end chat response latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)

	KGLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mosdac_bot_kg_lookups_total",
			Help: "Knowledge graph lookups, by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	AugmentationCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mosdac_bot_augmentation_calls_total",
			Help: "Generative augmentation calls, by outcome",
		},
		[]string{"outcome"},
	)

	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mosdac_bot_cache_hits_total",
			Help: "Entity detail cache hits",
		},
	)

	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mosdac_bot_cache_misses_total",
			Help: "Entity detail cache misses",
		},
	)

	EntitiesIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mosdac_bot_entities_ingested_total",
			Help: "Entities upserted by the ingestion scraper, by kind",
		},
		[]string{"kind"},
	)
)

func Init() {
	prometheus.MustRegister(ChatRequests)
	prometheus.MustRegister(ChatDuration)
	prometheus.MustRegister(KGLookups)
	prometheus.MustRegister(AugmentationCalls)
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)
	prometheus.MustRegister(EntitiesIngested)
}

func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
