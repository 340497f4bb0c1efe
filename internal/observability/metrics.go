package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodgram_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "foodgram_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// RecipesCreatedTotal counts successfully created recipes.
	RecipesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodgram_recipes_created_total",
		Help: "Total number of recipes created",
	})

	// ShoppingListExportsTotal counts shopping list report downloads.
	ShoppingListExportsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodgram_shopping_list_exports_total",
		Help: "Total number of shopping list report downloads",
	})
)

// TrackQuery records the latency of a database query; meant for use
// with defer: defer observability.TrackQuery("create", "recipes", time.Now())
func TrackQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}
