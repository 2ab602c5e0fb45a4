package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SessionsIssued counts sessions started, by source (register or login).
	SessionsIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_sessions_issued_total",
		Help: "Total number of sessions issued by source",
	}, []string{"source"})

	// PostsPublished counts posts created through the content service.
	PostsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_posts_published_total",
		Help: "Total number of posts published",
	})

	// CommentsCreated counts comments created through the content service.
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_comments_created_total",
		Help: "Total number of comments created",
	})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
