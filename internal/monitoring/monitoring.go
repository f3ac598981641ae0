// Package monitoring holds the Prometheus collectors of the service.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kicau_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	PostsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kicau_posts_created_total",
		Help: "Total original posts created",
	})

	CommentsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kicau_comments_created_total",
		Help: "Total comments created",
	})

	Retweets = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kicau_retweets_total",
		Help: "Total retweets created",
	})

	Follows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kicau_follows_total",
		Help: "Total follow and unfollow calls that succeeded",
	}, []string{"action"})

	Likes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kicau_likes_total",
		Help: "Total like and unlike calls that succeeded",
	}, []string{"action"})

	LoginFailure = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kicau_login_failure_total",
		Help: "Total failed login attempts",
	})
)

func init() {
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(PostsCreated)
	prometheus.MustRegister(CommentsCreated)
	prometheus.MustRegister(Retweets)
	prometheus.MustRegister(Follows)
	prometheus.MustRegister(Likes)
	prometheus.MustRegister(LoginFailure)
}
