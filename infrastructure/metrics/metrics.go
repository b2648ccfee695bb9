package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PublishOutcomes counts upload attempts by terminal outcome
// ("published" or "failed").
var PublishOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "social_manager",
	Name:      "publish_outcomes_total",
	Help:      "Video publish attempts by outcome.",
}, []string{"outcome"})

// GenerationJobsSubmitted counts jobs handed to the video generation service.
var GenerationJobsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "social_manager",
	Name:      "generation_jobs_submitted_total",
	Help:      "Generation jobs submitted to the video generator.",
})

// TokenRefreshes counts proactive OAuth token refreshes by result.
var TokenRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "social_manager",
	Name:      "token_refreshes_total",
	Help:      "OAuth access token refreshes by result.",
}, []string{"result"})
