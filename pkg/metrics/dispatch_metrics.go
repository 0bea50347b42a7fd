package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_uploads_total",
		Help: "Number of draft-proposal uploads processed.",
	})
	TasksCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_tasks_created_total",
		Help: "Number of tasks created by draft commits.",
	})
	TasksFinalizedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_tasks_finalized_total",
		Help: "Number of tasks marked finalized by sweeps.",
	})
	StatusUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_status_updates_total",
		Help: "Number of task status updates, by resulting status.",
	}, []string{"status"})
)
