package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/taskdesk/taskdesk/modules/dispatch/domain/aggregates/task"
	"github.com/taskdesk/taskdesk/modules/dispatch/domain/ingest"
	"github.com/taskdesk/taskdesk/pkg/eventbus"
	"github.com/taskdesk/taskdesk/pkg/metrics"
)

// RegisterTaskEventHandlers wires domain events to logging and metrics.
func RegisterTaskEventHandlers(bus eventbus.EventBus, log *logrus.Logger) {
	bus.Subscribe(func(event *ingest.DraftAssembledEvent) {
		metrics.UploadsTotal.Inc()
		log.WithFields(logrus.Fields{
			"total_rows":     event.TotalRows,
			"total_accepted": event.TotalAccepted,
		}).Info("draft assembled")
	})

	bus.Subscribe(func(event *task.CreatedEvent) {
		metrics.TasksCreatedTotal.Add(float64(len(event.TaskIDs)))
		log.WithFields(logrus.Fields{
			"created":     len(event.TaskIDs),
			"substituted": event.Substituted,
		}).Info("tasks created")
	})

	bus.Subscribe(func(event *task.StatusChangedEvent) {
		metrics.StatusUpdatesTotal.WithLabelValues(string(event.Current)).Inc()
		log.WithFields(logrus.Fields{
			"task_id":  event.TaskID,
			"previous": event.Previous,
			"current":  event.Current,
			"actor_id": event.ActorID,
		}).Info("task status changed")
	})

	bus.Subscribe(func(event *task.ReassignedEvent) {
		log.WithFields(logrus.Fields{
			"task_id":         event.TaskID,
			"previous_worker": event.PreviousWorkerID,
			"worker":          event.WorkerID,
		}).Info("task reassigned")
	})

	bus.Subscribe(func(event *task.FinalizedEvent) {
		metrics.TasksFinalizedTotal.Add(float64(event.Count))
		log.WithField("count", event.Count).Info("tasks finalized")
	})
}
