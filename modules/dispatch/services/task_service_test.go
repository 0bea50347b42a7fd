package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/taskdesk/taskdesk/modules/dispatch/domain/aggregates/task"
	"github.com/taskdesk/taskdesk/modules/dispatch/domain/entities/worker"
	"github.com/taskdesk/taskdesk/pkg/composables"
	"github.com/taskdesk/taskdesk/pkg/eventbus"
)

func adminCtx() context.Context {
	return composables.WithActor(context.Background(), composables.Actor{
		ID:   uuid.New(),
		Role: composables.RoleAdmin,
	})
}

func workerCtx(id uuid.UUID) context.Context {
	return composables.WithActor(context.Background(), composables.Actor{
		ID:   id,
		Role: composables.RoleWorker,
	})
}

func newTaskFixture(workers ...worker.Worker) (*TaskService, *memTaskRepository, eventbus.EventBus) {
	tasks := newMemTaskRepository()
	bus := eventbus.NewEventPublisher(logrus.New())
	svc := NewTaskService(tasks, &memWorkerRepository{workers: workers}, bus)
	return svc, tasks, bus
}

func seedTask(t *testing.T, tasks *memTaskRepository, assignee uuid.UUID) task.Task {
	t.Helper()
	created, err := tasks.CreateBulk(context.Background(), []task.Task{
		task.New("Alice", "+100", "", assignee),
	})
	require.NoError(t, err)
	return created[0]
}

func TestUpdateStatus_AssignedWorkerMayProgressOwnTask(t *testing.T) {
	workerID := uuid.New()
	svc, tasks, bus := newTaskFixture()
	seeded := seedTask(t, tasks, workerID)

	var event *task.StatusChangedEvent
	bus.Subscribe(func(e *task.StatusChangedEvent) { event = e })

	updated, err := svc.UpdateStatus(workerCtx(workerID), seeded.ID(), "in-progress")
	require.NoError(t, err)
	require.Equal(t, task.StatusInProgress, updated.Status())

	require.NotNil(t, event)
	require.Equal(t, task.StatusPending, event.Previous)
	require.Equal(t, task.StatusInProgress, event.Current)
}

func TestUpdateStatus_PendingMayJumpToCompleted(t *testing.T) {
	workerID := uuid.New()
	svc, tasks, _ := newTaskFixture()
	seeded := seedTask(t, tasks, workerID)

	updated, err := svc.UpdateStatus(workerCtx(workerID), seeded.ID(), "completed")
	require.NoError(t, err)
	require.Equal(t, task.StatusCompleted, updated.Status())
}

func TestUpdateStatus_OtherWorkersTaskLeftUntouched(t *testing.T) {
	svc, tasks, _ := newTaskFixture()
	seeded := seedTask(t, tasks, uuid.New())

	_, err := svc.UpdateStatus(workerCtx(uuid.New()), seeded.ID(), "completed")
	require.ErrorIs(t, err, task.ErrNotAssigned)

	stored, err := tasks.GetByID(context.Background(), seeded.ID())
	require.NoError(t, err)
	require.Equal(t, task.StatusPending, stored.Status())
}

func TestUpdateStatus_WorkerMayNotSetFailed(t *testing.T) {
	workerID := uuid.New()
	svc, tasks, _ := newTaskFixture()
	seeded := seedTask(t, tasks, workerID)

	_, err := svc.UpdateStatus(workerCtx(workerID), seeded.ID(), "failed")
	require.ErrorIs(t, err, task.ErrForbidden)
}

func TestUpdateStatus_AdminMaySetFailedOnAnyTask(t *testing.T) {
	svc, tasks, _ := newTaskFixture()
	seeded := seedTask(t, tasks, uuid.New())

	updated, err := svc.UpdateStatus(adminCtx(), seeded.ID(), "failed")
	require.NoError(t, err)
	require.Equal(t, task.StatusFailed, updated.Status())
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	workerID := uuid.New()
	svc, tasks, _ := newTaskFixture()
	seeded := seedTask(t, tasks, workerID)

	_, err := svc.UpdateStatus(workerCtx(workerID), seeded.ID(), "done")
	require.ErrorIs(t, err, task.ErrInvalidStatus)
}

func TestUpdateStatus_MissingTask(t *testing.T) {
	svc, _, _ := newTaskFixture()

	_, err := svc.UpdateStatus(adminCtx(), uuid.New(), "completed")
	require.ErrorIs(t, err, task.ErrNotFound)
}

func TestReassign_MovesAssignmentWithoutTouchingStatus(t *testing.T) {
	now := time.Now()
	target := testWorker("W2", true, now)
	svc, tasks, bus := newTaskFixture(target)
	seeded := seedTask(t, tasks, uuid.New())
	previous := seeded.AssignedWorkerID()

	_, err := svc.UpdateStatus(adminCtx(), seeded.ID(), "in-progress")
	require.NoError(t, err)

	var event *task.ReassignedEvent
	bus.Subscribe(func(e *task.ReassignedEvent) { event = e })

	updated, err := svc.Reassign(adminCtx(), seeded.ID(), target.ID())
	require.NoError(t, err)
	require.Equal(t, target.ID(), updated.AssignedWorkerID())
	require.Equal(t, task.StatusInProgress, updated.Status())

	require.NotNil(t, event)
	require.Equal(t, previous, event.PreviousWorkerID)
	require.Equal(t, target.ID(), event.WorkerID)
}

func TestReassign_WorkerRoleForbidden(t *testing.T) {
	target := testWorker("W2", true, time.Now())
	svc, tasks, _ := newTaskFixture(target)
	seeded := seedTask(t, tasks, uuid.New())

	_, err := svc.Reassign(workerCtx(uuid.New()), seeded.ID(), target.ID())
	require.ErrorIs(t, err, task.ErrForbidden)
}

func TestReassign_UnknownWorker(t *testing.T) {
	svc, tasks, _ := newTaskFixture()
	seeded := seedTask(t, tasks, uuid.New())

	_, err := svc.Reassign(adminCtx(), seeded.ID(), uuid.New())
	require.ErrorIs(t, err, worker.ErrNotFound)
}

func TestReassign_InactiveWorkerRejected(t *testing.T) {
	inactive := testWorker("Old", false, time.Now())
	svc, tasks, _ := newTaskFixture(inactive)
	seeded := seedTask(t, tasks, uuid.New())

	_, err := svc.Reassign(adminCtx(), seeded.ID(), inactive.ID())
	require.ErrorIs(t, err, worker.ErrInactive)
}

func TestFinalizeAll_SweepsOnceThenReportsZero(t *testing.T) {
	svc, tasks, bus := newTaskFixture()
	seedTask(t, tasks, uuid.New())
	seedTask(t, tasks, uuid.New())

	var event *task.FinalizedEvent
	bus.Subscribe(func(e *task.FinalizedEvent) { event = e })

	count, err := svc.FinalizeAll(adminCtx())
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
	require.NotNil(t, event)
	require.Equal(t, int64(2), event.Count)

	// The sweep is idempotent; everything is already finalized.
	count, err = svc.FinalizeAll(adminCtx())
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestFinalizeAll_WorkerRoleForbidden(t *testing.T) {
	svc, _, _ := newTaskFixture()

	_, err := svc.FinalizeAll(workerCtx(uuid.New()))
	require.ErrorIs(t, err, task.ErrForbidden)
}

func TestList_WorkerOnlySeesOwnTasks(t *testing.T) {
	workerID := uuid.New()
	svc, tasks, _ := newTaskFixture()
	mine := seedTask(t, tasks, workerID)
	seedTask(t, tasks, uuid.New())

	items, total, err := svc.List(workerCtx(workerID), nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	require.Equal(t, mine.ID(), items[0].ID())
}

func TestList_AdminSeesEverythingAndMayFilter(t *testing.T) {
	svc, tasks, _ := newTaskFixture()
	seeded := seedTask(t, tasks, uuid.New())
	seedTask(t, tasks, uuid.New())

	_, err := svc.UpdateStatus(adminCtx(), seeded.ID(), "completed")
	require.NoError(t, err)

	_, total, err := svc.List(adminCtx(), nil)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)

	completed := task.StatusCompleted
	items, total, err := svc.List(adminCtx(), &task.FindParams{Status: &completed})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	require.Equal(t, seeded.ID(), items[0].ID())
}
