package dispatch

import (
	"embed"

	"github.com/taskdesk/taskdesk/modules/dispatch/handlers"
	"github.com/taskdesk/taskdesk/modules/dispatch/infrastructure/persistence"
	"github.com/taskdesk/taskdesk/modules/dispatch/presentation/controllers"
	"github.com/taskdesk/taskdesk/modules/dispatch/services"
	"github.com/taskdesk/taskdesk/pkg/application"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Name() string {
	return "dispatch"
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles, "infrastructure/persistence/schema")

	taskRepo := persistence.NewTaskRepository()
	workerRepo := persistence.NewWorkerRepository()
	keyRepo := persistence.NewIdempotencyRepository()

	app.RegisterServices(
		services.NewIngestService(workerRepo, app.EventPublisher()),
		services.NewCommitService(taskRepo, workerRepo, keyRepo, app.EventPublisher()),
		services.NewTaskService(taskRepo, workerRepo, app.EventPublisher()),
	)

	app.RegisterControllers(
		controllers.NewDispatchAPIController(app),
	)

	handlers.RegisterTaskEventHandlers(app.EventPublisher(), app.Logger())
	return nil
}
