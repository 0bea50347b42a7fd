package application

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"

	"github.com/taskdesk/taskdesk/pkg/eventbus"
)

// Controller is a piece of the HTTP surface that knows how to mount itself on
// the root router.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module bundles the services, controllers and schema of one bounded context.
type Module interface {
	Name() string
	Register(app Application) error
}

type Application interface {
	DB() *pgxpool.Pool
	EventPublisher() eventbus.EventBus
	Logger() *logrus.Logger
	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	RegisterControllers(controllers ...Controller)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterServices(services ...any)
	Service(service any) any
	Migrations() *MigrationManager
}

type ApplicationOptions struct {
	Pool     *pgxpool.Pool
	EventBus eventbus.EventBus
	Logger   *logrus.Logger
}

func New(opts *ApplicationOptions) Application {
	return &application{
		pool:       opts.Pool,
		eventBus:   opts.EventBus,
		logger:     opts.Logger,
		services:   map[reflect.Type]any{},
		migrations: &MigrationManager{},
	}
}

type application struct {
	pool        *pgxpool.Pool
	eventBus    eventbus.EventBus
	logger      *logrus.Logger
	controllers []Controller
	middleware  []mux.MiddlewareFunc
	services    map[reflect.Type]any
	migrations  *MigrationManager
}

func (a *application) DB() *pgxpool.Pool {
	return a.pool
}

func (a *application) EventPublisher() eventbus.EventBus {
	return a.eventBus
}

func (a *application) Logger() *logrus.Logger {
	return a.logger
}

func (a *application) Controllers() []Controller {
	return a.controllers
}

func (a *application) Middleware() []mux.MiddlewareFunc {
	return a.middleware
}

func (a *application) RegisterControllers(controllers ...Controller) {
	a.controllers = append(a.controllers, controllers...)
}

func (a *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	a.middleware = append(a.middleware, middleware...)
}

func (a *application) RegisterServices(services ...any) {
	for _, service := range services {
		serviceType := reflect.TypeOf(service).Elem()
		a.services[serviceType] = service
	}
}

// Service looks a registered service up by example value, e.g.
// app.Service(services.TaskService{}).(*services.TaskService).
func (a *application) Service(service any) any {
	serviceType := reflect.TypeOf(service)
	svc, ok := a.services[serviceType]
	if !ok {
		panic(fmt.Sprintf("service %s not found", serviceType.Name()))
	}
	return svc
}

func (a *application) Migrations() *MigrationManager {
	return a.migrations
}

// Load registers every module with the application.
func Load(app Application, modules ...Module) error {
	for _, module := range modules {
		if err := module.Register(app); err != nil {
			return fmt.Errorf("failed to register module %s: %w", module.Name(), err)
		}
	}
	return nil
}

type schemaFS struct {
	fsys *embed.FS
	dir  string
}

// MigrationManager collects embedded goose schemas registered by modules and
// applies them at boot.
type MigrationManager struct {
	schemas []schemaFS
}

func (m *MigrationManager) RegisterSchema(fsys *embed.FS, dir string) {
	m.schemas = append(m.schemas, schemaFS{fsys: fsys, dir: dir})
}

func (m *MigrationManager) Run(ctx context.Context, connString string) error {
	if len(m.schemas) == 0 {
		return nil
	}
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	for _, schema := range m.schemas {
		goose.SetBaseFS(schema.fsys)
		if err := goose.UpContext(ctx, db, schema.dir); err != nil {
			return fmt.Errorf("failed to apply schema %s: %w", schema.dir, err)
		}
	}
	goose.SetBaseFS(nil)
	return nil
}
