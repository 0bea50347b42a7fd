package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/taskdesk/taskdesk/pkg/application"
	"github.com/taskdesk/taskdesk/pkg/configuration"
	"github.com/taskdesk/taskdesk/pkg/constants"
	"github.com/taskdesk/taskdesk/pkg/middleware"
	"github.com/taskdesk/taskdesk/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

// Default assembles the HTTP server with the standard middleware stack.
func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.PoolKey, options.Pool),
		middleware.Cors("http://localhost:3000"),
	}

	if options.Configuration.RateLimit.Enabled {
		middlewares = append(middlewares, middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerPeriod: options.Configuration.RateLimit.GlobalRPS,
			Store:             middleware.NewMemoryStore(),
		}))
	}

	app.RegisterMiddleware(middlewares...)
	app.RegisterControllers(newHealthController())
	return server.NewHTTPServer(app), nil
}

type healthController struct{}

func newHealthController() application.Controller {
	return &healthController{}
}

func (c *healthController) Key() string {
	return "/health"
}

func (c *healthController) Register(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
}
