package configuration

import (
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		panic(err)
	}
	return c
})

// Use returns the process configuration, loading it on first use.
func Use() *Configuration {
	return singleton()
}

func LoadEnv(envFiles []string) (int, error) {
	existingFiles := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existingFiles = append(existingFiles, file)
		}
	}

	if len(existingFiles) == 0 {
		return 0, nil
	}

	return len(existingFiles), godotenv.Load(existingFiles...)
}

type DatabaseOptions struct {
	Name     string `env:"DB_NAME" envDefault:"taskdesk"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

type RateLimitOptions struct {
	Enabled   bool `env:"RATE_LIMIT_ENABLED" envDefault:"false"`
	GlobalRPS int  `env:"RATE_LIMIT_GLOBAL_RPS" envDefault:"100"`
}

type PrometheusOptions struct {
	Enabled bool   `env:"PROMETHEUS_ENABLED" envDefault:"true"`
	Path    string `env:"PROMETHEUS_PATH" envDefault:"/debug/prometheus"`
}

type Configuration struct {
	Database   DatabaseOptions
	RateLimit  RateLimitOptions
	Prometheus PrometheusOptions

	GoAppEnvironment string `env:"GO_APP_ENV" envDefault:"development"`
	SocketAddress    string `env:"SOCKET_ADDRESS" envDefault:":8080"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	RequestIDHeader  string `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
	// UploadMaxBytes bounds propose-draft uploads. The fronting gateway is
	// expected to enforce the same bound; this is the in-process backstop.
	UploadMaxBytes int64 `env:"UPLOAD_MAX_BYTES" envDefault:"10485760"`

	logger     *logrus.Logger
	loggerOnce sync.Once
}

func (c *Configuration) load(envFiles []string) error {
	if _, err := LoadEnv(envFiles); err != nil {
		return err
	}
	return env.Parse(c)
}

func (c *Configuration) Logger() *logrus.Logger {
	c.loggerOnce.Do(func() {
		logger := logrus.New()
		level, err := logrus.ParseLevel(c.LogLevel)
		if err != nil {
			level = logrus.InfoLevel
		}
		logger.SetLevel(level)
		if c.GoAppEnvironment == Production {
			logger.SetFormatter(&logrus.JSONFormatter{})
		} else {
			logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		}
		c.logger = logger
	})
	return c.logger
}
