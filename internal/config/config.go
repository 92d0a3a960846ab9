package config

import (
	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/nimasrn/finance-etl/pkg/logger"
	"github.com/nimasrn/finance-etl/pkg/pg"
	"github.com/pkg/errors"
)

// Config holds every setting a run needs. It is loaded once at process start
// and passed down explicitly; nothing below the cli reads the environment.
type Config struct {
	AppEnv  string `env:"APP_ENV,default=dev"`
	AppName string `env:"APP_NAME,default=finance_etl"`

	DBDriver   string `env:"DB_DRIVER,default=postgres"`
	DBPath     string `env:"DB_PATH,default=finance.db"`
	DBHost     string `env:"DB_HOST,default=localhost"`
	DBPort     string `env:"DB_PORT,default=5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBSSLMode  string `env:"DB_SSLMODE,default=disable"`
	DBDebug    bool   `env:"DB_DEBUG"`

	LoadBatchSize int    `env:"LOAD_BATCH_SIZE,default=10000"`
	SkipLogPath   string `env:"SKIP_LOG_PATH"`

	PromNamespace      string `env:"PROM_NAMESPACE,default=finance_etl"`
	PromPushgatewayURL string `env:"PROM_PUSHGATEWAY_URL"`
}

// Load reads the optional dotenv file at path, then the environment. It does
// not validate: only commands that open the database call Validate.
func Load(path string) (*Config, error) {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	if path != "" {
		logger.Info("trying to publish env from file", "path", path)
		if err := godotenv.Load(path); err != nil {
			return nil, errors.Wrapf(err, "failed to load configuration file %s", path)
		}
	}

	if _, err := env.UnmarshalFromEnviron(c); err != nil {
		return nil, errors.Wrap(err, "failed to map env variables to Configuration object")
	}

	return c, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case pg.DriverPostgres:
		if c.DBName == "" {
			return errors.New("DB_NAME is required for the postgres driver")
		}
	case pg.DriverSQLite:
		if c.DBPath == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
	default:
		return errors.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.LoadBatchSize <= 0 {
		return errors.Errorf("LOAD_BATCH_SIZE must be positive, got %d", c.LoadBatchSize)
	}
	return nil
}

func (c *Config) Postgres() pg.Config {
	return pg.Config{
		Driver:   c.DBDriver,
		Path:     c.DBPath,
		User:     c.DBUser,
		Host:     c.DBHost,
		Port:     c.DBPort,
		Password: c.DBPassword,
		Database: c.DBName,
		SSLMode:  c.DBSSLMode,
		Debug:    c.DBDebug,
	}
}
