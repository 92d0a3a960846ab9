package pg

import (
	"database/sql"
	"fmt"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the connection parameters for one run. It is filled once at
// process start and handed to Open.
type Config struct {
	Driver   string
	Path     string
	User     string
	Host     string
	Port     string
	Password string
	Database string
	SSLMode  string
	Debug    bool
}

func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s", c.Host, c.User, c.Password, c.Database, c.Port, sslMode)
}

func newSqlConnection(config Config) (*sql.DB, error) {
	return sql.Open("postgres", config.DSN())
}
