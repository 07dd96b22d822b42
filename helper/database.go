package helper

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// DatabaseConfiguration holds the connection parameters for a PostgreSQL database.
type DatabaseConfiguration struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	Schema   string
	SSLMode  string
}

// Database wraps an open database connection together with its logger.
type Database struct {
	Name     string
	Instance *sql.DB
	Logger   *slog.Logger
}

// NewDatabaseConfiguration creates a DatabaseConfiguration from environment variables.
// A .env file in the working directory is loaded first if present.
// DB_HOST, DB_PORT, DB_DATABASE, DB_USERNAME and DB_PASSWORD are required,
// DB_SCHEMA defaults to "public" and DB_SSL_MODE to "disable".
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	// Ignore a missing .env file, explicit envs take precedence anyway
	_ = godotenv.Load()

	config := &DatabaseConfiguration{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		Database: os.Getenv("DB_DATABASE"),
		Username: os.Getenv("DB_USERNAME"),
		Password: os.Getenv("DB_PASSWORD"),
		Schema:   os.Getenv("DB_SCHEMA"),
		SSLMode:  os.Getenv("DB_SSL_MODE"),
	}

	if config.Host == "" || config.Port == "" || config.Database == "" || config.Username == "" || config.Password == "" {
		return nil, fmt.Errorf("missing required database environment variables (DB_HOST, DB_PORT, DB_DATABASE, DB_USERNAME, DB_PASSWORD)")
	}

	if config.Schema == "" {
		config.Schema = "public"
	}
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config, nil
}

// NewDatabase opens a database connection and verifies it with a ping.
// It panics if the database cannot be reached, as nothing works without it.
func NewDatabase(name string, config *DatabaseConfiguration, logger *slog.Logger) *Database {
	if config == nil {
		log.Panicf("database configuration is nil")
	}

	psqlInfo := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		config.Host,
		config.Port,
		config.Username,
		config.Password,
		config.Database,
		config.SSLMode,
		config.Schema,
	)

	instance, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Panicf("error opening database connection: %v", err)
	}

	// The container in tests can take a moment to accept connections
	for i := 0; i < 10; i++ {
		err = instance.Ping()
		if err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		log.Panicf("error pinging database: %v", err)
	}

	logger.Info("Connected to database", slog.String("name", name), slog.String("database", config.Database))

	return &Database{
		Name:     name,
		Instance: instance,
		Logger:   logger,
	}
}

// Close closes the underlying database connection.
func (d *Database) Close() error {
	d.Logger.Info("Closing database connection", slog.String("name", d.Name))
	return d.Instance.Close()
}

// NewTestDatabase opens a database connection for tests with a debug-level logger.
func NewTestDatabase(config *DatabaseConfiguration) *Database {
	opts := PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}
	logger := slog.New(NewPrettyHandler(os.Stdout, opts))

	return NewDatabase("test", config, logger)
}

// MustStartPostgresContainer starts a PostgreSQL container with the pgvector
// extension available. It returns the teardown function, the mapped host port
// and any error encountered during startup.
func MustStartPostgresContainer() (func(ctx context.Context, opts ...testcontainers.TerminateOption) error, string, error) {
	var (
		dbName     = "database"
		dbPassword = "password"
		dbUsername = "user"
	)

	ctx := context.Background()

	pgContainer, err := postgres.Run(
		ctx,
		"pgvector/pgvector:pg17",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUsername),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("error starting postgres container: %w", err)
	}

	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return pgContainer.Terminate, "", fmt.Errorf("error getting mapped port: %w", err)
	}

	return pgContainer.Terminate, port.Port(), nil
}

// SetTestDatabaseConfigEnvs sets the database environment variables for tests
// to match the container started by MustStartPostgresContainer.
func SetTestDatabaseConfigEnvs(t *testing.T, port string) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", port)
	t.Setenv("DB_DATABASE", "database")
	t.Setenv("DB_USERNAME", "user")
	t.Setenv("DB_PASSWORD", "password")
	t.Setenv("DB_SCHEMA", "public")
	t.Setenv("DB_SSL_MODE", "disable")
}
