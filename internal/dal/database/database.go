package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/spf13/viper"
	_ "modernc.org/sqlite"
)

//go:embed migrations
var migrations embed.FS

// Supported storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Client represents a database client for either Postgres or SQLite.
type Client struct {
	db     *sqlx.DB
	pool   *pgxpool.Pool
	driver string
}

// DB returns the underlying database handle.
func (c *Client) DB() *sqlx.DB {
	return c.db
}

// Driver returns the storage driver name.
func (c *Client) Driver() string {
	return c.driver
}

// Builder returns a statement builder using the placeholder format of the driver.
func (c *Client) Builder() sq.StatementBuilderType {
	return StatementBuilder(c.driver)
}

// StatementBuilder returns a squirrel statement builder for driver.
func StatementBuilder(driver string) sq.StatementBuilderType {
	if driver == DriverPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}

	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// Ping verifies the database is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close closes the database connection for graceful shutdown.
func (c *Client) Close() error {
	err := c.db.Close()
	if c.pool != nil {
		c.pool.Close()
	}

	return err
}

// Config describes how to open the database.
type Config struct {
	Driver     string
	DSN        string
	SQLitePath string
}

// ConfigFromEnv builds a Config from viper settings and CRM_PG_* environment variables.
func ConfigFromEnv() Config {
	driver := viper.GetString("storage.driver")
	if driver == DriverSQLite {
		return Config{
			Driver:     DriverSQLite,
			SQLitePath: viper.GetString("storage.sqlite_path"),
		}
	}

	port := os.Getenv("CRM_PG_PORT")
	if port == "" {
		port = "5432"
	}

	return Config{
		Driver: DriverPostgres,
		DSN: fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			os.Getenv("CRM_PG_HOST"),
			port,
			os.Getenv("CRM_PG_USER"),
			os.Getenv("CRM_PG_PASSWORD"),
			os.Getenv("CRM_PG_DB"),
		),
	}
}

// MustNewClient creates a new database client from configuration and applies migrations.
func MustNewClient() *Client {
	client, err := NewClient(context.Background(), ConfigFromEnv())
	if err != nil {
		panic(err)
	}

	if err := client.Migrate(); err != nil {
		panic(err)
	}

	return client
}

// NewClient opens a connection for cfg without running migrations.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	switch cfg.Driver {
	case DriverPostgres:
		return newPostgresClient(ctx, cfg.DSN)
	case DriverSQLite:
		return newSQLiteClient(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

func newPostgresClient(ctx context.Context, dsn string) (*Client, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	db := sqlx.NewDb(stdlib.OpenDBFromPool(pool), "pgx")

	slog.Info("Postgres connected", "host", config.ConnConfig.Host, "database", config.ConnConfig.Database)

	return &Client{
		db:     db,
		pool:   pool,
		driver: DriverPostgres,
	}, nil
}

func newSQLiteClient(ctx context.Context, path string) (*Client, error) {
	if path == "" {
		return nil, errors.New("storage.sqlite_path is not set")
	}

	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// SQLite serializes writers; a single connection keeps transactions from blocking each other.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}

	slog.Info("SQLite opened", "path", path)

	return &Client{
		db:     db,
		driver: DriverSQLite,
	}, nil
}

// Migrate applies all pending migrations for the client's driver.
func (c *Client) Migrate() error {
	dialect, dir := "postgres", "migrations/postgres"
	if c.driver == DriverSQLite {
		dialect, dir = "sqlite3", "migrations/sqlite"
	}

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(c.db.DB, dir); err != nil && !errors.Is(err, goose.ErrNoNextVersion) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// MigrationStatus logs the state of every migration for the client's driver.
func (c *Client) MigrationStatus() error {
	dialect, dir := "postgres", "migrations/postgres"
	if c.driver == DriverSQLite {
		dialect, dir = "sqlite3", "migrations/sqlite"
	}

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.Status(c.db.DB, dir)
}
