package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/corray333/backend-labs/crm/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// MustInit loads .env and the YAML config file and installs the default logger.
// An empty path searches for config.yaml in /etc/crm and the working directory.
// Missing files are not an error; defaults and CRM_* environment variables apply.
func MustInit(path string) {
	if err := godotenv.Load("./.env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic("error while loading .env file: " + err.Error())
	}

	SetDefaults()

	viper.SetEnvPrefix("CRM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("/etc/crm")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			panic("error while reading config file: " + err.Error())
		}
	}

	SetupLogger()
}

// SetDefaults registers the default value of every config key.
func SetDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")

	viper.SetDefault("server.http.port", "8000")
	viper.SetDefault("server.http.cors.allowed_origins", []string{"*"})
	viper.SetDefault("server.http.cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	viper.SetDefault("server.http.cors.allowed_headers", []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"})
	viper.SetDefault("server.http.cors.exposed_headers", []string{"X-Request-Id"})
	viper.SetDefault("server.http.cors.allow_credentials", false)
	viper.SetDefault("server.http.cors.max_age", 300)

	viper.SetDefault("server.grpc.port", "9090")
	viper.SetDefault("server.grpc.keepalive.max_connection_idle", 15)
	viper.SetDefault("server.grpc.keepalive.max_connection_age", 30)
	viper.SetDefault("server.grpc.keepalive.max_connection_age_grace", 5)
	viper.SetDefault("server.grpc.keepalive.time", 5)
	viper.SetDefault("server.grpc.keepalive.timeout", 1)
	viper.SetDefault("server.grpc.keepalive.min_time", 5)
	viper.SetDefault("server.grpc.keepalive.permit_without_stream", true)

	viper.SetDefault("storage.driver", "postgres")
	viper.SetDefault("storage.sqlite_path", "crm.db")

	viper.SetDefault("graphql.max_page_size", 100)
	viper.SetDefault("graphql.graphiql", true)

	viper.SetDefault("events.enabled", false)
	viper.SetDefault("rabbitmq.exchange", "crm.events")
	viper.SetDefault("rabbitmq.outbox.poll_interval_seconds", 10)
	viper.SetDefault("rabbitmq.outbox.batch_size", 100)
	viper.SetDefault("rabbitmq.outbox.retry_interval_seconds", 30)

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.jaeger_endpoint", "http://localhost:14268/api/traces")

	viper.SetDefault("jobs.endpoint", "http://localhost:8000/graphql")
	viper.SetDefault("jobs.timeout_seconds", 10)
	viper.SetDefault("jobs.heartbeat.log_path", "/tmp/crm_heartbeat_log.txt")
	viper.SetDefault("jobs.heartbeat.interval", "5m")
	viper.SetDefault("jobs.order_reminders.log_path", "/tmp/order_reminders_log.txt")
	viper.SetDefault("jobs.order_reminders.lookback_days", 7)
	viper.SetDefault("jobs.order_reminders.interval", "24h")
}

// SetupLogger installs the default slog logger from log.level and log.format.
func SetupLogger() {
	handler := logger.NewHandler(&logger.Options{
		Level:  viper.GetString("log.level"),
		Format: viper.GetString("log.format"),
	})
	slog.SetDefault(slog.New(handler))
}
