package config

import (
	"time"

	"infinite-ideas-hub/internal/infrastructure/database"
)

// LoadDatabaseConfig builds the pool settings from the DB_* environment
func LoadDatabaseConfig(db DatabaseConfig) *database.DBConfig {
	return &database.DBConfig{
		Host:     db.Host,
		Port:     db.Port,
		Username: db.User,
		Password: db.Password,
		DBName:   db.Database,
		SSLMode:  db.SSLMode,

		MaxConns:          int32(getEnvInt("DB_MAX_CONNECTIONS", 25)),
		MinConns:          int32(getEnvInt("DB_MIN_CONNECTIONS", 2)),
		MaxConnLifetime:   getEnvDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
		MaxConnIdleTime:   getEnvDuration("DB_MAX_CONN_IDLE_TIME", time.Minute),
		HealthCheckPeriod: getEnvDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),

		MaxRetries:     getEnvInt("DB_MAX_RETRIES", 5),
		RetryDelay:     getEnvDuration("DB_RETRY_DELAY", time.Second),
		ConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
	}
}
