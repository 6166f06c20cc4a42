package app

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/eliezerb2/presence/internal/attendance"
	"github.com/eliezerb2/presence/internal/automation"
	"github.com/eliezerb2/presence/internal/calendar"
	"github.com/eliezerb2/presence/internal/shared/connection"
)

type Config struct {
	Postgres    connection.PostgresConfig
	RedisAddr   string
	KafkaBroker string
	Port        string

	Location      *time.Location
	Weekend       calendar.Weekend
	SweepInterval time.Duration
	EvaluateAt    attendance.ClockTime

	// NotifyEnabled routes notifications through the Kafka outbox; when off
	// they are only logged.
	NotifyEnabled bool
	AutoMigrate   bool
}

// LoadConfig reads the process environment. Call godotenv.Load first to pick
// up a local .env file.
func LoadConfig() (Config, error) {
	cfg := Config{
		Postgres: connection.PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
			Port:     envOr("DB_PORT", "5432"),
			SSLMode:  envOr("DB_SSLMODE", "disable"),
		},
		RedisAddr:   envOr("REDIS_ADDR", "localhost:6379"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		Port:        envOr("PORT", "3000"),
	}

	loc, err := time.LoadLocation(envOr("SCHOOL_TIMEZONE", "Asia/Jerusalem"))
	if err != nil {
		return cfg, fmt.Errorf("SCHOOL_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if cfg.Weekend, err = calendar.ParseWeekend(os.Getenv("SCHOOL_WEEKEND")); err != nil {
		return cfg, fmt.Errorf("SCHOOL_WEEKEND: %w", err)
	}

	defaults := automation.DefaultSchedulerConfig()
	cfg.SweepInterval = defaults.SweepInterval
	if raw := os.Getenv("SWEEP_INTERVAL"); raw != "" {
		if cfg.SweepInterval, err = time.ParseDuration(raw); err != nil || cfg.SweepInterval <= 0 {
			return cfg, fmt.Errorf("SWEEP_INTERVAL: invalid duration %q", raw)
		}
	}

	cfg.EvaluateAt = defaults.EvaluateAt
	if raw := os.Getenv("MONTHLY_EVALUATION_AT"); raw != "" {
		if cfg.EvaluateAt, err = attendance.ParseClockTime(raw); err != nil {
			return cfg, fmt.Errorf("MONTHLY_EVALUATION_AT: %w", err)
		}
	}

	if cfg.NotifyEnabled, err = envBool("NOTIFY_ENABLED", false); err != nil {
		return cfg, err
	}
	if cfg.AutoMigrate, err = envBool("AUTO_MIGRATE", true); err != nil {
		return cfg, err
	}
	if cfg.NotifyEnabled && cfg.KafkaBroker == "" {
		return cfg, fmt.Errorf("KAFKA_BROKER is required when NOTIFY_ENABLED is set")
	}
	return cfg, nil
}

func (c Config) Schedule() attendance.Schedule {
	return attendance.DefaultSchedule(c.Location)
}

func (c Config) SchedulerConfig() automation.SchedulerConfig {
	return automation.SchedulerConfig{SweepInterval: c.SweepInterval, EvaluateAt: c.EvaluateAt}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, raw)
	}
	return v, nil
}
