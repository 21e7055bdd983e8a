package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Plan
		Scripture
		Backup
		Web
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Plan struct {
		Path       string
		RangeStart string // first plan date, YYYY-MM-DD
		RangeEnd   string // last plan date, YYYY-MM-DD
	}
	Scripture struct {
		ZhPath string
		EnPath string
	}
	Backup struct {
		Enabled  bool
		Dir      string
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Web struct {
		CSRFSecret      string
		SecureCookies   bool // Set to false for local dev without HTTPS
		SessionLifetime time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8199)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("plan_path", DefaultPlanPath)
	v.SetDefault("plan_range_start", "2026-01-01")
	v.SetDefault("plan_range_end", "2026-12-31")
	v.SetDefault("scripture_zh_path", DefaultScriptureZhPath)
	v.SetDefault("scripture_en_path", DefaultScriptureEnPath)

	// Scheduled backup defaults
	v.SetDefault("backup_enabled", false)
	v.SetDefault("backup_dir", "./backups")
	v.SetDefault("backup_schedule", "0 3 * * *") // Daily at 03:00

	// Web defaults
	v.SetDefault("csrf_secret", "") // Auto-generated if empty
	v.SetDefault("secure_cookies", false)
	v.SetDefault("session_lifetime", "720h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Plan: Plan{
			Path:       v.GetString("PLAN_PATH"),
			RangeStart: v.GetString("PLAN_RANGE_START"),
			RangeEnd:   v.GetString("PLAN_RANGE_END"),
		},
		Scripture: Scripture{
			ZhPath: v.GetString("SCRIPTURE_ZH_PATH"),
			EnPath: v.GetString("SCRIPTURE_EN_PATH"),
		},
		Backup: Backup{
			Enabled:  v.GetBool("BACKUP_ENABLED"),
			Dir:      v.GetString("BACKUP_DIR"),
			Schedule: v.GetString("BACKUP_SCHEDULE"),
		},
		Web: Web{
			CSRFSecret:      v.GetString("CSRF_SECRET"),
			SecureCookies:   v.GetBool("SECURE_COOKIES"),
			SessionLifetime: v.GetDuration("SESSION_LIFETIME"),
		},
	}
}
