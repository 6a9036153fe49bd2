package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Storage
	Database DatabaseConfig

	// Task intake
	Gemini GeminiConfig
	Intake IntakeConfig
	Voice  VoiceConfig

	// Integrations
	Telegram       TelegramConfig
	GoogleCalendar GoogleCalendarConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	CORSOrigins     []string
	RateLimitPerMin int // per client IP on intake routes
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type DatabaseConfig struct {
	Driver       string // postgres or sqlite
	DSN          string
	SQLitePath   string
	MaxOpenConns int
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	APIURL  string
	Timeout time.Duration // 0 leaves the model call unbounded
}

type IntakeConfig struct {
	Timezone      string
	Tags          []string
	SessionTTL    time.Duration
	MaxSessions   int
	CommitTimeout time.Duration
}

type VoiceConfig struct {
	Enabled bool
}

type TelegramConfig struct {
	BotToken        string
	WebhookURL      string
	NgrokAPIURL     string // local ngrok API used to discover WebhookURL when it is empty
	RateLimitPerMin int
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	CalendarID      string
	TokenPath       string
}

// DefaultTags is the tag vocabulary offered to the model.
var DefaultTags = []string{"Học tập", "Sức khỏe", "Công việc", "Mối quan hệ", "Cá nhân", "Mua sắm"}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches the
// default locations.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/app/")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.HTTPServer.CORSOrigins = getList(v, "http_server.cors_origins")
	cfg.HTTPServer.RateLimitPerMin = v.GetInt("http_server.rate_limit_per_min")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// Storage
	cfg.Database.Driver = strings.ToLower(v.GetString("database.driver"))
	cfg.Database.DSN = expandEnvVar(v, v.GetString("database.dsn"))
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = v.GetString("database_url")
	}
	cfg.Database.SQLitePath = v.GetString("database.sqlite_path")
	cfg.Database.MaxOpenConns = v.GetInt("database.max_open_conns")

	// Task intake
	cfg.Gemini.APIKey = expandEnvVar(v, v.GetString("gemini.api_key"))
	cfg.Gemini.Model = v.GetString("gemini.model")
	cfg.Gemini.APIURL = v.GetString("gemini.api_url")
	cfg.Gemini.Timeout = v.GetDuration("gemini.timeout")

	cfg.Intake.Timezone = v.GetString("intake.timezone")
	cfg.Intake.Tags = getList(v, "intake.tags")
	if len(cfg.Intake.Tags) == 0 {
		cfg.Intake.Tags = append([]string(nil), DefaultTags...)
	}
	cfg.Intake.SessionTTL = v.GetDuration("intake.session_ttl")
	cfg.Intake.MaxSessions = v.GetInt("intake.max_sessions")
	cfg.Intake.CommitTimeout = v.GetDuration("intake.commit_timeout")

	cfg.Voice.Enabled = v.GetBool("voice.enabled")

	// Integrations
	cfg.Telegram.BotToken = expandEnvVar(v, v.GetString("telegram.bot_token"))
	cfg.Telegram.WebhookURL = v.GetString("telegram.webhook_url")
	cfg.Telegram.NgrokAPIURL = v.GetString("telegram.ngrok_api_url")
	cfg.Telegram.RateLimitPerMin = v.GetInt("telegram.rate_limit_per_min")

	cfg.GoogleCalendar.CredentialsPath = v.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.CalendarID = v.GetString("google_calendar.calendar_id")
	cfg.GoogleCalendar.TokenPath = v.GetString("google_calendar.token_path")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("database.sqlite_path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported database.driver %q (want %s or %s)", c.Database.Driver, DriverPostgres, DriverSQLite)
	}

	if _, err := time.LoadLocation(c.Intake.Timezone); err != nil {
		return fmt.Errorf("invalid intake.timezone %q: %w", c.Intake.Timezone, err)
	}
	if c.Intake.SessionTTL <= 0 {
		return fmt.Errorf("intake.session_ttl must be positive")
	}
	if c.Intake.MaxSessions <= 0 {
		return fmt.Errorf("intake.max_sessions must be positive")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("http_server.cors_origins", "*")
	v.SetDefault("http_server.rate_limit_per_min", 120)
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.sqlite_path", "tasks.db")
	v.SetDefault("database.max_open_conns", 10)

	v.SetDefault("gemini.timeout", "0s")

	v.SetDefault("intake.timezone", "Asia/Ho_Chi_Minh")
	v.SetDefault("intake.session_ttl", "30m")
	v.SetDefault("intake.max_sessions", 1000)
	v.SetDefault("intake.commit_timeout", "30s")

	v.SetDefault("voice.enabled", true)

	v.SetDefault("telegram.rate_limit_per_min", 20)
	v.SetDefault("google_calendar.calendar_id", "primary")
	v.SetDefault("google_calendar.token_path", "token.json")
}

// getList reads a string list that may come from YAML or a comma separated env var.
func getList(v *viper.Viper, key string) []string {
	var raw []string
	switch val := v.Get(key).(type) {
	case string:
		raw = strings.Split(val, ",")
	default:
		raw = v.GetStringSlice(key)
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// expandEnvVar expands values in the format ${VAR_NAME}.
func expandEnvVar(v *viper.Viper, value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") {
		return value
	}

	envVar := value[2 : len(value)-1]
	if envValue := v.GetString(strings.ToLower(envVar)); envValue != "" {
		return envValue
	}
	return os.Getenv(envVar)
}
