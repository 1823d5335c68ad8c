package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingSetting = errors.New("missing required setting")
var ErrInvalidSetting = errors.New("invalid setting")

// Environment keys.
const (
	KeyPostgresHost     = "POSTGRES_HOST"
	KeyPostgresPort     = "POSTGRES_PORT"
	KeyPostgresDB       = "POSTGRES_DB"
	KeyPostgresUser     = "POSTGRES_USER"
	KeyPostgresPassword = "POSTGRES_PASSWORD"
	KeyPostgresSSLMode  = "POSTGRES_SSLMODE"
	KeyAdapterType      = "ADAPTER_TYPE"
	KeyHTTPPort         = "HTTP_PORT"
	KeyLogLevel         = "LOG_LEVEL"
	KeyLogFormat        = "LOG_FORMAT"
	KeySentryDSN        = "SENTRY_DSN"
	KeyAppEnv           = "APP_ENV"
)

// Adapter types selecting the database driver behind the sink.
const (
	AdapterPGXPool = "pgx.pool"
	AdapterSQLDB   = "sql.db"
	AdapterSQLXDB  = "sqlx.db"
	AdapterGORMDB  = "gorm.db"
)

var requiredKeys = []string{KeyPostgresDB, KeyPostgresUser, KeyPostgresPassword}

var defaults = map[string]string{
	KeyPostgresHost:    "localhost",
	KeyPostgresPort:    "5432",
	KeyPostgresSSLMode: "disable",
	KeyAdapterType:     AdapterPGXPool,
	KeyHTTPPort:        "8000",
	KeyLogLevel:        "info",
	KeyLogFormat:       "json",
	KeyAppEnv:          "development",
}

// Config stores all configuration for the application.
type Config struct {
	PostgresHost     string `mapstructure:"POSTGRES_HOST"`
	PostgresPort     string `mapstructure:"POSTGRES_PORT"`
	PostgresDB       string `mapstructure:"POSTGRES_DB"`
	PostgresUser     string `mapstructure:"POSTGRES_USER"`
	PostgresPassword string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresSSLMode  string `mapstructure:"POSTGRES_SSLMODE"`
	AdapterType      string `mapstructure:"ADAPTER_TYPE"`
	HTTPPort         string `mapstructure:"HTTP_PORT"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
	LogFormat        string `mapstructure:"LOG_FORMAT"`
	SentryDSN        string `mapstructure:"SENTRY_DSN"`
	AppEnv           string `mapstructure:"APP_ENV"`
}

// Load reads the configuration from the environment after loading the given .env files.
// Missing .env files are ignored. The mandatory database name, user, and password are checked
// before anything else happens; their absence yields ErrMissingSetting naming every missing key.
func Load(envFiles ...string) (Config, error) {
	cfg, err := Read(envFiles...)
	if err != nil {
		return Config{}, err
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Read is Load without validation, for runs that never connect to the database.
func Read(envFiles ...string) (Config, error) {
	if err := loadEnvFiles(envFiles...); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	for _, key := range []string{KeyPostgresDB, KeyPostgresUser, KeyPostgresPassword, KeySentryDSN} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the mandatory settings and the adapter type.
func (c Config) Validate() error {
	var missing []string

	values := map[string]string{
		KeyPostgresDB:       c.PostgresDB,
		KeyPostgresUser:     c.PostgresUser,
		KeyPostgresPassword: c.PostgresPassword,
	}

	for _, key := range requiredKeys {
		if strings.TrimSpace(values[key]) == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingSetting, strings.Join(missing, ", "))
	}

	switch c.AdapterType {
	case AdapterPGXPool, AdapterSQLDB, AdapterSQLXDB, AdapterGORMDB:
	default:
		return fmt.Errorf("%w: %s=%q", ErrInvalidSetting, KeyAdapterType, c.AdapterType)
	}

	return nil
}

// PostgresDSN returns the connection URL, understood by pgx, lib/pq, and the gorm postgres driver.
func (c Config) PostgresDSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUser, c.PostgresPassword),
		Host:     net.JoinHostPort(c.PostgresHost, c.PostgresPort),
		Path:     "/" + c.PostgresDB,
		RawQuery: url.Values{"sslmode": []string{c.PostgresSSLMode}}.Encode(),
	}

	return dsn.String()
}

func loadEnvFiles(envFiles ...string) error {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", file, err)
		}
	}

	return nil
}
