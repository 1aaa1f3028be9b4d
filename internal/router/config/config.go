package config

import (
	"errors"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config - структура для хранения конфигураций приложения
type Config struct {
	ServerAddress  string        `mapstructure:"SERVER_ADDRESS"`
	AppEnv         string        `mapstructure:"APP_ENV"`
	PostgresConn   string        `mapstructure:"POSTGRES_CONN"`
	PostgresUser   string        `mapstructure:"POSTGRES_USERNAME"`
	PostgresPass   string        `mapstructure:"POSTGRES_PASSWORD"`
	PostgresHost   string        `mapstructure:"POSTGRES_HOST"`
	PostgresPort   string        `mapstructure:"POSTGRES_PORT"`
	PostgresDB     string        `mapstructure:"POSTGRES_DATABASE"`
	DBMaxConns     int32         `mapstructure:"DB_MAX_CONNS"`
	MigrationURL   string        `mapstructure:"MIGRATION_URL"`
	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
}

var configKeys = []string{
	"SERVER_ADDRESS", "APP_ENV", "POSTGRES_CONN", "POSTGRES_USERNAME", "POSTGRES_PASSWORD",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_DATABASE", "DB_MAX_CONNS", "MIGRATION_URL",
	"JWT_SECRET", "REQUEST_TIMEOUT",
}

// LoadConfig загружает конфигурацию из файла app.env, переменные окружения имеют приоритет.
func LoadConfig(path string) (cfg Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("MIGRATION_URL", "file://migrations")
	v.SetDefault("REQUEST_TIMEOUT", 5*time.Second)

	v.AutomaticEnv()
	// Unmarshal видит переменные окружения только для известных ключей.
	for _, key := range configKeys {
		if err = v.BindEnv(key); err != nil {
			return
		}
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}
	if err = v.Unmarshal(&cfg); err != nil {
		return
	}
	if cfg.PostgresConn == "" {
		cfg.PostgresConn = cfg.connFromParts()
	}
	err = cfg.Validate()
	return
}

// connFromParts собирает строку подключения из POSTGRES_HOST, POSTGRES_PORT и остальных параметров.
func (c Config) connFromParts() string {
	if c.PostgresHost == "" || c.PostgresDB == "" {
		return ""
	}
	port := c.PostgresPort
	if port == "" {
		port = "5432"
	}
	conn := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(c.PostgresHost, port),
		Path:     "/" + c.PostgresDB,
		RawQuery: "sslmode=disable",
	}
	if c.PostgresUser != "" {
		conn.User = url.UserPassword(c.PostgresUser, c.PostgresPass)
	}
	return conn.String()
}

// Validate проверяет обязательные параметры.
func (c Config) Validate() error {
	var missing []string
	if c.PostgresConn == "" {
		missing = append(missing, "POSTGRES_CONN (or POSTGRES_HOST and POSTGRES_DATABASE)")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return errors.New("missing required config: " + strings.Join(missing, ", "))
	}
	return nil
}
