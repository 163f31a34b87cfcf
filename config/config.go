package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Database
	HTTPServer
	Log
}

type Database struct {
	URL             string        `env:"DATABASE_URL" env-required:"true"`
	Migrate         bool          `env:"DATABASE_MIGRATE" env-default:"true"`
	Migrations      string        `env:"DATABASE_MIGRATIONS" env-default:"./migrations"`
	MaxOpenConns    int           `env:"DATABASE_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `env:"DATABASE_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnectTimeout  time.Duration `env:"DATABASE_CONNECT_TIMEOUT" env-default:"5s"`
}

type HTTPServer struct {
	Host             string        `env:"HOST" env-required:"true"`
	Port             string        `env:"PORT" env-required:"true"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT" env-default:"10s"`
	ReadTimeout      time.Duration `env:"READ_TIMEOUT" env-default:"5s"`
	WriteTimeout     time.Duration `env:"WRITE_TIMEOUT" env-default:"15s"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
	CORSAllowOrigins []string      `env:"CORS_ALLOW_ORIGINS" env-separator:"," env-default:"*"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" env-default:"debug"`
	JSON   bool   `env:"LOG_JSON" env-default:"true"`
	Caller bool   `env:"LOG_CALLER" env-default:"true"`
}

// New loads env (if the file exists) over the process environment and
// reads the result into a Config. Missing required settings are an error.
func New(env string) (*Config, error) {
	conf := &Config{}

	if err := godotenv.Overload(env); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("godotenv.Overload: %w", err)
	}

	if err := cleanenv.ReadEnv(conf); err != nil {
		return nil, fmt.Errorf("cleanenv.ReadEnv: %w", err)
	}

	return conf, nil
}

func (s HTTPServer) Addr() string {
	return fmt.Sprintf("%v:%v", s.Host, s.Port)
}
