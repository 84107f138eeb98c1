package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

type Config struct {
	TelegramToken string        `env:"TELEGRAM_TOKEN"`
	APIBaseURL    string        `env:"API_BASE_URL" envDefault:"http://127.0.0.1:5001/api"`
	APITimeout    time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	AdminUser     string        `env:"ADMIN_USER" envDefault:"admin"`
	AdminPassword string        `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	DBPath        string        `env:"DB_PATH" envDefault:"gestion-bot.db"`
	Workers       int           `env:"WORKERS" envDefault:"4"`
	QueueSize     int           `env:"QUEUE_SIZE" envDefault:"32"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	Locale        string        `env:"LOCALE" envDefault:"es"`
	MetricsAddr   string        `env:"METRICS_ADDR"`
}

// LoadConfig reads .env files when present and then the process environment.
func LoadConfig(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return nil, errors.Wrap(err, "load env files")
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "parse env")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Workers < 1 {
		return errors.Errorf("WORKERS debe ser mayor que cero, recibido %d", c.Workers)
	}
	if c.QueueSize < 0 {
		return errors.Errorf("QUEUE_SIZE no puede ser negativo, recibido %d", c.QueueSize)
	}
	if c.APITimeout <= 0 {
		return errors.Errorf("API_TIMEOUT debe ser positivo, recibido %s", c.APITimeout)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return errors.Wrapf(err, "LOCALE %q", c.Locale)
	}
	return nil
}

// RequireToken is checked only by commands that talk to Telegram.
func (c *Config) RequireToken() error {
	if c.TelegramToken == "" {
		return ErrNoToken{}
	}
	return nil
}

func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Spanish
	}
	return tag
}

func (c *Config) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

func (c *Config) Logger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(c.LogrusLogLevel())
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log
}

type ErrNoToken struct{}

func (e ErrNoToken) Error() string {
	return "TELEGRAM_TOKEN no está definido en el entorno"
}
