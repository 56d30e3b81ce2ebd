package config

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Env         string `env:"ENV" envDefault:"development"`
	DatabaseURL string `env:"DATABASE_URL"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	JWTSecret       string        `env:"JWT_SECRET,required,notEmpty"`
	JWTAccessExpiry time.Duration `env:"JWT_ACCESS_EXPIRY" envDefault:"15m"`

	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:4200"`

	InvitationTTL           time.Duration `env:"INVITATION_TTL" envDefault:"168h"`
	InvitationSweepSchedule string        `env:"INVITATION_SWEEP_SCHEDULE" envDefault:"@hourly"`

	ConnectionEncryptionKey string `env:"CONNECTION_ENCRYPTION_KEY,required,notEmpty"`

	EmailTransport string     `env:"EMAIL_TRANSPORT" envDefault:"log"`
	SMTP           SMTPConfig `envPrefix:"SMTP_"`
	SES            SESConfig  `envPrefix:"SES_"`
}

type SMTPConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

type SESConfig struct {
	Region          string `env:"REGION" envDefault:"us-east-1"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	From            string `env:"FROM"`
}

const (
	EmailTransportSMTP = "smtp"
	EmailTransportSES  = "ses"
	EmailTransportLog  = "log"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	key, err := hex.DecodeString(c.ConnectionEncryptionKey)
	if err != nil || len(key) != 32 {
		return fmt.Errorf("CONNECTION_ENCRYPTION_KEY must be 64 hex characters")
	}

	switch c.EmailTransport {
	case EmailTransportSMTP, EmailTransportSES, EmailTransportLog:
	default:
		return fmt.Errorf("unknown EMAIL_TRANSPORT %q", c.EmailTransport)
	}

	if c.InvitationTTL <= 0 {
		return fmt.Errorf("INVITATION_TTL must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
