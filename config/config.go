package config

import (
	"sync"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

type Config struct {
	Application struct {
		Name        string        `env:"APP_NAME" envDefault:"bts-backoffice"`
		Environment string        `env:"APP_ENVIRONMENT" envDefault:"development"`
		Port        int           `env:"APP_PORT" envDefault:"8080"`
		Timeout     time.Duration `env:"APP_TIMEOUT" envDefault:"30s"`
		Debug       bool          `env:"APP_DEBUG" envDefault:"false"`
	}

	Provider struct {
		BaseURL string        `env:"PROVIDER_BASE_URL,required"`
		Timeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"30s"`
	}

	Dashboard struct {
		CacheTTL            time.Duration `env:"DASHBOARD_CACHE_TTL" envDefault:"60s"`
		CacheSlidingTTL     time.Duration `env:"DASHBOARD_CACHE_SLIDING_TTL" envDefault:"30s"`
		TimezoneOffsetHours int           `env:"DASHBOARD_TIMEZONE_OFFSET_HOURS" envDefault:"8"`
	}

	Authentication struct {
		AdminUsername    string        `env:"AUTH_ADMIN_USERNAME,required"`
		AdminPassword    string        `env:"AUTH_ADMIN_PASSWORD,required"`
		MaxLoginAttempts int           `env:"AUTH_MAX_LOGIN_ATTEMPTS" envDefault:"5"`
		LockoutDuration  time.Duration `env:"AUTH_LOCKOUT_DURATION" envDefault:"15m"`
		SessionTimeout   time.Duration `env:"AUTH_SESSION_TIMEOUT" envDefault:"30m"`
	}

	JWT struct {
		PrivateKey string `env:"JWT_PRIVATE_KEY,required"`
		PublicKey  string `env:"JWT_PUBLIC_KEY,required"`
	}

	Redis struct {
		Address  string `env:"REDIS_ADDRESS" envDefault:"localhost:6379"`
		Password string `env:"REDIS_PASSWORD"`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	CORS struct {
		AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
		AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,OPTIONS"`
		AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Authorization,Content-Type"`
		ExposedHeaders   []string `env:"CORS_EXPOSED_HEADERS" envSeparator:","`
		MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"300"`
		AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`
	}
}

var once sync.Once
var c *Config

func Get() *Config {
	once.Do(func() {
		// A local .env is optional; the environment always wins.
		godotenv.Load()

		c = &Config{}
		if err := env.Parse(c); err != nil {
			panic(err)
		}
	})

	return c
}
