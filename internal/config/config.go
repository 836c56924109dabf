package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string  `env:"APP_ENV" envDefault:"local"`
	PostgresDSN string  `env:"POSTGRES_DSN,required"`
	BotToken    string  `env:"BOT_TOKEN,required"`
	AdminIDs    []int64 `env:"ADMIN_IDS" envSeparator:","`

	// Instagram resolver. The session client needs credentials; the anonymous
	// client works without them but sees only publicly visible media.
	IGSessionEnabled bool          `env:"IG_SESSION_ENABLED" envDefault:"false"`
	IGUsername       string        `env:"IG_USERNAME"`
	IGPassword       string        `env:"IG_PASSWORD"`
	IGRequestTimeout time.Duration `env:"IG_REQUEST_TIMEOUT" envDefault:"30s"`
	IGRateLimitRPS   float64       `env:"IG_RATE_LIMIT_RPS" envDefault:"1"`
	IGMaxRetries     int           `env:"IG_MAX_RETRIES" envDefault:"2"`

	HealthPort           int           `env:"HEALTH_PORT" envDefault:"8080"`
	StatsRefreshInterval time.Duration `env:"STATS_REFRESH_INTERVAL" envDefault:"1m"`

	DBMaxConnections    int32         `env:"DB_MAX_CONNECTIONS" envDefault:"10"`
	DBMinConnections    int32         `env:"DB_MIN_CONNECTIONS" envDefault:"2"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.IGSessionEnabled && (c.IGUsername == "" || c.IGPassword == "") {
		return fmt.Errorf("IG_USERNAME and IG_PASSWORD are required when IG_SESSION_ENABLED is set")
	}

	return nil
}

// IsAdmin reports whether the given Telegram user is in the admin list.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}

	return false
}
