package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config contains the process-wide configuration. It is loaded once at
// startup and treated as immutable afterwards.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	MongoURI string `env:"MONGODB_URI,required,notEmpty"`
	DBName   string `env:"DB_NAME" envDefault:"fitvision"`

	JWTSecret    string `env:"JWT_SECRET,required,notEmpty"`
	JWTAlgorithm string `env:"JWT_ALGORITHM" envDefault:"HS256"`

	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`
	ResetTokenTTL   time.Duration `env:"RESET_TOKEN_TTL" envDefault:"30m"`

	FrontendBaseURL string `env:"FRONTEND_BASE_URL" envDefault:"http://localhost:5173"`

	ResendAPIKey string `env:"RESEND_API_KEY"`
	FromEmail    string `env:"FROM_EMAIL" envDefault:"FitVision <noreply@fitvision.app>"`
	AdminEmail   string `env:"ADMIN_EMAIL"`

	// Local dev runs over plain HTTP, production sets both of these.
	CookieSecure   bool   `env:"COOKIE_SECURE" envDefault:"false"`
	CookieSameSite string `env:"COOKIE_SAMESITE" envDefault:"lax"`
}

// Load reads .env if present (ignored in production, where env vars are set
// directly) and parses the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
