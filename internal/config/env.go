package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env holds every environment-sourced setting. It is built once at startup and
// injected into services; credentials may be empty and are checked per call.
type Env struct {
	AppAddr string `env:"APP_ADDR" envDefault:":8080"`
	GinMode string `env:"GIN_MODE"`

	DBDriver    string `env:"DB_DRIVER" envDefault:"postgres"`
	DatabaseURL string `env:"DATABASE_URL"`

	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	GeocodeCacheTTL time.Duration `env:"GEOCODE_CACHE_TTL" envDefault:"24h"`

	JWTSecret string `env:"SUPABASE_JWT_SECRET"`

	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"30s"`

	TripWebhookURL    string            `env:"TRIP_WEBHOOK_URL"`
	WebhookURLs       map[string]string `env:"WEBHOOK_URLS" envSeparator:"," envKeyValSeparator:"="`
	WebhookConfigFile string            `env:"WEBHOOK_CONFIG_FILE"`

	MapboxToken   string `env:"MAPBOX_ACCESS_TOKEN"`
	MapboxBaseURL string `env:"MAPBOX_BASE_URL" envDefault:"https://api.mapbox.com"`

	UnsplashAccessKey string `env:"UNSPLASH_ACCESS_KEY"`
	UnsplashBaseURL   string `env:"UNSPLASH_BASE_URL" envDefault:"https://api.unsplash.com"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	RecaptchaSecret    string  `env:"RECAPTCHA_SECRET_KEY"`
	RecaptchaVerifyURL string  `env:"RECAPTCHA_VERIFY_URL" envDefault:"https://www.google.com/recaptcha/api/siteverify"`
	RecaptchaMinScore  float64 `env:"RECAPTCHA_MIN_SCORE" envDefault:"0"`

	OneSignalAppID  string `env:"ONESIGNAL_APP_ID"`
	OneSignalAPIKey string `env:"ONESIGNAL_REST_API_KEY"`
	OneSignalURL    string `env:"ONESIGNAL_API_URL" envDefault:"https://onesignal.com/api/v1/notifications"`
}

// LoadEnv parses the process environment.
func LoadEnv() (Env, error) {
	return parse(env.Options{})
}

// LoadEnvFrom parses the given variables instead of the process environment.
func LoadEnvFrom(vars map[string]string) (Env, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Env, error) {
	var out Env
	if err := env.ParseWithOptions(&out, opts); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	out.DBDriver = strings.ToLower(strings.TrimSpace(out.DBDriver))
	out.AppAddr = strings.TrimSpace(out.AppAddr)
	if out.AppAddr == "" {
		out.AppAddr = ":8080"
	}
	return out, nil
}

// Integrations reports which outbound integrations have credentials, without
// exposing the values.
func (e Env) Integrations() map[string]bool {
	return map[string]bool{
		"database":  strings.TrimSpace(e.DatabaseURL) != "",
		"cache":     strings.TrimSpace(e.RedisAddr) != "",
		"jwt":       strings.TrimSpace(e.JWTSecret) != "",
		"mapbox":    strings.TrimSpace(e.MapboxToken) != "",
		"unsplash":  strings.TrimSpace(e.UnsplashAccessKey) != "",
		"openai":    strings.TrimSpace(e.OpenAIAPIKey) != "",
		"recaptcha": strings.TrimSpace(e.RecaptchaSecret) != "",
		"onesignal": strings.TrimSpace(e.OneSignalAppID) != "" && strings.TrimSpace(e.OneSignalAPIKey) != "",
	}
}
