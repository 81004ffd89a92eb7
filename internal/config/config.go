package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/easysocial/easysocial-server/internal/models"
)

type AppConfig struct {
	// Server port
	Port string
	// Public host used to build the OAuth redirect URIs,
	// e.g. social.example
	PublicHost string
	Env        string
	LogLevel   string
}

// OAuthClient holds one provider's application credentials.
type OAuthClient struct {
	ClientID     string
	ClientSecret string
}

type StateConfig struct {
	// TTL of an issued state token.
	TTL time.Duration
	// How often the in-memory store sweeps expired entries.
	CheckInterval time.Duration
}

type JWTConfig struct {
	Secret   string
	Issuer   string
	Subject  string
	Lifetime time.Duration
}

type DatabaseConfig struct {
	// postgres://<user>:<pass>@<host>:<port>/<database>
	URL string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type MinioConfig struct {
	Endpoint  string
	Port      int
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type Config struct {
	App      AppConfig
	OAuth    map[models.Provider]OAuthClient
	State    StateConfig
	JWT      JWTConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Minio    MinioConfig
}

const (
	defaultStateTTL    = 6000 * time.Second
	defaultStateCheck  = 600 * time.Second
	defaultJWTIssuer   = "EasySocial Issuing Service"
	defaultJWTSubject  = "EasySocial Authentication Provider"
	defaultJWTLifetime = 7890000 * time.Second
	defaultMinioPort   = 9000
	defaultMinioBucket = "easysocial"
)

// Load reads configuration from .env / environment variables and
// validates everything the server cannot run without. A missing JWT
// secret or missing provider credentials are startup failures, not
// per-request ones.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	viper.SetDefault("PORT", "3000")
	viper.SetDefault("APP_ENV", "production")
	viper.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		App: AppConfig{
			Port:       viper.GetString("PORT"),
			PublicHost: viper.GetString("HOST"),
			Env:        viper.GetString("APP_ENV"),
			LogLevel:   viper.GetString("LOG_LEVEL"),
		},
		OAuth: map[models.Provider]OAuthClient{
			models.ProviderGitHub: {
				ClientID:     viper.GetString("OAUTH_GITHUB_ID"),
				ClientSecret: viper.GetString("OAUTH_GITHUB_SECRET"),
			},
			models.ProviderGoogle: {
				ClientID:     viper.GetString("OAUTH_GOOGLE_ID"),
				ClientSecret: viper.GetString("OAUTH_GOOGLE_SECRET"),
			},
			models.ProviderMicrosoft: {
				ClientID:     viper.GetString("OAUTH_MICROSOFT_ID"),
				ClientSecret: viper.GetString("OAUTH_MICROSOFT_SECRET"),
			},
		},
		State: StateConfig{
			TTL:           durationSeconds("OAUTH_STATE_TTL", defaultStateTTL),
			CheckInterval: durationSeconds("OAUTH_STATE_CHECK", defaultStateCheck),
		},
		JWT: JWTConfig{
			Secret:   viper.GetString("JWT_SECRET"),
			Issuer:   stringOr("JWT_ISSUER", defaultJWTIssuer),
			Subject:  stringOr("JWT_SUBJECT", defaultJWTSubject),
			Lifetime: durationSeconds("JWT_EXPIREIN", defaultJWTLifetime),
		},
		Database: DatabaseConfig{
			URL: fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
				viper.GetString("POSTGRES_USER"),
				viper.GetString("POSTGRES_PASS"),
				viper.GetString("POSTGRES_HOST"),
				viper.GetString("POSTGRES_PORT"),
				viper.GetString("POSTGRES_DB"),
			),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("REDIS_ADDRESS"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Minio: MinioConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			Port:      intOr("MINIO_PORT", defaultMinioPort),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: viper.GetString("MINIO_SECRET_KEY"),
			UseSSL:    viper.GetBool("MINIO_SSL"),
			Bucket:    stringOr("MINIO_BUCKET", defaultMinioBucket),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required: refusing to serve authenticated routes without a signing key")
	}
	if c.App.PublicHost == "" {
		return fmt.Errorf("HOST is required to build OAuth redirect URIs")
	}
	for provider, client := range c.OAuth {
		if client.ClientID == "" || client.ClientSecret == "" {
			return fmt.Errorf("missing oauth credentials for provider %q", provider)
		}
	}
	return nil
}

// RedirectURI builds the callback URI registered with each provider.
func (c *Config) RedirectURI(provider models.Provider) string {
	return fmt.Sprintf("https://%s/oauth/%s/", c.App.PublicHost, provider)
}

func durationSeconds(key string, fallback time.Duration) time.Duration {
	if s := viper.GetInt(key); s > 0 {
		return time.Duration(s) * time.Second
	}
	return fallback
}

func stringOr(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

func intOr(key string, fallback int) int {
	if v := viper.GetInt(key); v > 0 {
		return v
	}
	return fallback
}
