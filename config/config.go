package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config is the process configuration, read from the environment after
// godotenv has loaded the .env file.
type Config struct {
	Port     string `envconfig:"PORT" default:"8000"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	MongoURI string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDB  string `envconfig:"MONGO_DB" default:"mont"`

	// Optional; the in-memory handoff slot is used when unset.
	RedisAddr string `envconfig:"REDIS_ADDR"`

	JWTKey string `envconfig:"JWT_KEY"`

	OAuthURL     string `envconfig:"OAUTH_URL"`
	OAuthProfile string `envconfig:"OAUTH_PROFILE"`
	AuthToken    string `envconfig:"AUTH_TOKEN"`

	CloudinaryCloud  string `envconfig:"CLOUDINARY_CLOUD"`
	CloudinaryPreset string `envconfig:"CLOUDINARY_PRESET" default:"mont_uploads"`

	StaticPath string `envconfig:"STATIC_PATH" default:"dist/mont"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
