package config

import (
	"fmt"
	"log"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Config holds the process configuration. Every consumer receives it (or the
// values it needs) through constructors; nothing reads the environment after
// Load returns.
type Config struct {
	Port        string `env:"PORT,default=3333"`
	Host        string `env:"HOST,default=0.0.0.0"`
	BaseURL     string `env:"BASE_URL"`
	UploadDir   string `env:"UPLOAD_DIR,default=./uploads"`
	MaxFileSize int64  `env:"MAX_FILE_SIZE,default=104857600"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`

	Extras env.EnvSet
}

// Load reads .env when present and unmarshals the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	var cfg Config
	extras, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Extras = extras

	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%s", cfg.Port)
	}
	return &cfg, nil
}
