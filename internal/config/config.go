// Package config carga la configuración del proceso desde defaults, un YAML
// opcional y variables de entorno (prefijo VET_), en ese orden de precedencia
// creciente.
package config

import (
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Images   ImagesConfig   `mapstructure:"images"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"gt=0,lt=65536"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig: DSN vacío => store en memoria.
type DatabaseConfig struct {
	DSN         string `mapstructure:"dsn"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret" validate:"required"`
	TokenTTL   time.Duration `mapstructure:"token_ttl" validate:"gt=0"`
	Issuer     string        `mapstructure:"issuer" validate:"required"`
	BcryptCost int           `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

type ImagesConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	DogBaseURL string `mapstructure:"dog_base_url" validate:"required,url"`
	CatBaseURL string `mapstructure:"cat_base_url" validate:"required,url"`
	CatAPIKey  string `mapstructure:"cat_api_key"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
	App    string `mapstructure:"app"`
}

// Addr es la dirección de escucha para http.Server.
func (s ServerConfig) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}
