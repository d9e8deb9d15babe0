package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"vet-clinic-api/internal/adapters/images/breedimages"
)

const envPrefix = "VET"

// writeTimeoutMargin es lo que se deja al handler por encima del peor caso del
// resolver de imágenes (persistir y escribir la respuesta).
const writeTimeoutMargin = 3 * time.Second

// ErrInvalid envuelve todos los errores de validación de la configuración.
var ErrInvalid = errors.New("config validation failed")

// legacyEnv son los nombres de variables sin prefijo que se siguen aceptando.
// VET_* tiene prioridad sobre estos.
var legacyEnv = map[string]string{
	"server.port":            "PORT",
	"server.allowed_origins": "CORS_ORIGINS",
	"database.dsn":           "DB_DSN",
	"auth.jwt_secret":        "JWT_SECRET",
	"auth.token_ttl":         "JWT_EXPIRES_IN",
	"log.level":              "LOG_LEVEL",
	"log.format":             "LOG_FORMAT",
	"log.app":                "APP_NAME",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.allowed_origins", []string{
		"http://localhost:5173",
		"http://localhost:5174",
		"http://localhost:5175",
	})
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.dsn", "")
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.issuer", "vet-clinic-api")
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("images.enabled", true)
	v.SetDefault("images.dog_base_url", "https://dog.ceo/api")
	v.SetDefault("images.cat_base_url", "https://api.thecatapi.com/v1")
	v.SetDefault("images.cat_api_key", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.app", "vet-clinic-api")
}

// Loader mantiene la instancia de viper para poder releer y vigilar el archivo.
type Loader struct {
	v        *viper.Viper
	validate *validator.Validate
}

// NewLoader prepara viper. path vacío => solo defaults + entorno.
// Un path que no existe es error.
func NewLoader(path string) (*Loader, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, legacy := range legacyEnv {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, err
		}
	}

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return &Loader{v: v, validate: validator.New()}, nil
}

// Load es el atajo NewLoader + Config.
func Load(path string) (*Config, error) {
	l, err := NewLoader(path)
	if err != nil {
		return nil, err
	}
	return l.Config()
}

// Config decodifica y valida.
func (l *Loader) Config() (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		durationHook(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := l.v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Server.AllowedOrigins = trimAll(cfg.Server.AllowedOrigins)

	if err := l.validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := checkWriteTimeout(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MinWriteTimeout es el mínimo de server.write_timeout con imágenes activas:
// un alta de mascota puede quedar bloqueada el peor caso del resolver.
func MinWriteTimeout() time.Duration {
	return breedimages.DefaultPolicy().WorstCase() + writeTimeoutMargin
}

func checkWriteTimeout(cfg Config) error {
	if !cfg.Images.Enabled {
		return nil
	}
	if need := MinWriteTimeout(); cfg.Server.WriteTimeout < need {
		return fmt.Errorf("%w: server.write_timeout %s is below the image lookup worst case (need at least %s)",
			ErrInvalid, cfg.Server.WriteTimeout, need)
	}
	return nil
}

// FileUsed devuelve el YAML leído, o "" si solo hay entorno.
func (l *Loader) FileUsed() string {
	return l.v.ConfigFileUsed()
}

// Watch llama onChange con la config nueva cada vez que cambia el archivo.
// Una config inválida se descarta y se informa por onError.
// Sin archivo no hace nada.
func (l *Loader) Watch(onChange func(*Config), onError func(error)) {
	if l.FileUsed() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := l.Config()
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})
	l.v.WatchConfig()
}

// durationHook acepta "90m", "24h" y también días ("7d"), el formato de JWT_EXPIRES_IN.
func durationHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		if from.Kind() != reflect.String {
			return data, nil
		}
		return parseDuration(data.(string))
	}
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
