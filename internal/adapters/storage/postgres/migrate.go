package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"

	"vet-clinic-api/internal/platform/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// goose guarda su configuración en variables globales.
var gooseMu sync.Mutex

// gooseLogger adapta nuestro logger a goose.Logger. Fatalf no sale del proceso:
// goose devuelve el error igual y lo maneja quien llama.
type gooseLogger struct {
	log logger.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), nil)
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), nil)
}

func setupGoose(log logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{log: log.With(map[string]any{"component": "migrations"})})
	return goose.SetDialect("postgres")
}

// Migrate corre "up", "down" o "status" sobre las migraciones embebidas.
func Migrate(ctx context.Context, db *sql.DB, command string, log logger.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := setupGoose(log); err != nil {
		return err
	}

	switch command {
	case "up":
		return goose.UpContext(ctx, db, migrationsDir)
	case "down":
		return goose.DownContext(ctx, db, migrationsDir)
	case "status":
		return goose.StatusContext(ctx, db, migrationsDir)
	default:
		return fmt.Errorf("unknown migrate command %q (up|down|status)", command)
	}
}

// MigrateUp es el atajo que usa serve al arrancar.
func MigrateUp(ctx context.Context, db *sql.DB, log logger.Logger) error {
	return Migrate(ctx, db, "up", log)
}
