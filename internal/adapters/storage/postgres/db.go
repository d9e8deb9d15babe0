package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"vet-clinic-api/internal/apperror"
	"vet-clinic-api/internal/platform/logger"
)

var (
	ErrNotFound  = apperror.ErrNotFound
	ErrDuplicate = apperror.ErrDuplicate
)

// uniqueViolation es el SQLSTATE de Postgres para índices únicos.
const uniqueViolation = "23505"

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// HealthStatus es lo que expone /health sobre la base.
type HealthStatus struct {
	Connected bool   `json:"connected"`
	LatencyMS int64  `json:"latencyMs"`
	Error     string `json:"error,omitempty"`
}

// Mensaje público de /health; el error del driver solo va al log.
const healthUnreachable = "database unreachable"

// Health hace un ping con timeout corto. db nil => sin base configurada.
func Health(ctx context.Context, db *sql.DB) HealthStatus {
	if db == nil {
		return HealthStatus{Connected: false, Error: "database not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := db.PingContext(ctx)
	st := HealthStatus{
		Connected: err == nil,
		LatencyMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		logger.FromContext(ctx).Warn("database ping failed", map[string]any{
			"error":      err,
			"latency_ms": st.LatencyMS,
		})
		st.Error = healthUnreachable
	}
	return st
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

func checkAffected(res sql.Result, err error) error {
	if err != nil {
		return mapErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner es lo común entre *sql.Row y *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
