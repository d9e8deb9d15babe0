package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"vet-clinic-api/internal/adapters/auth/password"
	"vet-clinic-api/internal/adapters/auth/tokens"
	"vet-clinic-api/internal/adapters/images/breedimages"
	pg "vet-clinic-api/internal/adapters/storage/postgres"
	"vet-clinic-api/internal/config"
	"vet-clinic-api/internal/platform/httpclient"
	"vet-clinic-api/internal/platform/logger"
	"vet-clinic-api/internal/router"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "vetclinic",
	Short:         "Vet clinic REST API",
	Long:          `Servidor y herramientas de administración del API de la clínica veterinaria.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("VET_CONFIG"), "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// app es lo que comparten todos los subcomandos: config, logger y store.
type app struct {
	loader   *config.Loader
	cfg      *config.Config
	log      logger.Logger
	levelVar *slog.LevelVar
	db       *sql.DB
}

func bootstrap() (*app, error) {
	loader, err := config.NewLoader(configPath)
	if err != nil {
		return nil, err
	}
	cfg, err := loader.Config()
	if err != nil {
		return nil, err
	}

	lv := new(slog.LevelVar)
	lv.Set(logger.ParseLevel(cfg.Log.Level).Slog())
	if verbose {
		lv.Set(slog.LevelDebug)
	}
	log := logger.New(logger.Options{
		Format:   logger.ParseFormat(cfg.Log.Format),
		App:      cfg.Log.App,
		Output:   os.Stderr,
		LevelVar: lv,
	})
	logger.SetDefault(log)

	a := &app{loader: loader, cfg: cfg, log: log, levelVar: lv}

	if cfg.Database.DSN != "" {
		db, err := pg.Open(cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		a.db = db
	}
	return a, nil
}

func (a *app) close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *app) requireDB() error {
	if a.db == nil {
		return fmt.Errorf("database.dsn is not configured (VET_DATABASE_DSN or DB_DSN)")
	}
	return nil
}

func (a *app) migrateUp(ctx context.Context) error {
	if a.db == nil || !a.cfg.Database.AutoMigrate {
		return nil
	}
	return pg.MigrateUp(ctx, a.db, a.log)
}

// routerOptions arma las dependencias de auth, imágenes y storage.
func (a *app) routerOptions() (router.Options, error) {
	tok, err := tokens.NewService(tokens.Config{
		Secret: a.cfg.Auth.JWTSecret,
		TTL:    a.cfg.Auth.TokenTTL,
		Issuer: a.cfg.Auth.Issuer,
	})
	if err != nil {
		return router.Options{}, err
	}

	opts := router.Options{
		Verifier:       tok,
		Issuer:         tok,
		Hasher:         password.New(a.cfg.Auth.BcryptCost),
		DB:             a.db,
		Logger:         a.log,
		AllowedOrigins: a.cfg.Server.AllowedOrigins,
	}

	if a.cfg.Images.Enabled {
		policy := breedimages.DefaultPolicy()
		opts.Images = breedimages.New(httpclient.New(policy.AttemptTimeout+time.Second), breedimages.Config{
			DogBaseURL: a.cfg.Images.DogBaseURL,
			CatBaseURL: a.cfg.Images.CatBaseURL,
			CatAPIKey:  a.cfg.Images.CatAPIKey,
			Policy:     policy,
		}, a.log.With(map[string]any{"component": "breedimages"}))
	}
	return opts, nil
}
