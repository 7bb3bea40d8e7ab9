package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lab-semillas/internal/adapters/auth/odin"
	"lab-semillas/internal/adapters/notify/redispub"
	pg "lab-semillas/internal/adapters/storage/postgres"
	"lab-semillas/internal/adapters/storage/sqlite"
	"lab-semillas/internal/config"
	"lab-semillas/internal/platform/logger"
	"lab-semillas/internal/platform/metrics"
	"lab-semillas/internal/router"

	"github.com/joho/godotenv"
)

// @title       Lab Semillas API
// @version     1.0
// @description Workflow de análisis de semillas: lotes, análisis por subtipo, historial y dashboard.
// @host        localhost:8080
// @BasePath    /

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run devuelve error en vez de salir, así los defer cierran lo que ya se abrió.
func run() error {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("invalid configuration", logger.Fields{"err": err})
		return err
	}
	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, App: cfg.Log.App})
	if envErr != nil {
		log.Info("no .env file found, using environment variables", nil)
	}

	opts := router.Options{
		Logger:   log,
		Metrics:  metrics.New(),
		DevUsers: cfg.DevUsers,
	}

	// Odin primero: no abre conexiones.
	if cfg.OdinEnabled() {
		client, err := odin.NewClient(odin.Config{
			BaseURL: cfg.Odin.BaseURL,
			APIKey:  cfg.Odin.APIKey,
			Timeout: cfg.Odin.Timeout,
		})
		if err != nil {
			log.Error("invalid odin configuration", logger.Fields{"err": err})
			return err
		}
		opts.AuthVerifier = odin.NewVerifier(client)
	} else {
		log.Warn("ODIN not configured, dev auth headers enabled", nil)
	}

	if cfg.DB.DSN != "" {
		db, err := openDB(cfg, log)
		if err != nil {
			log.Error("database unavailable", logger.Fields{"err": err})
			return err
		}
		defer db.Close()
		opts.DB = db
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	if cfg.Historial.SQLitePath != "" {
		repo, err := sqlite.OpenHistorial(cfg.Historial.SQLitePath)
		if err != nil {
			log.Error("history store unavailable", logger.Fields{"err": err, "path": cfg.Historial.SQLitePath})
			return err
		}
		defer repo.Close()
		opts.HistorialRepo = repo
	}

	if cfg.Redis.Addr != "" {
		client, err := redispub.Connect(redispub.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			// Las notificaciones son best-effort: el servicio arranca igual.
			log.Warn("redis unavailable, notifications disabled", logger.Fields{"err": err})
		} else {
			defer client.Close()
			opts.Notificador = redispub.NewNotificador(client, cfg.Redis.Channel)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting server", logger.Fields{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", logger.Fields{"err": err})
			serveErr <- err
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", logger.Fields{"err": err})
	}
	log.Info("server stopped", nil)

	select {
	case err := <-serveErr:
		return err
	default:
		return nil
	}
}

// openDB abre Postgres, aplica el schema y siembra DEV_USERS.
func openDB(cfg *config.Config, log logger.Logger) (*sql.DB, error) {
	db, err := pg.Open(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := pg.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	usrs := pg.NewUsuariosRepo(db)
	for _, u := range cfg.DevUsers {
		if err := usrs.Upsert(ctx, u); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	log.Info("database ready", logger.Fields{"dev_users": len(cfg.DevUsers)})
	return db, nil
}
