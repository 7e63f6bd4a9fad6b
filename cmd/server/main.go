// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"photoportal/internal/auth"
	"photoportal/internal/config"
	"photoportal/internal/handlers"
	"photoportal/internal/logger"
	"photoportal/internal/repo"
	"photoportal/internal/storage"
	"photoportal/internal/views"
)

var (
	version = "dev"
	cli     struct {
		Debug   bool             `help:"Enable debug logging."`
		Config  string           `help:"Path to a config file (default: config.yaml in . or ..)." type:"path"`
		Version kong.VersionFlag `help:"Print version and exit."`
	}
)

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("photoportal"),
		kong.Description("Photo sharing portal."),
		kong.Vars{"version": version})
	kctx.FatalIfErrorf(run())
}

func run() error {
	// --- Load config (config.yaml + env overrides) ---
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}

	log, logFile, err := logger.Setup(cli.Debug || cfg.Log.Debug, cfg.Log.Path)
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx)

	// --- Catalog store ---
	catalog, closeCatalog, err := repo.Open(ctx, repo.Options{
		Backend:          cfg.Storage.Backend,
		DataPath:         cfg.Storage.DataPath,
		DatabaseURL:      cfg.Database.URL,
		SerializeUpserts: cfg.Storage.SerializeUpserts,
	})
	if err != nil {
		return err
	}
	defer closeCatalog()

	uploads, err := storage.NewUploads(cfg.Storage.UploadDir)
	if err != nil {
		return err
	}

	sessions, err := auth.NewSessions(auth.SessionOptions{
		Name:   cfg.Session.Name,
		Secret: cfg.Session.Secret,
		Dir:    cfg.Session.Dir,
		MaxAge: cfg.Session.MaxAge,
		Secure: cfg.Session.Secure,
	})
	if err != nil {
		return err
	}

	renderer, err := views.New()
	if err != nil {
		return err
	}

	// --- Router ---
	mux := handlers.NewRouter(handlers.Deps{
		Log:         log,
		Repo:        catalog,
		Uploads:     uploads,
		Sessions:    sessions,
		Views:       renderer,
		CORSOrigins: cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    8 * 1024,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Server.Addr).
			Str("version", version).
			Str("backend", cfg.Storage.Backend).
			Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
