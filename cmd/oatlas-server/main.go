// Command oatlas-server runs the open access atlas API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oatlas/oatlas/internal/api"
	"github.com/oatlas/oatlas/internal/cache"
	"github.com/oatlas/oatlas/internal/config"
	"github.com/oatlas/oatlas/internal/db"
	"github.com/oatlas/oatlas/internal/db/migrations"
	"github.com/oatlas/oatlas/internal/dbpool"
	"github.com/oatlas/oatlas/internal/metrics"
	"github.com/oatlas/oatlas/internal/models"
	"github.com/oatlas/oatlas/internal/service"
	"github.com/oatlas/oatlas/internal/store"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		loader store.Loader
		pool   *dbpool.Pool
	)

	if cfg.DataDir != "" {
		loader = store.NewFileLoader(cfg.DataDir)
		log.WithField("dir", cfg.DataDir).Info("using file corpus")
	} else {
		pool, err = dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
			return err
		}

		loader = store.NewPostgresLoader(pool)
		log.Info("using postgres corpus")
	}

	st := store.New(loader, cfg.Search, log)
	if err := st.Reload(ctx); err != nil {
		return err
	}
	updateSnapshotGauges(st)

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for range hup {
			log.Info("reloading snapshot")
			if err := st.Reload(ctx); err != nil {
				log.WithError(err).Error("snapshot reload failed, previous snapshot kept")

				continue
			}
			updateSnapshotGauges(st)
		}
	}()

	entitySvc := service.NewEntityService(st, log)

	var (
		entities  api.EntityRepository = entitySvc
		cachePing api.Pinger
	)

	if cfg.CacheEnabled() {
		qc, err := cache.NewRedisCache(ctx, cfg.RedisURL.Value(), cfg.CacheTTL, log)
		if err != nil {
			return err
		}
		defer qc.Close() //nolint:errcheck // best-effort close on shutdown.

		entities = service.NewCachedEntityService(entitySvc, qc, log)
		cachePing = qc
		log.WithField("ttl", cfg.CacheTTL).Info("query cache enabled")
	}

	deps := &api.RouterDeps{
		Log:         log,
		Store:       st,
		Entities:    entities,
		Search:      service.NewSearchService(st, log),
		Download:    service.NewDownloadService(st, cfg.BuildToken, log),
		CORSOrigins: cfg.CORSOrigins,
		AllowAll:    cfg.AllowAllOrigins(),
		Version:     config.Version,
		Build:       cfg.BuildToken,
	}
	if pool != nil {
		deps.DB = pool
	}
	if cachePing != nil {
		deps.Cache = cachePing
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(ctx, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr()).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func updateSnapshotGauges(st *store.Store) {
	snap, err := st.Snapshot()
	if err != nil {
		return
	}

	metrics.SnapshotEntities.WithLabelValues(string(models.TypeCountry)).
		Set(float64(len(snap.Entities(models.TypeCountry))))
	metrics.SnapshotEntities.WithLabelValues(string(models.TypeInstitution)).
		Set(float64(len(snap.Entities(models.TypeInstitution))))
}
