package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-comments-harvester/internal/config"
	"github.com/pribylovaa/go-comments-harvester/internal/detection"
	"github.com/pribylovaa/go-comments-harvester/internal/export"
	"github.com/pribylovaa/go-comments-harvester/internal/httpserver"
	"github.com/pribylovaa/go-comments-harvester/internal/input"
	"github.com/pribylovaa/go-comments-harvester/internal/metrics"
	logctx "github.com/pribylovaa/go-comments-harvester/internal/pkg/log"
	"github.com/pribylovaa/go-comments-harvester/internal/service"
	"github.com/pribylovaa/go-comments-harvester/internal/storage"
	"github.com/pribylovaa/go-comments-harvester/internal/storage/minio"
	"github.com/pribylovaa/go-comments-harvester/internal/storage/postgres"
	"github.com/pribylovaa/go-comments-harvester/internal/tiktok"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath string
		postsPath  string
		purge      bool
	)
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.StringVar(&postsPath, "posts", "", "path to posts JSON file (overrides input.posts_file)")
	flag.BoolVar(&purge, "purge", false, "remove every object from the media bucket and exit")
	flag.Parse()

	cfg := config.MustLoad(configPath)
	if postsPath != "" {
		cfg.Input.PostsFile = postsPath
	}

	log := setupLogger(cfg.Env).With(slog.String("run_id", uuid.NewString()))
	slog.SetDefault(log)
	log.Info("starting harvester", "env", cfg.Env, "purge", purge)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()
	rootCtx = logctx.Into(rootCtx, log)

	include, err := detection.LoadKeywords(cfg.Detection.IncludeFile)
	if err != nil {
		log.Error("keywords_load_failed", slog.String("err", err.Error()))
		return 1
	}

	deny, err := detection.LoadKeywords(cfg.Detection.DenyFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Error("keywords_load_failed", slog.String("err", err.Error()))
			return 1
		}
		log.Warn("deny_list_missing", slog.String("path", cfg.Detection.DenyFile))
	}

	policy := detection.NewPolicy(include, deny, cfg.Detection.Threshold)
	log.Info("policy_loaded", slog.Int("include", len(include)), slog.Int("deny", len(deny)))

	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	archive, err := postgres.New(dbCtx, cfg.DB.URL)
	dbCancel()
	if err != nil {
		log.Error("postgres_connect_failed", slog.String("err", err.Error()))
		return 1
	}
	defer archive.Close()
	log.Info("postgres_connected")

	var media storage.Media
	if cfg.Upload.Enabled || purge {
		s3Ctx, s3Cancel := context.WithTimeout(rootCtx, 10*time.Second)
		ms, err := minio.New(s3Ctx, cfg.S3)
		s3Cancel()
		if err != nil {
			log.Error("minio_connect_failed", slog.String("err", err.Error()))
			return 1
		}
		media = ms
		log.Info("minio_connected", slog.String("bucket", cfg.S3.Bucket))
	}

	feed := tiktok.New(&http.Client{Timeout: cfg.TikTok.RequestTimeout}, tiktok.Options{
		BaseURL:       cfg.TikTok.BaseURL,
		VideoBaseURL:  cfg.TikTok.VideoBaseURL,
		UserAgent:     cfg.TikTok.UserAgent,
		PageSize:      cfg.TikTok.PageSize,
		MaxConcurrent: cfg.TikTok.MaxConcurrent,
	})

	var exporter *export.Writer
	if cfg.Export.Dir != "" {
		exporter, err = export.New(cfg.Export.Dir, export.Format(cfg.Export.Format))
		if err != nil {
			log.Error("export_init_failed", slog.String("err", err.Error()))
			return 1
		}
		log.Info("export_enabled", slog.String("dir", cfg.Export.Dir), slog.String("format", cfg.Export.Format))
	}

	m := metrics.New()
	svc := service.New(archive, media, feed, policy, exporter, m, *cfg)

	// HTTP readiness/liveness/metrics
	var ready atomic.Int32
	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr: httpAddr,
		Handler: httpserver.NewRouter(httpserver.Options{
			Logger:   log,
			Gatherer: m.Registry(),
			Ready:    &ready,
			Ping:     archive.Ping,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("http_listen_start", "addr", httpAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}()

	defer func() {
		ready.Store(0)
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Timeouts.Shutdown)
		defer shutdownCancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Warn("http_shutdown_failed", slog.String("err", err.Error()))
		}
		log.Info("harvester_stopped")
	}()

	ready.Store(1)

	if purge {
		removed, err := svc.Purge(rootCtx)
		if err != nil {
			log.Error("purge_failed", slog.Int("removed", removed), slog.String("err", err.Error()))
			return 1
		}
		return 0
	}

	posts, err := input.LoadPosts(cfg.Input.PostsFile)
	if err != nil {
		log.Error("posts_load_failed", slog.String("err", err.Error()))
		return 1
	}

	summary, err := svc.Run(rootCtx, posts)
	if err != nil {
		log.Error("harvest_failed", slog.String("err", err.Error()))
		return 1
	}

	log.Info("harvest_summary",
		slog.Int("total", summary.Total),
		slog.Int("selected", summary.Selected),
		slog.Int("processed", summary.Processed),
		slog.Int("failed", summary.Failed),
	)

	return 0
}

// setupLogger — формат и уровень логов по окружению.
func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
