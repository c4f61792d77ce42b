package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/bookingdash/internal/apiclient"
	"github.com/MrSnakeDoc/bookingdash/internal/bookings"
	"github.com/MrSnakeDoc/bookingdash/internal/config"
	"github.com/MrSnakeDoc/bookingdash/internal/httpserver"
	"github.com/MrSnakeDoc/bookingdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookingdash/internal/live"
	"github.com/MrSnakeDoc/bookingdash/internal/logger"
	"github.com/MrSnakeDoc/bookingdash/internal/prefs"
	"github.com/MrSnakeDoc/bookingdash/internal/redis"
	"github.com/MrSnakeDoc/bookingdash/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/bookingdash/internal/store/redis"
	"github.com/MrSnakeDoc/bookingdash/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	store       *bookings.Store
	hub         *live.Hub
	refresher   *scheduler.Refresher
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Preferences live in Redis when configured, in memory otherwise.
	var (
		kv          prefs.KV
		redisClient *goredis.Client
	)
	if cfg.RedisEnabled() {
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient.Named("redis"))
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		redisClient = client
		kv = redisstore.NewStore(client)
		loggerClient.Info("Redis initialized successfully")
	} else {
		kv = prefs.NewMemoryKV()
		loggerClient.Info("redis not configured, ui preferences kept in memory")
	}

	api, err := apiclient.New(apiclient.Options{
		BaseURL: cfg.APIURL,
		Timeout: cfg.APITimeout,
		Logger:  loggerClient.Named("api"),
	})
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: invalid BOOKINGDASH_API_URL: %v", err))
	}

	prefsRepo := prefs.NewRepository(kv, cfg.PrefsKey, prefs.Defaults(cfg.DefaultPageSize), loggerClient.Named("prefs"))

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	store := bookings.New(startupCtx, bookings.Options{
		API:             api,
		Prefs:           prefsRepo,
		Logger:          loggerClient.Named("store"),
		UndoWindow:      cfg.UndoWindow,
		DefaultPageSize: cfg.DefaultPageSize,
	})

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)
	refresher := scheduler.NewRefresher(store, loggerClient.Named("refresher"), cfg.RefreshInterval, reloadTrigger)

	hub := live.NewHub(loggerClient.Named("live"))

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		Store:          store,
		Hub:            hub,
		RedisClient:    redisClient,
		Refresher:      refresher,
		ReloadTrigger:  reloadTrigger,
		RequestTimeout: cfg.RequestTimeout,
	}

	server := httpserver.New(cfg.ListenPort, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		store:       store,
		hub:         hub,
		refresher:   refresher,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting bookingdash v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.Info("bookingdash"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Live feed: every committed view goes out to connected clients.
	go a.hub.Run(ctx)
	views, unsubscribe := a.store.Subscribe()
	defer unsubscribe()
	go live.Publish(ctx, views, a.hub, a.logger)

	// Initial load happens before the server listens.
	a.refresher.Start(ctx)
	a.logger.Info("bookings refresher started",
		logger.String("api", a.cfg.APIURL),
		logger.Duration("interval", a.cfg.RefreshInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.refresher.Stop()
		return err
	}

	a.refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ bookingdash stopped cleanly")
	return nil
}
