package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/orris-inc/momogate/internal/application/payment/usecases"
	"github.com/orris-inc/momogate/internal/infrastructure/cache"
	"github.com/orris-inc/momogate/internal/infrastructure/config"
	httpRouter "github.com/orris-inc/momogate/internal/interfaces/http"
	"github.com/orris-inc/momogate/internal/shared/goroutine"
	"github.com/orris-inc/momogate/internal/shared/logger"
)

var (
	env   string
	debug bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the callback receiver",
		Long:  `Start the HTTP server that receives provider transaction callbacks.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "", "Provider environment (sandbox, production); overrides config")
	cmd.Flags().BoolVar(&debug, "debug", false, "Run gin in debug mode and log every level with source")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" && env == "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if debug {
		cfg.Server.Mode = gin.DebugMode
	}

	if err := logger.Init(&cfg.Logger, debug); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting callback receiver",
		"environment", cfg.Gateway.Environment,
		"callback_path", cfg.Callback.Path,
		"replay_guard", cfg.Callback.ReplayGuard)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	log := logger.NewLogger()
	callbackUC := usecases.NewHandleCallbackUseCase(log)

	if cfg.Callback.ReplayGuard {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		callbackUC.SetReplayGuard(cache.NewCallbackReplayGuard(redisClient, cfg.Callback.ReplayGuardTTL))
		logger.Info("callback replay guard enabled", "redis", cfg.Redis.GetAddr())
	}

	router := httpRouter.NewRouter(callbackUC, cfg.Callback.Path, log)
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	goroutine.SafeGo(log, "http-server", func() {
		logger.Info("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}, func(r any) {
		serverErr <- fmt.Errorf("server panicked: %v", r)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}
