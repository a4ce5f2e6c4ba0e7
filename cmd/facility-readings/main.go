package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"facility-readings/internal/config"
	"facility-readings/internal/domain"
	httpapi "facility-readings/internal/http"
	"facility-readings/internal/logger"
	"facility-readings/internal/notifier"
	"facility-readings/internal/repository"
	"facility-readings/internal/service"
	"facility-readings/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "facility-readings")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis 不可用/未启用时回退内存 KV（本地 go run 也能完整联调）
	var kv store.KV
	var redisClient *redis.Client
	if cfg.RedisEnabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("Redis enabled but unreachable, falling back to in-memory KV", zap.Error(err))
			_ = redisClient.Close()
			redisClient = nil
			kv = store.NewMemoryKV()
		} else {
			log.Info("Redis KV enabled for facility-readings")
			kv = store.NewRedisKV(redisClient)
		}
	} else {
		kv = store.NewMemoryKV()
	}

	pointsRepo := repository.NewKVPointsRepo(ctx, kv, log)
	listsRepo := repository.NewKVListsRepo(ctx, kv, log)
	readingsRepo := repository.NewKVReadingsRepo(ctx, kv, log)
	submissionsRepo := repository.NewKVSubmissionsRepo(ctx, kv, log)
	usersRepo := repository.NewKVUsersRepo(ctx, kv, log)

	// Dev bootstrap: ensure a usable superadmin so the admin pages aren't empty on first run.
	if cfg.Seed.SuperAdmin {
		_ = usersRepo.UpsertUser(ctx, &domain.User{
			UserID:      "00000000-0000-0000-0000-000000000001",
			DisplayName: "SuperAdmin",
			Roles:       []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleReviewer},
		})
	}

	var n notifier.Notifier = notifier.Nop{}
	if cfg.Notifier.WebhookURL != "" {
		n = notifier.NewWebhookNotifier(cfg.Notifier.WebhookURL, log)
	}

	pointSvc := service.NewPointService(pointsRepo, log)
	listSvc := service.NewListService(listsRepo, pointsRepo, log)
	entrySvc := service.NewEntryService(pointsRepo, listsRepo, log)
	submissionSvc := service.NewSubmissionService(
		pointsRepo, readingsRepo, submissionsRepo, n, cfg.Policy.AllowAdHocPoints, log)
	reviewSvc := service.NewReviewService(submissionsRepo, readingsRepo, usersRepo, n, log)
	readingSvc := service.NewReadingService(readingsRepo, pointsRepo, log)

	router := httpapi.NewRouter(log)
	router.RegisterPointRoutes(httpapi.NewPointsHandler(pointSvc, usersRepo, log))
	router.RegisterListRoutes(httpapi.NewListsHandler(listSvc, entrySvc, usersRepo, log))
	router.RegisterEntryRoutes(httpapi.NewEntryHandler(entrySvc, submissionSvc, listsRepo, usersRepo, log))
	router.RegisterSubmissionRoutes(httpapi.NewSubmissionsHandler(reviewSvc, usersRepo, log))
	router.RegisterReadingRoutes(httpapi.NewReadingsHandler(readingSvc, usersRepo, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case <-errCh:
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
