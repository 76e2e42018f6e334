package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"safetynet-alerts/internal/config"
	httpapi "safetynet-alerts/internal/http"
	"safetynet-alerts/internal/logger"
	"safetynet-alerts/internal/repository"
	"safetynet-alerts/internal/service"
	"safetynet-alerts/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "safetynet-alerts")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// 唯一的数据文件属主：所有段写入都经它串行化
	documentStore := store.NewDocumentStore(cfg.DataFile, log)

	personsRepo, err := repository.NewPersonsRepo(documentStore, log)
	if err != nil {
		log.Fatal("loading persons directory", zap.Error(err))
	}
	stationsRepo, err := repository.NewFireStationsRepo(documentStore, log)
	if err != nil {
		log.Fatal("loading fire stations directory", zap.Error(err))
	}
	recordsRepo, err := repository.NewMedicalRecordsRepo(documentStore, log)
	if err != nil {
		log.Fatal("loading medical records directory", zap.Error(err))
	}

	// 视图缓存：默认进程内存，REDIS_ENABLED=true 时走 Redis
	var viewCache *service.ViewCache
	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		var kv store.KV = store.NewMemoryKV()
		if cfg.Cache.RedisEnabled {
			redisClient = redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			kv = store.NewRedisKV(redisClient)
			log.Info("view cache backed by redis", zap.String("addr", cfg.Redis.Addr))
		}
		viewCache = service.NewViewCache(kv, cfg.Cache.TTL, log)
	}

	medicalRecordService := service.NewMedicalRecordService(recordsRepo, viewCache, log)
	personService := service.NewPersonService(personsRepo, medicalRecordService, viewCache, log)
	fireStationService := service.NewFireStationService(stationsRepo, personService, medicalRecordService, viewCache, log)

	router := httpapi.NewRouter(log)
	router.RegisterPersonRoutes(httpapi.NewPersonHandler(personService, log))
	router.RegisterFireStationRoutes(httpapi.NewFireStationHandler(fireStationService, log))
	router.RegisterMedicalRecordRoutes(httpapi.NewMedicalRecordHandler(medicalRecordService, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Error("HTTP server stopped", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
