package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	getCacheStatsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_cache_stats"
	getDailySlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_daily_slots"
	getMonthlyAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_monthly_availability"
	invalidateCacheHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/invalidate_cache"
	warmCacheHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/warm_cache"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	availabilityCache "github.com/m04kA/SMC-AvailabilityService/internal/infra/cache"
	resourcesRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/resources"
	taskServiceClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/taskservice"
	invalidationService "github.com/m04kA/SMC-AvailabilityService/internal/service/invalidation"
	warmupService "github.com/m04kA/SMC-AvailabilityService/internal/service/warmup"
	getDailySlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_daily_slots"
	getMonthlyAvailabilityUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_monthly_availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// availabilityStore общий интерфейс кэшей доступности (memory и redis)
type availabilityStore interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
	DeletePattern(ctx context.Context, pattern string) (int, error)
	Stats(ctx context.Context) (availabilityCache.Stats, error)
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем кэш доступности
	// Типизированный nil *metrics.Metrics нельзя класть в интерфейс напрямую
	var cacheMetrics availabilityCache.MetricsRecorder
	if metricsCollector != nil {
		cacheMetrics = metricsCollector
	}

	var (
		store       availabilityStore
		memoryStore *availabilityCache.MemoryCache
	)
	dailyTTL := time.Duration(cfg.Cache.DailyTTL) * time.Second
	monthlyTTL := time.Duration(cfg.Cache.MonthlyTTL) * time.Second

	switch cfg.Cache.Backend {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		store = availabilityCache.NewRedisCache(redisClient, dailyTTL, log)
		log.Info("Cache backend: redis (addr=%s)", cfg.Redis.Addr)

	default:
		memoryStore = availabilityCache.NewMemoryCache(
			cfg.Cache.MaxSize,
			dailyTTL,
			time.Duration(cfg.Cache.SweepInterval)*time.Second,
			cacheMetrics,
			log,
		)
		memoryStore.StartSweep()
		store = memoryStore
		log.Info("Cache backend: memory (maxSize=%d)", cfg.Cache.MaxSize)
	}

	// Инициализируем репозиторий ресурсов
	var repoMetrics resourcesRepo.MetricsRecorder
	var taskMetrics taskServiceClient.MetricsRecorder
	if metricsCollector != nil {
		repoMetrics = metricsCollector
		taskMetrics = metricsCollector
	}

	resourceRepository := resourcesRepo.NewRepository(db, repoMetrics)

	// Инициализируем клиента внешней системы задач
	taskClient := taskServiceClient.NewClient(
		cfg.TaskService.URL,
		time.Duration(cfg.TaskService.Timeout)*time.Second,
		taskMetrics,
		log,
	)
	log.Info("Task service client initialized (url=%s, timeout=%ds)",
		cfg.TaskService.URL, cfg.TaskService.Timeout)

	// Парсим рабочие часы
	openTime, err := types.NewTimeStringFromString(cfg.Availability.OpenTime)
	if err != nil {
		log.Fatal("Invalid availability.open_time: %v", err)
	}
	closeTime, err := types.NewTimeStringFromString(cfg.Availability.CloseTime)
	if err != nil {
		log.Fatal("Invalid availability.close_time: %v", err)
	}

	// Инициализируем use cases
	getDailySlotsUseCase := getDailySlotsUC.NewUseCase(
		getDailySlotsUC.Config{
			OpenTime:            openTime,
			CloseTime:           closeTime,
			SlotDurationMinutes: cfg.Availability.SlotDurationMinutes,
			CacheTTL:            dailyTTL,
		},
		resourceRepository,
		taskClient,
		store,
		log,
	)

	getMonthlyAvailabilityUseCase := getMonthlyAvailabilityUC.NewUseCase(
		getMonthlyAvailabilityUC.Config{
			CacheTTL: monthlyTTL,
		},
		resourceRepository,
		store,
		log,
	)

	// Инициализируем сервисы
	invalidationSvc := invalidationService.NewService(store, log)
	warmupSvc := warmupService.NewService(
		warmupService.Config{
			DaysAhead:  cfg.Warmup.DaysAhead,
			UnitCounts: cfg.Warmup.UnitCounts,
		},
		getMonthlyAvailabilityUseCase,
		getDailySlotsUseCase,
		store,
		log,
	)

	// Инициализируем handlers
	getMonthlyAvailability := getMonthlyAvailabilityHandler.NewHandler(getMonthlyAvailabilityUseCase, log)
	getDailySlots := getDailySlotsHandler.NewHandler(getDailySlotsUseCase, log)
	invalidateCache := invalidateCacheHandler.NewHandler(invalidationSvc, log)
	warmCache := warmCacheHandler.NewHandler(warmupSvc, log)
	getCacheStats := getCacheStatsHandler.NewHandler(warmupSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Месячный обзор доступности
	api.HandleFunc("/availability/monthly", getMonthlyAvailability.Handle).Methods(http.MethodGet)

	// Слоты дня с вычисленной доступностью
	api.HandleFunc("/availability/daily", getDailySlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// INTERNAL ROUTES (требуют служебный токен)
	// ============================================================

	internal := r.PathPrefix("/internal/v1").Subrouter()
	internal.Use(middleware.InternalAuth(cfg.Auth.InternalToken))

	// Событийная инвалидация кэша
	internal.HandleFunc("/cache/invalidate", invalidateCache.Handle).Methods(http.MethodPost)

	// Внеплановый прогрев кэша
	internal.HandleFunc("/cache/warm", warmCache.Handle).Methods(http.MethodPost)

	// Диагностика содержимого кэша
	internal.HandleFunc("/cache/stats", getCacheStats.Handle).Methods(http.MethodGet)

	// Плановый прогрев кэша
	var warmupCron *cron.Cron
	if cfg.Warmup.Enabled {
		warmupCron = cron.New()
		_, err := warmupCron.AddFunc(cfg.Warmup.Schedule, func() {
			warmupSvc.WarmAhead(context.Background())
		})
		if err != nil {
			log.Fatal("Invalid warmup schedule %q: %v", cfg.Warmup.Schedule, err)
		}
		warmupCron.Start()
		log.Info("Cache warmup scheduled: %s", cfg.Warmup.Schedule)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем плановый прогрев
	if warmupCron != nil {
		cronCtx := warmupCron.Stop()
		<-cronCtx.Done()
		log.Info("Cache warmup stopped")
	}

	// Останавливаем фоновую очистку кэша
	if memoryStore != nil {
		memoryStore.StopSweep()
		log.Info("Cache sweep stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
