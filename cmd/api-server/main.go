package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"skillhub/database"
	"skillhub/internal/cache"
	"skillhub/internal/config"
	"skillhub/internal/microservices/http-api/handler"
	"skillhub/internal/microservices/http-api/middleware"
	"skillhub/internal/microservices/http-api/repository"
	"skillhub/internal/microservices/http-api/service"
	"skillhub/internal/microservices/realtime"
	"skillhub/internal/microservices/tcp"
	"skillhub/internal/microservices/websocket"
	"skillhub/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server_exited", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	// 1. storage
	db, err := database.OpenGorm(cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	// the cache is optional, services read straight from Postgres without it
	rdb, err := cache.NewRedisClient(cfg.RedisAddr(), cfg.RedisPassword)
	if err != nil {
		logger.Warn("redis_unavailable", "addr", cfg.RedisAddr(), "error", err.Error())
	}
	entityCache := cache.NewEntityCache(rdb, cfg.CacheTTL, logger)
	defer entityCache.Close()

	// 2. domain
	orgRepo := repository.NewOrganizationRepository(db)
	productRepo := repository.NewProductRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	storyRepo := repository.NewUserStoryRepository(db)

	services := realtime.Services{
		Organizations: service.NewOrganizationService(orgRepo, entityCache),
		Products:      service.NewProductService(productRepo, orgRepo, entityCache),
		Skills:        service.NewSkillService(skillRepo, entityCache),
		UserStories:   service.NewUserStoryService(storyRepo, productRepo, entityCache),
	}
	authService := service.NewAuthService(cfg)

	// 3. realtime core
	hub := realtime.NewHub(logger)
	realtime.RegisterHandlers(hub.Dispatcher, services, realtime.NewUserDirectory())

	// 4. HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	var guard handler.WriteGuard = handler.OpenGuard
	if cfg.AuthEnabled {
		guard = middleware.WriteGuard(authService)
	}

	api := r.Group("/api")
	handler.NewOrganizationHandler(services.Organizations, services.Products).RegisterRoutes(api.Group("/organizations"), guard)
	handler.NewProductHandler(services.Products, services.UserStories).RegisterRoutes(api.Group("/products"), guard)
	handler.NewSkillHandler(services.Skills).RegisterRoutes(api.Group("/skills"), guard)
	handler.NewUserStoryHandler(services.UserStories).RegisterRoutes(api.Group("/user-stories"), guard)

	r.GET("/health", handler.NewHealthHandler(sqlDB, hub).Health)
	r.GET("/ws", websocket.NewHandler(hub, websocket.Options{
		SendBuffer:     cfg.WSSendBuffer,
		MaxMessageSize: cfg.WSMaxMessageSize,
		AllowedOrigins: cfg.CORSOrigins,
	}, logger).Serve)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 5. background work
	jobs := scheduler.New(logger)
	heartbeat := scheduler.NewHeartbeatJob(map[string]scheduler.Counter{
		service.CollectionOrganizations: services.Organizations,
		service.CollectionProducts:      services.Products,
		service.CollectionSkills:        services.Skills,
		service.CollectionUserStories:   services.UserStories,
	}, hub.Sender, hub.Count, logger)
	if err := jobs.Add("heartbeat", cfg.HeartbeatSchedule, heartbeat); err != nil {
		return err
	}
	jobs.Start()

	errChan := make(chan error, 2)

	var tcpServer *tcp.TCPServer
	if cfg.TCPEnabled {
		tcpServer = tcp.NewServer(fmt.Sprintf(":%d", cfg.TCPPort), hub, logger)
		go func() {
			if err := tcpServer.Start(); err != nil {
				errChan <- err
			}
		}()
	}

	go func() {
		logger.Info("http_server_starting", "addr", srv.Addr, "auth_enabled", cfg.AuthEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigChan:
		logger.Info("shutdown_signal_received", "signal", sig.String())
	case runErr = <-errChan:
		logger.Error("server_failed", "error", runErr.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// stop taking new connections before the hub says goodbye
	jobs.Stop(ctx)
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http_shutdown_failed", "error", err.Error())
	}
	if tcpServer != nil {
		tcpServer.StopAccepting()
	}
	hub.Shutdown("Server is shutting down")
	if tcpServer != nil {
		tcpServer.Stop()
	}
	logger.Info("server_stopped")
	return runErr
}
