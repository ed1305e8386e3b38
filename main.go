// File: voluntree/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voluntree/config"
	"voluntree/cron"
	"voluntree/database"
	opportunityRepoPkg "voluntree/database/repository/opportunity"
	recurrenceRepoPkg "voluntree/database/repository/recurrence"
	"voluntree/handlers"
	"voluntree/middleware"
	"voluntree/routes"
	"voluntree/services/carpool"
	"voluntree/services/directory"
	"voluntree/services/opportunity"
	"voluntree/services/schedule"
	"voluntree/services/tasks"
	"voluntree/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitLockClient()

	converter, err := schedule.NewZoneConverter(config.AppConfig.TimeZone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid TIME_ZONE %q: %v", config.AppConfig.TimeZone, err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	recRepo := recurrenceRepoPkg.NewMongoRecurrenceRepo()
	oppRepo := opportunityRepoPkg.NewMongoOpportunityRepo()

	// Async carpool pipeline: requests enqueue, the worker consumes.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	carpoolDispatcher := &tasks.AsynqCarpoolDispatcher{
		Client: asynqClient,
		Logger: logger,
	}
	cron.InitCarpoolWorker(&carpool.NoopService{})

	// services.
	scheduleService := &schedule.DefaultScheduleService{
		Recurrences:   recRepo,
		Opportunities: oppRepo,
		Converter:     converter,
		Directory:     &directory.AllowAll{},
		Carpool:       carpoolDispatcher,
		Cache:         schedule.NewRedisDigestCache(utils.GetCacheClient(), 10*time.Minute, logger),
		Locker:        utils.NewRedisLocker(utils.GetLockClient()),
		Logger:        logger,
	}
	opportunityService := &opportunity.DefaultOpportunityService{
		Repo:      oppRepo,
		Directory: &directory.AllowAll{},
		Carpool:   carpoolDispatcher,
		Logger:    logger,
	}

	recurrenceHandler := &handlers.RecurrenceHandler{Service: scheduleService}
	opportunityHandler := &handlers.OpportunityHandler{Service: opportunityService}
	handlerBundle := handlers.NewHandlerBundle(recurrenceHandler, opportunityHandler)

	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetLockClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
