package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskhive/config"
	"taskhive/cron"
	"taskhive/database"
	bookingRepo "taskhive/database/repository/booking"
	"taskhive/database/repository/memory"
	serviceRepo "taskhive/database/repository/service"
	taskerRepo "taskhive/database/repository/tasker"
	userRepo "taskhive/database/repository/user"
	"taskhive/handlers"
	"taskhive/middleware"
	"taskhive/routes"
	"taskhive/services/admin"
	"taskhive/services/booking"
	"taskhive/services/catalog"
	"taskhive/services/notification"
	"taskhive/services/storage"
	"taskhive/services/tasker"
	"taskhive/services/tasks"
	"taskhive/services/user"
	"taskhive/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type repositories struct {
	users    userRepo.UserRepository
	taskers  taskerRepo.TaskerRepository
	services serviceRepo.ServiceRepository
	bookings bookingRepo.BookingRepository
}

func openMongoRepositories(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*mongo.Client, *repositories, error) {
	client, err := database.Connect(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, nil, err
	}
	db := client.Database(cfg.DatabaseName)

	users, err := userRepo.NewMongoUserRepo(db)
	if err != nil {
		return nil, nil, err
	}
	taskers, err := taskerRepo.NewMongoTaskerRepo(db)
	if err != nil {
		return nil, nil, err
	}
	services, err := serviceRepo.NewMongoServiceRepo(db)
	if err != nil {
		return nil, nil, err
	}
	bookings, err := bookingRepo.NewMongoBookingRepo(db)
	if err != nil {
		return nil, nil, err
	}
	return client, &repositories{users: users, taskers: taskers, services: services, bookings: bookings}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: invalid configuration: %v", err)
	}
	logger, err := utils.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("main: failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage.
	var (
		mongoClient *mongo.Client
		repos       *repositories
	)
	switch cfg.StoreDriver {
	case "memory":
		logger.Warn("main: using the in-memory store, data is lost on restart")
		store := memory.NewStore()
		repos = &repositories{users: store.Users(), taskers: store.Taskers(), services: store.Services(), bookings: store.Bookings()}
	default:
		mongoClient, repos, err = openMongoRepositories(ctx, cfg, logger)
		if err != nil {
			logger.Fatal("main: failed to open MongoDB repositories", zap.Error(err))
		}
		defer database.Disconnect(mongoClient, logger)
	}

	// Redis backs token revocation and the task queue. Without it logout is
	// process-local and reminders are skipped.
	var (
		redisClient *redis.Client
		revocations user.TokenRevoker = memory.NewRevocationList()
		scheduler   tasks.Scheduler
		worker      *cron.Worker
	)
	if cfg.RedisAddr != "" {
		redisClient, err = utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisAuthDB)
		if err != nil {
			logger.Warn("main: Redis unavailable, continuing without background tasks", zap.Error(err))
			redisClient = nil
		}
	}
	if redisClient != nil {
		defer redisClient.Close()
		revocations = utils.NewRedisRevocationStore(redisClient)

		redisOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisQueueDB}
		queue := asynq.NewClient(redisOpt)
		defer queue.Close()
		scheduler = tasks.NewAsynqScheduler(queue, cfg.ReminderLead(), logger)
	}

	// Media host.
	var (
		media        storage.StorageService
		images       catalog.ImageDiscarder
		mediaDeleter cron.MediaDeleter
	)
	if cfg.CloudinaryCloudName != "" {
		cld, err := storage.NewCloudinaryStorage(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		if err != nil {
			logger.Fatal("main: failed to initialize cloudinary storage service", zap.Error(err))
		}
		media, mediaDeleter = cld, cld
		if scheduler != nil {
			images = storage.NewCleaner(cld, scheduler, logger)
		}
	} else {
		logger.Warn("main: Cloudinary is not configured, uploads are disabled")
	}

	// Push notifications.
	var notifier notification.NotificationService = notification.NoopNotificationService{}
	if cfg.FirebaseCredentialsFile != "" {
		fcm, err := notification.NewFCMClient(ctx, cfg.FirebaseCredentialsFile)
		if err != nil {
			logger.Fatal("main: failed to initialize Firebase messaging", zap.Error(err))
		}
		notifier = notification.NewFCMNotificationService(repos.users, fcm, logger)
	}

	var payments booking.PaymentGateway
	if cfg.StripeSecretKey != "" {
		payments = booking.NewStripeGateway(cfg.StripeSecretKey)
	}

	if redisClient != nil {
		worker = cron.NewWorker(asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisQueueDB}, mediaDeleter, notifier, logger)
		if err := worker.Start(); err != nil {
			logger.Fatal("main: failed to start task worker", zap.Error(err))
		}
		defer worker.Shutdown()
	}

	// Services.
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL())
	userService := user.NewDefaultUserService(repos.users, tokens, revocations, logger)
	taskerService := tasker.NewDefaultTaskerService(repos.taskers, repos.users, images, logger)
	catalogService := catalog.NewDefaultCatalogService(repos.services, repos.taskers, repos.bookings, images, logger)
	bookingService := booking.NewDefaultBookingService(repos.bookings, repos.services, repos.taskers, repos.users, scheduler, notifier, payments, cfg.PaymentCurrency, logger)
	adminService := admin.NewDefaultAdminService(repos.users, repos.taskers, repos.services, repos.bookings, taskerService, logger)

	monitor := utils.NewHealthMonitor(mongoClient, redisClient, 30*time.Second, logger)
	monitor.Start(ctx)

	handlerBundle := &handlers.HandlerBundle{
		Auth:    userService,
		User:    handlers.NewUserHandler(userService),
		Tasker:  handlers.NewTaskerHandler(taskerService),
		Service: handlers.NewServiceHandler(catalogService),
		Booking: handlers.NewBookingHandler(bookingService),
		Admin:   handlers.NewAdminHandler(adminService),
		Storage: handlers.NewStorageHandler(media),
		Health:  monitor,
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(utils.ErrorHandler(logger))
	router.Use(middleware.DevMode(cfg.DevMode()))
	router.Use(middleware.NewRateLimiter(cfg.MaxRequestsPerMin, cfg.RateLimitBurst, logger).Middleware())
	routes.RegisterRoutes(router, handlerBundle, cfg.AllowedOrigins())

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreDriver))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("main: server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("main: server stopped gracefully")
}
