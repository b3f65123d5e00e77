package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"laborlink/config"
	"laborlink/cron"
	"laborlink/database"
	bookingRepo "laborlink/database/repository/booking"
	directoryRepo "laborlink/database/repository/directory"
	notificationRepo "laborlink/database/repository/notification"
	"laborlink/handlers"
	"laborlink/routes"
	"laborlink/services/booking"
	"laborlink/services/notification"
	"laborlink/services/payment"
	"laborlink/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Redis is optional: without it the directory is uncached, charge locks
	// are process-local and failed notifications are only logged.
	if err := utils.InitCache(); err != nil {
		logger.Warn("main: redis unavailable, continuing without cache", zap.Error(err))
	}
	cacheClient := utils.GetCacheClient()

	// repositories.
	var (
		bookings      bookingRepo.BookingRepository
		notifications notificationRepo.NotificationRepository
		directory     directoryRepo.Directory
		tx            database.Transactor
		mongoClient   *mongo.Client
	)
	if config.UsesMemoryStore() {
		logger.Warn("main: using in-memory store; data is lost on restart")
		bookings = bookingRepo.NewMemoryBookingRepo()
		notifications = notificationRepo.NewMemoryNotificationRepo()
		directory = directoryRepo.NewMemoryDirectory()
	} else {
		if err := database.InitDB(); err != nil {
			logger.Fatal("main: mongo unavailable", zap.Error(err))
		}
		mongoClient = database.MongoClient
		db := database.Database()
		bookings = bookingRepo.NewMongoBookingRepo(db)
		notifications = notificationRepo.NewMongoNotificationRepo(db)
		directory = directoryRepo.NewMongoDirectory(db)
		if config.AppConfig.MongoTransactions {
			tx = database.NewMongoTransactor(mongoClient)
			logger.Info("main: booking transitions commit notifications transactionally")
		}
	}
	if cacheClient != nil {
		directory = directoryRepo.NewCachedDirectory(directory, cacheClient, utils.DirectoryCacheTTL)
	}

	// services.
	notificationService, err := notification.NewDefaultNotificationService(notifications)
	if err != nil {
		logger.Fatal("main: notification service", zap.Error(err))
	}

	var (
		retryQueue notification.RetryQueue
		worker     *cron.NotificationWorker
	)
	if cacheClient != nil {
		redisOpts := asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}
		asynqClient := asynq.NewClient(redisOpts)
		defer asynqClient.Close()
		retryQueue = notification.NewAsynqRetryQueue(asynqClient)

		worker = cron.NewNotificationWorker(redisOpts, notificationService, logger)
		worker.Start()
	}
	dispatcher := notification.NewDispatcher(notificationService, retryQueue, logger)
	committer := booking.NewCommitter(bookings, notificationService, dispatcher, tx)

	bookingService, err := booking.NewDefaultBookingService(bookings, directory, notificationService, committer, logger)
	if err != nil {
		logger.Fatal("main: booking service", zap.Error(err))
	}

	var authorizer payment.Authorizer = payment.NewMockAuthorizer(config.AppConfig.MockApproveSuffix)
	useStripe := config.AppConfig.PaymentProvider == "stripe"
	if useStripe {
		stripe.Key = config.AppConfig.StripeKey
		authorizer = payment.NewStripeAuthorizer()
	}
	var locker payment.Locker
	if cacheClient != nil {
		locker = utils.NewRedisLocker(cacheClient, utils.PaymentLockPrefix)
	}
	paymentService, err := payment.NewDefaultPaymentService(
		bookings, directory, committer, authorizer, locker, config.AppConfig.PaymentCurrency, logger,
	)
	if err != nil {
		logger.Fatal("main: payment service", zap.Error(err))
	}
	if useStripe && config.AppConfig.CheckoutSuccessURL != "" {
		paymentService.WithSessionStarter(payment.NewStripeCheckout(
			config.AppConfig.PaymentCurrency,
			config.AppConfig.CheckoutSuccessURL,
			config.AppConfig.CheckoutCancelURL,
		))
	}

	handlerBundle := &handlers.HandlerBundle{
		Booking:      handlers.NewBookingHandler(bookingService),
		Payment:      handlers.NewPaymentHandler(paymentService),
		Notification: handlers.NewNotificationHandler(notificationService),
		Admin:        handlers.NewAdminHandler(bookingService),
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	routes.RegisterRoutes(router, handlerBundle, config.AppConfig.MaxRequestsPerMin)

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, cacheClient, mongoClient)

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
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Sugar().Warnf("main: mongo disconnect: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
