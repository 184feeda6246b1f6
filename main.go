package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"

	"festivo/config"
	"festivo/cron"
	"festivo/database"
	bookingRepo "festivo/database/repository/booking"
	catalogRepo "festivo/database/repository/catalog"
	customerRepo "festivo/database/repository/customer"
	notificationRepo "festivo/database/repository/notification"
	reviewRepo "festivo/database/repository/review"
	vendorRepo "festivo/database/repository/vendor"
	"festivo/handlers"
	"festivo/routes"
	"festivo/services/auth"
	"festivo/services/availability"
	"festivo/services/booking"
	"festivo/services/catalog"
	"festivo/services/notification"
	"festivo/services/payment"
	"festivo/services/review"
	"festivo/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	// Repositories.
	catalogRegistry := catalogRepo.NewMongoRegistry()
	vendRepo := vendorRepo.NewMongoVendorRepo()
	custRepo := customerRepo.NewMongoCustomerRepo()
	revRepo := reviewRepo.NewMongoReviewRepo()
	bookRepo := bookingRepo.NewMongoBookingRepo()
	lockRepo := bookingRepo.NewMongoLockRepo()
	notifRepo := notificationRepo.NewMongoNotificationRepo()

	for name, ensure := range map[string]func() error{
		"catalog":      catalogRegistry.EnsureIndexes,
		"vendor":       vendRepo.EnsureIndexes,
		"customer":     custRepo.EnsureIndexes,
		"review":       revRepo.EnsureIndexes,
		"booking":      bookRepo.EnsureIndexes,
		"lock":         lockRepo.EnsureIndexes,
		"notification": notifRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	txnRunner := database.NewTxnRunner(database.MongoClient)

	// Task queue client for push delivery.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
	defer queueClient.Close()

	// Services.
	notificationService := notification.NewDefaultNotificationService(notifRepo, queueClient)

	reviewService := &review.DefaultReviewService{
		Catalog:  catalogRegistry,
		Vendors:  vendRepo,
		Reviews:  revRepo,
		Txn:      txnRunner,
		Notifier: notificationService,
	}

	bookingService := &booking.DefaultBookingService{
		Catalog:  catalogRegistry,
		Bookings: bookRepo,
		Locks:    lockRepo,
		Txn:      txnRunner,
		Notifier: notificationService,
	}

	availabilityChecker := availability.NewDefaultChecker(bookRepo)
	catalogService := &catalog.DefaultCatalogService{Registry: catalogRegistry}
	authService := &auth.DefaultAuthService{
		Customers: custRepo,
		Vendors:   vendRepo,
		AuthCache: utils.GetAuthCacheClient(),
	}
	paymentService := payment.NewStripePaymentService("")

	// Background push worker.
	cron.InitPushWorker(custRepo, vendRepo)

	// Router and handlers.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	handlerBundle := &routes.HandlerBundle{
		Auth:         handlers.NewAuthHandler(authService),
		Catalog:      handlers.NewCatalogHandler(catalogService),
		Booking:      handlers.NewBookingHandler(bookingService, availabilityChecker, logger),
		Review:       handlers.NewReviewHandler(reviewService),
		Notification: handlers.NewNotificationHandler(notificationService),
		Payment:      handlers.NewPaymentHandler(paymentService, bookingService),
		AuthCache:    utils.GetAuthCacheClient(),
	}
	routes.RegisterRoutes(router, handlerBundle)

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
