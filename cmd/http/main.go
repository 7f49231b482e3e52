package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"suma-service/internal/app/config"
	"suma-service/internal/app/delivery/http/controllers"
	"suma-service/internal/app/delivery/http/middlewares"
	"suma-service/internal/app/delivery/http/routers"
	"suma-service/internal/app/drivers/database"
	"suma-service/internal/app/drivers/logger"
	"suma-service/internal/app/drivers/messaging"
	objectstore "suma-service/internal/app/drivers/storage"
	"suma-service/internal/app/services/core/accounts"
	"suma-service/internal/app/services/core/appointments"
	"suma-service/internal/app/services/core/auth"
	"suma-service/internal/app/services/core/booking"
	"suma-service/internal/app/services/core/doctors"
	"suma-service/internal/app/services/core/finance"
	"suma-service/internal/app/services/core/marketing"
	"suma-service/internal/app/services/core/notifications"
	"suma-service/internal/app/services/core/patients"
	"suma-service/internal/app/services/core/sellers"
	"suma-service/internal/app/services/core/settings"
	"suma-service/internal/app/services/core/support"
	"suma-service/internal/app/services/shared/locker"
	"suma-service/internal/app/services/shared/mailer"
	"suma-service/internal/app/services/shared/redis"
	"suma-service/internal/app/services/shared/session"
	"suma-service/internal/app/services/shared/storage"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQConnection := messaging.NewRabbitMQ(driverConfig)
	minioClient := objectstore.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoClient:    mongoClient,
		Redis:          redisClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQConnection,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	bootstrapTheApp(bootstrap, minioClient)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()
	log.Printf("Server listening on %s", internalConfig.App.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Waiting for pending requests already received by the server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error while closing application resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapTheApp(bootstrap *config.Bootstrap, minioClient *minio.Client) {
	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, bootstrap.Logger)
	minioStorage := storage.NewMinioStorage(minioClient, bootstrap.DriverConfig.Minio.BucketName)
	sessionService := session.NewSessionService(
		redisRepository,
		bootstrap.Logger,
		bootstrap.InternalConfig.JWT.Secret,
		bootstrap.InternalConfig.JWT.ExpTimeInHour,
	)

	mailerQueue, err := mailer.NewMailerQueue(
		bootstrap.RabbitMQ,
		bootstrap.InternalConfig.RabbitMQ.MailerQueue,
		bootstrap.Logger,
	)
	if err != nil {
		log.Fatalf("Failed to initialize mailer queue: %v", err)
	}
	mailWorker, err := mailer.NewMailWorker(
		bootstrap.RabbitMQ,
		bootstrap.InternalConfig.RabbitMQ.MailerQueue,
		bootstrap.Logger,
		nil,
	)
	if err != nil {
		log.Fatalf("Failed to initialize mail worker: %v", err)
	}
	if err := mailWorker.Start(); err != nil {
		log.Fatalf("Failed to start mail worker: %v", err)
	}

	// Repositories
	dbName := bootstrap.DriverConfig.MongoDB.DbName
	accountRepository := accounts.NewAccountMongoRepository(bootstrap.MongoClient, dbName)
	patientRepository := patients.NewPatientMongoRepository(bootstrap.MongoClient, dbName)
	doctorRepository := doctors.NewDoctorMongoRepository(bootstrap.MongoClient, dbName)
	sellerRepository := sellers.NewSellerMongoRepository(bootstrap.MongoClient, dbName)
	sellerPaymentRepository := sellers.NewSellerPaymentMongoRepository(bootstrap.MongoClient, dbName)
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoClient, dbName)
	doctorPaymentRepository := finance.NewDoctorPaymentMongoRepository(bootstrap.MongoClient, dbName)
	notificationRepository := notifications.NewNotificationMongoRepository(bootstrap.MongoClient, dbName)
	supportTicketRepository := support.NewSupportTicketMongoRepository(bootstrap.MongoClient, dbName)
	settingsRepository := settings.NewSettingsMongoRepository(bootstrap.MongoClient, dbName)
	marketingRepository := marketing.NewMarketingMongoRepository(bootstrap.MongoClient, dbName)

	if mongoRepo, ok := appointmentRepository.(*appointments.AppointmentMongoRepository); ok {
		if err := mongoRepo.EnsureIndexes(context.Background()); err != nil {
			log.Fatalf("Failed to ensure appointment indexes: %v", err)
		}
	}

	// Usecases
	authUsecase := auth.NewAuthUsecase(
		accountRepository,
		patientRepository,
		doctorRepository,
		sellerRepository,
		sessionService,
		mailerQueue,
		bootstrap.Logger,
	)
	doctorUsecase := doctors.NewDoctorUsecase(doctorRepository, bootstrap.Logger)
	bookingUsecase := booking.NewBookingUsecase(
		doctorRepository,
		appointmentRepository,
		redisRepository,
		lockService,
		mailerQueue,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentRepository,
		patientRepository,
		mailerQueue,
		bootstrap.Logger,
	)
	commissionUsecase := sellers.NewCommissionUsecase(
		sellerRepository,
		sellerPaymentRepository,
		doctorRepository,
		settingsRepository,
		mailerQueue,
		bootstrap.Logger,
	)
	sellerUsecase := sellers.NewSellerUsecase(
		sellerRepository,
		sellerPaymentRepository,
		marketingRepository,
		commissionUsecase,
		bootstrap.Logger,
	)
	notificationUsecase := notifications.NewNotificationUsecase(
		notificationRepository,
		appointmentRepository,
		doctorRepository,
		doctorPaymentRepository,
		sellerPaymentRepository,
		supportTicketRepository,
		bootstrap.Logger,
	)
	supportUsecase := support.NewSupportUsecase(supportTicketRepository, bootstrap.Logger)
	settingsUsecase := settings.NewSettingsUsecase(settingsRepository, bootstrap.Logger)
	financeUsecase := finance.NewFinanceUsecase(
		doctorPaymentRepository,
		doctorRepository,
		settingsRepository,
		minioStorage,
		mailerQueue,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	marketingUsecase := marketing.NewMarketingUsecase(
		marketingRepository,
		minioStorage,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)

	syncWorker := notifications.NewSyncWorker(
		notificationUsecase,
		doctorRepository,
		sellerRepository,
		time.Duration(bootstrap.InternalConfig.App.NotificationSyncIntervalInMin)*time.Minute,
		bootstrap.Logger,
	)
	syncWorker.Start()

	bootstrap.WorkerStop = func() {
		syncWorker.Stop()
		mailWorker.Stop()
	}

	// HTTP surface
	mw := middlewares.NewMiddlewares(bootstrap.Logger, sessionService, bootstrap.InternalConfig)
	ctrl := &routers.Controllers{
		Auth:         controllers.NewAuthController(bootstrap.Logger, authUsecase),
		Doctor:       controllers.NewDoctorController(bootstrap.Logger, doctorUsecase),
		Booking:      controllers.NewBookingController(bootstrap.Logger, bookingUsecase),
		Appointment:  controllers.NewAppointmentController(bootstrap.Logger, appointmentUsecase),
		Seller:       controllers.NewSellerController(bootstrap.Logger, sellerUsecase, commissionUsecase),
		Notification: controllers.NewNotificationController(bootstrap.Logger, notificationUsecase),
		Support:      controllers.NewSupportController(bootstrap.Logger, supportUsecase),
		Settings:     controllers.NewSettingsController(bootstrap.Logger, settingsUsecase),
		Finance:      controllers.NewFinanceController(bootstrap.Logger, financeUsecase, bootstrap.InternalConfig),
		Marketing:    controllers.NewMarketingController(bootstrap.Logger, marketingUsecase, bootstrap.InternalConfig),
	}

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, mw, ctrl)
}
