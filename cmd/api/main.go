package main

import (
	"github.com/joho/godotenv"

	bookinghandler "roamify/internal/bookings/handler"
	bookingrepo "roamify/internal/bookings/repository"
	bookingservice "roamify/internal/bookings/service"
	bookingvalidator "roamify/internal/bookings/validator"
	propertyhandler "roamify/internal/properties/handler"
	propertyrepo "roamify/internal/properties/repository"
	propertyservice "roamify/internal/properties/service"
	propertyvalidator "roamify/internal/properties/validator"
	userhandler "roamify/internal/users/handler"
	userrepo "roamify/internal/users/repository"
	userservice "roamify/internal/users/service"
	uservalidator "roamify/internal/users/validator"
	"roamify/pkg/app"
	"roamify/pkg/config"
	"roamify/pkg/contracts"
	dbmongo "roamify/pkg/db/mongo"
	"roamify/pkg/kafka"
)

const ServiceName = "roamify-api"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting API service")

	producer := initProducer(cfg)
	defer func() {
		if producer != nil {
			_ = producer.Close()
		}
	}()

	serverApp := app.NewApplication(cfg, initHandlers(cfg, producer)...)
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return nil
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	cfg.Log.Info("Kafka producer initialized", "topic", cfg.KafkaTopic)
	return producer
}

func initHandlers(cfg *config.Config, producer *kafka.Producer) []contracts.Handler {
	propertyRepo := propertyrepo.NewMongoPropertyRepository(cfg)
	userRepo := userrepo.NewMongoUserRepository(cfg)
	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)
	lockRepo := bookingrepo.NewMongoBookingLockRepository(cfg)

	propertyService := propertyservice.NewPropertyService(
		propertyRepo,
		propertyvalidator.NewPropertyValidator(cfg.Log),
		cfg,
	)
	userService := userservice.NewUserService(
		userRepo,
		propertyRepo,
		uservalidator.NewUserValidator(cfg.Log),
		cfg,
	)

	// A nil *Producer must not become a non-nil interface value.
	var publisher bookingservice.EventPublisher
	if producer != nil {
		publisher = producer
	}
	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		lockRepo,
		propertyRepo,
		userRepo,
		bookingvalidator.NewBookingValidator(cfg.Log),
		dbmongo.NewTransactionManager(cfg.Client.Mongo),
		publisher,
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		propertyhandler.NewPropertyHandler(propertyService, cfg),
		bookinghandler.NewBookingHandler(bookingService, cfg),
		userhandler.NewUserHandler(userService, cfg),
	}
}
