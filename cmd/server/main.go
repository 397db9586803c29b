package main

import (
	"context"

	addonshandler "theworks/internal/addons/handler"
	addonsrepository "theworks/internal/addons/repository"
	addonsservice "theworks/internal/addons/service"
	bookingshandler "theworks/internal/bookings/handler"
	bookingsrepository "theworks/internal/bookings/repository"
	bookingsservice "theworks/internal/bookings/service"
	bookingsvalidator "theworks/internal/bookings/validator"
	classeshandler "theworks/internal/classes/handler"
	classesrepository "theworks/internal/classes/repository"
	classesservice "theworks/internal/classes/service"
	enquirieshandler "theworks/internal/enquiries/handler"
	enquiriesrepository "theworks/internal/enquiries/repository"
	enquiriesservice "theworks/internal/enquiries/service"
	enquiriesvalidator "theworks/internal/enquiries/validator"
	trainershandler "theworks/internal/trainers/handler"
	trainersrepository "theworks/internal/trainers/repository"
	trainersservice "theworks/internal/trainers/service"
	"theworks/pkg/app"
	"theworks/pkg/auth"
	"theworks/pkg/config"
	"theworks/pkg/contracts"
	"theworks/pkg/events"
)

const ServiceName = "theworks"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.LogConfiguration()

	cfg.Log.Info("Starting server")
	cfg.SetMongo()

	publisher := initPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	}()

	guard := auth.NewGuard(auth.NewJWTVerifier(cfg.JWTSecret), cfg.Log)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(guard, initHandlers(cfg, publisher)...)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return events.NopPublisher{}
	}

	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaBookingTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize event publisher", "error", err)
	}
	return publisher
}

func initHandlers(cfg *config.Config, publisher events.Publisher) []contracts.Handler {
	trainerRepo := trainersrepository.NewMongoTrainerRepository(cfg)
	trainerService := trainersservice.NewTrainerService(trainerRepo, cfg)

	classRepo := classesrepository.NewMongoClassRepository(cfg)
	classService := classesservice.NewClassService(classRepo, trainerRepo, cfg)

	addonRepo := addonsrepository.NewMongoAddonRepository(cfg)
	addonService := addonsservice.NewAddonService(addonRepo, cfg)

	enquiryRepo := enquiriesrepository.NewMongoEnquiryRepository(cfg)
	enquiryService := enquiriesservice.NewEnquiryService(
		enquiryRepo,
		enquiriesvalidator.NewEnquiryValidator(cfg.Log),
		cfg,
	)

	bookingRepo := bookingsrepository.NewMongoBookingRepository(cfg)
	if err := bookingRepo.EnsureIndexes(context.Background()); err != nil {
		cfg.Log.Fatal("Failed to ensure booking indexes", "error", err)
	}
	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		addonRepo,
		classRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		bookingshandler.NewBookingHandler(bookingService, cfg),
		classeshandler.NewClassHandler(classService, cfg),
		trainershandler.NewTrainerHandler(trainerService, cfg),
		addonshandler.NewAddonHandler(addonService, cfg),
		enquirieshandler.NewEnquiryHandler(enquiryService, cfg),
	}
}
