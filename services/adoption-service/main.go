package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/whiteheadbella/vet-management/services/adoption-service/controllers"
	"github.com/whiteheadbella/vet-management/services/adoption-service/models"
	"github.com/whiteheadbella/vet-management/services/adoption-service/repository"
	"github.com/whiteheadbella/vet-management/services/adoption-service/routes"
	"github.com/whiteheadbella/vet-management/services/adoption-service/sender"
	"github.com/whiteheadbella/vet-management/services/adoption-service/services"
	"github.com/whiteheadbella/vet-management/services/common/database"
	"github.com/whiteheadbella/vet-management/services/common/logger"
	"github.com/whiteheadbella/vet-management/services/common/middleware"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// fall back to system environment
	}

	cfg := LoadConfig()
	log := logger.New(cfg.Env)
	defer log.Sync()

	db, err := database.ConnectPostgres(log, cfg.Database,
		&models.User{}, &models.AdoptionApplication{}, &models.AdoptedPet{},
		&models.Notification{}, &models.StatusSyncTask{})
	if err != nil {
		log.Fatal("DB connection failed", zap.Error(err))
	}
	defer database.Close(db)

	validate := validator.New()

	userRepo := repository.NewGormUserRepository(db)
	applicationRepo := repository.NewGormApplicationRepository(db)
	notificationRepo := repository.NewGormNotificationRepository(db)
	outboxRepo := repository.NewGormOutboxRepository(db)

	shelterClient := services.NewShelterClient(cfg.ShelterServiceURL, log)
	vetClient := services.NewVetClient(cfg.VeterinaryServiceURL, log)

	var emailSender sender.EmailSender
	if smtpSender := sender.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass); smtpSender != nil {
		emailSender = smtpSender
	} else {
		log.Info("email delivery disabled")
	}

	notificationService := services.NewNotificationService(notificationRepo, emailSender, log)
	dispatcher := services.NewOutboxDispatcher(outboxRepo, shelterClient, log)
	userService := services.NewUserService(userRepo, notificationService, validate, log)
	adoptionService := services.NewAdoptionService(
		applicationRepo, userRepo, shelterClient, vetClient,
		dispatcher, notificationService, validate, log)
	chatbotService := services.NewChatbotService(shelterClient, vetClient, log)

	userController := controllers.NewUserController(userService, notificationService)
	applicationController := controllers.NewApplicationController(adoptionService)
	petController := controllers.NewPetController(adoptionService)
	chatbotController := controllers.NewChatbotController(chatbotService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go dispatcher.Run(ctx)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, userController, applicationController, petController, chatbotController)

	log.Info("adoption service listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Error starting server", zap.Error(err))
	}
}
