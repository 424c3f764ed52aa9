package main

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/whiteheadbella/vet-management/services/common/database"
	"github.com/whiteheadbella/vet-management/services/common/logger"
	"github.com/whiteheadbella/vet-management/services/common/middleware"
	"github.com/whiteheadbella/vet-management/services/shelter-service/controllers"
	"github.com/whiteheadbella/vet-management/services/shelter-service/models"
	"github.com/whiteheadbella/vet-management/services/shelter-service/repository"
	"github.com/whiteheadbella/vet-management/services/shelter-service/routes"
	"github.com/whiteheadbella/vet-management/services/shelter-service/services"
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
		&models.Pet{}, &models.PetImage{}, &models.ShelterLog{})
	if err != nil {
		log.Fatal("DB connection failed", zap.Error(err))
	}
	defer database.Close(db)

	validate := validator.New()

	petRepo := repository.NewGormPetRepository(db)
	petService := services.NewPetService(petRepo, validate, log)
	breedClient := services.NewBreedClient(cfg.DogAPIBaseURL, cfg.CatAPIBaseURL, cfg.CatAPIKey, log)
	chatbotService := services.NewChatbotService(petRepo, log)

	petController := controllers.NewPetController(petService)
	breedController := controllers.NewBreedController(breedClient)
	chatbotController := controllers.NewChatbotController(chatbotService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, petController, breedController, chatbotController)

	log.Info("shelter service listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Error starting server", zap.Error(err))
	}
}
