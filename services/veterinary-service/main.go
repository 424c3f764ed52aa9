package main

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/whiteheadbella/vet-management/services/common/database"
	"github.com/whiteheadbella/vet-management/services/common/logger"
	"github.com/whiteheadbella/vet-management/services/common/middleware"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/controllers"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/models"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/repository"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/routes"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/services"
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
		&models.Vet{}, &models.VetRecord{}, &models.Appointment{})
	if err != nil {
		log.Fatal("DB connection failed", zap.Error(err))
	}
	defer database.Close(db)

	validate := validator.New()

	vetRepo := repository.NewGormVetRepository(db)
	recordRepo := repository.NewGormRecordRepository(db)
	appointmentRepo := repository.NewGormAppointmentRepository(db)

	calendar := services.NewCalendarClient(cfg.CalendarBaseURL, cfg.CalendarID, cfg.CalendarToken, log)
	if calendar == nil {
		log.Info("calendar mirroring disabled")
	}

	healthService := services.NewHealthService(recordRepo, vetRepo, appointmentRepo, validate, log)
	appointmentService := services.NewAppointmentService(appointmentRepo, vetRepo, calendar, validate, log)
	vetService := services.NewVetService(vetRepo, validate, log)
	chatbotService := services.NewChatbotService(recordRepo, appointmentRepo, vetRepo, log)

	healthController := controllers.NewHealthController(healthService)
	appointmentController := controllers.NewAppointmentController(appointmentService)
	vetController := controllers.NewVetController(vetService)
	chatbotController := controllers.NewChatbotController(chatbotService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, healthController, appointmentController, vetController, chatbotController)

	log.Info("veterinary service listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Error starting server", zap.Error(err))
	}
}
