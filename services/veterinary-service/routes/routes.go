package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/controllers"
)

// RegisterRoutes wires all veterinary endpoints onto the router.
func RegisterRoutes(
	r *gin.Engine,
	health *controllers.HealthController,
	appointments *controllers.AppointmentController,
	vets *controllers.VetController,
	chat *controllers.ChatbotController,
) {
	api := r.Group("/api")
	{
		api.GET("/health/:petID", health.GetRecord)
		api.POST("/health/", health.CreateRecord)
		api.POST("/health/:petID/vaccinations", health.AddVaccination)
		api.GET("/records", health.ListRecords)
		api.GET("/stats", health.GetStats)

		// Upsert point used by vets and by the adoption service after approvals.
		api.POST("/update-record/", health.UpsertRecord)
		api.PUT("/update-record/", health.UpsertRecord)

		api.GET("/vets", vets.ListVets)
		api.GET("/vets/:id", vets.GetVet)
		api.POST("/vets", vets.CreateVet)

		api.POST("/schedule-appointment/", appointments.Schedule)
		api.GET("/appointments", appointments.List)
		api.GET("/appointments/:id", appointments.Get)
		api.PUT("/appointments/:id", appointments.Update)
		api.POST("/appointments/:id/cancel", appointments.Cancel)
		api.GET("/pets/:petID/appointments", appointments.PetAppointments)
	}

	r.POST("/chatbot/api/chat", chat.Chat)
}
