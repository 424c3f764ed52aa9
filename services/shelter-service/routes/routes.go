package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/whiteheadbella/vet-management/services/shelter-service/controllers"
)

// RegisterRoutes wires all shelter endpoints onto the router.
func RegisterRoutes(r *gin.Engine, pets *controllers.PetController, breeds *controllers.BreedController, chat *controllers.ChatbotController) {
	api := r.Group("/api")
	{
		api.GET("/pets/", pets.ListPets)
		api.POST("/pets/", pets.CreatePet)
		api.GET("/pets/:id", pets.GetPet)
		api.PUT("/pets/:id", pets.UpdatePet)
		api.DELETE("/pets/:id", pets.DeletePet)
		api.POST("/pets/:id/images", pets.AddImage)
		api.GET("/pets/:id/logs", pets.GetLogs)

		// Status synchronization point for the adoption service.
		api.PUT("/update-status/", pets.UpdateStatus)

		api.GET("/stats", pets.GetStats)
		api.GET("/breeds/:species", breeds.GetBreeds)
	}

	r.POST("/chatbot/api/chat", chat.Chat)
}
