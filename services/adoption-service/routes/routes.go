package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/whiteheadbella/vet-management/services/adoption-service/controllers"
)

// RegisterRoutes wires all adoption endpoints onto the router.
func RegisterRoutes(
	r *gin.Engine,
	users *controllers.UserController,
	applications *controllers.ApplicationController,
	pets *controllers.PetController,
	chat *controllers.ChatbotController,
) {
	api := r.Group("/api")
	{
		api.POST("/users", users.Register)
		api.GET("/users/:id", users.GetUser)
		api.GET("/users/:id/applications", applications.UserApplications)
		api.GET("/users/:id/adopted-pets", applications.AdoptedPets)
		api.GET("/users/:id/notifications", users.Notifications)

		api.POST("/applications", applications.Apply)
		api.GET("/applications", applications.List)
		api.GET("/applications/:id", applications.Get)
		api.POST("/applications/:id/review", applications.Review)

		// Proxied shelter/vet reads; degrade on sibling failure.
		api.GET("/pets", pets.Browse)
		api.GET("/pets/:id", pets.Detail)
	}

	r.POST("/chatbot/api/chat", chat.Chat)
}
