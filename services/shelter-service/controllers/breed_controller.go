package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/whiteheadbella/vet-management/services/shelter-service/services"
)

type BreedController struct {
	breedClient *services.BreedClient
}

func NewBreedController(breedClient *services.BreedClient) *BreedController {
	return &BreedController{breedClient: breedClient}
}

// GetBreeds handles GET /api/breeds/:species. The upstream breed APIs are
// opaque read-only sources; failures degrade to an empty list, never an
// error response.
func (bc *BreedController) GetBreeds(ctx *gin.Context) {
	species := ctx.Param("species")

	var breeds []string
	switch species {
	case "dog":
		breeds = bc.breedClient.DogBreeds(ctx.Request.Context())
	case "cat":
		breeds = bc.breedClient.CatBreeds(ctx.Request.Context())
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "species must be dog or cat"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"species": species, "breeds": breeds})
}
