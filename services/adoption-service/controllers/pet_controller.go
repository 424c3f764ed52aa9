package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/whiteheadbella/vet-management/services/adoption-service/services"
)

// PetController proxies pet reads into the shelter and veterinary
// services. All reads degrade on sibling failure.
type PetController struct {
	adoptionService *services.AdoptionService
}

func NewPetController(adoptionService *services.AdoptionService) *PetController {
	return &PetController{adoptionService: adoptionService}
}

// Browse handles GET /api/pets.
func (pc *PetController) Browse(ctx *gin.Context) {
	params := services.PetListParams{
		Species: ctx.DefaultQuery("species", "all"),
		Breed:   ctx.Query("breed"),
		Gender:  ctx.Query("gender"),
		Status:  ctx.DefaultQuery("status", "available"),
		Search:  ctx.Query("search"),
	}
	if pageStr := ctx.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			params.Page = page
		}
	}
	page := pc.adoptionService.Browse(ctx.Request.Context(), params)
	ctx.JSON(http.StatusOK, page)
}

// Detail handles GET /api/pets/:id, merging shelter and vet views.
func (pc *PetController) Detail(ctx *gin.Context) {
	id, ok := parseInt64Param(ctx, "id")
	if !ok {
		return
	}
	detail, err := pc.adoptionService.PetDetail(ctx.Request.Context(), id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}
