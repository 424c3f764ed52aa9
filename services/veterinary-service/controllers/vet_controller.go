package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/services"
)

type VetController struct {
	vetService *services.VetService
}

func NewVetController(vetService *services.VetService) *VetController {
	return &VetController{vetService: vetService}
}

// ListVets handles GET /api/vets.
func (vc *VetController) ListVets(ctx *gin.Context) {
	result, err := vc.vetService.ListVets(ctx.Request.Context())
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetVet handles GET /api/vets/:id.
func (vc *VetController) GetVet(ctx *gin.Context) {
	id, ok := parseInt64Param(ctx, "id")
	if !ok {
		return
	}
	vet, err := vc.vetService.GetVet(ctx.Request.Context(), id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, vet)
}

// CreateVet handles POST /api/vets.
func (vc *VetController) CreateVet(ctx *gin.Context) {
	var req services.CreateVetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	vet, err := vc.vetService.CreateVet(ctx.Request.Context(), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, vet)
}
