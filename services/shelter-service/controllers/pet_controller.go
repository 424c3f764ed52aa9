package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/whiteheadbella/vet-management/services/shelter-service/repository"
	"github.com/whiteheadbella/vet-management/services/shelter-service/services"
)

type PetController struct {
	petService *services.PetService
}

func NewPetController(petService *services.PetService) *PetController {
	return &PetController{petService: petService}
}

// ListPets handles GET /api/pets/ with filtering and pagination.
func (pc *PetController) ListPets(ctx *gin.Context) {
	filter := repository.PetFilter{
		Species: ctx.DefaultQuery("species", "all"),
		Breed:   ctx.Query("breed"),
		Gender:  ctx.Query("gender"),
		Status:  ctx.DefaultQuery("status", "available"),
		Search:  ctx.Query("search"),
	}
	if ageStr := ctx.Query("age"); ageStr != "" {
		if age, err := strconv.Atoi(ageStr); err == nil {
			filter.Age = &age
		}
	}
	filter.Page, filter.PerPage = parsePaginationParams(ctx)

	result, serviceErr := pc.petService.ListPets(ctx.Request.Context(), filter)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetPet handles GET /api/pets/:id.
func (pc *PetController) GetPet(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	pet, serviceErr := pc.petService.GetPet(ctx.Request.Context(), id)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, pet)
}

// CreatePet handles POST /api/pets/.
func (pc *PetController) CreatePet(ctx *gin.Context) {
	var req services.CreatePetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	pet, serviceErr := pc.petService.CreatePet(ctx.Request.Context(), &req)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, pet)
}

// UpdatePet handles PUT /api/pets/:id.
func (pc *PetController) UpdatePet(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	var req services.UpdatePetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	pet, serviceErr := pc.petService.UpdatePet(ctx.Request.Context(), id, &req)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, pet)
}

// UpdateStatus handles PUT /api/update-status/, the synchronization point
// called by the adoption service.
func (pc *PetController) UpdateStatus(ctx *gin.Context) {
	var req services.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing pet_id or status"})
		return
	}
	pet, serviceErr := pc.petService.UpdateStatus(ctx.Request.Context(), &req)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "pet": pet})
}

// DeletePet handles DELETE /api/pets/:id.
func (pc *PetController) DeletePet(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	if serviceErr := pc.petService.DeletePet(ctx.Request.Context(), id); serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Pet deleted"})
}

// AddImage handles POST /api/pets/:id/images.
func (pc *PetController) AddImage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	var req struct {
		ImageURL string `json:"image_url" binding:"required"`
		Caption  string `json:"caption"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "image_url is required"})
		return
	}
	image, serviceErr := pc.petService.AddImage(ctx.Request.Context(), id, req.ImageURL, req.Caption)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, image)
}

// GetLogs handles GET /api/pets/:id/logs.
func (pc *PetController) GetLogs(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	logs, serviceErr := pc.petService.GetLogs(ctx.Request.Context(), id)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"pet_id": id, "logs": logs})
}

// GetStats handles GET /api/stats.
func (pc *PetController) GetStats(ctx *gin.Context) {
	stats, serviceErr := pc.petService.GetStats(ctx.Request.Context())
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

func parseIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pet ID format"})
		return 0, false
	}
	return id, true
}

func parsePaginationParams(ctx *gin.Context) (int, int) {
	const MaxPerPage = 100
	page := 1
	perPage := 12

	if p, err := strconv.Atoi(ctx.DefaultQuery("page", "1")); err == nil && p > 0 {
		page = p
	}
	if pp, err := strconv.Atoi(ctx.DefaultQuery("per_page", "12")); err == nil && pp > 0 {
		perPage = pp
		if perPage > MaxPerPage {
			perPage = MaxPerPage
		}
	}
	return page, perPage
}
