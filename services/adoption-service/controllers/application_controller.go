package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/whiteheadbella/vet-management/services/adoption-service/repository"
	"github.com/whiteheadbella/vet-management/services/adoption-service/services"
)

type ApplicationController struct {
	adoptionService *services.AdoptionService
}

func NewApplicationController(adoptionService *services.AdoptionService) *ApplicationController {
	return &ApplicationController{adoptionService: adoptionService}
}

// Apply handles POST /api/applications.
func (ac *ApplicationController) Apply(ctx *gin.Context) {
	var req services.ApplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	app, err := ac.adoptionService.Apply(ctx.Request.Context(), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, app)
}

// List handles GET /api/applications with optional status and user_id filters.
func (ac *ApplicationController) List(ctx *gin.Context) {
	filter := repository.ApplicationFilter{
		Status: ctx.DefaultQuery("status", "all"),
	}
	if userStr := ctx.Query("user_id"); userStr != "" {
		if userID, err := strconv.ParseInt(userStr, 10, 64); err == nil {
			filter.UserID = userID
		}
	}

	apps, err := ac.adoptionService.ListApplications(ctx.Request.Context(), filter)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"applications": apps, "total": len(apps)})
}

// Get handles GET /api/applications/:id.
func (ac *ApplicationController) Get(ctx *gin.Context) {
	id, ok := parseInt64Param(ctx, "id")
	if !ok {
		return
	}
	app, err := ac.adoptionService.GetApplication(ctx.Request.Context(), id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, app)
}

// Review handles POST /api/applications/:id/review.
func (ac *ApplicationController) Review(ctx *gin.Context) {
	id, ok := parseInt64Param(ctx, "id")
	if !ok {
		return
	}
	var req services.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
		return
	}
	app, err := ac.adoptionService.Review(ctx.Request.Context(), id, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, app)
}

// UserApplications handles GET /api/users/:id/applications.
func (ac *ApplicationController) UserApplications(ctx *gin.Context) {
	id, ok := parseInt64Param(ctx, "id")
	if !ok {
		return
	}
	apps, err := ac.adoptionService.ListApplications(ctx.Request.Context(),
		repository.ApplicationFilter{UserID: id, Status: ctx.DefaultQuery("status", "all")})
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"applications": apps, "total": len(apps)})
}

// AdoptedPets handles GET /api/users/:id/adopted-pets.
func (ac *ApplicationController) AdoptedPets(ctx *gin.Context) {
	id, ok := parseInt64Param(ctx, "id")
	if !ok {
		return
	}
	result, err := ac.adoptionService.MyPets(ctx.Request.Context(), id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
