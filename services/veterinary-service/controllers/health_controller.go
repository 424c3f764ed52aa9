package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/repository"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/services"
)

type HealthController struct {
	healthService *services.HealthService
}

func NewHealthController(healthService *services.HealthService) *HealthController {
	return &HealthController{healthService: healthService}
}

// GetRecord handles GET /api/health/:petID. A pet without a record gets a
// 404 with an explicit has_records flag so callers can distinguish "never
// examined" from transport failures.
func (hc *HealthController) GetRecord(ctx *gin.Context) {
	petID, ok := parseInt64Param(ctx, "petID")
	if !ok {
		return
	}

	record, err := hc.healthService.GetRecord(ctx.Request.Context(), petID)
	if errors.Is(err, repository.ErrRecordNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{
			"pet_id":      petID,
			"message":     "No health records found",
			"has_records": false,
		})
		return
	}
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, record)
}

// CreateRecord handles POST /api/health/.
func (hc *HealthController) CreateRecord(ctx *gin.Context) {
	var req services.CreateRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "pet_id is required"})
		return
	}
	record, err := hc.healthService.CreateRecord(ctx.Request.Context(), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, record)
}

// UpsertRecord handles POST/PUT /api/update-record/.
func (hc *HealthController) UpsertRecord(ctx *gin.Context) {
	var req services.UpdateRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "pet_id is required"})
		return
	}
	record, err := hc.healthService.UpsertRecord(ctx.Request.Context(), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, record)
}

// AddVaccination handles POST /api/health/:petID/vaccinations.
func (hc *HealthController) AddVaccination(ctx *gin.Context) {
	petID, ok := parseInt64Param(ctx, "petID")
	if !ok {
		return
	}
	var req services.AddVaccinationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	record, err := hc.healthService.AddVaccination(ctx.Request.Context(), petID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, record)
}

// ListRecords handles GET /api/records.
func (hc *HealthController) ListRecords(ctx *gin.Context) {
	result, err := hc.healthService.ListRecords(ctx.Request.Context())
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetStats handles GET /api/stats.
func (hc *HealthController) GetStats(ctx *gin.Context) {
	stats, err := hc.healthService.GetStats(ctx.Request.Context())
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

func parseInt64Param(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

func respondServiceError(ctx *gin.Context, err error) {
	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
