package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/repository"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/services"
)

type AppointmentController struct {
	appointmentService *services.AppointmentService
}

func NewAppointmentController(appointmentService *services.AppointmentService) *AppointmentController {
	return &AppointmentController{appointmentService: appointmentService}
}

// Schedule handles POST /api/schedule-appointment/.
func (ac *AppointmentController) Schedule(ctx *gin.Context) {
	var req services.ScheduleAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	appt, err := ac.appointmentService.Schedule(ctx.Request.Context(), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, appt)
}

// List handles GET /api/appointments with optional status and vet_id filters.
func (ac *AppointmentController) List(ctx *gin.Context) {
	filter := repository.AppointmentFilter{
		Status: ctx.DefaultQuery("status", "all"),
	}
	if vetStr := ctx.Query("vet_id"); vetStr != "" && vetStr != "all" {
		if vetID, err := strconv.ParseInt(vetStr, 10, 64); err == nil {
			filter.VetID = vetID
		}
	}

	appts, err := ac.appointmentService.List(ctx.Request.Context(), filter)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"appointments": appts, "total": len(appts)})
}

// Get handles GET /api/appointments/:id.
func (ac *AppointmentController) Get(ctx *gin.Context) {
	id, ok := parseInt64Param(ctx, "id")
	if !ok {
		return
	}
	appt, err := ac.appointmentService.Get(ctx.Request.Context(), id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, appt)
}

// Update handles PUT /api/appointments/:id.
func (ac *AppointmentController) Update(ctx *gin.Context) {
	id, ok := parseInt64Param(ctx, "id")
	if !ok {
		return
	}
	var req services.UpdateAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	appt, err := ac.appointmentService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, appt)
}

// Cancel handles POST /api/appointments/:id/cancel.
func (ac *AppointmentController) Cancel(ctx *gin.Context) {
	id, ok := parseInt64Param(ctx, "id")
	if !ok {
		return
	}
	appt, err := ac.appointmentService.Cancel(ctx.Request.Context(), id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, appt)
}

// PetAppointments handles GET /api/pets/:petID/appointments.
func (ac *AppointmentController) PetAppointments(ctx *gin.Context) {
	petID, ok := parseInt64Param(ctx, "petID")
	if !ok {
		return
	}
	result, err := ac.appointmentService.PetAppointments(ctx.Request.Context(), petID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
