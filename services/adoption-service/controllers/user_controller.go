package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/whiteheadbella/vet-management/services/adoption-service/services"
)

type UserController struct {
	userService         *services.UserService
	notificationService *services.NotificationService
}

func NewUserController(userService *services.UserService, notificationService *services.NotificationService) *UserController {
	return &UserController{userService: userService, notificationService: notificationService}
}

// Register handles POST /api/users.
func (uc *UserController) Register(ctx *gin.Context) {
	var req services.RegisterUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	user, err := uc.userService.Register(ctx.Request.Context(), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// GetUser handles GET /api/users/:id.
func (uc *UserController) GetUser(ctx *gin.Context) {
	id, ok := parseInt64Param(ctx, "id")
	if !ok {
		return
	}
	user, err := uc.userService.GetUser(ctx.Request.Context(), id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// Notifications handles GET /api/users/:id/notifications.
func (uc *UserController) Notifications(ctx *gin.Context) {
	id, ok := parseInt64Param(ctx, "id")
	if !ok {
		return
	}
	notifications, err := uc.notificationService.UserNotifications(ctx.Request.Context(), id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"notifications": notifications, "total": len(notifications)})
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
