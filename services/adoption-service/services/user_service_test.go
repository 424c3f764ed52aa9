package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whiteheadbella/vet-management/services/adoption-service/services"
	"go.uber.org/zap"
)

func newUserService(users *mockUserRepository, notifications *mockNotificationRepository) *services.UserService {
	notification := services.NewNotificationService(notifications, nil, zap.NewNop())
	return services.NewUserService(users, notification, validator.New(), zap.NewNop())
}

func TestRegister_HashesPasswordAndDefaultsRole(t *testing.T) {
	users := newMockUserRepository()
	notifications := &mockNotificationRepository{}
	svc := newUserService(users, notifications)

	user, err := svc.Register(context.Background(), services.RegisterUserRequest{
		Name: "Jordan Reyes", Email: "jordan@example.com", Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, "adopter", user.Role)
	assert.NotEqual(t, "hunter22", user.Password)
	assert.True(t, svc.CheckPassword(user, "hunter22"))
	assert.False(t, svc.CheckPassword(user, "hunter23"))

	// The welcome email attempt is logged even with email disabled.
	require.Len(t, notifications.notifications, 1)
	assert.Contains(t, notifications.notifications[0].Subject, "Welcome")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newMockUserRepository()
	svc := newUserService(users, &mockNotificationRepository{})
	ctx := context.Background()

	_, err := svc.Register(ctx, services.RegisterUserRequest{
		Name: "Jordan", Email: "jordan@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, services.RegisterUserRequest{
		Name: "Other Jordan", Email: "jordan@example.com", Password: "hunter33",
	})
	var serr *services.ServiceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusConflict, serr.StatusCode)
	assert.Equal(t, "Email already registered", serr.Message)
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := newUserService(newMockUserRepository(), &mockNotificationRepository{})

	_, err := svc.Register(context.Background(), services.RegisterUserRequest{
		Name: "Jordan", Email: "jordan@example.com", Password: "short",
	})
	var serr *services.ServiceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusBadRequest, serr.StatusCode)
}

func TestRegister_InvalidRole(t *testing.T) {
	svc := newUserService(newMockUserRepository(), &mockNotificationRepository{})

	_, err := svc.Register(context.Background(), services.RegisterUserRequest{
		Name: "Jordan", Email: "jordan@example.com", Password: "hunter22", Role: "admin",
	})
	var serr *services.ServiceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusBadRequest, serr.StatusCode)
}

func TestGetUser_NotFound(t *testing.T) {
	svc := newUserService(newMockUserRepository(), &mockNotificationRepository{})

	_, err := svc.GetUser(context.Background(), 42)
	var serr *services.ServiceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
}
