package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/whiteheadbella/vet-management/services/adoption-service/models"
	"github.com/whiteheadbella/vet-management/services/adoption-service/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ServiceError carries an HTTP status for the controller to relay.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// RegisterUserRequest is the payload for POST /api/users.
type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=adopter shelter vet"`
	Gender   string `json:"gender" validate:"max=10"`
	Job      string `json:"job" validate:"max=100"`
	Phone    string `json:"phone" validate:"max=20"`
	Address  string `json:"address"`
	City     string `json:"city" validate:"max=100"`
}

// UserService handles registration and lookups. There is no session layer;
// users are plain data with bcrypt-hashed credentials.
type UserService struct {
	users        repository.UserRepository
	notification *NotificationService
	validate     *validator.Validate
	logger       *zap.Logger
}

func NewUserService(
	users repository.UserRepository,
	notification *NotificationService,
	validate *validator.Validate,
	logger *zap.Logger,
) *UserService {
	return &UserService{users: users, notification: notification, validate: validate, logger: logger}
}

// Register creates a user with a bcrypt-hashed password and sends a
// best-effort welcome email.
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "name, email and a password of at least 6 characters are required"}
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, &ServiceError{StatusCode: http.StatusConflict, Message: "Email already registered"}
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("failed to check existing user", zap.String("email", req.Email), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to register user"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to register user"}
	}

	role := req.Role
	if role == "" {
		role = "adopter"
	}
	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     role,
		Gender:   req.Gender,
		Job:      req.Job,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user", zap.String("email", req.Email), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to register user"}
	}

	s.notification.Notify(ctx, user, "Welcome to Pet Adoption System",
		"Hi "+user.Name+", welcome aboard! Browse our available pets and find your new best friend.")

	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("role", user.Role))
	return user, nil
}

// GetUser returns one user by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "User not found"}
	}
	if err != nil {
		s.logger.Error("failed to fetch user", zap.Int64("user_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch user"}
	}
	return user, nil
}

// CheckPassword verifies a candidate password against the stored hash.
func (s *UserService) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}
