package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/models"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/repository"
	"go.uber.org/zap"
)

// CreateVetRequest is the payload for POST /api/vets.
type CreateVetRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"max=20"`
	Specialization string `json:"specialization" validate:"max=100"`
	LicenseNumber  string `json:"license_number" validate:"max=50"`
	Bio            string `json:"bio"`
}

// VetListResponse is the payload for GET /api/vets.
type VetListResponse struct {
	Vets  []models.Vet `json:"vets"`
	Total int          `json:"total"`
}

// VetService manages the veterinarian roster.
type VetService struct {
	vets     repository.VetRepository
	validate *validator.Validate
	logger   *zap.Logger
}

func NewVetService(vets repository.VetRepository, validate *validator.Validate, logger *zap.Logger) *VetService {
	return &VetService{vets: vets, validate: validate, logger: logger}
}

func (s *VetService) ListVets(ctx context.Context) (*VetListResponse, error) {
	vets, err := s.vets.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list vets", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch veterinarians"}
	}
	return &VetListResponse{Vets: vets, Total: len(vets)}, nil
}

func (s *VetService) GetVet(ctx context.Context, id int64) (*models.Vet, error) {
	vet, err := s.vets.FindByID(ctx, id)
	if errors.Is(err, repository.ErrVetNotFound) {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Vet not found"}
	}
	if err != nil {
		s.logger.Error("failed to fetch vet", zap.Int64("vet_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch veterinarian"}
	}
	return vet, nil
}

func (s *VetService) CreateVet(ctx context.Context, req CreateVetRequest) (*models.Vet, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "name and a valid email are required"}
	}

	vet := &models.Vet{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		LicenseNumber:  req.LicenseNumber,
		Bio:            req.Bio,
	}
	if err := s.vets.Create(ctx, vet); err != nil {
		s.logger.Error("failed to create vet", zap.String("email", req.Email), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to create veterinarian"}
	}

	s.logger.Info("vet created", zap.Int64("vet_id", vet.ID), zap.String("name", vet.Name))
	return vet, nil
}
