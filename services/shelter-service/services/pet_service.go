package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/whiteheadbella/vet-management/services/shelter-service/models"
	"github.com/whiteheadbella/vet-management/services/shelter-service/repository"
	"go.uber.org/zap"
)

// ServiceError carries an HTTP status for the controller to relay.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// CreatePetRequest is the payload for POST /api/pets/.
type CreatePetRequest struct {
	Name           string  `json:"name" validate:"required,max=100"`
	Species        string  `json:"species" validate:"required,max=20"`
	Breed          string  `json:"breed" validate:"max=100"`
	Age            int     `json:"age" validate:"gte=0"`
	Gender         string  `json:"gender" validate:"max=10"`
	Color          string  `json:"color" validate:"max=50"`
	Size           string  `json:"size" validate:"max=20"`
	Description    string  `json:"description"`
	Vaccinated     bool    `json:"vaccinated"`
	SpayedNeutered bool    `json:"spayed_neutered"`
	Microchipped   bool    `json:"microchipped"`
	SpecialNeeds   string  `json:"special_needs"`
	GoodWithKids   *bool   `json:"good_with_kids"`
	GoodWithPets   *bool   `json:"good_with_pets"`
	EnergyLevel    string  `json:"energy_level" validate:"max=20"`
	AdoptionFee    float64 `json:"adoption_fee" validate:"gte=0"`
	StaffName      string  `json:"staff_name"`
}

// UpdatePetRequest carries partial updates for PUT /api/pets/:id. Pointer
// fields distinguish "absent" from zero values.
type UpdatePetRequest struct {
	Name           *string  `json:"name"`
	Species        *string  `json:"species"`
	Breed          *string  `json:"breed"`
	Age            *int     `json:"age"`
	Gender         *string  `json:"gender"`
	Color          *string  `json:"color"`
	Size           *string  `json:"size"`
	Description    *string  `json:"description"`
	Vaccinated     *bool    `json:"vaccinated"`
	SpayedNeutered *bool    `json:"spayed_neutered"`
	Microchipped   *bool    `json:"microchipped"`
	SpecialNeeds   *string  `json:"special_needs"`
	GoodWithKids   *bool    `json:"good_with_kids"`
	GoodWithPets   *bool    `json:"good_with_pets"`
	EnergyLevel    *string  `json:"energy_level"`
	AdoptionFee    *float64 `json:"adoption_fee"`
	Status         *string  `json:"status"`
	StaffName      string   `json:"staff_name"`
}

// UpdateStatusRequest is the synchronization payload used by the adoption
// service. The status value is intentionally not validated against the
// known enum; the contract is an unconditional overwrite.
type UpdateStatusRequest struct {
	PetID  int64  `json:"pet_id" validate:"required"`
	Status string `json:"status" validate:"required"`
	System string `json:"system"`
}

// PetListResponse is the paginated listing payload.
type PetListResponse struct {
	Pets        []models.Pet `json:"pets"`
	Total       int64        `json:"total"`
	Pages       int64        `json:"pages"`
	CurrentPage int          `json:"current_page"`
	PerPage     int          `json:"per_page"`
}

// PetService implements the shelter's inventory operations.
type PetService struct {
	petRepo  repository.PetRepository
	validate *validator.Validate
	logger   *zap.Logger
}

func NewPetService(petRepo repository.PetRepository, validate *validator.Validate, logger *zap.Logger) *PetService {
	return &PetService{petRepo: petRepo, validate: validate, logger: logger}
}

// ListPets returns matching pets with pagination metadata.
func (s *PetService) ListPets(ctx context.Context, filter repository.PetFilter) (*PetListResponse, *ServiceError) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 12
	}
	if filter.Status == "" {
		filter.Status = models.StatusAvailable
	}

	pets, total, err := s.petRepo.Find(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list pets", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch pets"}
	}

	if pets == nil {
		pets = []models.Pet{}
	}
	return &PetListResponse{
		Pets:        pets,
		Total:       total,
		Pages:       calculateTotalPages(total, filter.PerPage),
		CurrentPage: filter.Page,
		PerPage:     filter.PerPage,
	}, nil
}

// GetPet returns one pet with its images.
func (s *PetService) GetPet(ctx context.Context, id int64) (*models.Pet, *ServiceError) {
	pet, err := s.petRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &ServiceError{StatusCode: 404, Message: "Pet not found"}
	}
	if err != nil {
		s.logger.Error("failed to fetch pet", zap.Int64("pet_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch pet"}
	}
	return pet, nil
}

// CreatePet inserts a new pet and appends the "added" audit row.
func (s *PetService) CreatePet(ctx context.Context, req *CreatePetRequest) (*models.Pet, *ServiceError) {
	if err := s.validate.Struct(req); err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Missing required fields"}
	}

	pet := &models.Pet{
		Name:           req.Name,
		Species:        req.Species,
		Breed:          req.Breed,
		Age:            req.Age,
		Gender:         req.Gender,
		Color:          req.Color,
		Size:           req.Size,
		Description:    req.Description,
		Status:         models.StatusAvailable,
		Vaccinated:     req.Vaccinated,
		SpayedNeutered: req.SpayedNeutered,
		Microchipped:   req.Microchipped,
		SpecialNeeds:   req.SpecialNeeds,
		GoodWithKids:   boolOrDefault(req.GoodWithKids, true),
		GoodWithPets:   boolOrDefault(req.GoodWithPets, true),
		EnergyLevel:    defaultString(req.EnergyLevel, "medium"),
		AdoptionFee:    req.AdoptionFee,
	}

	if err := s.petRepo.Create(ctx, pet); err != nil {
		s.logger.Error("failed to create pet", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create pet"}
	}

	s.appendLog(ctx, pet.ID, models.ActionAdded,
		fmt.Sprintf("Pet %s added to shelter", pet.Name),
		defaultString(req.StaffName, "System"))

	return pet, nil
}

// UpdatePet applies the provided fields and appends the "updated" audit row.
func (s *PetService) UpdatePet(ctx context.Context, id int64, req *UpdatePetRequest) (*models.Pet, *ServiceError) {
	pet, serr := s.GetPet(ctx, id)
	if serr != nil {
		return nil, serr
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&pet.Name, req.Name)
	applyString(&pet.Species, req.Species)
	applyString(&pet.Breed, req.Breed)
	applyString(&pet.Gender, req.Gender)
	applyString(&pet.Color, req.Color)
	applyString(&pet.Size, req.Size)
	applyString(&pet.Description, req.Description)
	applyString(&pet.SpecialNeeds, req.SpecialNeeds)
	applyString(&pet.EnergyLevel, req.EnergyLevel)
	applyString(&pet.Status, req.Status)
	if req.Age != nil {
		pet.Age = *req.Age
	}
	if req.Vaccinated != nil {
		pet.Vaccinated = *req.Vaccinated
	}
	if req.SpayedNeutered != nil {
		pet.SpayedNeutered = *req.SpayedNeutered
	}
	if req.Microchipped != nil {
		pet.Microchipped = *req.Microchipped
	}
	if req.GoodWithKids != nil {
		pet.GoodWithKids = *req.GoodWithKids
	}
	if req.GoodWithPets != nil {
		pet.GoodWithPets = *req.GoodWithPets
	}
	if req.AdoptionFee != nil {
		pet.AdoptionFee = *req.AdoptionFee
	}

	if err := s.petRepo.Update(ctx, pet); err != nil {
		s.logger.Error("failed to update pet", zap.Int64("pet_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update pet"}
	}

	s.appendLog(ctx, pet.ID, models.ActionUpdated,
		fmt.Sprintf("Pet %s information updated", pet.Name),
		defaultString(req.StaffName, "System"))

	return pet, nil
}

// UpdateStatus overwrites a pet's status unconditionally and records the
// old and new values plus the calling system in the audit log. Concurrent
// writers race and the last write wins; every call appends its own log row,
// so repeating an identical request grows the log even though the pet state
// is unchanged.
func (s *PetService) UpdateStatus(ctx context.Context, req *UpdateStatusRequest) (*models.Pet, *ServiceError) {
	if req.PetID == 0 || req.Status == "" {
		return nil, &ServiceError{StatusCode: 400, Message: "Missing pet_id or status"}
	}

	pet, serr := s.GetPet(ctx, req.PetID)
	if serr != nil {
		return nil, serr
	}

	oldStatus := pet.Status
	pet.Status = req.Status

	if err := s.petRepo.Update(ctx, pet); err != nil {
		s.logger.Error("failed to update pet status",
			zap.Int64("pet_id", req.PetID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update status"}
	}

	s.appendLog(ctx, pet.ID, models.ActionStatusChanged,
		fmt.Sprintf("Pet status changed from %s to %s", oldStatus, req.Status),
		defaultString(req.System, "Adoption System"))

	return pet, nil
}

// DeletePet removes a pet and cascades its images and logs.
func (s *PetService) DeletePet(ctx context.Context, id int64) *ServiceError {
	pet, serr := s.GetPet(ctx, id)
	if serr != nil {
		return serr
	}
	if err := s.petRepo.Delete(ctx, pet); err != nil {
		s.logger.Error("failed to delete pet", zap.Int64("pet_id", id), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete pet"}
	}
	return nil
}

// AddImage attaches an image URL record; the pet's first image is primary.
func (s *PetService) AddImage(ctx context.Context, petID int64, imageURL, caption string) (*models.PetImage, *ServiceError) {
	if imageURL == "" {
		return nil, &ServiceError{StatusCode: 400, Message: "image_url is required"}
	}
	if _, serr := s.GetPet(ctx, petID); serr != nil {
		return nil, serr
	}

	count, err := s.petRepo.CountImages(ctx, petID)
	if err != nil {
		s.logger.Error("failed to count pet images", zap.Int64("pet_id", petID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to add image"}
	}

	image := &models.PetImage{
		PetID:     petID,
		ImageURL:  imageURL,
		IsPrimary: count == 0,
		Caption:   caption,
	}
	if err := s.petRepo.AddImage(ctx, image); err != nil {
		s.logger.Error("failed to add pet image", zap.Int64("pet_id", petID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to add image"}
	}
	return image, nil
}

// GetLogs returns a pet's audit trail.
func (s *PetService) GetLogs(ctx context.Context, petID int64) ([]models.ShelterLog, *ServiceError) {
	if _, serr := s.GetPet(ctx, petID); serr != nil {
		return nil, serr
	}
	logs, err := s.petRepo.LogsByPetID(ctx, petID)
	if err != nil {
		s.logger.Error("failed to fetch pet logs", zap.Int64("pet_id", petID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch logs"}
	}
	if logs == nil {
		logs = []models.ShelterLog{}
	}
	return logs, nil
}

// GetStats returns the shelter counters.
func (s *PetService) GetStats(ctx context.Context) (*models.Stats, *ServiceError) {
	stats, err := s.petRepo.Stats(ctx)
	if err != nil {
		s.logger.Error("failed to compute stats", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to compute statistics"}
	}
	return stats, nil
}

func (s *PetService) appendLog(ctx context.Context, petID int64, action, description, performedBy string) {
	log := &models.ShelterLog{
		PetID:       petID,
		Action:      action,
		Description: description,
		PerformedBy: performedBy,
	}
	if err := s.petRepo.AppendLog(ctx, log); err != nil {
		s.logger.Error("failed to append shelter log",
			zap.Int64("pet_id", petID),
			zap.String("action", action),
			zap.Error(err))
	}
}

func calculateTotalPages(total int64, perPage int) int64 {
	if perPage == 0 {
		return 0
	}
	return (total + int64(perPage) - 1) / int64(perPage)
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
