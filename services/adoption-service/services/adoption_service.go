package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/whiteheadbella/vet-management/services/adoption-service/models"
	"github.com/whiteheadbella/vet-management/services/adoption-service/repository"
	"github.com/whiteheadbella/vet-management/services/common/remote"
	"go.uber.org/zap"
)

// ApplyRequest is the payload for POST /api/applications.
type ApplyRequest struct {
	UserID          int64  `json:"user_id" validate:"required"`
	PetID           int64  `json:"pet_id" validate:"required"`
	Reason          string `json:"reason" validate:"required"`
	Experience      string `json:"experience" validate:"required"`
	LivingSituation string `json:"living_situation" validate:"required"`
	HasYard         bool   `json:"has_yard"`
	OtherPets       string `json:"other_pets"`
}

// ReviewRequest is the payload for POST /api/applications/:id/review.
type ReviewRequest struct {
	Action     string `json:"action" validate:"required,oneof=approve reject"`
	ReviewerID int64  `json:"reviewer_id"`
	Notes      string `json:"notes"`
}

// AdoptedPetView pairs an adoption record with the pet's live health data.
type AdoptedPetView struct {
	Pet    models.AdoptedPet `json:"pet"`
	Health *HealthRecord     `json:"health"`
}

// MyPetsResponse is the payload for GET /api/users/:id/adopted-pets.
// Degraded is set when the veterinary service could not be reached for at
// least one pet.
type MyPetsResponse struct {
	Pets     []AdoptedPetView `json:"pets"`
	Total    int              `json:"total"`
	Degraded bool             `json:"degraded"`
}

// PetDetailResponse merges the shelter's pet view with the vet's health
// view. Either side may be missing when its service is down.
type PetDetailResponse struct {
	Pet      *ShelterPet   `json:"pet"`
	Health   *HealthRecord `json:"health"`
	Degraded bool          `json:"degraded"`
}

// AdoptionService orchestrates the adoption workflow. It is the only place
// in the platform that writes across service boundaries, and every such
// write goes through the outbox.
type AdoptionService struct {
	applications repository.ApplicationRepository
	users        repository.UserRepository
	shelter      *ShelterClient
	vet          *VetClient
	dispatcher   *OutboxDispatcher
	notification *NotificationService
	validate     *validator.Validate
	logger       *zap.Logger
}

func NewAdoptionService(
	applications repository.ApplicationRepository,
	users repository.UserRepository,
	shelter *ShelterClient,
	vet *VetClient,
	dispatcher *OutboxDispatcher,
	notification *NotificationService,
	validate *validator.Validate,
	logger *zap.Logger,
) *AdoptionService {
	return &AdoptionService{
		applications: applications,
		users:        users,
		shelter:      shelter,
		vet:          vet,
		dispatcher:   dispatcher,
		notification: notification,
		validate:     validate,
		logger:       logger,
	}
}

// Apply submits an adoption application. One pending application per
// (user, pet) pair; the pet name is resolved from the shelter best-effort.
func (s *AdoptionService) Apply(ctx context.Context, req ApplyRequest) (*models.AdoptionApplication, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "user_id, pet_id, reason, experience and living_situation are required"}
	}

	user, err := s.users.FindByID(ctx, req.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "User not found"}
	}
	if err != nil {
		s.logger.Error("failed to load applicant", zap.Int64("user_id", req.UserID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to submit application"}
	}

	pending, err := s.applications.HasPending(ctx, req.UserID, req.PetID)
	if err != nil {
		s.logger.Error("failed to check pending applications", zap.Int64("user_id", req.UserID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to submit application"}
	}
	if pending {
		return nil, &ServiceError{StatusCode: http.StatusConflict, Message: "You already have a pending application for this pet"}
	}

	petName := "Unknown"
	if pet, status := s.shelter.GetPet(ctx, req.PetID); status == remote.FetchOK {
		petName = pet.Name
	}

	app := &models.AdoptionApplication{
		UserID:          req.UserID,
		PetID:           req.PetID,
		PetName:         petName,
		Status:          models.ApplicationPending,
		Reason:          req.Reason,
		Experience:      req.Experience,
		LivingSituation: req.LivingSituation,
		HasYard:         req.HasYard,
		OtherPets:       req.OtherPets,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		s.logger.Error("failed to create application", zap.Int64("user_id", req.UserID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to submit application"}
	}

	s.notification.Notify(ctx, user, "Adoption Application Received",
		fmt.Sprintf("Hi %s, we received your application #%d for %s. We'll review it shortly.",
			user.Name, app.ID, petName))

	s.logger.Info("application submitted",
		zap.Int64("application_id", app.ID),
		zap.Int64("user_id", req.UserID),
		zap.Int64("pet_id", req.PetID))
	return app, nil
}

// ListApplications returns applications matching the filter.
func (s *AdoptionService) ListApplications(ctx context.Context, filter repository.ApplicationFilter) ([]models.AdoptionApplication, error) {
	apps, err := s.applications.Find(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list applications", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch applications"}
	}
	return apps, nil
}

// GetApplication returns one application by id.
func (s *AdoptionService) GetApplication(ctx context.Context, id int64) (*models.AdoptionApplication, error) {
	app, err := s.applications.FindByID(ctx, id)
	if errors.Is(err, repository.ErrApplicationNotFound) {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Application not found"}
	}
	if err != nil {
		s.logger.Error("failed to fetch application", zap.Int64("application_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch application"}
	}
	return app, nil
}

// Review approves or rejects a pending application. Approval commits the
// application update, the AdoptedPet row and the outbox task in one local
// transaction, then attempts delivery immediately; the shelter being down
// delays synchronization but never blocks the approval.
func (s *AdoptionService) Review(ctx context.Context, id int64, req ReviewRequest) (*models.AdoptionApplication, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Invalid action"}
	}

	app, err := s.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Status != models.ApplicationPending {
		return nil, &ServiceError{StatusCode: http.StatusConflict, Message: "Application has already been reviewed"}
	}

	now := time.Now().UTC()
	app.DateReviewed = &now
	app.ReviewedBy = req.ReviewerID
	app.Notes = req.Notes

	if req.Action == "reject" {
		app.Status = models.ApplicationRejected
		if err := s.applications.Update(ctx, app); err != nil {
			s.logger.Error("failed to reject application", zap.Int64("application_id", id), zap.Error(err))
			return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to review application"}
		}
		s.notifyReviewed(ctx, app)
		s.logger.Info("application rejected", zap.Int64("application_id", id))
		return app, nil
	}

	app.Status = models.ApplicationApproved
	adopted := &models.AdoptedPet{
		PetID:         app.PetID,
		PetName:       app.PetName,
		AdopterID:     app.UserID,
		ApplicationID: app.ID,
		AdoptionDate:  now,
	}
	task := &models.StatusSyncTask{
		PetID:         app.PetID,
		Status:        "adopted",
		ApplicationID: app.ID,
		State:         models.SyncPending,
	}

	if err := s.applications.Approve(ctx, app, adopted, task); err != nil {
		s.logger.Error("failed to approve application", zap.Int64("application_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to review application"}
	}

	// Synchronous first attempt; the ticker picks up whatever this misses.
	s.dispatcher.Deliver(ctx, task)

	s.notifyReviewed(ctx, app)
	s.logger.Info("application approved",
		zap.Int64("application_id", id),
		zap.Int64("pet_id", app.PetID),
		zap.Int64("adopter_id", app.UserID))
	return app, nil
}

// MyPets returns a user's adopted pets with their live health records.
func (s *AdoptionService) MyPets(ctx context.Context, userID int64) (*MyPetsResponse, error) {
	adopted, err := s.applications.FindAdoptedByAdopter(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list adopted pets", zap.Int64("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch adopted pets"}
	}

	resp := &MyPetsResponse{Pets: make([]AdoptedPetView, 0, len(adopted))}
	for _, pet := range adopted {
		view := AdoptedPetView{Pet: pet}
		health, status := s.vet.GetHealth(ctx, pet.PetID)
		if status == remote.FetchOK {
			view.Health = health
		} else if status == remote.FetchUnavailable {
			resp.Degraded = true
		}
		resp.Pets = append(resp.Pets, view)
	}
	resp.Total = len(resp.Pets)
	return resp, nil
}

// PetDetail merges the shelter's view of a pet with the vet's. A missing
// pet is a 404; an unreachable sibling degrades the payload instead.
func (s *AdoptionService) PetDetail(ctx context.Context, petID int64) (*PetDetailResponse, error) {
	resp := &PetDetailResponse{}

	pet, status := s.shelter.GetPet(ctx, petID)
	switch status {
	case remote.FetchOK:
		resp.Pet = pet
	case remote.FetchNotFound:
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Pet not found"}
	case remote.FetchUnavailable:
		resp.Degraded = true
	}

	health, healthStatus := s.vet.GetHealth(ctx, petID)
	if healthStatus == remote.FetchOK {
		resp.Health = health
	} else if healthStatus == remote.FetchUnavailable {
		resp.Degraded = true
	}

	return resp, nil
}

// Browse proxies the shelter's pet listing, degrading to an empty page
// when the shelter is unreachable.
func (s *AdoptionService) Browse(ctx context.Context, params PetListParams) *ShelterPetPage {
	page, _ := s.shelter.ListPets(ctx, params)
	return page
}

func (s *AdoptionService) notifyReviewed(ctx context.Context, app *models.AdoptionApplication) {
	user, err := s.users.FindByID(ctx, app.UserID)
	if err != nil {
		s.logger.Warn("applicant lookup failed, skipping notification",
			zap.Int64("application_id", app.ID), zap.Error(err))
		return
	}
	subject := fmt.Sprintf("Adoption Application %s", titleCase(app.Status))
	body := fmt.Sprintf("Hi %s, your application for %s has been %s.", user.Name, app.PetName, app.Status)
	if app.Notes != "" {
		body += "\n\nNotes: " + app.Notes
	}
	s.notification.Notify(ctx, user, subject, body)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
