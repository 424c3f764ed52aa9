package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/models"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/repository"
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

// CreateRecordRequest is the payload for POST /api/health/.
type CreateRecordRequest struct {
	PetID             int64                  `json:"pet_id" validate:"required"`
	PetName           string                 `json:"pet_name"`
	Species           string                 `json:"species"`
	Breed             string                 `json:"breed"`
	Weight            float64                `json:"weight"`
	Temperature       float64                `json:"temperature"`
	Notes             string                 `json:"notes"`
	Medications       string                 `json:"medications"`
	Allergies         string                 `json:"allergies"`
	ChronicConditions string                 `json:"chronic_conditions"`
	DentalHealth      string                 `json:"dental_health"`
	HeartwormStatus   string                 `json:"heartworm_status"`
	FleaTick          bool                   `json:"flea_tick_prevention"`
	Vaccinations      models.VaccinationList `json:"vaccinations"`
	LastCheckup       string                 `json:"last_checkup"`
	VetID             int64                  `json:"vet_id"`
}

// UpdateRecordRequest is the upsert payload for /api/update-record/. Pointer
// fields distinguish "absent" from zero values.
type UpdateRecordRequest struct {
	PetID             int64                   `json:"pet_id" validate:"required"`
	PetName           *string                 `json:"pet_name"`
	Species           *string                 `json:"species"`
	Breed             *string                 `json:"breed"`
	Weight            *float64                `json:"weight"`
	Temperature       *float64                `json:"temperature"`
	Notes             *string                 `json:"notes"`
	Medications       *string                 `json:"medications"`
	Allergies         *string                 `json:"allergies"`
	ChronicConditions *string                 `json:"chronic_conditions"`
	DentalHealth      *string                 `json:"dental_health"`
	HeartwormStatus   *string                 `json:"heartworm_status"`
	FleaTick          *bool                   `json:"flea_tick_prevention"`
	Vaccinations      *models.VaccinationList `json:"vaccinations"`
	LastCheckup       *string                 `json:"last_checkup"`
	UpdatedBy         *int64                  `json:"updated_by"`
}

// AddVaccinationRequest appends one vaccination to an existing record.
type AddVaccinationRequest struct {
	Name    string `json:"name" validate:"required"`
	Date    string `json:"date"`
	NextDue string `json:"next_due"`
	VetName string `json:"vet_name"`
	Notes   string `json:"notes"`
}

// RecordListResponse is the payload for GET /api/records.
type RecordListResponse struct {
	Records []models.VetRecord `json:"records"`
	Total   int                `json:"total"`
}

// HealthService manages pet health records.
type HealthService struct {
	records      repository.RecordRepository
	vets         repository.VetRepository
	appointments repository.AppointmentRepository
	validate     *validator.Validate
	logger       *zap.Logger
}

func NewHealthService(
	records repository.RecordRepository,
	vets repository.VetRepository,
	appointments repository.AppointmentRepository,
	validate *validator.Validate,
	logger *zap.Logger,
) *HealthService {
	return &HealthService{
		records:      records,
		vets:         vets,
		appointments: appointments,
		validate:     validate,
		logger:       logger,
	}
}

// GetRecord returns the health record for a pet. Callers map
// repository.ErrRecordNotFound to the no-records 404 payload.
func (s *HealthService) GetRecord(ctx context.Context, petID int64) (*models.VetRecord, error) {
	record, err := s.records.FindByPetID(ctx, petID)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, err
	}
	if err != nil {
		s.logger.Error("failed to fetch health record", zap.Int64("pet_id", petID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch health record"}
	}
	return record, nil
}

// CreateRecord creates a new health record; one record per pet.
func (s *HealthService) CreateRecord(ctx context.Context, req CreateRecordRequest) (*models.VetRecord, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "pet_id is required"}
	}

	if _, err := s.records.FindByPetID(ctx, req.PetID); err == nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Health record already exists for this pet"}
	} else if !errors.Is(err, repository.ErrRecordNotFound) {
		s.logger.Error("failed to check existing record", zap.Int64("pet_id", req.PetID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to create health record"}
	}

	record := &models.VetRecord{
		PetID:              req.PetID,
		PetName:            req.PetName,
		Species:            req.Species,
		Breed:              req.Breed,
		Weight:             req.Weight,
		Temperature:        req.Temperature,
		Notes:              req.Notes,
		Medications:        req.Medications,
		Allergies:          req.Allergies,
		ChronicConditions:  req.ChronicConditions,
		DentalHealth:       req.DentalHealth,
		HeartwormStatus:    req.HeartwormStatus,
		FleaTickPrevention: req.FleaTick,
		Vaccinations:       req.Vaccinations,
		UpdatedBy:          req.VetID,
	}
	if req.LastCheckup != "" {
		record.LastCheckup = parseTimeOrNow(req.LastCheckup)
	}

	if err := s.records.Create(ctx, record); err != nil {
		s.logger.Error("failed to create health record", zap.Int64("pet_id", req.PetID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to create health record"}
	}

	s.logger.Info("health record created",
		zap.Int64("pet_id", record.PetID),
		zap.Int64("record_id", record.ID))
	return record, nil
}

// UpsertRecord updates a pet's record, creating it on the fly when it does
// not exist yet. Used by vets and by the adoption service after approvals.
func (s *HealthService) UpsertRecord(ctx context.Context, req UpdateRecordRequest) (*models.VetRecord, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "pet_id is required"}
	}

	record, err := s.records.FindByPetID(ctx, req.PetID)
	isNew := errors.Is(err, repository.ErrRecordNotFound)
	if err != nil && !isNew {
		s.logger.Error("failed to fetch health record", zap.Int64("pet_id", req.PetID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update health record"}
	}
	if isNew {
		record = &models.VetRecord{PetID: req.PetID}
	}

	if req.PetName != nil {
		record.PetName = *req.PetName
	}
	if req.Species != nil {
		record.Species = *req.Species
	}
	if req.Breed != nil {
		record.Breed = *req.Breed
	}
	if req.Weight != nil {
		record.Weight = *req.Weight
	}
	if req.Temperature != nil {
		record.Temperature = *req.Temperature
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}
	if req.Medications != nil {
		record.Medications = *req.Medications
	}
	if req.Allergies != nil {
		record.Allergies = *req.Allergies
	}
	if req.ChronicConditions != nil {
		record.ChronicConditions = *req.ChronicConditions
	}
	if req.DentalHealth != nil {
		record.DentalHealth = *req.DentalHealth
	}
	if req.HeartwormStatus != nil {
		record.HeartwormStatus = *req.HeartwormStatus
	}
	if req.FleaTick != nil {
		record.FleaTickPrevention = *req.FleaTick
	}
	if req.Vaccinations != nil {
		record.Vaccinations = *req.Vaccinations
	}
	if req.UpdatedBy != nil {
		record.UpdatedBy = *req.UpdatedBy
	}
	if req.LastCheckup != nil {
		record.LastCheckup = parseTimeOrNow(*req.LastCheckup)
	} else {
		now := time.Now().UTC()
		record.LastCheckup = &now
	}

	if isNew {
		err = s.records.Create(ctx, record)
	} else {
		err = s.records.Update(ctx, record)
	}
	if err != nil {
		s.logger.Error("failed to upsert health record", zap.Int64("pet_id", req.PetID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update health record"}
	}

	s.logger.Info("health record updated",
		zap.Int64("pet_id", record.PetID),
		zap.Bool("created", isNew))
	return record, nil
}

// AddVaccination appends a vaccination entry to an existing record.
func (s *HealthService) AddVaccination(ctx context.Context, petID int64, req AddVaccinationRequest) (*models.VetRecord, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "name is required"}
	}

	record, err := s.records.FindByPetID(ctx, petID)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "No health record found"}
	}
	if err != nil {
		s.logger.Error("failed to fetch health record", zap.Int64("pet_id", petID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to add vaccination"}
	}

	date := req.Date
	if date == "" {
		date = time.Now().UTC().Format(time.RFC3339)
	}
	record.Vaccinations = append(record.Vaccinations, models.Vaccination{
		Name:    req.Name,
		Date:    date,
		NextDue: req.NextDue,
		VetName: req.VetName,
		Notes:   req.Notes,
	})

	if err := s.records.Update(ctx, record); err != nil {
		s.logger.Error("failed to add vaccination", zap.Int64("pet_id", petID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to add vaccination"}
	}
	return record, nil
}

// ListRecords returns all records, most recently updated first.
func (s *HealthService) ListRecords(ctx context.Context) (*RecordListResponse, error) {
	records, err := s.records.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list health records", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch health records"}
	}
	return &RecordListResponse{Records: records, Total: len(records)}, nil
}

// GetStats returns clinic-wide counts.
func (s *HealthService) GetStats(ctx context.Context) (*models.Stats, error) {
	stats := &models.Stats{}
	var err error

	if stats.TotalRecords, err = s.records.Count(ctx); err != nil {
		s.logger.Error("failed to count records", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch statistics"}
	}
	if stats.TotalVets, err = s.vets.Count(ctx); err != nil {
		s.logger.Error("failed to count vets", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch statistics"}
	}
	if stats.TotalAppointments, err = s.appointments.Count(ctx); err != nil {
		s.logger.Error("failed to count appointments", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch statistics"}
	}
	if stats.UpcomingAppointments, err = s.appointments.CountUpcoming(ctx, time.Now()); err != nil {
		s.logger.Error("failed to count upcoming appointments", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch statistics"}
	}
	return stats, nil
}

// parseTimeOrNow accepts RFC 3339 or a bare "2006-01-02T15:04" timestamp,
// falling back to the current time on garbage input.
func parseTimeOrNow(value string) *time.Time {
	layouts := []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	now := time.Now().UTC()
	return &now
}
