package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/models"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/repository"
	"go.uber.org/zap"
)

// ScheduleAppointmentRequest is the payload for POST /api/schedule-appointment/.
type ScheduleAppointmentRequest struct {
	PetID      int64  `json:"pet_id" validate:"required"`
	PetName    string `json:"pet_name"`
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
	OwnerPhone string `json:"owner_phone"`
	VetID      int64  `json:"vet_id" validate:"required"`
	Date       string `json:"date" validate:"required"`
	Duration   int    `json:"duration"`
	Reason     string `json:"reason" validate:"required"`
	Notes      string `json:"notes"`
}

// UpdateAppointmentRequest changes status and/or notes on an appointment.
type UpdateAppointmentRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// PetAppointmentsResponse is the per-pet appointment listing.
type PetAppointmentsResponse struct {
	PetID        int64                `json:"pet_id"`
	Appointments []models.Appointment `json:"appointments"`
	Total        int                  `json:"total"`
}

// AppointmentService schedules vet visits and mirrors them into an external
// calendar when one is configured.
type AppointmentService struct {
	appointments repository.AppointmentRepository
	vets         repository.VetRepository
	calendar     *CalendarClient
	validate     *validator.Validate
	logger       *zap.Logger
}

func NewAppointmentService(
	appointments repository.AppointmentRepository,
	vets repository.VetRepository,
	calendar *CalendarClient,
	validate *validator.Validate,
	logger *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		vets:         vets,
		calendar:     calendar,
		validate:     validate,
		logger:       logger,
	}
}

// Schedule books an appointment. The calendar mirror is best-effort; the
// database row is created and returned even when the mirror call fails.
func (s *AppointmentService) Schedule(ctx context.Context, req ScheduleAppointmentRequest) (*models.Appointment, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Missing required fields"}
	}

	date, err := parseAppointmentDate(req.Date)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Invalid date format"}
	}

	vet, err := s.vets.FindByID(ctx, req.VetID)
	if errors.Is(err, repository.ErrVetNotFound) {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Vet not found"}
	}
	if err != nil {
		s.logger.Error("failed to load vet", zap.Int64("vet_id", req.VetID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to schedule appointment"}
	}

	duration := req.Duration
	if duration <= 0 {
		duration = 30
	}

	appt := &models.Appointment{
		PetID:      req.PetID,
		PetName:    req.PetName,
		OwnerName:  req.OwnerName,
		OwnerEmail: req.OwnerEmail,
		OwnerPhone: req.OwnerPhone,
		VetID:      req.VetID,
		Date:       date,
		Duration:   duration,
		Reason:     req.Reason,
		Notes:      req.Notes,
		Status:     models.StatusScheduled,
	}

	if err := s.appointments.Create(ctx, appt); err != nil {
		s.logger.Error("failed to create appointment", zap.Int64("pet_id", req.PetID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to schedule appointment"}
	}

	s.mirrorCreate(ctx, appt, vet)

	s.logger.Info("appointment scheduled",
		zap.Int64("appointment_id", appt.ID),
		zap.Int64("pet_id", appt.PetID),
		zap.Int64("vet_id", appt.VetID),
		zap.Time("date", appt.Date))
	return appt, nil
}

// List returns appointments matching the filter, newest first.
func (s *AppointmentService) List(ctx context.Context, filter repository.AppointmentFilter) ([]models.Appointment, error) {
	appts, err := s.appointments.Find(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list appointments", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch appointments"}
	}
	return appts, nil
}

// Get returns one appointment by id.
func (s *AppointmentService) Get(ctx context.Context, id int64) (*models.Appointment, error) {
	appt, err := s.appointments.FindByID(ctx, id)
	if errors.Is(err, repository.ErrAppointmentNotFound) {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Appointment not found"}
	}
	if err != nil {
		s.logger.Error("failed to fetch appointment", zap.Int64("appointment_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch appointment"}
	}
	return appt, nil
}

// Update changes status and/or notes, then refreshes the calendar mirror.
func (s *AppointmentService) Update(ctx context.Context, id int64, req UpdateAppointmentRequest) (*models.Appointment, error) {
	appt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != "" {
		appt.Status = req.Status
	}
	if req.Notes != "" {
		appt.Notes = req.Notes
	}

	if err := s.appointments.Update(ctx, appt); err != nil {
		s.logger.Error("failed to update appointment", zap.Int64("appointment_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update appointment"}
	}

	if s.calendar != nil && appt.CalendarEventID != "" {
		start, end := EventTimes(appt.Date, appt.Duration)
		event := CalendarEvent{
			Summary:     fmt.Sprintf("Vet Appointment - %s [%s]", appt.PetName, appt.Status),
			Description: fmt.Sprintf("Reason: %s\nStatus: %s\nNotes: %s", appt.Reason, appt.Status, appt.Notes),
			Start:       start,
			End:         end,
		}
		if err := s.calendar.UpdateEvent(ctx, appt.CalendarEventID, event); err != nil {
			s.logger.Warn("failed to update calendar event",
				zap.Int64("appointment_id", appt.ID),
				zap.String("event_id", appt.CalendarEventID),
				zap.Error(err))
		}
	}

	return appt, nil
}

// Cancel marks an appointment cancelled and removes the calendar mirror.
func (s *AppointmentService) Cancel(ctx context.Context, id int64) (*models.Appointment, error) {
	appt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	appt.Status = models.StatusCancelled
	if err := s.appointments.Update(ctx, appt); err != nil {
		s.logger.Error("failed to cancel appointment", zap.Int64("appointment_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to cancel appointment"}
	}

	if s.calendar != nil && appt.CalendarEventID != "" {
		if err := s.calendar.DeleteEvent(ctx, appt.CalendarEventID); err != nil {
			s.logger.Warn("failed to delete calendar event",
				zap.Int64("appointment_id", appt.ID),
				zap.String("event_id", appt.CalendarEventID),
				zap.Error(err))
		}
	}

	s.logger.Info("appointment cancelled", zap.Int64("appointment_id", appt.ID))
	return appt, nil
}

// PetAppointments returns all appointments for a pet, newest first.
func (s *AppointmentService) PetAppointments(ctx context.Context, petID int64) (*PetAppointmentsResponse, error) {
	appts, err := s.appointments.FindByPetID(ctx, petID)
	if err != nil {
		s.logger.Error("failed to list pet appointments", zap.Int64("pet_id", petID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch appointments"}
	}
	return &PetAppointmentsResponse{PetID: petID, Appointments: appts, Total: len(appts)}, nil
}

func (s *AppointmentService) mirrorCreate(ctx context.Context, appt *models.Appointment, vet *models.Vet) {
	if s.calendar == nil {
		return
	}

	attendees := []string{vet.Email}
	if appt.OwnerEmail != "" {
		attendees = append([]string{appt.OwnerEmail}, attendees...)
	}
	start, end := EventTimes(appt.Date, appt.Duration)
	event := CalendarEvent{
		Summary:     fmt.Sprintf("Vet Appointment - %s", appt.PetName),
		Description: fmt.Sprintf("Reason: %s\nOwner: %s", appt.Reason, appt.OwnerName),
		Start:       start,
		End:         end,
		Attendees:   attendees,
	}

	eventID, err := s.calendar.CreateEvent(ctx, event)
	if err != nil {
		s.logger.Warn("failed to create calendar event",
			zap.Int64("appointment_id", appt.ID),
			zap.Error(err))
		return
	}

	appt.CalendarEventID = eventID
	if err := s.appointments.Update(ctx, appt); err != nil {
		s.logger.Warn("failed to store calendar event id",
			zap.Int64("appointment_id", appt.ID),
			zap.Error(err))
	}
}

func parseAppointmentDate(value string) (time.Time, error) {
	layouts := []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
