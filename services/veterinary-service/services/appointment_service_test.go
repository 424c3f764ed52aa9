package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/models"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/services"
	"go.uber.org/zap"
)

func newAppointmentService(
	appts *mockAppointmentRepository,
	vets *mockVetRepository,
	calendar *services.CalendarClient,
) *services.AppointmentService {
	return services.NewAppointmentService(appts, vets, calendar, validator.New(), zap.NewNop())
}

func seedVet(t *testing.T, vets *mockVetRepository) *models.Vet {
	t.Helper()
	vet := &models.Vet{Name: "Sarah Chen", Email: "schen@clinic.example", Specialization: "Surgery"}
	require.NoError(t, vets.Create(context.Background(), vet))
	return vet
}

func TestSchedule_MissingFields(t *testing.T) {
	svc := newAppointmentService(newMockAppointmentRepository(), newMockVetRepository(), nil)

	_, err := svc.Schedule(context.Background(), services.ScheduleAppointmentRequest{PetID: 1})
	var serr *services.ServiceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 400, serr.StatusCode)
	assert.Equal(t, "Missing required fields", serr.Message)
}

func TestSchedule_InvalidDate(t *testing.T) {
	vets := newMockVetRepository()
	seedVet(t, vets)
	svc := newAppointmentService(newMockAppointmentRepository(), vets, nil)

	_, err := svc.Schedule(context.Background(), services.ScheduleAppointmentRequest{
		PetID: 1, VetID: 1, Date: "next tuesday", Reason: "checkup",
	})
	var serr *services.ServiceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 400, serr.StatusCode)
	assert.Equal(t, "Invalid date format", serr.Message)
}

func TestSchedule_UnknownVet(t *testing.T) {
	svc := newAppointmentService(newMockAppointmentRepository(), newMockVetRepository(), nil)

	_, err := svc.Schedule(context.Background(), services.ScheduleAppointmentRequest{
		PetID: 1, VetID: 99, Date: "2026-09-01T10:00", Reason: "checkup",
	})
	var serr *services.ServiceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 404, serr.StatusCode)
	assert.Equal(t, "Vet not found", serr.Message)
}

func TestSchedule_DefaultsAndPersists(t *testing.T) {
	appts := newMockAppointmentRepository()
	vets := newMockVetRepository()
	seedVet(t, vets)
	svc := newAppointmentService(appts, vets, nil)

	appt, err := svc.Schedule(context.Background(), services.ScheduleAppointmentRequest{
		PetID: 1, PetName: "Max", VetID: 1, Date: "2026-09-01T10:00", Reason: "annual checkup",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, appt.Status)
	assert.Equal(t, 30, appt.Duration)
	assert.Empty(t, appt.CalendarEventID)

	stored, err := appts.FindByID(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, "annual checkup", stored.Reason)
}

func TestSchedule_MirrorsToCalendar(t *testing.T) {
	var gotPath string
	var gotEvent services.CalendarEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotEvent))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "evt-123"})
	}))
	defer srv.Close()

	appts := newMockAppointmentRepository()
	vets := newMockVetRepository()
	seedVet(t, vets)
	calendar := services.NewCalendarClient(srv.URL, "clinic", "", zap.NewNop())
	svc := newAppointmentService(appts, vets, calendar)

	appt, err := svc.Schedule(context.Background(), services.ScheduleAppointmentRequest{
		PetID: 1, PetName: "Max", OwnerEmail: "owner@example.com",
		VetID: 1, Date: "2026-09-01T10:00", Duration: 45, Reason: "dental cleaning",
	})
	require.NoError(t, err)
	assert.Equal(t, "evt-123", appt.CalendarEventID)
	assert.Equal(t, "/calendars/clinic/events", gotPath)
	assert.Equal(t, "Vet Appointment - Max", gotEvent.Summary)
	assert.Equal(t, []string{"owner@example.com", "schen@clinic.example"}, gotEvent.Attendees)

	stored, err := appts.FindByID(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, "evt-123", stored.CalendarEventID)
}

func TestSchedule_CalendarFailureIsSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	appts := newMockAppointmentRepository()
	vets := newMockVetRepository()
	seedVet(t, vets)
	calendar := services.NewCalendarClient(srv.URL, "clinic", "", zap.NewNop())
	svc := newAppointmentService(appts, vets, calendar)

	appt, err := svc.Schedule(context.Background(), services.ScheduleAppointmentRequest{
		PetID: 1, VetID: 1, Date: "2026-09-01T10:00", Reason: "checkup",
	})
	require.NoError(t, err)
	assert.Empty(t, appt.CalendarEventID)
}

func TestCancel_DeletesMirrorEvent(t *testing.T) {
	var deletedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			json.NewEncoder(w).Encode(map[string]string{"id": "evt-9"})
		case http.MethodDelete:
			deletedPath = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	appts := newMockAppointmentRepository()
	vets := newMockVetRepository()
	seedVet(t, vets)
	calendar := services.NewCalendarClient(srv.URL, "clinic", "", zap.NewNop())
	svc := newAppointmentService(appts, vets, calendar)

	appt, err := svc.Schedule(context.Background(), services.ScheduleAppointmentRequest{
		PetID: 1, VetID: 1, Date: "2026-09-01T10:00", Reason: "checkup",
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, "/calendars/clinic/events/evt-9", deletedPath)
}

func TestUpdate_ChangesStatusAndNotes(t *testing.T) {
	appts := newMockAppointmentRepository()
	vets := newMockVetRepository()
	seedVet(t, vets)
	svc := newAppointmentService(appts, vets, nil)

	appt, err := svc.Schedule(context.Background(), services.ScheduleAppointmentRequest{
		PetID: 1, VetID: 1, Date: "2026-09-01T10:00", Reason: "checkup",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), appt.ID, services.UpdateAppointmentRequest{
		Status: models.StatusCompleted, Notes: "all clear",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, "all clear", updated.Notes)
}

func TestPetAppointments_CountsPerPet(t *testing.T) {
	appts := newMockAppointmentRepository()
	vets := newMockVetRepository()
	seedVet(t, vets)
	svc := newAppointmentService(appts, vets, nil)
	ctx := context.Background()

	for _, date := range []string{"2026-09-01T10:00", "2026-09-15T14:00"} {
		_, err := svc.Schedule(ctx, services.ScheduleAppointmentRequest{
			PetID: 1, VetID: 1, Date: date, Reason: "checkup",
		})
		require.NoError(t, err)
	}
	_, err := svc.Schedule(ctx, services.ScheduleAppointmentRequest{
		PetID: 2, VetID: 1, Date: "2026-09-02T09:00", Reason: "vaccination",
	})
	require.NoError(t, err)

	resp, err := svc.PetAppointments(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.PetID)
	assert.Equal(t, 2, resp.Total)
}
