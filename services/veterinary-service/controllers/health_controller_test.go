package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/controllers"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/models"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/repository"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/services"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newHealthRouter(t *testing.T) (*gin.Engine, repository.RecordRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Vet{}, &models.VetRecord{}, &models.Appointment{}))
	t.Cleanup(func() {
		db.Exec("DELETE FROM appointments")
		db.Exec("DELETE FROM vet_records")
		db.Exec("DELETE FROM vets")
	})

	records := repository.NewGormRecordRepository(db)
	vets := repository.NewGormVetRepository(db)
	appointments := repository.NewGormAppointmentRepository(db)
	healthService := services.NewHealthService(records, vets, appointments, validator.New(), zap.NewNop())
	hc := controllers.NewHealthController(healthService)

	router := gin.New()
	api := router.Group("/api")
	api.GET("/health/:petID", hc.GetRecord)
	api.POST("/health/", hc.CreateRecord)
	api.POST("/update-record/", hc.UpsertRecord)
	api.POST("/health/:petID/vaccinations", hc.AddVaccination)
	return router, records
}

func TestGetRecord_MissingRecordShape(t *testing.T) {
	router, _ := newHealthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health/42", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body struct {
		PetID      int64  `json:"pet_id"`
		Message    string `json:"message"`
		HasRecords bool   `json:"has_records"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 42, body.PetID)
	assert.Equal(t, "No health records found", body.Message)
	assert.False(t, body.HasRecords)
}

func TestGetRecord_InvalidID(t *testing.T) {
	router, _ := newHealthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateThenGetRecord(t *testing.T) {
	router, _ := newHealthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/health/",
		strings.NewReader(`{"pet_id": 7, "pet_name": "Max", "weight": 20.5}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/health/7", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var record models.VetRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, "Max", record.PetName)
	assert.Equal(t, 20.5, record.Weight)
}

func TestCreateRecord_DuplicateReturns400(t *testing.T) {
	router, _ := newHealthRouter(t)

	payload := `{"pet_id": 7, "pet_name": "Max"}`
	for i, wantCode := range []int{http.StatusCreated, http.StatusBadRequest} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/health/", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, wantCode, w.Code, "request %d", i+1)
	}
}

func TestUpsertRecord_CreatesOnFirstWrite(t *testing.T) {
	router, records := newHealthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/update-record/",
		strings.NewReader(`{"pet_id": 3, "pet_name": "Luna", "notes": "spayed"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	record, err := records.FindByPetID(req.Context(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Luna", record.PetName)
	assert.NotNil(t, record.LastCheckup)
}

func TestAddVaccination_MissingRecordReturns404(t *testing.T) {
	router, _ := newHealthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/health/9/vaccinations",
		strings.NewReader(`{"name": "Rabies"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
