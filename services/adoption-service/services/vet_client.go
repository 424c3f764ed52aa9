package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/whiteheadbella/vet-management/services/common/remote"
	"go.uber.org/zap"
)

// HealthRecord is the subset of the veterinary service's record payload the
// adoption service reads.
type HealthRecord struct {
	PetID        int64         `json:"pet_id"`
	PetName      string        `json:"pet_name"`
	LastCheckup  *string       `json:"last_checkup"`
	Weight       float64       `json:"weight"`
	Notes        string        `json:"notes"`
	Vaccinations []vaccination `json:"vaccinations"`
	HasRecords   bool          `json:"has_records"`
}

type vaccination struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// ScheduledAppointment is the veterinary service's appointment payload.
type ScheduledAppointment struct {
	ID     int64  `json:"id"`
	PetID  int64  `json:"pet_id"`
	VetID  int64  `json:"vet_id"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
	Status string `json:"status"`
}

// VetClient talks to the veterinary service.
type VetClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewVetClient(baseURL string, logger *zap.Logger) *VetClient {
	return &VetClient{
		baseURL:    baseURL,
		httpClient: remote.NewHTTPClient(),
		logger:     logger,
	}
}

// GetHealth fetches a pet's health record. FetchNotFound means the vet
// service answered but has no record for the pet.
func (c *VetClient) GetHealth(ctx context.Context, petID int64) (*HealthRecord, remote.FetchStatus) {
	url := fmt.Sprintf("%s/api/health/%d", c.baseURL, petID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, remote.FetchUnavailable
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("vet health fetch failed", zap.Int64("pet_id", petID), zap.Error(err))
		return nil, remote.FetchUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, remote.FetchNotFound
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("vet health fetch returned error status",
			zap.Int64("pet_id", petID), zap.Int("status", resp.StatusCode))
		return nil, remote.FetchUnavailable
	}

	var record HealthRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		c.logger.Warn("vet health payload unreadable", zap.Int64("pet_id", petID), zap.Error(err))
		return nil, remote.FetchUnavailable
	}
	record.HasRecords = true
	return &record, remote.FetchOK
}

// ScheduleAppointment books a vet visit for a newly adopted pet.
func (c *VetClient) ScheduleAppointment(ctx context.Context, petID, vetID int64, date, reason string) (*ScheduledAppointment, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"pet_id": petID,
		"vet_id": vetID,
		"date":   date,
		"reason": reason,
	})
	if err != nil {
		return nil, err
	}

	url := c.baseURL + "/api/schedule-appointment/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("appointment scheduling failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("veterinary service returned %d", resp.StatusCode)
	}

	var appt ScheduledAppointment
	if err := json.NewDecoder(resp.Body).Decode(&appt); err != nil {
		return nil, err
	}
	return &appt, nil
}
