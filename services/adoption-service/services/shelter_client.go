package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/whiteheadbella/vet-management/services/common/remote"
	"go.uber.org/zap"
)

// ShelterPet is the subset of the shelter service's pet payload the
// adoption service reads.
type ShelterPet struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Species        string  `json:"species"`
	Breed          string  `json:"breed"`
	Age            int     `json:"age"`
	Gender         string  `json:"gender"`
	Status         string  `json:"status"`
	Description    string  `json:"description"`
	Vaccinated     bool    `json:"vaccinated"`
	SpayedNeutered bool    `json:"spayed_neutered"`
	Microchipped   bool    `json:"microchipped"`
	GoodWithKids   bool    `json:"good_with_kids"`
	GoodWithPets   bool    `json:"good_with_pets"`
	AdoptionFee    float64 `json:"adoption_fee"`
}

// ShelterPetPage is the shelter's paginated listing payload.
type ShelterPetPage struct {
	Pets        []ShelterPet `json:"pets"`
	Total       int64        `json:"total"`
	Pages       int          `json:"pages"`
	CurrentPage int          `json:"current_page"`
	PerPage     int          `json:"per_page"`
}

// ShelterStats is the shelter's statistics payload.
type ShelterStats struct {
	TotalPets int64 `json:"total_pets"`
	Available int64 `json:"available"`
	Pending   int64 `json:"pending"`
	Adopted   int64 `json:"adopted"`
	Dogs      int64 `json:"dogs"`
	Cats      int64 `json:"cats"`
}

// PetListParams mirror the shelter listing filters.
type PetListParams struct {
	Species string
	Breed   string
	Gender  string
	Status  string
	Search  string
	Page    int
}

// ShelterClient talks to the shelter service. Reads report a FetchStatus so
// callers can degrade instead of failing; the status write returns an error
// because the outbox dispatcher needs to know whether to retry.
type ShelterClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewShelterClient(baseURL string, logger *zap.Logger) *ShelterClient {
	return &ShelterClient{
		baseURL:    baseURL,
		httpClient: remote.NewHTTPClient(),
		logger:     logger,
	}
}

// GetPet fetches one pet.
func (c *ShelterClient) GetPet(ctx context.Context, petID int64) (*ShelterPet, remote.FetchStatus) {
	url := fmt.Sprintf("%s/api/pets/%d", c.baseURL, petID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, remote.FetchUnavailable
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("shelter pet fetch failed", zap.Int64("pet_id", petID), zap.Error(err))
		return nil, remote.FetchUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, remote.FetchNotFound
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("shelter pet fetch returned error status",
			zap.Int64("pet_id", petID), zap.Int("status", resp.StatusCode))
		return nil, remote.FetchUnavailable
	}

	var pet ShelterPet
	if err := json.NewDecoder(resp.Body).Decode(&pet); err != nil {
		c.logger.Warn("shelter pet payload unreadable", zap.Int64("pet_id", petID), zap.Error(err))
		return nil, remote.FetchUnavailable
	}
	return &pet, remote.FetchOK
}

// ListPets fetches a page of pets. On failure it returns an empty page and
// FetchUnavailable; browsing degrades rather than erroring.
func (c *ShelterClient) ListPets(ctx context.Context, params PetListParams) (*ShelterPetPage, remote.FetchStatus) {
	empty := &ShelterPetPage{Pets: []ShelterPet{}}

	query := url.Values{}
	if params.Species != "" {
		query.Set("species", params.Species)
	}
	if params.Breed != "" {
		query.Set("breed", params.Breed)
	}
	if params.Gender != "" {
		query.Set("gender", params.Gender)
	}
	if params.Status != "" {
		query.Set("status", params.Status)
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}

	url := fmt.Sprintf("%s/api/pets/?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return empty, remote.FetchUnavailable
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("shelter listing fetch failed", zap.Error(err))
		return empty, remote.FetchUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("shelter listing returned error status", zap.Int("status", resp.StatusCode))
		return empty, remote.FetchUnavailable
	}

	var page ShelterPetPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		c.logger.Warn("shelter listing payload unreadable", zap.Error(err))
		return empty, remote.FetchUnavailable
	}
	if page.Pets == nil {
		page.Pets = []ShelterPet{}
	}
	return &page, remote.FetchOK
}

// GetStats fetches shelter-wide statistics.
func (c *ShelterClient) GetStats(ctx context.Context) (*ShelterStats, remote.FetchStatus) {
	url := c.baseURL + "/api/stats"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, remote.FetchUnavailable
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("shelter stats fetch failed", zap.Error(err))
		return nil, remote.FetchUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, remote.FetchUnavailable
	}

	var stats ShelterStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, remote.FetchUnavailable
	}
	return &stats, remote.FetchOK
}

// UpdatePetStatus pushes a status change to the shelter. Any non-200 reply
// is an error so the caller can keep the sync task pending.
func (c *ShelterClient) UpdatePetStatus(ctx context.Context, petID int64, status string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"pet_id": petID,
		"status": status,
		"system": "Adoption System",
	})
	if err != nil {
		return err
	}

	url := c.baseURL + "/api/update-status/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("shelter status update failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("shelter returned %d", resp.StatusCode)
	}
	return nil
}
