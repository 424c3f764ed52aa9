package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/whiteheadbella/vet-management/services/common/remote"
	"go.uber.org/zap"
)

// BreedClient wraps the third-party breed lookup APIs. Both sources are
// treated as opaque read-only data; any failure degrades to an empty list.
type BreedClient struct {
	dogAPIBaseURL string
	catAPIBaseURL string
	catAPIKey     string
	httpClient    *http.Client
	logger        *zap.Logger
}

func NewBreedClient(dogAPIBaseURL, catAPIBaseURL, catAPIKey string, logger *zap.Logger) *BreedClient {
	return &BreedClient{
		dogAPIBaseURL: dogAPIBaseURL,
		catAPIBaseURL: catAPIBaseURL,
		catAPIKey:     catAPIKey,
		httpClient:    remote.NewHTTPClient(),
		logger:        logger,
	}
}

// DogBreeds fetches the breed list from the dog API. Degrades to empty.
func (c *BreedClient) DogBreeds(ctx context.Context) []string {
	url := fmt.Sprintf("%s/breeds/list/all", c.dogAPIBaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return []string{}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("dog breed lookup failed", zap.Error(err))
		return []string{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("dog breed lookup returned non-200", zap.Int("status", resp.StatusCode))
		return []string{}
	}

	var payload struct {
		Message map[string][]string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("dog breed lookup returned malformed data", zap.Error(err))
		return []string{}
	}

	breeds := make([]string, 0, len(payload.Message))
	for breed := range payload.Message {
		breeds = append(breeds, breed)
	}
	sort.Strings(breeds)
	return breeds
}

// CatBreeds fetches the breed list from the cat API. Degrades to empty.
func (c *BreedClient) CatBreeds(ctx context.Context) []string {
	url := fmt.Sprintf("%s/breeds", c.catAPIBaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return []string{}
	}
	if c.catAPIKey != "" {
		req.Header.Set("x-api-key", c.catAPIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("cat breed lookup failed", zap.Error(err))
		return []string{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("cat breed lookup returned non-200", zap.Int("status", resp.StatusCode))
		return []string{}
	}

	var payload []struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("cat breed lookup returned malformed data", zap.Error(err))
		return []string{}
	}

	breeds := make([]string, 0, len(payload))
	for _, b := range payload {
		breeds = append(breeds, b.Name)
	}
	sort.Strings(breeds)
	return breeds
}
