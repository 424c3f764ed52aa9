package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/whiteheadbella/vet-management/services/common/remote"
	"go.uber.org/zap"
)

// CalendarClient mirrors appointments into an external calendar over its
// REST API. Every call is best-effort: the appointment row is authoritative
// and a mirror failure is logged and swallowed by the caller.
type CalendarClient struct {
	baseURL    string
	calendarID string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewCalendarClient returns nil when no base URL is configured; callers
// treat a nil client as "mirroring disabled".
func NewCalendarClient(baseURL, calendarID, token string, logger *zap.Logger) *CalendarClient {
	if baseURL == "" {
		return nil
	}
	return &CalendarClient{
		baseURL:    baseURL,
		calendarID: calendarID,
		token:      token,
		httpClient: remote.NewHTTPClient(),
		logger:     logger,
	}
}

// CalendarEvent is the mirror payload.
type CalendarEvent struct {
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Attendees   []string `json:"attendees,omitempty"`
}

// CreateEvent creates a mirror event and returns its id.
func (c *CalendarClient) CreateEvent(ctx context.Context, event CalendarEvent) (string, error) {
	url := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, c.calendarID)

	body, err := json.Marshal(event)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calendar create request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("calendar service returned %d", resp.StatusCode)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// UpdateEvent updates a mirror event in place.
func (c *CalendarClient) UpdateEvent(ctx context.Context, eventID string, event CalendarEvent) error {
	url := fmt.Sprintf("%s/calendars/%s/events/%s", c.baseURL, c.calendarID, eventID)

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calendar update request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("calendar service returned %d", resp.StatusCode)
	}
	return nil
}

// DeleteEvent removes a mirror event.
func (c *CalendarClient) DeleteEvent(ctx context.Context, eventID string) error {
	url := fmt.Sprintf("%s/calendars/%s/events/%s", c.baseURL, c.calendarID, eventID)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calendar delete request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("calendar service returned %d", resp.StatusCode)
	}
	return nil
}

func (c *CalendarClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// EventTimes renders start and end for an appointment window.
func EventTimes(start time.Time, durationMinutes int) (string, string) {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	return start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339)
}
