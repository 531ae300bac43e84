package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ProposalBot/model"
)

// ProposalService is the boundary to the booking service: reference-data
// snapshots plus proposal submission.
type ProposalService interface {
	Destinations(ctx context.Context) ([]model.Destination, error)
	Resorts(ctx context.Context) ([]model.Resort, error)
	CreateProposal(ctx context.Context, payload model.ProposalPayload) (string, error)
}

// ProposalClient talks to the booking service over HTTP.
type ProposalClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewProposalClient creates a client for the booking service API.
func NewProposalClient(baseURL string) *ProposalClient {
	return &ProposalClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Destinations fetches the destination snapshot.
func (c *ProposalClient) Destinations(ctx context.Context) ([]model.Destination, error) {
	var destinations []model.Destination
	if err := c.getJSON(ctx, "/api/destinations", &destinations); err != nil {
		return nil, err
	}
	return destinations, nil
}

// Resorts fetches the resort snapshot.
func (c *ProposalClient) Resorts(ctx context.Context) ([]model.Resort, error) {
	var resorts []model.Resort
	if err := c.getJSON(ctx, "/api/resorts", &resorts); err != nil {
		return nil, err
	}
	return resorts, nil
}

// CreateProposal submits the proposal and returns the id assigned by the
// booking service.
func (c *ProposalClient) CreateProposal(ctx context.Context, payload model.ProposalPayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error marshaling proposal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/proposals", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error submitting proposal: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("proposal service returned %d: %s", resp.StatusCode, raw)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("proposal service response missing id")
	}
	return created.ID, nil
}

func (c *ProposalClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("error fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error unmarshaling %s: %w", path, err)
	}
	return nil
}
