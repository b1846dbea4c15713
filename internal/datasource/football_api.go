package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// FootballAPIClient implements FixtureSource for the football fixtures API
type FootballAPIClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	enabled    bool
	logger     *log.Logger
}

// footballAPIFixture represents a fixture from the football API
type footballAPIFixture struct {
	ID       string  `json:"id"`
	HomeTeam string  `json:"homeTeam"`
	AwayTeam string  `json:"awayTeam"`
	League   string  `json:"competition"`
	Kickoff  string  `json:"kickoffTime"`
	HomeOdds *string `json:"homeOdds"`
	DrawOdds *string `json:"drawOdds"`
	AwayOdds *string `json:"awayOdds"`
}

// NewFootballAPIClient creates a new football API client
func NewFootballAPIClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, enabled bool, logger *log.Logger) *FootballAPIClient {
	if baseURL == "" {
		baseURL = "https://api.football-fixtures.com/v1"
	}
	return &FootballAPIClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		enabled:    enabled,
		logger:     logger,
	}
}

// FetchFixtures retrieves the fixture pool for the given ISO week
func (c *FootballAPIClient) FetchFixtures(ctx context.Context, week int) ([]FixtureData, error) {
	if !c.enabled {
		return nil, NewDataSourceError("football_api", ErrCodeNetworkError, sourceDisabledMsg, nil)
	}

	url := fmt.Sprintf("%s/fixtures?week=%d", c.baseURL, week)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewDataSourceError("football_api", ErrCodeNetworkError, "failed to create request", err)
	}

	// Add authentication header
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError("football_api", ErrCodeNetworkError, "failed to fetch fixtures", err)
	}
	defer resp.Body.Close()

	// Handle authentication errors
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, NewDataSourceError("football_api", ErrCodeAuthenticationFailed, "invalid API key", nil)
	}

	// Handle rate limiting
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewDataSourceError("football_api", ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewDataSourceError("football_api", ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var apiFixtures []footballAPIFixture
	if err := json.NewDecoder(resp.Body).Decode(&apiFixtures); err != nil {
		return nil, NewDataSourceError("football_api", ErrCodeInvalidData, "failed to parse response", err)
	}

	fixtures := make([]FixtureData, 0, len(apiFixtures))
	for _, af := range apiFixtures {
		fixture, err := c.convertFixture(&af)
		if err != nil {
			c.logger.Printf("Failed to convert fixture %s: %v", af.ID, err)
			continue
		}
		fixtures = append(fixtures, *fixture)
	}

	return fixtures, nil
}

// Name returns the fixture source name
func (c *FootballAPIClient) Name() string {
	return "football_api"
}

// IsEnabled returns whether this fixture source is enabled
func (c *FootballAPIClient) IsEnabled() bool {
	return c.enabled
}

// convertFixture converts the football API format to FixtureData
func (c *FootballAPIClient) convertFixture(af *footballAPIFixture) (*FixtureData, error) {
	if af.HomeTeam == "" || af.AwayTeam == "" {
		return nil, fmt.Errorf("fixture %s missing team names", af.ID)
	}

	kickoff, err := time.Parse(time.RFC3339, af.Kickoff)
	if err != nil {
		return nil, fmt.Errorf("fixture %s has invalid kickoff %q: %w", af.ID, af.Kickoff, err)
	}

	return &FixtureData{
		SourceID: af.ID,
		HomeTeam: af.HomeTeam,
		AwayTeam: af.AwayTeam,
		League:   af.League,
		Kickoff:  kickoff.UTC(),
		HomeOdds: parseDecimal(af.HomeOdds),
		DrawOdds: parseDecimal(af.DrawOdds),
		AwayOdds: parseDecimal(af.AwayOdds),
	}, nil
}

// parseDecimal parses a string to decimal.Decimal, returning nil if invalid
func parseDecimal(s *string) *decimal.Decimal {
	if s == nil || *s == "" {
		return nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil
	}
	return &d
}
