package datasource

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// FixtureSource defines the interface for fetching weekly fixtures from a
// provider. Sources are ranked in a Chain; the synthetic source terminates
// the chain and never fails.
type FixtureSource interface {
	// FetchFixtures retrieves the fixture pool for the given ISO week
	FetchFixtures(ctx context.Context, week int) ([]FixtureData, error)

	// Name returns the name of the fixture source
	Name() string

	// IsEnabled returns whether this source is currently enabled
	IsEnabled() bool
}

// FixtureData represents a normalized fixture from any source
type FixtureData struct {
	SourceID string    `json:"source_id"` // Provider's unique fixture ID
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`
	League   string    `json:"league"`
	Kickoff  time.Time `json:"kickoff"` // Start time UTC

	// Market odds when the provider publishes them; nil otherwise
	HomeOdds *decimal.Decimal `json:"home_odds,omitempty"`
	DrawOdds *decimal.Decimal `json:"draw_odds,omitempty"`
	AwayOdds *decimal.Decimal `json:"away_odds,omitempty"`
}

// DataSourceError represents errors from fixture source operations
type DataSourceError struct {
	Source  string // Fixture source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Unwrap exposes the underlying error for errors.Is/As
func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeUnknown              = "unknown"
)

// ErrAllSourcesFailed signals that every ranked source failed. With the
// synthetic source enabled this cannot happen in practice.
var ErrAllSourcesFailed = errors.New("all fixture sources failed")

const sourceDisabledMsg = "source is disabled"

// NewDataSourceError creates a new fixture source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
