package datasource

import (
	"context"
	"fmt"
	"log"

	"github.com/yourusername/jackpot-builder/internal/config"
)

// Chain tries ranked fixture sources in order and returns the first
// successful result. The synthetic source is appended last so the chain
// always terminates with a usable fixture pool.
type Chain struct {
	sources []FixtureSource
	logger  *log.Logger
}

// NewChain creates a ranked chain over the given sources
func NewChain(sources []FixtureSource, logger *log.Logger) *Chain {
	return &Chain{
		sources: sources,
		logger:  logger,
	}
}

// NewChainFromConfig builds the ranked source chain from provider
// configuration. Providers keep their configured order; the synthetic
// source is always ranked last regardless of where it appears.
func NewChainFromConfig(cfg config.DataSourcesConfig, httpClient *RateLimitedHTTPClient, logger *log.Logger) (*Chain, error) {
	var sources []FixtureSource
	var hasSynthetic bool

	for _, provider := range cfg.Providers {
		if !provider.Enabled {
			if logger != nil {
				logger.Printf("Skipping disabled fixture source: %s", provider.Name)
			}
			continue
		}

		switch provider.Name {
		case "football_api":
			if httpClient == nil {
				return nil, fmt.Errorf("HTTP client is required for provider %s", provider.Name)
			}
			if provider.APIKey == "" {
				return nil, fmt.Errorf("football API key is required")
			}
			sources = append(sources, NewFootballAPIClient(httpClient, provider.BaseURL, provider.APIKey, provider.Enabled, logger))

		case "synthetic":
			hasSynthetic = true

		default:
			return nil, fmt.Errorf("unknown fixture source: %s", provider.Name)
		}
	}

	if !hasSynthetic {
		return nil, fmt.Errorf("synthetic fixture source must be enabled")
	}
	sources = append(sources, NewSyntheticSource(logger))

	return NewChain(sources, logger), nil
}

// FetchFixtures walks the ranked sources and returns the fixtures from the
// first source that succeeds, along with the name of that source.
func (c *Chain) FetchFixtures(ctx context.Context, week int) ([]FixtureData, string, error) {
	if len(c.sources) == 0 {
		return nil, "", ErrAllSourcesFailed
	}

	var lastErr error
	for _, source := range c.sources {
		if !source.IsEnabled() {
			continue
		}

		fixtures, err := source.FetchFixtures(ctx, week)
		if err != nil {
			lastErr = err
			if c.logger != nil {
				c.logger.Printf("Fixture source %s failed, trying next: %v", source.Name(), err)
			}
			continue
		}

		if len(fixtures) == 0 {
			lastErr = NewDataSourceError(source.Name(), ErrCodeInvalidData, "source returned no fixtures", nil)
			continue
		}

		return fixtures, source.Name(), nil
	}

	if lastErr != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrAllSourcesFailed, lastErr)
	}
	return nil, "", ErrAllSourcesFailed
}

// Sources returns the names of the ranked sources in order
func (c *Chain) Sources() []string {
	names := make([]string, len(c.sources))
	for i, source := range c.sources {
		names[i] = source.Name()
	}
	return names
}
