package datasource

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// syntheticPoolSize is how many fixtures the synthetic source produces per
// week. Larger than a jackpot slip so selection still has room to choose.
const syntheticPoolSize = 20

// SyntheticSource generates a deterministic fixture pool from the week
// number. It never fails and terminates the ranked source chain, so a
// jackpot can always be built even when every upstream provider is down.
type SyntheticSource struct {
	logger *log.Logger
}

var syntheticTeams = []string{
	"Arsenal", "Aston Villa", "Bournemouth", "Brentford", "Brighton",
	"Chelsea", "Crystal Palace", "Everton", "Fulham", "Leeds United",
	"Liverpool", "Manchester City", "Manchester United", "Newcastle United",
	"Nottingham Forest", "Sunderland", "Tottenham Hotspur", "West Ham United",
	"Wolves", "Burnley", "Leicester City", "Southampton", "Norwich City",
	"Sheffield United", "Coventry City", "Middlesbrough", "Watford",
	"Stoke City", "Hull City", "Derby County", "Preston North End",
	"Bristol City", "Cardiff City", "Swansea City", "Millwall",
	"Queens Park Rangers", "Blackburn Rovers", "West Bromwich Albion",
	"Luton Town", "Ipswich Town",
}

var syntheticLeagues = []string{
	"Premier League", "Championship", "League One",
}

// NewSyntheticSource creates the deterministic terminal fixture source
func NewSyntheticSource(logger *log.Logger) *SyntheticSource {
	return &SyntheticSource{logger: logger}
}

// FetchFixtures produces the synthetic fixture pool for the given week.
// The same week always yields the same fixtures.
func (s *SyntheticSource) FetchFixtures(ctx context.Context, week int) ([]FixtureData, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewDataSourceError("synthetic", ErrCodeUnknown, "context cancelled", err)
	}

	rng := rand.New(rand.NewSource(int64(week)))
	teams := rng.Perm(len(syntheticTeams))

	// Anchor kickoffs to the Saturday of the requested ISO week
	saturday := weekSaturday(week)

	fixtures := make([]FixtureData, 0, syntheticPoolSize)
	for i := 0; i < syntheticPoolSize; i++ {
		home := syntheticTeams[teams[(2*i)%len(teams)]]
		away := syntheticTeams[teams[(2*i+1)%len(teams)]]

		// Stagger kickoffs across the weekend
		kickoff := saturday.Add(time.Duration(i%3) * 150 * time.Minute)
		if i >= syntheticPoolSize/2 {
			kickoff = kickoff.Add(24 * time.Hour)
		}

		homeOdds := syntheticOdds(rng, 150, 400)
		drawOdds := syntheticOdds(rng, 280, 450)
		awayOdds := syntheticOdds(rng, 180, 550)

		fixtures = append(fixtures, FixtureData{
			SourceID: fmt.Sprintf("synthetic-%d-%d", week, i+1),
			HomeTeam: home,
			AwayTeam: away,
			League:   syntheticLeagues[i%len(syntheticLeagues)],
			Kickoff:  kickoff,
			HomeOdds: &homeOdds,
			DrawOdds: &drawOdds,
			AwayOdds: &awayOdds,
		})
	}

	if s.logger != nil {
		s.logger.Printf("Generated %d synthetic fixtures for week %d", len(fixtures), week)
	}

	return fixtures, nil
}

// Name returns the fixture source name
func (s *SyntheticSource) Name() string {
	return "synthetic"
}

// IsEnabled reports true; the synthetic source cannot be disabled
func (s *SyntheticSource) IsEnabled() bool {
	return true
}

// syntheticOdds draws decimal odds in [low/100, high/100]
func syntheticOdds(rng *rand.Rand, low, high int) decimal.Decimal {
	cents := low + rng.Intn(high-low+1)
	return decimal.New(int64(cents), -2)
}

// weekSaturday returns 15:00 UTC on the Saturday of the given ISO week of
// the current year. Weeks outside 1..53 are clamped.
func weekSaturday(week int) time.Time {
	if week < 1 {
		week = 1
	}
	if week > 53 {
		week = 53
	}

	year := time.Now().UTC().Year()
	jan4 := time.Date(year, time.January, 4, 15, 0, 0, 0, time.UTC)

	// ISO week 1 contains January 4th; back up to its Monday
	offset := (int(jan4.Weekday()) + 6) % 7
	week1Monday := jan4.AddDate(0, 0, -offset)

	return week1Monday.AddDate(0, 0, (week-1)*7+5)
}
