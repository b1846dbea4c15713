package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Fixture represents a single scheduled match inside a jackpot
type Fixture struct {
	ID        uuid.UUID  `db:"id" json:"id" validate:"required,uuid4"`
	JackpotID uuid.UUID  `db:"jackpot_id" json:"jackpot_id" validate:"required,uuid4"`
	Position  int        `db:"position" json:"position" validate:"required,min=1,max=17"`
	HomeTeam  string     `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam  string     `db:"away_team" json:"away_team" validate:"required"`
	League    string     `db:"league" json:"league"`
	Kickoff   time.Time  `db:"kickoff" json:"kickoff" validate:"required"`
	Source    string     `db:"source" json:"source"`

	// Market odds are decorative context from the fixture provider. They are
	// never inputs to prediction generation.
	HomeOdds *decimal.Decimal `db:"home_odds" json:"home_odds,omitempty"`
	DrawOdds *decimal.Decimal `db:"draw_odds" json:"draw_odds,omitempty"`
	AwayOdds *decimal.Decimal `db:"away_odds" json:"away_odds,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// HasKickedOff checks if the match has already started
func (f *Fixture) HasKickedOff() bool {
	return time.Now().After(f.Kickoff)
}

// Label returns the conventional "Home v Away" display form
func (f *Fixture) Label() string {
	return f.HomeTeam + " v " + f.AwayTeam
}
