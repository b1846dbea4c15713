package models

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is the predicted result label for a fixture on the 1X2 market
type Outcome string

const (
	OutcomeHome Outcome = "1"
	OutcomeDraw Outcome = "X"
	OutcomeAway Outcome = "2"
)

// IsValid reports whether the outcome is one of the three 1X2 labels
func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeHome, OutcomeDraw, OutcomeAway:
		return true
	}
	return false
}

// Confidence bounds for any prediction, regardless of strategy or risk
const (
	MinConfidence = 50
	MaxConfidence = 95
)

// PredictionRecord represents a single generated pick on a jackpot slip.
// Records are immutable once produced; persistence is the repository's
// concern.
type PredictionRecord struct {
	ID         uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	JackpotID  uuid.UUID `db:"jackpot_id" json:"jackpot_id" validate:"required,uuid4"`
	FixtureID  uuid.UUID `db:"fixture_id" json:"fixture_id" validate:"required,uuid4"`
	Outcome    Outcome   `db:"outcome" json:"outcome" validate:"required,oneof=1 X 2"`
	Confidence int       `db:"confidence" json:"confidence" validate:"required,gte=50,lte=95"`
	Reasoning  string    `db:"reasoning" json:"reasoning" validate:"required"`
	Strategy   Strategy  `db:"strategy" json:"strategy"`
	Wildcard   bool      `db:"wildcard" json:"wildcard"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// InBounds checks the confidence invariant
func (p *PredictionRecord) InBounds() bool {
	return p.Confidence >= MinConfidence && p.Confidence <= MaxConfidence
}
