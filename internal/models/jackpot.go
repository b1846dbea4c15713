package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JackpotSize is the number of fixtures in a weekly jackpot. The ticket
// format is fixed by the operator; slips with any other count are rejected.
const JackpotSize = 17

// JackpotStatus represents the lifecycle state of a jackpot
type JackpotStatus string

const (
	JackpotStatusOpen    JackpotStatus = "open"
	JackpotStatusClosed  JackpotStatus = "closed"
	JackpotStatusSettled JackpotStatus = "settled"
)

// Jackpot represents a weekly bundle of fixtures bet on collectively
type Jackpot struct {
	ID        uuid.UUID       `db:"id" json:"id" validate:"required,uuid4"`
	Name      string          `db:"name" json:"name" validate:"required,min=1,max=255"`
	Week      int             `db:"week" json:"week" validate:"required,gt=0"`
	Stake     decimal.Decimal `db:"stake" json:"stake"`
	Status    JackpotStatus   `db:"status" json:"status" validate:"required,oneof=open closed settled"`
	Deadline  time.Time       `db:"deadline" json:"deadline" validate:"required"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// IsOpen checks if the jackpot still accepts predictions
func (j *Jackpot) IsOpen() bool {
	return j.Status == JackpotStatusOpen && time.Now().Before(j.Deadline)
}

// TimeToDeadline returns the duration until the betting deadline
func (j *Jackpot) TimeToDeadline() time.Duration {
	return time.Until(j.Deadline)
}

// Validate performs basic validation on the jackpot
func (j *Jackpot) Validate() error {
	if j.Name == "" {
		return ErrJackpotNameRequired
	}
	return nil
}
