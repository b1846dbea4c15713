// Package logger provides slip lifecycle logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// SlipLogger provides dedicated logging for the jackpot slip lifecycle.
type SlipLogger struct {
	*logrus.Entry
}

// NewSlipLogger creates a new slip lifecycle logger.
func NewSlipLogger(baseLogger *logrus.Logger) *SlipLogger {
	return &SlipLogger{
		Entry: baseLogger.WithField("component", "slips"),
	}
}

// LogJackpotBuilt logs a jackpot slate being filled.
func (sl *SlipLogger) LogJackpotBuilt(jackpotID string, week int, source string, fixtureCount int, deadline time.Time) {
	sl.WithFields(logrus.Fields{
		"jackpot_id": jackpotID,
		"week":       week,
		"source":     source,
		"fixtures":   fixtureCount,
		"deadline":   deadline.UTC().Format(time.RFC3339),
	}).Info("Jackpot built")
}

// LogSlipGenerated logs a completed slip generation run.
func (sl *SlipLogger) LogSlipGenerated(jackpotID, strategy string, riskLevel, records, wildcards int, duration time.Duration) {
	sl.WithFields(logrus.Fields{
		"jackpot_id": jackpotID,
		"strategy":   strategy,
		"risk_level": riskLevel,
		"records":    records,
		"wildcards":  wildcards,
		"duration":   duration.String(),
	}).Info("Slip generated")
}

// LogSlipServedFromCache logs a cache hit for a previously generated slip.
func (sl *SlipLogger) LogSlipServedFromCache(jackpotID, strategy string) {
	sl.WithFields(logrus.Fields{
		"jackpot_id": jackpotID,
		"strategy":   strategy,
	}).Debug("Slip served from cache")
}

// LogJackpotClosed logs an open jackpot passing its deadline.
func (sl *SlipLogger) LogJackpotClosed(jackpotID string, deadline time.Time) {
	sl.WithFields(logrus.Fields{
		"jackpot_id": jackpotID,
		"deadline":   deadline.UTC().Format(time.RFC3339),
	}).Info("Jackpot closed at deadline")
}
