package models

// Strategy is a named target ratio of 1X2 outcome counts across a slip
type Strategy string

const (
	StrategyBalanced     Strategy = "balanced"
	StrategyConservative Strategy = "conservative"
	StrategyAggressive   Strategy = "aggressive"
)

// Strategies lists the known strategy names in display order
func Strategies() []Strategy {
	return []Strategy{StrategyBalanced, StrategyConservative, StrategyAggressive}
}

// IsKnown reports whether the strategy is one of the named ratios. Unknown
// strategies are not an error anywhere in the system; the generator resolves
// them to balanced.
func (s Strategy) IsKnown() bool {
	switch s {
	case StrategyBalanced, StrategyConservative, StrategyAggressive:
		return true
	}
	return false
}
