package recommend

// ScorerConfig configures the rating window and distance penalty
type ScorerConfig struct {
	WindowBelow  int // How far below the target a candidate may be
	WindowAbove  int // How far above the target a candidate may be
	BelowPenalty int // Multiplier applied to distances below the target
}

// DefaultScorerConfig returns the [t-50, t+150] window with a doubled penalty below target
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{WindowBelow: 50, WindowAbove: 150, BelowPenalty: 2}
}

// Scorer ranks candidate ratings against a target rating
type Scorer struct {
	config ScorerConfig
}

// NewScorer creates a new Scorer with the given configuration
func NewScorer(config ScorerConfig) *Scorer {
	if config.BelowPenalty == 0 {
		config.BelowPenalty = 2
	}
	return &Scorer{config: config}
}

// InWindow reports whether rating lies in [target-WindowBelow, target+WindowAbove]
func (s *Scorer) InWindow(rating, target int) bool {
	return rating >= target-s.config.WindowBelow && rating <= target+s.config.WindowAbove
}

// Distance is rating-target at or above the target and BelowPenalty*(rating-target)
// below it. Candidates are ranked ascending by this signed value
func (s *Scorer) Distance(rating, target int) int {
	d := rating - target
	if d < 0 {
		return s.config.BelowPenalty * d
	}
	return d
}

// Explain returns a human-readable description of where rating sits
func (s *Scorer) Explain(rating, target int) string {
	d := rating - target
	switch {
	case !s.InWindow(rating, target):
		return "outside window"
	case d == 0:
		return "at target"
	case d > 0 && d <= s.config.WindowAbove/3:
		return "slight stretch"
	case d > 0:
		return "stretch"
	default:
		return "warm-up"
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
