package movegen

// RuleConfig parametrizes the generator over draughts variants. The engine
// itself never hardcodes a rule; everything reads from this struct.
type RuleConfig struct {
	// BoardSize is the board dimension. Only 10 has first-class test
	// coverage but nothing below depends on the exact value.
	BoardSize int
	// MandatoryCapture forces capture moves whenever at least one exists.
	MandatoryCapture bool
	// MajorityCapture restricts legal captures to those taking the maximum
	// number of pieces, pooled globally across all the side's pieces.
	MajorityCapture bool
	// FlyingKings lets kings slide any distance along open diagonals, both
	// when moving and when capturing.
	FlyingKings bool
	// BackwardCapture lets pawns capture in all four diagonal directions,
	// not just forward.
	BackwardCapture bool
	// PromotionOnLandingOnly promotes a pawn only when its move finishes on
	// the back row; passing over it mid-capture does not promote.
	PromotionOnLandingOnly bool
}

// FMJDRules is the international 10x10 rule set.
func FMJDRules() RuleConfig {
	return RuleConfig{
		BoardSize:              10,
		MandatoryCapture:       true,
		MajorityCapture:        true,
		FlyingKings:            true,
		BackwardCapture:        true,
		PromotionOnLandingOnly: true,
	}
}
