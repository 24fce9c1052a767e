package trading

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Band is the risk class a model tier falls into.
type Band int

const (
	BandStable Band = iota
	BandNeutral
	BandAggressive
)

func (b Band) String() string {
	switch b {
	case BandStable:
		return "stable"
	case BandNeutral:
		return "neutral"
	default:
		return "aggressive"
	}
}

// BandSpec describes the randomized outcome of one band.
type BandSpec struct {
	// Magnitude is drawn uniformly from [MinPercent, MaxPercent].
	MinPercent decimal.Decimal
	MaxPercent decimal.Decimal
	// Signs is drawn from uniformly; repeated entries carry the weight.
	Signs []int
	// Delay in whole seconds, inclusive on both ends.
	MinDelaySeconds int
	MaxDelaySeconds int
}

var bands = map[Band]BandSpec{
	BandStable: {
		MinPercent:      decimal.Zero,
		MaxPercent:      decimal.NewFromInt(2),
		Signs:           []int{-1, 1, 1},
		MinDelaySeconds: 13,
		MaxDelaySeconds: 20,
	},
	BandNeutral: {
		MinPercent:      decimal.RequireFromString("1.5"),
		MaxPercent:      decimal.NewFromInt(5),
		Signs:           []int{-1, -1, -1, -1, 1, 1, 1, 1, 1},
		MinDelaySeconds: 7,
		MaxDelaySeconds: 13,
	},
	BandAggressive: {
		MinPercent:      decimal.RequireFromString("4.5"),
		MaxPercent:      decimal.NewFromInt(10),
		Signs:           []int{-1, -1, 1},
		MinDelaySeconds: 3,
		MaxDelaySeconds: 7,
	},
}

var tierAliases = map[string]Band{
	"Stable":  BandStable,
	"v2core":  BandStable,
	"Neutral": BandNeutral,
	"v2opt":   BandNeutral,
}

// Classify maps a model tier onto its band. Aliases are matched exactly;
// anything unrecognized is aggressive.
func Classify(tier string) Band {
	if band, ok := tierAliases[normalizeTier(tier)]; ok {
		return band
	}
	return BandAggressive
}

// Spec returns the outcome table entry for a band
func (b Band) Spec() BandSpec {
	if spec, ok := bands[b]; ok {
		return spec
	}
	return bands[BandAggressive]
}

// normalizeTier drops the route-parameter colon some clients send
// ("/gettrade/:Stable/1").
func normalizeTier(tier string) string {
	return strings.TrimPrefix(strings.TrimSpace(tier), ":")
}
