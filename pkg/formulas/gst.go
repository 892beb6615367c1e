package formulas

import (
	"strings"

	"github.com/iwvelando/calcsuite/pkg/calcerr"
	"github.com/iwvelando/calcsuite/pkg/constants"
)

// GSTMode says whether an amount excludes or already includes tax.
type GSTMode string

// GST modes
const (
	GSTAdd    GSTMode = "add"
	GSTRemove GSTMode = "remove"
)

// ParseGSTMode accepts "add"/"exclusive" and "remove"/"inclusive".
func ParseGSTMode(s string) (GSTMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "add", "exclusive":
		return GSTAdd, nil
	case "remove", "inclusive":
		return GSTRemove, nil
	default:
		return "", calcerr.Invalid("mode", "must be add or remove, got %q", s)
	}
}

// GSTBreakdown splits an amount into its net, tax and gross parts.
type GSTBreakdown struct {
	Net   float64 `json:"net"`
	Tax   float64 `json:"tax"`
	Gross float64 `json:"gross"`
}

// GST adds tax at ratePercent to a net amount, or extracts it from a gross
// amount in GSTRemove mode.
func GST(amount, ratePercent float64, mode GSTMode) (GSTBreakdown, error) {
	if err := requirePositive("amount", amount); err != nil {
		return GSTBreakdown{}, err
	}
	if err := requireNonNegative("ratePercent", ratePercent); err != nil {
		return GSTBreakdown{}, err
	}

	rate := ratePercent / constants.PercentageMultiplier
	switch mode {
	case GSTAdd:
		tax, err := PercentageOf(amount, ratePercent)
		if err != nil {
			return GSTBreakdown{}, err
		}
		return GSTBreakdown{Net: amount, Tax: tax, Gross: amount + tax}, nil
	case GSTRemove:
		net := amount / (1 + rate)
		return GSTBreakdown{Net: net, Tax: amount - net, Gross: amount}, nil
	default:
		return GSTBreakdown{}, calcerr.Invalid("mode", "must be add or remove, got %q", string(mode))
	}
}
