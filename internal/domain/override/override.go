// Package override models the editable buy, sell and repair figures shown
// next to an appraisal result, and the profit derived from them.
package override

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/okian/appraisal/internal/domain/appraisal"
)

// Tier classifies a profit figure for display.
type Tier string

// Profit tiers.
const (
	TierGood     Tier = "good"
	TierModerate Tier = "moderate"
	TierNegative Tier = "negative"
)

const percent = 100

// Overrides are the user-editable figures. Any value is accepted,
// including negative or nonsensical ones.
type Overrides struct {
	BuyPrice   int64 `json:"buy_price"`
	SellPrice  int64 `json:"sell_price"`
	RepairCost int64 `json:"repair_cost"`
}

// FromResult seeds overrides with the recommended figures.
func FromResult(r appraisal.Result) Overrides {
	return Overrides{
		BuyPrice:   r.RecommendedBuyPrice,
		SellPrice:  r.RecommendedSellPrice,
		RepairCost: r.RepairCost,
	}
}

// FromText parses all three figures from free text.
func FromText(buy, sell, repair string) Overrides {
	return Overrides{
		BuyPrice:   ParseAmount(buy),
		SellPrice:  ParseAmount(sell),
		RepairCost: ParseAmount(repair),
	}
}

// ParseAmount keeps only the ASCII digits of s and parses them.
// Empty input yields 0; input beyond int64 saturates at math.MaxInt64.
func ParseAmount(s string) int64 {
	digits := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
	v, err := strconv.ParseInt(digits, 10, 64)
	switch {
	case errors.Is(err, strconv.ErrRange):
		return v
	case err != nil:
		return 0
	}
	return v
}

// SetBuyPrice replaces the buy price from free text.
func (o *Overrides) SetBuyPrice(text string) { o.BuyPrice = ParseAmount(text) }

// SetSellPrice replaces the sell price from free text.
func (o *Overrides) SetSellPrice(text string) { o.SellPrice = ParseAmount(text) }

// SetRepairCost replaces the repair cost from free text.
func (o *Overrides) SetRepairCost(text string) { o.RepairCost = ParseAmount(text) }

// Profit returns sell - buy - repair.
func (o Overrides) Profit() int64 {
	return appraisal.Profit(o.SellPrice, o.BuyPrice, o.RepairCost)
}

// Margin returns profit as a percentage of the buy price, or 0 when the
// buy price is 0.
func (o Overrides) Margin() float64 {
	if o.BuyPrice == 0 {
		return 0
	}
	return float64(o.Profit()) / float64(o.BuyPrice) * percent
}

// Tier classifies the current profit.
func (o Overrides) Tier() Tier {
	return TierFor(o.Profit())
}

// TierFor classifies a profit against appraisal.ProfitThreshold.
func TierFor(profit int64) Tier {
	switch {
	case profit > appraisal.ProfitThreshold:
		return TierGood
	case profit > 0:
		return TierModerate
	default:
		return TierNegative
	}
}
