package sampler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/appraisal/internal/domain/appraisal"
	"github.com/okian/appraisal/pkg/logger"
)

// Verify checks one outcome against the pricing invariants. It returns nil
// when the service answered as expected.
func Verify(o Outcome) error {
	if o.Err != nil {
		return o.Err
	}
	if !o.Sample.ExpectValid {
		if o.Status != http.StatusBadRequest {
			return fmt.Errorf("%w: incomplete sample answered %d", ErrMismatch, o.Status)
		}
		return nil
	}
	if o.Status != http.StatusOK || o.Response == nil {
		return fmt.Errorf("%w: valid sample answered %d", ErrMismatch, o.Status)
	}

	r := o.Response
	var errs []error
	mismatch := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrMismatch}, args...)...))
	}

	if r.Preset != o.Sample.Preset {
		mismatch("preset %q, want %q", r.Preset, o.Sample.Preset)
	}
	if want := r.RecommendedSellPrice - r.RecommendedBuyPrice - r.RepairCost; r.PotentialProfit != want {
		mismatch("profit %d, want %d", r.PotentialProfit, want)
	}
	for name, v := range map[string]int64{
		"market_price":           r.MarketPrice,
		"recommended_buy_price":  r.RecommendedBuyPrice,
		"recommended_sell_price": r.RecommendedSellPrice,
	} {
		if v%roundingUnit != 0 {
			mismatch("%s %d not a multiple of %d", name, v, roundingUnit)
		}
	}
	var cost int64
	for _, it := range r.RepairItems {
		cost += it.Cost
	}
	if cost != r.RepairCost {
		mismatch("repair cost %d, items sum to %d", r.RepairCost, cost)
	}
	if r.NeedsRepairs != (len(r.RepairItems) > 0) {
		mismatch("needs_repairs %t with %d items", r.NeedsRepairs, len(r.RepairItems))
	}

	switch o.Sample.Preset {
	case appraisal.PresetRated:
		if want := expectedRepairs(o.Sample.Ratings); len(r.RepairItems) != want {
			mismatch("%d repair items, want %d", len(r.RepairItems), want)
		}
		worthy := r.PotentialProfit > appraisal.ProfitThreshold && o.Sample.Ratings.Documents >= minDocuments
		if !r.WorthinessEvaluated || r.IsPurchaseWorthy != worthy {
			mismatch("purchase worthy %t, want %t", r.IsPurchaseWorthy, worthy)
		}
	default:
		if r.WorthinessEvaluated || len(r.RepairItems) > 0 {
			mismatch("mileage preset evaluated worthiness or repairs")
		}
	}
	return errors.Join(errs...)
}

// expectedRepairs counts the ratings that trigger a repair item.
func expectedRepairs(r appraisal.Ratings) int {
	n := 0
	for _, v := range []int{r.Exterior, r.Interior, r.Engine} {
		if v < repairBelow {
			n++
		}
	}
	return n
}

// verifyOutcomes runs Verify on every outcome and fills stats.
// Appraisal ids must be unique across the run.
func verifyOutcomes(ctx context.Context, outcomes []Outcome, stats *Stats) error {
	ids := newIDSet(len(outcomes))
	for _, o := range outcomes {
		err := Verify(o)
		if o.Response != nil {
			if o.Response.IsPurchaseWorthy {
				stats.Worthy++
			}
			if ids.SeenAndRecord(o.Response.ID) {
				err = errors.Join(err, fmt.Errorf("%w: duplicate appraisal id %q", ErrMismatch, o.Response.ID))
			}
		}
		if err != nil {
			stats.Mismatches++
			logger.Get().Warn(ctx, "sample failed verification",
				logger.String("requestId", o.Sample.RequestID),
				logger.String("preset", string(o.Sample.Preset)),
				logger.Error(err))
		}
	}
	if stats.Mismatches > 0 {
		return fmt.Errorf("%w: %d of %d samples", ErrVerificationFailed, stats.Mismatches, len(outcomes))
	}
	logger.Get().Info(ctx, "all samples verified", logger.Int("count", len(outcomes)))
	return nil
}
