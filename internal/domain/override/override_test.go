package override_test

import (
	"math"
	"testing"

	"github.com/okian/appraisal/internal/domain/appraisal"
	"github.com/okian/appraisal/internal/domain/override"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseAmount(t *testing.T) {
	Convey("Given free text amounts", t, func() {
		cases := map[string]int64{
			"162000000":      162_000_000,
			"Rp 162.000.000": 162_000_000,
			"$1,234":         1234,
			"abc":            0,
			"":               0,
			"-500":           500,
			"12a34":          1234,
			"٣٤":             0,
		}
		cases["99999999999999999999"] = math.MaxInt64
		for in, want := range cases {
			So(override.ParseAmount(in), ShouldEqual, want)
		}
	})
}

func TestOverrides(t *testing.T) {
	Convey("Given overrides seeded from a result", t, func() {
		res := appraisal.Result{
			RecommendedBuyPrice:  122_000_000,
			RecommendedSellPrice: 168_000_000,
			RepairCost:           18_000_000,
			PotentialProfit:      28_000_000,
		}
		o := override.FromResult(res)

		Convey("Then profit equals the calculated profit", func() {
			So(o.Profit(), ShouldEqual, res.PotentialProfit)
			So(o.Tier(), ShouldEqual, override.TierGood)
		})

		Convey("When the repair cost is edited with non-numeric text", func() {
			o.SetRepairCost("abc")

			Convey("Then it is stored as zero and profit is recomputed", func() {
				So(o.RepairCost, ShouldEqual, 0)
				So(o.Profit(), ShouldEqual, 46_000_000)
			})
		})

		Convey("When buy and sell are edited", func() {
			o.SetBuyPrice("Rp 100.000.000")
			o.SetSellPrice("105000000")

			Convey("Then profit and margin follow the identity", func() {
				So(o.Profit(), ShouldEqual, o.SellPrice-o.BuyPrice-o.RepairCost)
				So(o.Profit(), ShouldEqual, -13_000_000)
				So(o.Margin(), ShouldAlmostEqual, -13.0, 1e-9)
				So(o.Tier(), ShouldEqual, override.TierNegative)
			})
		})

		Convey("When the buy price is longer than int64 allows", func() {
			o.SetBuyPrice("99999999999999999999999")

			Convey("Then it saturates instead of dropping to zero", func() {
				So(o.BuyPrice, ShouldEqual, int64(math.MaxInt64))
				So(o.Tier(), ShouldEqual, override.TierNegative)
			})
		})

		Convey("When the buy price is cleared", func() {
			o.SetBuyPrice("")

			Convey("Then the margin is zero rather than undefined", func() {
				So(o.BuyPrice, ShouldEqual, 0)
				So(o.Margin(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given every override combination on a small grid", t, func() {
		for buy := int64(-2); buy <= 2; buy++ {
			for sell := int64(-2); sell <= 2; sell++ {
				for repair := int64(0); repair <= 2; repair++ {
					o := override.Overrides{BuyPrice: buy * 1_000_000, SellPrice: sell * 1_000_000, RepairCost: repair * 1_000_000}
					So(o.Profit(), ShouldEqual, o.SellPrice-o.BuyPrice-o.RepairCost)
				}
			}
		}
	})

	Convey("Given text inputs for all three figures", t, func() {
		o := override.FromText("100", "150", "x")
		So(o, ShouldResemble, override.Overrides{BuyPrice: 100, SellPrice: 150, RepairCost: 0})
		So(o.Margin(), ShouldEqual, 50)
	})
}

func TestTierFor(t *testing.T) {
	Convey("Given profits around the threshold", t, func() {
		So(override.TierFor(appraisal.ProfitThreshold+1), ShouldEqual, override.TierGood)
		So(override.TierFor(appraisal.ProfitThreshold), ShouldEqual, override.TierModerate)
		So(override.TierFor(1), ShouldEqual, override.TierModerate)
		So(override.TierFor(0), ShouldEqual, override.TierNegative)
		So(override.TierFor(-1), ShouldEqual, override.TierNegative)
	})
}
