package appraisal

// Currency granularity and shared pricing constants.
const (
	roundingUnit int64 = 1_000_000

	buyDiscountPct = 90
	sellMarkupPct  = 110

	// ProfitThreshold is the profit a purchase must beat to be worthwhile.
	ProfitThreshold int64 = 10_000_000
	minDocuments          = 4
	repairBelow           = 3
)

// Rated preset constants.
const (
	defaultBasePrice int64 = 200_000_000

	depreciationPerYearPct = 8
	maxDepreciationPct     = 70

	// Condition band in basis points: 1.0 average rating maps to 7000,
	// 5.0 maps to 10000. Each rating point above the minimum adds 150bp to
	// the sum-based multiplier (0.30 / 4 / 5 ratings).
	minConditionBP  = 7000
	maxConditionBP  = 10000
	conditionStepBP = 150
	basisPoints     = 10000
)

// Mileage preset constants.
const (
	mileageStartPrice     int64 = 250_000_000
	mileagePerYear        int64 = 10_000_000
	mileagePerUnit        int64 = 500
	mileageFloorPct             = 100 - maxDepreciationPct
	maxVehicleAge               = 100
	defaultConditionPct         = 70
	percent                     = 100
	earliestModelYear           = 1900
	conditionExcellent          = "excellent"
	conditionGood               = "good"
	conditionFair               = "fair"
	conditionPoor               = "poor"
	transmissionAutomatic       = "automatic"
	transmissionManual          = "manual"
)

// basePrices maps a normalised make to its base price tier.
var basePrices = map[string]int64{
	"toyota":        300_000_000,
	"honda":         280_000_000,
	"mazda":         320_000_000,
	"mitsubishi":    260_000_000,
	"nissan":        250_000_000,
	"hyundai":       270_000_000,
	"kia":           240_000_000,
	"ford":          260_000_000,
	"suzuki":        180_000_000,
	"daihatsu":      160_000_000,
	"bmw":           800_000_000,
	"mercedes-benz": 900_000_000,
	"audi":          750_000_000,
	"lexus":         850_000_000,
}

// makeAliases folds common spellings onto a basePrices key.
var makeAliases = map[string]string{
	"mercedes": "mercedes-benz",
	"benz":     "mercedes-benz",
}

// conditionPct maps a condition bucket to its price multiplier in percent.
var conditionPct = map[string]int64{
	conditionExcellent: 100,
	conditionGood:      90,
	conditionFair:      80,
	conditionPoor:      70,
}

// Conditions lists the accepted condition buckets, best first.
var Conditions = []string{conditionExcellent, conditionGood, conditionFair, conditionPoor}

// Transmissions lists the accepted transmission values.
var Transmissions = []string{transmissionAutomatic, transmissionManual}

// repairRule is one entry of the rating -> repair table.
type repairRule struct {
	rating string
	item   RepairItem
}

// repairRules are evaluated in order; each yields at most one item.
var repairRules = []repairRule{
	{rating: RatingExterior, item: RepairItem{Name: "Body & paint repair", Cost: 5_000_000}},
	{rating: RatingInterior, item: RepairItem{Name: "Interior refurbishment", Cost: 3_000_000}},
	{rating: RatingEngine, item: RepairItem{Name: "Engine overhaul", Cost: 10_000_000}},
}

// BasePrice returns the base price for a make and whether the make is known.
func BasePrice(brand string) (int64, bool) {
	key := normalize(brand)
	if alias, ok := makeAliases[key]; ok {
		key = alias
	}
	price, ok := basePrices[key]
	if !ok {
		return defaultBasePrice, false
	}
	return price, true
}

// Makes returns a copy of the make -> base price table.
func Makes() map[string]int64 {
	out := make(map[string]int64, len(basePrices))
	for k, v := range basePrices {
		out[k] = v
	}
	return out
}
