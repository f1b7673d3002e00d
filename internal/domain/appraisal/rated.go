package appraisal

// RatedFormula prices a vehicle from its make, age and five condition
// ratings, adds fixed-cost repairs for low ratings and decides whether the
// purchase is worthwhile.
type RatedFormula struct {
	referenceYear int
}

// NewRatedFormula creates the rated formula.
func NewRatedFormula(opts ...Option) *RatedFormula {
	o := buildOptions(opts)
	return &RatedFormula{referenceYear: o.referenceYear}
}

// Preset implements Formula.
func (f *RatedFormula) Preset() Preset { return PresetRated }

// UsesRatings implements Formula.
func (f *RatedFormula) UsesRatings() bool { return true }

// RequiredFields implements Formula.
func (f *RatedFormula) RequiredFields() []string {
	return []string{FieldMake, FieldModel, FieldYear, FieldBodyType, FieldTransmission}
}

// ReferenceYear returns the year ages are measured from.
func (f *RatedFormula) ReferenceYear() int { return f.referenceYear }

// Appraise implements Formula.
func (f *RatedFormula) Appraise(info VehicleInfo, ratings Ratings) Result {
	base, _ := BasePrice(info.Make)

	depreciation := age(info.Year, f.referenceYear) * depreciationPerYearPct
	if depreciation > maxDepreciationPct {
		depreciation = maxDepreciationPct
	}
	depreciated := base * (percent - depreciation) / percent

	res := Result{
		Preset:              PresetRated,
		WorthinessEvaluated: true,
		RepairItems:         repairsFor(ratings),
	}
	for _, item := range res.RepairItems {
		res.RepairCost += item.Cost
	}
	res.NeedsRepairs = len(res.RepairItems) > 0
	res.MarketPrice = roundScaled(depreciated*conditionBP(ratings), basisPoints)
	finish(&res)

	res.IsPurchaseWorthy = res.PotentialProfit > ProfitThreshold && ratings.Documents >= minDocuments
	return res
}

// conditionBP maps the average rating onto the 70%..100% band.
func conditionBP(r Ratings) int64 {
	bp := int64(minConditionBP + conditionStepBP*(r.sum()-len(RatingNames)*MinRating))
	switch {
	case bp < minConditionBP:
		return minConditionBP
	case bp > maxConditionBP:
		return maxConditionBP
	}
	return bp
}

// repairsFor returns one item for every rule whose rating is below the bar.
func repairsFor(r Ratings) []RepairItem {
	items := make([]RepairItem, 0, len(repairRules))
	for _, rule := range repairRules {
		if r.Get(rule.rating) < repairBelow {
			items = append(items, rule.item)
		}
	}
	return items
}
