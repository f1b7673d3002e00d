package appraisal

// MileageFormula prices a vehicle from a flat starting value, linear
// depreciation per year and per unit of mileage, and a condition bucket.
// It never produces repair items and does not judge worthiness.
type MileageFormula struct {
	referenceYear int
}

// NewMileageFormula creates the mileage formula.
func NewMileageFormula(opts ...Option) *MileageFormula {
	o := buildOptions(opts)
	return &MileageFormula{referenceYear: o.referenceYear}
}

// Preset implements Formula.
func (f *MileageFormula) Preset() Preset { return PresetMileage }

// UsesRatings implements Formula.
func (f *MileageFormula) UsesRatings() bool { return false }

// RequiredFields implements Formula.
func (f *MileageFormula) RequiredFields() []string {
	return []string{FieldMake, FieldModel, FieldYear, FieldMileage, FieldCondition}
}

// ReferenceYear returns the year ages are measured from.
func (f *MileageFormula) ReferenceYear() int { return f.referenceYear }

// Appraise implements Formula. Ratings are ignored.
func (f *MileageFormula) Appraise(info VehicleInfo, _ Ratings) Result {
	floor := mileageStartPrice * mileageFloorPct / percent

	price := mileageStartPrice - age(info.Year, f.referenceYear)*mileagePerYear
	mileage := parseMileage(info.Mileage)
	if mileage > price/mileagePerUnit {
		price = floor
	} else {
		price -= mileage * mileagePerUnit
	}
	if price < floor {
		price = floor
	}

	pct, ok := conditionPct[normalize(info.Condition)]
	if !ok {
		pct = defaultConditionPct
	}

	res := Result{
		Preset:      PresetMileage,
		RepairItems: []RepairItem{},
		MarketPrice: roundScaled(price*pct, percent),
	}
	finish(&res)
	return res
}
