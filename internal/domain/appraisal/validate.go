package appraisal

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Missing lists the required fields and ratings that are still empty.
// An empty slice means the submission may proceed.
func Missing(f Formula, info VehicleInfo, ratings Ratings) []string {
	var missing []string
	for _, name := range f.RequiredFields() {
		if strings.TrimSpace(info.Field(name)) == "" {
			missing = append(missing, name)
		}
	}
	if f.UsesRatings() {
		for _, name := range RatingNames {
			if ratings.Get(name) <= 0 {
				missing = append(missing, name)
			}
		}
	}
	return missing
}

// Validate checks that info and ratings are well formed for f.
// It returns the first problem found, wrapped around one of the package
// sentinel errors.
func Validate(f Formula, info VehicleInfo, ratings Ratings) error {
	if missing := Missing(f, info, ratings); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, missing[0])
	}

	year, err := strconv.Atoi(strings.TrimSpace(info.Year))
	if err != nil {
		return fmt.Errorf("%w: year %q", ErrInvalidNumber, info.Year)
	}
	if year < earliestModelYear {
		return fmt.Errorf("%w: year %d before %d", ErrInvalidNumber, year, earliestModelYear)
	}

	required := f.RequiredFields()
	if slices.Contains(required, FieldMileage) {
		m, err := strconv.ParseInt(strings.TrimSpace(info.Mileage), 10, 64)
		if err != nil || m < 0 {
			return fmt.Errorf("%w: mileage %q", ErrInvalidNumber, info.Mileage)
		}
	}
	if slices.Contains(required, FieldCondition) && !slices.Contains(Conditions, normalize(info.Condition)) {
		return fmt.Errorf("%w: condition %q", ErrInvalidOption, info.Condition)
	}
	if slices.Contains(required, FieldTransmission) && !slices.Contains(Transmissions, normalize(info.Transmission)) {
		return fmt.Errorf("%w: transmission %q", ErrInvalidOption, info.Transmission)
	}

	if f.UsesRatings() {
		for _, name := range RatingNames {
			if v := ratings.Get(name); v < MinRating || v > MaxRating {
				return fmt.Errorf("%w: %s=%d", ErrRatingOutOfRange, name, v)
			}
		}
	}
	return nil
}
