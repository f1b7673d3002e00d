// Package session tracks one appraisal from data entry to the result view.
package session

import (
	"fmt"
	"slices"

	"github.com/okian/appraisal/internal/domain/appraisal"
	"github.com/okian/appraisal/internal/domain/override"
)

// State is the screen a session is on.
type State int

// Session states.
const (
	Collecting State = iota
	ShowingResult
)

func (s State) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case ShowingResult:
		return "showing_result"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session is not safe for concurrent use; it is owned by a single UI.
type Session struct {
	formula   appraisal.Formula
	state     State
	info      appraisal.VehicleInfo
	ratings   appraisal.Ratings
	result    appraisal.Result
	overrides override.Overrides
}

// New starts a session collecting data for f.
func New(f appraisal.Formula) *Session {
	return &Session{formula: f}
}

// Formula returns the formula the session appraises with.
func (s *Session) Formula() appraisal.Formula { return s.formula }

// State returns the current screen.
func (s *Session) State() State { return s.state }

// Info returns the vehicle fields entered so far.
func (s *Session) Info() appraisal.VehicleInfo { return s.info }

// Ratings returns the ratings entered so far.
func (s *Session) Ratings() appraisal.Ratings { return s.ratings }

// Result returns the last submitted result, or the zero value.
func (s *Session) Result() appraisal.Result { return s.result }

// Overrides returns the editable figures of the result view.
func (s *Session) Overrides() override.Overrides { return s.overrides }

// SetField stores a vehicle field. Only the formula's required fields are
// accepted, and only while collecting.
func (s *Session) SetField(name, value string) error {
	if s.state != Collecting {
		return ErrNotCollecting
	}
	if !slices.Contains(s.formula.RequiredFields(), name) {
		return fmt.Errorf("%w: %s", ErrUnknownName, name)
	}
	s.info = s.info.WithField(name, value)
	return nil
}

// SetRating stores a rating, clamped to the 1..5 scale. A zero value clears it.
func (s *Session) SetRating(name string, value int) error {
	if s.state != Collecting {
		return ErrNotCollecting
	}
	if !s.formula.UsesRatings() || !slices.Contains(appraisal.RatingNames, name) {
		return fmt.Errorf("%w: %s", ErrUnknownName, name)
	}
	switch {
	case value <= 0:
		value = 0
	case value > appraisal.MaxRating:
		value = appraisal.MaxRating
	}
	s.ratings = s.ratings.With(name, value)
	return nil
}

// Missing lists what still blocks Submit.
func (s *Session) Missing() []string {
	return appraisal.Missing(s.formula, s.info, s.ratings)
}

// Ready reports whether Submit would succeed.
func (s *Session) Ready() bool {
	return appraisal.Validate(s.formula, s.info, s.ratings) == nil
}

// Submit computes the result and switches to the result view. Overrides
// start from the recommended figures. A second Submit needs a Reset first.
func (s *Session) Submit() (appraisal.Result, error) {
	if s.state != Collecting {
		return appraisal.Result{}, ErrNotCollecting
	}
	if err := appraisal.Validate(s.formula, s.info, s.ratings); err != nil {
		return appraisal.Result{}, fmt.Errorf("%w: %w", ErrIncomplete, err)
	}
	s.result = s.formula.Appraise(s.info, s.ratings)
	s.overrides = override.FromResult(s.result)
	s.state = ShowingResult
	return s.result, nil
}

// EditBuyPrice replaces the buy price override from free text.
func (s *Session) EditBuyPrice(text string) error {
	return s.edit(func(o *override.Overrides) { o.SetBuyPrice(text) })
}

// EditSellPrice replaces the sell price override from free text.
func (s *Session) EditSellPrice(text string) error {
	return s.edit(func(o *override.Overrides) { o.SetSellPrice(text) })
}

// EditRepairCost replaces the repair cost override from free text.
func (s *Session) EditRepairCost(text string) error {
	return s.edit(func(o *override.Overrides) { o.SetRepairCost(text) })
}

func (s *Session) edit(apply func(*override.Overrides)) error {
	if s.state != ShowingResult {
		return ErrNoResult
	}
	apply(&s.overrides)
	return nil
}

// Profit is the profit of the current overrides.
func (s *Session) Profit() int64 { return s.overrides.Profit() }

// Margin is the margin of the current overrides.
func (s *Session) Margin() float64 { return s.overrides.Margin() }

// Reset discards everything and returns to Collecting.
func (s *Session) Reset() {
	*s = Session{formula: s.formula}
}

// SwitchFormula resets the session onto another formula.
func (s *Session) SwitchFormula(f appraisal.Formula) {
	*s = Session{formula: f}
}
