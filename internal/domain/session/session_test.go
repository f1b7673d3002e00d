package session_test

import (
	"errors"
	"testing"

	"github.com/okian/appraisal/internal/domain/appraisal"
	"github.com/okian/appraisal/internal/domain/session"
	. "github.com/smartystreets/goconvey/convey"
)

func fill(s *session.Session) {
	So(s.SetField(appraisal.FieldMake, "Toyota"), ShouldBeNil)
	So(s.SetField(appraisal.FieldModel, "Camry"), ShouldBeNil)
	So(s.SetField(appraisal.FieldYear, "2020"), ShouldBeNil)
	So(s.SetField(appraisal.FieldBodyType, "sedan"), ShouldBeNil)
	So(s.SetField(appraisal.FieldTransmission, "automatic"), ShouldBeNil)
	for _, name := range appraisal.RatingNames {
		So(s.SetRating(name, 5), ShouldBeNil)
	}
}

func TestSession(t *testing.T) {
	Convey("Given a new rated session", t, func() {
		s := session.New(appraisal.NewRatedFormula(appraisal.WithReferenceYear(2025)))

		Convey("Then it starts collecting with nothing ready", func() {
			So(s.State(), ShouldEqual, session.Collecting)
			So(s.Ready(), ShouldBeFalse)
			So(s.Missing(), ShouldHaveLength, 10)
		})

		Convey("When submitting before every input is set", func() {
			_ = s.SetField(appraisal.FieldMake, "Toyota")
			_, err := s.Submit()

			Convey("Then ErrIncomplete is returned and the state is unchanged", func() {
				So(errors.Is(err, session.ErrIncomplete), ShouldBeTrue)
				So(errors.Is(err, appraisal.ErrMissingField), ShouldBeTrue)
				So(s.State(), ShouldEqual, session.Collecting)
			})
		})

		Convey("When editing overrides before a result exists", func() {
			err := s.EditBuyPrice("100")

			Convey("Then ErrNoResult is returned", func() {
				So(errors.Is(err, session.ErrNoResult), ShouldBeTrue)
			})
		})

		Convey("When setting an unknown field", func() {
			So(errors.Is(s.SetField(appraisal.FieldMileage, "1"), session.ErrUnknownName), ShouldBeTrue)
			So(errors.Is(s.SetRating("paint", 3), session.ErrUnknownName), ShouldBeTrue)
		})

		Convey("When a rating is set outside the scale", func() {
			_ = s.SetRating(appraisal.RatingEngine, 9)
			_ = s.SetRating(appraisal.RatingExterior, -3)

			Convey("Then it is clamped", func() {
				So(s.Ratings().Engine, ShouldEqual, appraisal.MaxRating)
				So(s.Ratings().Exterior, ShouldEqual, 0)
			})
		})

		Convey("When every input is filled and submitted", func() {
			fill(s)
			So(s.Ready(), ShouldBeTrue)
			res, err := s.Submit()

			Convey("Then the result view shows the recommended figures", func() {
				So(err, ShouldBeNil)
				So(s.State(), ShouldEqual, session.ShowingResult)
				So(res.MarketPrice, ShouldEqual, 180_000_000)
				So(s.Overrides().BuyPrice, ShouldEqual, res.RecommendedBuyPrice)
				So(s.Profit(), ShouldEqual, res.PotentialProfit)
			})

			Convey("And overrides recompute profit", func() {
				So(s.EditRepairCost("abc"), ShouldBeNil)
				So(s.Overrides().RepairCost, ShouldEqual, 0)
				So(s.EditBuyPrice("150.000.000"), ShouldBeNil)
				So(s.EditSellPrice("Rp 180.000.000"), ShouldBeNil)
				So(s.Profit(), ShouldEqual, 30_000_000)
				So(s.Margin(), ShouldAlmostEqual, 20.0, 1e-9)
			})

			Convey("And inputs are locked while the result is shown", func() {
				So(errors.Is(s.SetField(appraisal.FieldMake, "BMW"), session.ErrNotCollecting), ShouldBeTrue)
				So(errors.Is(s.SetRating(appraisal.RatingEngine, 1), session.ErrNotCollecting), ShouldBeTrue)
				_, err := s.Submit()
				So(errors.Is(err, session.ErrNotCollecting), ShouldBeTrue)

				So(s.Info().Make, ShouldEqual, "Toyota")
				So(s.Ratings().Engine, ShouldEqual, 5)
				So(s.Result().MarketPrice, ShouldEqual, 180_000_000)
				So(s.State(), ShouldEqual, session.ShowingResult)
			})

			Convey("And reset unlocks the inputs", func() {
				s.Reset()
				So(s.SetField(appraisal.FieldMake, "BMW"), ShouldBeNil)
				So(s.Info().Make, ShouldEqual, "BMW")
			})

			Convey("And reset restores the initial state", func() {
				s.Reset()
				fresh := session.New(s.Formula())
				So(s.State(), ShouldEqual, session.Collecting)
				So(s.Info(), ShouldResemble, fresh.Info())
				So(s.Ratings(), ShouldResemble, fresh.Ratings())
				So(s.Result(), ShouldResemble, fresh.Result())
				So(s.Overrides(), ShouldResemble, fresh.Overrides())
			})
		})

		Convey("When switching to the mileage formula", func() {
			fill(s)
			s.SwitchFormula(appraisal.NewMileageFormula(appraisal.WithReferenceYear(2025)))

			Convey("Then inputs are cleared and ratings are rejected", func() {
				So(s.Formula().Preset(), ShouldEqual, appraisal.PresetMileage)
				So(s.Info(), ShouldResemble, appraisal.VehicleInfo{})
				So(errors.Is(s.SetRating(appraisal.RatingEngine, 3), session.ErrUnknownName), ShouldBeTrue)
			})
		})
	})
}

func TestState_String(t *testing.T) {
	Convey("Given session states", t, func() {
		So(session.Collecting.String(), ShouldEqual, "collecting")
		So(session.ShowingResult.String(), ShouldEqual, "showing_result")
		So(session.State(7).String(), ShouldEqual, "state(7)")
	})
}
