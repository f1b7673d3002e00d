package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/okian/appraisal/internal/domain/appraisal"
)

const (
	labelWidth = 16
	inputWidth = 32
	charLimit  = 64
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindOption
	kindRating
)

var labels = map[string]string{
	appraisal.FieldMake:         "Make",
	appraisal.FieldModel:        "Model",
	appraisal.FieldYear:         "Year",
	appraisal.FieldBodyType:     "Body type",
	appraisal.FieldTransmission: "Transmission",
	appraisal.FieldMileage:      "Mileage (km)",
	appraisal.FieldCondition:    "Condition",
	appraisal.RatingExterior:    "Exterior",
	appraisal.RatingInterior:    "Interior",
	appraisal.RatingHistory:     "History",
	appraisal.RatingEngine:      "Engine",
	appraisal.RatingDocuments:   "Documents",
}

var placeholders = map[string]string{
	appraisal.FieldMake:     "Toyota",
	appraisal.FieldModel:    "Avanza",
	appraisal.FieldYear:     "2020",
	appraisal.FieldBodyType: "sedan",
	appraisal.FieldMileage:  "50000",
}

var options = map[string][]string{
	appraisal.FieldTransmission: appraisal.Transmissions,
	appraisal.FieldCondition:    appraisal.Conditions,
}

// field is one row of the form. Option fields start unselected (selected -1).
type field struct {
	name     string
	kind     fieldKind
	input    textinput.Model
	options  []string
	selected int
	rating   int
}

func newTextInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	ti.Width = inputWidth
	return ti
}

// buildFields lays out the rows a formula needs: its required fields, then
// the ratings when it uses them.
func buildFields(f appraisal.Formula) []field {
	var out []field
	for _, name := range f.RequiredFields() {
		if opts, ok := options[name]; ok {
			out = append(out, field{name: name, kind: kindOption, options: opts, selected: -1})
			continue
		}
		out = append(out, field{name: name, kind: kindText, input: newTextInput(placeholders[name])})
	}
	if f.UsesRatings() {
		for _, name := range appraisal.RatingNames {
			out = append(out, field{name: name, kind: kindRating})
		}
	}
	return out
}

func (f *field) value() string {
	switch f.kind {
	case kindOption:
		if f.selected < 0 {
			return ""
		}
		return f.options[f.selected]
	case kindRating:
		return strconv.Itoa(f.rating)
	default:
		return f.input.Value()
	}
}

// step moves an option or rating by delta. Unset options wrap from either end.
func (f *field) step(delta int) {
	switch f.kind {
	case kindOption:
		n := len(f.options)
		if f.selected < 0 {
			if delta > 0 {
				f.selected = 0
			} else {
				f.selected = n - 1
			}
			return
		}
		f.selected = (f.selected + delta + n) % n
	case kindRating:
		f.rating = min(max(f.rating+delta, appraisal.MinRating), appraisal.MaxRating)
	}
}
