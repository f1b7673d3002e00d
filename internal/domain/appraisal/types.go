// Package appraisal computes market, buy and sell prices for a used vehicle.
package appraisal

import "strings"

// Preset names an appraisal formula.
type Preset string

// Known presets.
const (
	PresetRated   Preset = "rated"
	PresetMileage Preset = "mileage"
)

// Input field names, shared by the validators and the form front ends.
const (
	FieldMake         = "make"
	FieldModel        = "model"
	FieldYear         = "year"
	FieldBodyType     = "body_type"
	FieldTransmission = "transmission"
	FieldMileage      = "mileage"
	FieldCondition    = "condition"
)

// Rating names.
const (
	RatingExterior  = "exterior"
	RatingInterior  = "interior"
	RatingHistory   = "history"
	RatingEngine    = "engine"
	RatingDocuments = "documents"
)

// RatingNames lists the five ratings in display order.
var RatingNames = []string{RatingExterior, RatingInterior, RatingHistory, RatingEngine, RatingDocuments}

// Rating bounds. Zero means "not set yet".
const (
	MinRating = 1
	MaxRating = 5
)

// VehicleInfo is the identification part of an appraisal request.
// Year and Mileage are kept as the raw strings the user typed.
type VehicleInfo struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         string `json:"year"`
	BodyType     string `json:"body_type,omitempty"`
	Transmission string `json:"transmission,omitempty"`
	Mileage      string `json:"mileage,omitempty"`
	Condition    string `json:"condition,omitempty"`
}

// Field returns the value of a named field, or "" for unknown names.
func (v VehicleInfo) Field(name string) string {
	switch name {
	case FieldMake:
		return v.Make
	case FieldModel:
		return v.Model
	case FieldYear:
		return v.Year
	case FieldBodyType:
		return v.BodyType
	case FieldTransmission:
		return v.Transmission
	case FieldMileage:
		return v.Mileage
	case FieldCondition:
		return v.Condition
	default:
		return ""
	}
}

// WithField returns a copy of v with the named field set.
// Unknown names leave v unchanged.
func (v VehicleInfo) WithField(name, value string) VehicleInfo {
	switch name {
	case FieldMake:
		v.Make = value
	case FieldModel:
		v.Model = value
	case FieldYear:
		v.Year = value
	case FieldBodyType:
		v.BodyType = value
	case FieldTransmission:
		v.Transmission = value
	case FieldMileage:
		v.Mileage = value
	case FieldCondition:
		v.Condition = value
	}
	return v
}

// Ratings holds the five condition scores.
type Ratings struct {
	Exterior  int `json:"exterior"`
	Interior  int `json:"interior"`
	History   int `json:"history"`
	Engine    int `json:"engine"`
	Documents int `json:"documents"`
}

// Get returns a rating by name, or 0 for unknown names.
func (r Ratings) Get(name string) int {
	switch name {
	case RatingExterior:
		return r.Exterior
	case RatingInterior:
		return r.Interior
	case RatingHistory:
		return r.History
	case RatingEngine:
		return r.Engine
	case RatingDocuments:
		return r.Documents
	default:
		return 0
	}
}

// With returns a copy of r with the named rating set.
func (r Ratings) With(name string, value int) Ratings {
	switch name {
	case RatingExterior:
		r.Exterior = value
	case RatingInterior:
		r.Interior = value
	case RatingHistory:
		r.History = value
	case RatingEngine:
		r.Engine = value
	case RatingDocuments:
		r.Documents = value
	}
	return r
}

// Complete reports whether every rating has been set.
func (r Ratings) Complete() bool {
	return r.Exterior > 0 && r.Interior > 0 && r.History > 0 && r.Engine > 0 && r.Documents > 0
}

func (r Ratings) sum() int {
	return r.Exterior + r.Interior + r.History + r.Engine + r.Documents
}

// RepairItem is a fixed-cost remediation triggered by a low rating.
type RepairItem struct {
	Name string `json:"name"`
	Cost int64  `json:"cost"`
}

// Result is the outcome of one appraisal. Money is in whole currency units.
type Result struct {
	Preset               Preset       `json:"preset"`
	WorthinessEvaluated  bool         `json:"worthiness_evaluated"`
	IsPurchaseWorthy     bool         `json:"is_purchase_worthy"`
	NeedsRepairs         bool         `json:"needs_repairs"`
	RepairItems          []RepairItem `json:"repair_items"`
	RepairCost           int64        `json:"repair_cost"`
	MarketPrice          int64        `json:"market_price"`
	RecommendedBuyPrice  int64        `json:"recommended_buy_price"`
	RecommendedSellPrice int64        `json:"recommended_sell_price"`
	PotentialProfit      int64        `json:"potential_profit"`
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
