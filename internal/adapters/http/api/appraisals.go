package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	service "github.com/okian/appraisal/internal/app"
	"github.com/okian/appraisal/internal/domain/appraisal"
	"github.com/okian/appraisal/internal/domain/override"
)

// appraisalRequest mirrors the OpenAPI schema for POST /appraisals.
type appraisalRequest struct {
	Preset  string         `json:"preset" validate:"omitempty,max=32"`
	Vehicle vehicleRequest `json:"vehicle"`
	Ratings ratingsRequest `json:"ratings"`
}

type vehicleRequest struct {
	Make         string `json:"make" validate:"max=64"`
	Model        string `json:"model" validate:"max=64"`
	Year         string `json:"year" validate:"max=8"`
	BodyType     string `json:"body_type" validate:"max=32"`
	Transmission string `json:"transmission" validate:"max=32"`
	Mileage      string `json:"mileage" validate:"max=20"`
	Condition    string `json:"condition" validate:"max=32"`
}

// Zero means unset; the domain reports it as missing.
type ratingsRequest struct {
	Exterior  int `json:"exterior" validate:"omitempty,min=1,max=5"`
	Interior  int `json:"interior" validate:"omitempty,min=1,max=5"`
	History   int `json:"history" validate:"omitempty,min=1,max=5"`
	Engine    int `json:"engine" validate:"omitempty,min=1,max=5"`
	Documents int `json:"documents" validate:"omitempty,min=1,max=5"`
}

func (v vehicleRequest) toDomain() appraisal.VehicleInfo {
	return appraisal.VehicleInfo(v)
}

func (r ratingsRequest) toDomain() appraisal.Ratings {
	return appraisal.Ratings(r)
}

type formattedItem struct {
	Name string `json:"name"`
	Cost string `json:"cost"`
}

type formattedResult struct {
	MarketPrice          string          `json:"market_price"`
	RecommendedBuyPrice  string          `json:"recommended_buy_price"`
	RecommendedSellPrice string          `json:"recommended_sell_price"`
	RepairCost           string          `json:"repair_cost"`
	PotentialProfit      string          `json:"potential_profit"`
	ProfitMargin         string          `json:"profit_margin"`
	RepairItems          []formattedItem `json:"repair_items"`
}

type appraisalResponse struct {
	ID string `json:"id"`
	appraisal.Result
	ProfitMargin float64         `json:"profit_margin"`
	ProfitTier   override.Tier   `json:"profit_tier"`
	Formatted    formattedResult `json:"formatted"`
}

// AppraisalsHandler handles appraisal requests.
type AppraisalsHandler struct {
	deps     Dependencies
	validate *validator.Validate
	maxBody  int64
}

// NewAppraisalsHandler creates a new appraisals handler.
func NewAppraisalsHandler(deps Dependencies, v *validator.Validate, maxBody int64) *AppraisalsHandler {
	return &AppraisalsHandler{deps: deps, validate: v, maxBody: maxBody}
}

// HandlePostAppraisal handles POST /appraisals requests.
func (h *AppraisalsHandler) HandlePostAppraisal(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_appraisal"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req appraisalRequest
	if err := decodeJSON(w, r, h.maxBody, &req); err != nil {
		writeDecodeError(w, op, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", WrapKind(op, ErrValidation, err))
		return
	}

	a, err := h.deps.Appraise(r.Context(), req.Preset, req.Vehicle.toDomain(), req.Ratings.toDomain())
	if err != nil {
		if reason := service.Reason(err); reason != "internal" {
			writeError(w, http.StatusBadRequest, reason, WrapKind(op, ErrValidation, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
		return
	}
	writeJSON(w, http.StatusOK, h.render(a))
}

func (h *AppraisalsHandler) render(a Appraisal) appraisalResponse {
	f := formatterOf(h.deps)
	res := a.Result
	o := override.FromResult(res)

	items := make([]formattedItem, len(res.RepairItems))
	for i, it := range res.RepairItems {
		items[i] = formattedItem{Name: it.Name, Cost: f.Format(it.Cost)}
	}
	return appraisalResponse{
		ID:           a.ID,
		Result:       res,
		ProfitMargin: o.Margin(),
		ProfitTier:   o.Tier(),
		Formatted: formattedResult{
			MarketPrice:          f.Format(res.MarketPrice),
			RecommendedBuyPrice:  f.Format(res.RecommendedBuyPrice),
			RecommendedSellPrice: f.Format(res.RecommendedSellPrice),
			RepairCost:           f.Format(res.RepairCost),
			PotentialProfit:      f.Format(res.PotentialProfit),
			ProfitMargin:         f.Percent(o.Margin()),
			RepairItems:          items,
		},
	}
}
