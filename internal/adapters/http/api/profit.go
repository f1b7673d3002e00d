package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/okian/appraisal/internal/domain/override"
)

// profitRequest carries the editable figures as the user typed them.
type profitRequest struct {
	BuyPrice   string `json:"buy_price" validate:"max=64"`
	SellPrice  string `json:"sell_price" validate:"max=64"`
	RepairCost string `json:"repair_cost" validate:"max=64"`
}

type formattedProfit struct {
	BuyPrice   string `json:"buy_price"`
	SellPrice  string `json:"sell_price"`
	RepairCost string `json:"repair_cost"`
	Profit     string `json:"profit"`
	Margin     string `json:"margin"`
}

type profitResponse struct {
	override.Overrides
	Profit    int64           `json:"profit"`
	Margin    float64         `json:"margin"`
	Tier      override.Tier   `json:"tier"`
	Formatted formattedProfit `json:"formatted"`
}

// ProfitHandler recomputes profit from edited figures.
type ProfitHandler struct {
	deps     Dependencies
	validate *validator.Validate
	maxBody  int64
}

// NewProfitHandler creates a new profit handler.
func NewProfitHandler(deps Dependencies, v *validator.Validate, maxBody int64) *ProfitHandler {
	return &ProfitHandler{deps: deps, validate: v, maxBody: maxBody}
}

// HandlePostProfit handles POST /appraisals/profit requests.
func (h *ProfitHandler) HandlePostProfit(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_profit"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req profitRequest
	if err := decodeJSON(w, r, h.maxBody, &req); err != nil {
		writeDecodeError(w, op, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", WrapKind(op, ErrValidation, err))
		return
	}

	o := h.deps.Recalculate(r.Context(), req.BuyPrice, req.SellPrice, req.RepairCost)
	f := formatterOf(h.deps)
	writeJSON(w, http.StatusOK, profitResponse{
		Overrides: o,
		Profit:    o.Profit(),
		Margin:    o.Margin(),
		Tier:      o.Tier(),
		Formatted: formattedProfit{
			BuyPrice:   f.Format(o.BuyPrice),
			SellPrice:  f.Format(o.SellPrice),
			RepairCost: f.Format(o.RepairCost),
			Profit:     f.Format(o.Profit()),
			Margin:     f.Percent(o.Margin()),
		},
	})
}
