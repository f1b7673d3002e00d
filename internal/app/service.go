// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/appraisal/internal/domain/appraisal"
	"github.com/okian/appraisal/internal/domain/override"
	"github.com/okian/appraisal/internal/money"
	"github.com/okian/appraisal/pkg/logger"
	"github.com/okian/appraisal/pkg/metrics"
)

// Appraisal is one computed result with its identifier.
type Appraisal struct {
	ID        string
	CreatedAt time.Time
	Result    appraisal.Result
}

// PresetInfo describes one available formula.
type PresetInfo struct {
	Name           appraisal.Preset `json:"name"`
	RequiredFields []string         `json:"required_fields"`
	UsesRatings    bool             `json:"uses_ratings"`
	Default        bool             `json:"default"`
}

// Service implements the API dependencies for the appraisal calculator.
type Service struct {
	mu sync.RWMutex

	formulas      map[appraisal.Preset]appraisal.Formula
	defaultPreset appraisal.Preset
	referenceYear int
	locale        string
	currency      string
	formatter     *money.Formatter

	metrics *metrics.Manager
	logger  logger.Logger

	// State
	started   bool
	startedAt time.Time

	// Counters
	appraisals     atomic.Int64
	worthy         atomic.Int64
	rejected       atomic.Int64
	recalculations atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDefaultPreset sets the preset used when a request names none.
func WithDefaultPreset(p appraisal.Preset) Option {
	return func(s *Service) {
		if p != "" {
			s.defaultPreset = p
		}
	}
}

// WithReferenceYear fixes the year vehicle age is measured from.
func WithReferenceYear(year int) Option {
	return func(s *Service) {
		s.referenceYear = year
	}
}

// WithCurrency sets the locale and ISO currency used to format amounts.
func WithCurrency(locale, currency string) Option {
	return func(s *Service) {
		if locale != "" && currency != "" {
			s.locale = locale
			s.currency = currency
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager. Defaults to the global one.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		defaultPreset: appraisal.PresetRated,
		locale:        "id",
		currency:      "IDR",
		metrics:       metrics.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.formulas = make(map[appraisal.Preset]appraisal.Formula, len(appraisal.Presets()))
	for _, p := range appraisal.Presets() {
		f, _ := appraisal.NewFormula(p, appraisal.WithReferenceYear(s.referenceYear))
		s.formulas[p] = f
	}
	if _, ok := s.formulas[s.defaultPreset]; !ok {
		s.defaultPreset = appraisal.PresetRated
	}

	return s
}

// Start initializes the currency formatter and marks the service ready.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	f, err := money.New(s.locale, s.currency)
	if err != nil {
		return errors.Join(ErrNoFormatter, err)
	}
	s.formatter = f
	s.started = true
	s.startedAt = time.Now()

	s.logger.Info(ctx, "appraisal service started",
		logger.String("defaultPreset", string(s.defaultPreset)),
		logger.String("locale", f.Locale()),
		logger.String("currency", f.Currency()),
		logger.Int("referenceYear", s.referenceYear),
	)
	return nil
}

// Stop marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	if s.logger != nil {
		s.logger.Info(context.Background(), "appraisal service stopped",
			logger.Int64("appraisals", s.appraisals.Load()),
		)
	}
}

// DefaultPreset is the preset used when none is requested.
func (s *Service) DefaultPreset() appraisal.Preset { return s.defaultPreset }

// Formula resolves a preset name; an empty name selects the default.
func (s *Service) Formula(name string) (appraisal.Formula, error) {
	p, err := appraisal.ParsePreset(name, s.defaultPreset)
	if err != nil {
		return nil, err
	}
	return s.formulas[p], nil
}

// Presets describes the available formulas, default first.
func (s *Service) Presets() []PresetInfo {
	out := make([]PresetInfo, 0, len(s.formulas))
	for _, p := range appraisal.Presets() {
		f := s.formulas[p]
		info := PresetInfo{
			Name:           p,
			RequiredFields: f.RequiredFields(),
			UsesRatings:    f.UsesRatings(),
			Default:        p == s.defaultPreset,
		}
		if info.Default {
			out = append([]PresetInfo{info}, out...)
			continue
		}
		out = append(out, info)
	}
	return out
}

// Formatter returns the currency formatter. Nil before Start.
func (s *Service) Formatter() *money.Formatter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.formatter
}

// Appraise validates the inputs and runs the selected formula.
func (s *Service) Appraise(ctx context.Context, preset string, info appraisal.VehicleInfo, ratings appraisal.Ratings) (Appraisal, error) {
	f, err := s.Formula(preset)
	if err != nil {
		s.reject(ctx, err)
		return Appraisal{}, err
	}
	if err := appraisal.Validate(f, info, ratings); err != nil {
		s.reject(ctx, err)
		return Appraisal{}, err
	}

	start := time.Now()
	res := f.Appraise(info, ratings)
	elapsed := time.Since(start)

	items := make([]string, len(res.RepairItems))
	for i, it := range res.RepairItems {
		items[i] = it.Name
	}
	s.metrics.ObserveAppraisal(string(res.Preset), res.MarketPrice, res.IsPurchaseWorthy, items, elapsed)
	s.appraisals.Add(1)
	if res.IsPurchaseWorthy {
		s.worthy.Add(1)
	}

	a := Appraisal{ID: uuid.NewString(), CreatedAt: time.Now().UTC(), Result: res}
	s.log().Debug(ctx, "appraisal computed",
		logger.String("id", a.ID),
		logger.String("preset", string(res.Preset)),
		logger.Int64("marketPrice", res.MarketPrice),
		logger.Int64("profit", res.PotentialProfit),
		logger.Int("repairItems", len(res.RepairItems)),
	)
	return a, nil
}

// Recalculate parses free text overrides. It never fails.
func (s *Service) Recalculate(ctx context.Context, buy, sell, repair string) override.Overrides {
	o := override.FromText(buy, sell, repair)
	s.recalculations.Add(1)
	s.metrics.ObserveProfitRecalculation()
	s.log().Debug(ctx, "profit recalculated",
		logger.Int64("buy", o.BuyPrice),
		logger.Int64("sell", o.SellPrice),
		logger.Int64("repair", o.RepairCost),
		logger.Int64("profit", o.Profit()),
	)
	return o
}

func (s *Service) reject(ctx context.Context, err error) {
	s.rejected.Add(1)
	s.metrics.ObserveValidationFailure(Reason(err))
	s.log().Debug(ctx, "appraisal rejected", logger.Error(err))
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	l := s.logger
	s.mu.RUnlock()
	if l == nil {
		return logger.Get()
	}
	return l
}

// Reason maps a validation error to a short machine readable code.
func Reason(err error) string {
	switch {
	case errors.Is(err, appraisal.ErrMissingField):
		return "missing_field"
	case errors.Is(err, appraisal.ErrInvalidNumber):
		return "invalid_number"
	case errors.Is(err, appraisal.ErrInvalidOption):
		return "invalid_option"
	case errors.Is(err, appraisal.ErrRatingOutOfRange):
		return "rating_out_of_range"
	case errors.Is(err, appraisal.ErrUnknownPreset):
		return "unknown_preset"
	default:
		return "internal"
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":        s.started,
		"defaultPreset":  string(s.defaultPreset),
		"referenceYear":  s.referenceYear,
		"appraisals":     s.appraisals.Load(),
		"purchaseWorthy": s.worthy.Load(),
		"rejected":       s.rejected.Load(),
		"recalculations": s.recalculations.Load(),
	}
	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
		stats["currency"] = s.formatter.Currency()
	}
	return stats
}
