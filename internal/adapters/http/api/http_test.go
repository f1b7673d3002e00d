package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/okian/appraisal/internal/adapters/http/api"
	service "github.com/okian/appraisal/internal/app"
	"github.com/okian/appraisal/internal/domain/appraisal"
	"github.com/okian/appraisal/internal/domain/override"
	"github.com/okian/appraisal/internal/money"
	"github.com/okian/appraisal/pkg/logger"
	"github.com/okian/appraisal/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const ratedBody = `{
	"vehicle": {"make": "Toyota", "model": "Camry", "year": "2020", "body_type": "sedan", "transmission": "automatic"},
	"ratings": {"exterior": 5, "interior": 5, "history": 5, "engine": 5, "documents": 5}
}`

func newMux(maxBody int64) (*http.ServeMux, *service.Service) {
	svc := service.New(
		service.WithReferenceYear(2025),
		service.WithMetrics(metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))),
	)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc, maxBody).Register(context.Background(), mux)
	return mux, svc
}

func do(mux http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux, svc := newMux(0)
		defer svc.Stop()

		Convey("Then health endpoint should expose metrics", func() {
			w, _ := do(mux, "GET", "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And stats endpoint should report the service counters", func() {
			w, body := do(mux, "GET", "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(body["started"], ShouldEqual, true)
			So(body, ShouldContainKey, "appraisals")
			So(body, ShouldContainKey, "serverTime")
		})

		Convey("And presets endpoint should list formulas and tables", func() {
			w, body := do(mux, "GET", "/presets", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			presets := body["presets"].([]any)
			So(presets, ShouldHaveLength, 2)
			So(presets[0].(map[string]any)["name"], ShouldEqual, "rated")
			So(body["makes"].(map[string]any)["toyota"], ShouldEqual, 300_000_000)
			So(body["conditions"], ShouldHaveLength, 4)
		})

		Convey("And dashboard endpoint should serve HTML with refresh control", func() {
			w, _ := do(mux, "GET", "/dashboard", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `id="refresh-interval"`)
			So(w.Body.String(), ShouldContainSubstring, `id="refresh-control"`)
		})

		Convey("And unknown paths are not found", func() {
			w, _ := do(mux, "GET", "/unknown", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And wrong methods are not found", func() {
			w, _ := do(mux, "GET", "/appraisals", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			w, _ = do(mux, "POST", "/presets", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestAppraisalsHandler(t *testing.T) {
	Convey("Given the appraisals endpoint", t, func() {
		mux, svc := newMux(0)
		defer svc.Stop()

		Convey("When posting a complete rated submission", func() {
			w, body := do(mux, "POST", "/appraisals", ratedBody)

			Convey("Then the result and its formatted figures are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body["id"], ShouldNotBeEmpty)
				So(body["preset"], ShouldEqual, "rated")
				So(body["market_price"], ShouldEqual, 180_000_000)
				So(body["recommended_buy_price"], ShouldEqual, 162_000_000)
				So(body["recommended_sell_price"], ShouldEqual, 198_000_000)
				So(body["potential_profit"], ShouldEqual, 36_000_000)
				So(body["is_purchase_worthy"], ShouldEqual, true)
				So(body["profit_tier"], ShouldEqual, "good")

				formatted := body["formatted"].(map[string]any)
				So(formatted["market_price"], ShouldStartWith, "Rp ")
			})
		})

		Convey("When posting a mileage submission", func() {
			w, body := do(mux, "POST", "/appraisals", `{
				"preset": "mileage",
				"vehicle": {"make": "Toyota", "model": "Avanza", "year": "2022", "mileage": "50000", "condition": "good"}
			}`)

			Convey("Then ratings are not required", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body["market_price"], ShouldEqual, 176_000_000)
				So(body["worthiness_evaluated"], ShouldEqual, false)
			})
		})

		Convey("When a required field is missing", func() {
			w, body := do(mux, "POST", "/appraisals", strings.Replace(ratedBody, `"Camry"`, `""`, 1))

			Convey("Then a 400 names the reason", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(body["code"], ShouldEqual, "missing_field")
				So(body["message"], ShouldContainSubstring, "model")
			})
		})

		Convey("When a rating is out of range", func() {
			w, body := do(mux, "POST", "/appraisals", strings.Replace(ratedBody, `"engine": 5`, `"engine": 7`, 1))

			Convey("Then request validation rejects it", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(body["code"], ShouldEqual, "invalid_request")
			})
		})

		Convey("When the preset is unknown", func() {
			w, body := do(mux, "POST", "/appraisals", `{"preset": "vibes", "vehicle": {}}`)

			Convey("Then a 400 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(body["code"], ShouldEqual, "unknown_preset")
			})
		})

		Convey("When the body is malformed", func() {
			w, body := do(mux, "POST", "/appraisals", `{"vehicle": `)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(body["code"], ShouldEqual, "bad_request")
		})

		Convey("When the body is empty", func() {
			w, body := do(mux, "POST", "/appraisals", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(body["message"], ShouldContainSubstring, "empty body")
		})

		Convey("When the body has unknown fields", func() {
			w, _ := do(mux, "POST", "/appraisals", `{"colour": "red"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})

	Convey("Given a server with a tiny body limit", t, func() {
		mux, svc := newMux(16)
		defer svc.Stop()

		w, body := do(mux, "POST", "/appraisals", ratedBody)
		So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
		So(body["code"], ShouldEqual, "too_large")
	})
}

func TestProfitHandler(t *testing.T) {
	Convey("Given the profit endpoint", t, func() {
		mux, svc := newMux(0)
		defer svc.Stop()

		Convey("When posting edited figures as free text", func() {
			w, body := do(mux, "POST", "/appraisals/profit",
				`{"buy_price": "Rp 100.000.000", "sell_price": "105000000", "repair_cost": "abc"}`)

			Convey("Then the figures are parsed and profit recomputed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body["buy_price"], ShouldEqual, 100_000_000)
				So(body["repair_cost"], ShouldEqual, 0)
				So(body["profit"], ShouldEqual, 5_000_000)
				So(body["margin"], ShouldEqual, 5)
				So(body["tier"], ShouldEqual, "moderate")
				So(svc.GetStats()["recalculations"], ShouldEqual, 1)
			})
		})

		Convey("When the buy price is blank", func() {
			w, body := do(mux, "POST", "/appraisals/profit", `{"buy_price": "", "sell_price": "5", "repair_cost": ""}`)

			Convey("Then the margin is zero", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body["margin"], ShouldEqual, 0)
				So(body["tier"], ShouldEqual, "negative")
			})
		})

		Convey("When a figure is absurdly long", func() {
			w, body := do(mux, "POST", "/appraisals/profit", `{"buy_price": "`+strings.Repeat("9", 100)+`"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(body["code"], ShouldEqual, "invalid_request")
		})
	})
}

type failingDeps struct{}

func (failingDeps) Appraise(context.Context, string, appraisal.VehicleInfo, appraisal.Ratings) (api.Appraisal, error) {
	return api.Appraisal{}, errors.New("boom")
}

func (failingDeps) Recalculate(context.Context, string, string, string) override.Overrides {
	return override.Overrides{}
}

func (failingDeps) Presets() []api.PresetInfo { return nil }

func (failingDeps) Formatter() *money.Formatter { return nil }

func (failingDeps) GetStats() map[string]any { return map[string]any{} }

func TestAppraisalsHandler_InternalError(t *testing.T) {
	Convey("Given dependencies that fail unexpectedly", t, func() {
		mux := http.NewServeMux()
		deps := failingDeps{}
		api.NewServer(deps, deps, 0).Register(context.Background(), mux)

		w, body := do(mux, "POST", "/appraisals", ratedBody)

		Convey("Then a 500 is returned", func() {
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(body["code"], ShouldEqual, "internal_error")
		})
	})
}
