package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xtding233/gacha-forecast/internal/catalog"
	"github.com/xtding233/gacha-forecast/internal/config"
	"github.com/xtding233/gacha-forecast/internal/forecast"
	"github.com/xtding233/gacha-forecast/internal/gacha"
)

const maxBody = 1 << 20

// forecastReq is the body of POST /forecast.
type forecastReq struct {
	forecast.Request
	Trials *int    `json:"trials,omitempty"`
	Seed   *uint64 `json:"seed,omitempty"`
}

// planReq is the body of POST /plan: a run file plus run options.
type planReq struct {
	Run    catalog.RawRun `yaml:"run"`
	Trials *int           `yaml:"trials,omitempty"`
	Seed   *uint64        `yaml:"seed,omitempty"`
}

type errResp struct {
	Err string `json:"err"`
}

type handler struct {
	loader *catalog.Loader
	cfg    config.Server
}

func newHandler(loader *catalog.Loader, cfg config.Server) http.Handler {
	h := &handler{loader: loader, cfg: cfg}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /forecast", h.handleForecast)
	mux.HandleFunc("POST /plan", h.handlePlan)
	mux.HandleFunc("GET /patches", h.handlePatches)
	return mux
}

// explicit request, no catalog
func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	var body forecastReq
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Err: "invalid json: " + err.Error()})
		return
	}
	h.forecast(w, r, body.Request, body.Trials, body.Seed)
}

// run file resolved against the catalog; YAML or JSON
func (h *handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	b, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Err: err.Error()})
		return
	}
	var body planReq
	if err := yaml.Unmarshal(b, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Err: "invalid body: " + err.Error()})
		return
	}
	if err := catalog.ValidateRun(body.Run); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Err: err.Error()})
		return
	}
	cat, err := h.loader.LoadCatalog(h.cfg.Catalog)
	if err != nil {
		slog.Error("load catalog", "path", h.cfg.Catalog, "err", err)
		writeJSON(w, http.StatusServiceUnavailable, errResp{Err: "catalog unavailable"})
		return
	}
	req, err := catalog.Resolve(cat, body.Run, catalog.Overrides{})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Err: err.Error()})
		return
	}
	h.forecast(w, r, req, body.Trials, body.Seed)
}

func (h *handler) handlePatches(w http.ResponseWriter, r *http.Request) {
	cat, err := h.loader.LoadCatalog(h.cfg.Catalog)
	if err != nil {
		slog.Error("load catalog", "path", h.cfg.Catalog, "err", err)
		writeJSON(w, http.StatusServiceUnavailable, errResp{Err: "catalog unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, cat.Patches)
}

func (h *handler) forecast(w http.ResponseWriter, r *http.Request, req forecast.Request, trials *int, seed *uint64) {
	opts := []forecast.Option{forecast.WithWorkers(h.cfg.Workers)}
	if trials != nil {
		// worst mode always plays one trial
		if req.Mode != gacha.ModeWorst && *trials > h.cfg.MaxTrials {
			writeJSON(w, http.StatusBadRequest, errResp{Err: "trials exceeds server limit"})
			return
		}
		opts = append(opts, forecast.WithTrials(*trials))
	}
	if seed != nil {
		opts = append(opts, forecast.WithSeed(*seed))
	}

	start := time.Now()
	rep, err := forecast.Run(r.Context(), req, opts...)
	switch {
	case errors.Is(err, forecast.ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, errResp{Err: err.Error()})
		return
	case err != nil:
		slog.Error("forecast failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errResp{Err: "forecast failed"})
		return
	}
	slog.Info("forecast",
		"mode", req.Mode,
		"patches", len(req.Patches),
		"trials", rep.Total,
		"success_rate", rep.SuccessRate,
		"took", time.Since(start),
	)
	writeJSON(w, http.StatusOK, rep)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
