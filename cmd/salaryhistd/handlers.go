package main

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/leeric92/SalaryHistogramExplorer/src/chartimg"
	"github.com/leeric92/SalaryHistogramExplorer/src/config"
	"github.com/leeric92/SalaryHistogramExplorer/src/filter"
	"github.com/leeric92/SalaryHistogramExplorer/src/histogram"
	"github.com/leeric92/SalaryHistogramExplorer/src/render"
	"github.com/leeric92/SalaryHistogramExplorer/src/types"
)

// Handler serves read-only views over the loaded dataset. It starts empty
// and answers 503 until SetDataset delivers the first load; reloads swap
// the dataset atomically under the mutex.
type Handler struct {
	cfg config.Config

	mu    sync.RWMutex
	ds    types.Dataset
	ready bool
}

func NewHandler(cfg config.Config) *Handler {
	return &Handler{cfg: cfg}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/summary", h.GetSummary)
	api.GET("/years", h.GetYears)
	api.GET("/histogram", h.GetHistogram)
	api.GET("/histogram.png", h.GetHistogramPNG)
}

// SetDataset publishes a freshly loaded dataset. The first call flips the
// handler out of its loading state.
func (h *Handler) SetDataset(ds types.Dataset) {
	h.mu.Lock()
	h.ds = ds
	h.ready = true
	h.mu.Unlock()
}

// snapshot returns the current dataset, or ok=false while the initial load
// is still running.
func (h *Handler) snapshot() (types.Dataset, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ds, h.ready
}

func loading(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "loading"})
}

// predicateFromQuery builds the composite filter from the request's query
// parameters. Absent parameters contribute accept-all, mirroring a cleared
// toggle group in the viewer.
func (h *Handler) predicateFromQuery(c echo.Context) filter.Predicate {
	return filter.And(
		filter.ForGroup("year", c.QueryParam("year"), filter.YearEquals(h.cfg.Groups.YearField)),
		filter.ForGroup("experience", c.QueryParam("experience"), filter.FieldEquals(h.cfg.Groups.StringField)),
	)
}

func (h *Handler) binsFromQuery(c echo.Context) int {
	if n, err := strconv.Atoi(c.QueryParam("bins")); err == nil && n > 0 {
		return n
	}
	return h.cfg.Histogram.Bins
}

// GetSummary reports dataset-level facts plus descriptive stats for the
// requested selection.
func (h *Handler) GetSummary(c echo.Context) error {
	ds, ok := h.snapshot()
	if !ok {
		return loading(c)
	}
	pred := h.predicateFromQuery(c)
	filtered := filter.Apply(ds.Records, pred)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"source":       ds.Source,
		"loaded_at":    ds.LoadedAt,
		"rows_dropped": ds.RowsDropped,
		"records":      ds.Len(),
		"filtered":     len(filtered),
		"filter":       pred.Key(),
		"year_span":    histogram.YearSpanLabel(ds, h.cfg.Groups.YearField),
		"stats":        histogram.Stats(filtered, h.cfg.Histogram.Field),
	})
}

// GetYears lists the distinct years and experience levels present, so a
// client can build its own controls without hardcoding them.
func (h *Handler) GetYears(c echo.Context) error {
	ds, ok := h.snapshot()
	if !ok {
		return loading(c)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"years":       histogram.Years(ds, h.cfg.Groups.YearField),
		"experiences": histogram.DistinctStrings(ds, h.cfg.Groups.StringField),
	})
}

func (h *Handler) GetHistogram(c echo.Context) error {
	ds, ok := h.snapshot()
	if !ok {
		return loading(c)
	}
	pred := h.predicateFromQuery(c)
	filtered := filter.Apply(ds.Records, pred)
	hg := histogram.Compute(filtered, histogram.BinConfig{
		Field: h.cfg.Histogram.Field,
		Bins:  h.binsFromQuery(c),
	})
	return c.JSON(http.StatusOK, hg)
}

// GetHistogramPNG renders the same histogram the viewer would show and
// returns it as a PNG, for embedding in dashboards.
func (h *Handler) GetHistogramPNG(c echo.Context) error {
	ds, ok := h.snapshot()
	if !ok {
		return loading(c)
	}
	pred := h.predicateFromQuery(c)
	filtered := filter.Apply(ds.Records, pred)
	hg := histogram.Compute(filtered, histogram.BinConfig{
		Field: h.cfg.Histogram.Field,
		Bins:  h.binsFromQuery(c),
	})
	frame := render.Layout(hg, h.cfg.RenderOptions())
	data, err := chartimg.EncodePNG(frame)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "render failed")
	}
	return c.Blob(http.StatusOK, "image/png", data)
}
