package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/leeric92/SalaryHistogramExplorer/src/config"
	"github.com/leeric92/SalaryHistogramExplorer/src/histogram"
	"github.com/leeric92/SalaryHistogramExplorer/src/types"
)

func rec(year int, exp string, salary float64) types.Record {
	return types.NewRecord(map[string]types.Value{
		"year":       types.YearValue(year),
		"experience": types.StringValue(exp),
		"salary":     types.NumberValue(salary),
	})
}

func testDataset() types.Dataset {
	return types.Dataset{
		Records: []types.Record{
			rec(2012, "junior", 60000),
			rec(2013, "senior", 90000),
			rec(2013, "senior", 95000),
			rec(2013, "junior", 70000),
		},
		Source:   "test.csv",
		LoadedAt: time.Now(),
	}
}

func newTestHandler(t *testing.T, withData bool) *Handler {
	t.Helper()
	h := NewHandler(config.Default())
	if withData {
		h.SetDataset(testDataset())
	}
	return h
}

func doGET(h func(echo.Context) error, target string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	c := e.NewContext(req, rr)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rr
}

func TestEndpointsReport503WhileLoading(t *testing.T) {
	h := newTestHandler(t, false)
	for _, fn := range []func(echo.Context) error{
		h.GetSummary, h.GetYears, h.GetHistogram, h.GetHistogramPNG,
	} {
		rr := doGET(fn, "/")
		if rr.Code != http.StatusServiceUnavailable {
			t.Fatalf("status %d before data ready, want 503", rr.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body["status"] != "loading" {
			t.Fatalf("body %v, want loading marker", body)
		}
	}
}

func TestSummaryCountsAndFilter(t *testing.T) {
	h := newTestHandler(t, true)
	rr := doGET(h.GetSummary, "/api/summary?year=2013&experience=senior")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var body struct {
		Records  int               `json:"records"`
		Filtered int               `json:"filtered"`
		Filter   string            `json:"filter"`
		YearSpan string            `json:"year_span"`
		Stats    histogram.Summary `json:"stats"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Records != 4 || body.Filtered != 2 {
		t.Fatalf("records=%d filtered=%d, want 4/2", body.Records, body.Filtered)
	}
	if body.Filter != "experience=senior;year=2013" {
		t.Fatalf("filter key %q", body.Filter)
	}
	if body.YearSpan != "2012-2013" {
		t.Fatalf("year span %q", body.YearSpan)
	}
	if body.Stats.Count != 2 || body.Stats.Mean != 92500 {
		t.Fatalf("stats %+v", body.Stats)
	}
}

func TestYearsListsDistinctChoices(t *testing.T) {
	h := newTestHandler(t, true)
	rr := doGET(h.GetYears, "/api/years")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var body struct {
		Years       []int    `json:"years"`
		Experiences []string `json:"experiences"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Years) != 2 || body.Years[0] != 2012 || body.Years[1] != 2013 {
		t.Fatalf("years %v", body.Years)
	}
	if len(body.Experiences) != 2 || body.Experiences[0] != "junior" {
		t.Fatalf("experiences %v", body.Experiences)
	}
}

func TestHistogramHonorsBinsParam(t *testing.T) {
	h := newTestHandler(t, true)
	rr := doGET(h.GetHistogram, "/api/histogram?bins=2")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var hg histogram.Histogram
	if err := json.Unmarshal(rr.Body.Bytes(), &hg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(hg.Bins) != 2 {
		t.Fatalf("%d bins, want 2", len(hg.Bins))
	}
	if hg.Total != 4 {
		t.Fatalf("total %d, want 4", hg.Total)
	}
}

func TestHistogramEmptySelectionDegradesGracefully(t *testing.T) {
	h := newTestHandler(t, true)
	rr := doGET(h.GetHistogram, "/api/histogram?year=1999")
	if rr.Code != http.StatusOK {
		t.Fatalf("empty selection must still be 200, got %d", rr.Code)
	}
	var hg histogram.Histogram
	if err := json.Unmarshal(rr.Body.Bytes(), &hg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if hg.Total != 0 || len(hg.Bins) != 0 {
		t.Fatalf("expected empty histogram, got %+v", hg)
	}
}

func TestHistogramPNGReturnsImage(t *testing.T) {
	h := newTestHandler(t, true)
	rr := doGET(h.GetHistogramPNG, "/api/histogram.png")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if ct := rr.Header().Get(echo.HeaderContentType); ct != "image/png" {
		t.Fatalf("content type %q", ct)
	}
	b := rr.Body.Bytes()
	if len(b) < 8 || b[0] != 0x89 || b[1] != 'P' {
		t.Fatalf("body is not a png")
	}
}
