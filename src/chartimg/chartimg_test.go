package chartimg

import (
	"testing"

	"github.com/leeric92/SalaryHistogramExplorer/src/histogram"
	"github.com/leeric92/SalaryHistogramExplorer/src/render"
)

func testFrame() render.Frame {
	h := histogram.Histogram{
		Field: "salary",
		Min:   80000,
		Max:   95000,
		Total: 3,
		Bins: []histogram.Bin{
			{Low: 80000, High: 87500, Count: 1, Percent: 33.3},
			{Low: 87500, High: 95000, Count: 2, Percent: 66.7},
		},
	}
	return render.Layout(h, render.DefaultOptions())
}

// Smoke test: rasterization must never return nil, even on odd inputs;
// the UI swaps the returned image in unconditionally.
func TestRasterizeSmoke(t *testing.T) {
	f := testFrame()
	img := Rasterize(f)
	if img == nil {
		t.Fatalf("expected non-nil image")
	}
	b := img.Bounds()
	if b.Dx() != f.Width || b.Dy() != f.Height {
		t.Fatalf("image %dx%d, frame %dx%d", b.Dx(), b.Dy(), f.Width, f.Height)
	}
}

func TestRasterizePlaceholderFrame(t *testing.T) {
	f := render.Layout(histogram.Histogram{Field: "salary"}, render.DefaultOptions())
	if f.Placeholder == "" {
		t.Fatalf("test setup: expected a placeholder frame")
	}
	img := Rasterize(f)
	if img == nil {
		t.Fatalf("placeholder frame must still produce an image")
	}
}

func TestEncodePNGProducesData(t *testing.T) {
	data, err := EncodePNG(testFrame())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("empty png output")
	}
	// png magic
	if data[0] != 0x89 || data[1] != 'P' {
		t.Fatalf("output is not a png (starts %x)", data[:2])
	}
}

func TestBlankDimensions(t *testing.T) {
	img := Blank(320, 200)
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 200 {
		t.Fatalf("blank %dx%d", b.Dx(), b.Dy())
	}
	// zero sizes fall back to a usable canvas
	if b := Blank(0, 0).Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		t.Fatalf("zero-size blank not clamped")
	}
}

func TestCaptionKeepsBounds(t *testing.T) {
	base := Blank(400, 120)
	img := Caption(base, "render failed")
	if img == nil {
		t.Fatalf("caption returned nil")
	}
	if img.Bounds() != base.Bounds() {
		t.Fatalf("caption changed bounds: %v vs %v", img.Bounds(), base.Bounds())
	}
	if Caption(base, "  ") != base {
		t.Fatalf("blank caption should return the image unchanged")
	}
}
