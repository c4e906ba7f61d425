// Package chartimg is the contained imperative-drawing boundary. It takes a
// pure render.Frame and rasterizes it with go-chart's low-level renderer,
// the way an external drawing routine is handed ownership of a bounded
// canvas region. It is re-invoked wholesale on every state change — the
// previous image is discarded, never patched — and its side effects stop at
// the returned image. Errors degrade to a blank image with a caption;
// drawing never panics the pipeline.
package chartimg

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/leeric92/SalaryHistogramExplorer/src/logging"
	"github.com/leeric92/SalaryHistogramExplorer/src/render"
)

var (
	barFill    = drawing.Color{R: 70, G: 130, B: 180, A: 255}
	barStroke  = drawing.Color{R: 36, G: 78, B: 112, A: 255}
	axisColor  = drawing.Color{R: 51, G: 51, B: 51, A: 255}
	labelColor = drawing.ColorBlack
	gridColor  = drawing.Color{R: 0, G: 0, B: 0, A: 24}
)

// Rasterize draws the frame and returns the finished image. A frame in the
// placeholder state yields a blank canvas with the placeholder message; a
// renderer failure yields a blank canvas with an error caption.
func Rasterize(f render.Frame) image.Image {
	img, err := rasterize(f)
	if err != nil {
		logging.Errorf("chartimg: render failed: %v; showing blank fallback", err)
		return Caption(Blank(f.Width, f.Height), "chart render failed")
	}
	return img
}

func rasterize(f render.Frame) (image.Image, error) {
	r, err := chart.PNG(f.Width, f.Height)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}
	r.SetFont(font)

	// background
	r.SetFillColor(drawing.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(f.Width, 0)
	r.LineTo(f.Width, f.Height)
	r.LineTo(0, f.Height)
	r.Close()
	r.Fill()

	plot := f.Plot

	if f.Placeholder != "" {
		r.SetFontColor(drawing.Color{R: 120, G: 120, B: 120, A: 255})
		r.SetFontSize(16)
		box := r.MeasureText(f.Placeholder)
		r.Text(f.Placeholder, f.Width/2-box.Width()/2, f.Height/2)
		return save(r)
	}

	// horizontal grid lines behind the bars
	r.SetStrokeColor(gridColor)
	r.SetStrokeWidth(1)
	for _, t := range f.YTicks {
		r.MoveTo(int(plot.X), int(t.Pos))
		r.LineTo(int(plot.X+plot.W), int(t.Pos))
		r.Stroke()
	}

	// bars
	for _, b := range f.Bars {
		r.SetFillColor(barFill)
		r.SetStrokeColor(barStroke)
		r.SetStrokeWidth(1)
		r.MoveTo(int(b.X), int(b.Y))
		r.LineTo(int(b.X+b.W), int(b.Y))
		r.LineTo(int(b.X+b.W), int(b.Y+b.H))
		r.LineTo(int(b.X), int(b.Y+b.H))
		r.Close()
		r.FillStroke()
	}

	// axis lines
	r.SetStrokeColor(axisColor)
	r.SetStrokeWidth(1)
	r.MoveTo(int(plot.X), int(plot.Y))
	r.LineTo(int(plot.X), int(plot.Y+plot.H))
	r.LineTo(int(plot.X+plot.W), int(plot.Y+plot.H))
	r.Stroke()

	// tick labels
	r.SetFontColor(labelColor)
	r.SetFontSize(10)
	for _, t := range f.XTicks {
		box := r.MeasureText(t.Label)
		r.Text(t.Label, int(t.Pos)-box.Width()/2, int(plot.Y+plot.H)+16)
	}
	for _, t := range f.YTicks {
		box := r.MeasureText(t.Label)
		r.Text(t.Label, int(plot.X)-box.Width()-8, int(t.Pos)+4)
	}

	// bar count labels last so they sit on top; suppressed labels arrive
	// here already empty
	r.SetFontSize(10)
	for _, b := range f.Bars {
		if b.Label == "" {
			continue
		}
		box := r.MeasureText(b.Label)
		y := int(b.Y) + 13
		if float64(box.Height()) > b.H {
			continue
		}
		r.Text(b.Label, int(b.X+b.W/2)-box.Width()/2, y)
	}

	// title
	if f.Title != "" {
		r.SetFontSize(13)
		box := r.MeasureText(f.Title)
		r.Text(f.Title, f.Width/2-box.Width()/2, 16)
	}
	return save(r)
}

func save(r chart.Renderer) (image.Image, error) {
	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// Blank returns a plain light canvas of the requested size, used as the
// fallback surface when rasterization fails.
func Blank(w, h int) image.Image {
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 320
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 245, G: 245, B: 245, A: 255})
		}
	}
	return img
}

// EncodePNG renders the frame straight to PNG bytes, for the HTTP daemon
// and the viewer's export path.
func EncodePNG(f render.Frame) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Rasterize(f)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
