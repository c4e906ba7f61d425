package render

import (
	"fmt"
	"strconv"

	"github.com/leeric92/SalaryHistogramExplorer/src/histogram"
)

// Margins is the origin offset between the canvas edge and the plot area.
type Margins struct {
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
}

// Options controls layout geometry and the label-suppression threshold.
type Options struct {
	Width   int
	Height  int
	Margins Margins
	// MinLabelHeight is the smallest bar height (pixels) that still gets a
	// count label. Bars at exactly this height keep their label; shorter
	// bars drop it, since very thin bars cannot host readable text.
	MinLabelHeight float64
	// BarGap is the horizontal gap between adjacent bars.
	BarGap float64
	// YTicks is the desired tick count on the count axis.
	YTicks int
	// Placeholder is the message shown when the histogram has no bins.
	Placeholder string
}

// DefaultOptions matches the viewer's default chart geometry.
func DefaultOptions() Options {
	return Options{
		Width:          900,
		Height:         420,
		Margins:        Margins{Top: 24, Right: 16, Bottom: 48, Left: 56},
		MinLabelHeight: 14,
		BarGap:         2,
		YTicks:         6,
		Placeholder:    "No data for this selection",
	}
}

// Rect is a positioned rectangle in canvas pixels, origin top-left.
type Rect struct {
	X, Y, W, H float64
}

// Bar is one drawable histogram bar. Label is empty when suppressed.
type Bar struct {
	Rect
	Label   string
	Count   int
	Percent float64
}

// Tick is a positioned axis tick with its text label.
type Tick struct {
	Pos   float64
	Label string
}

// Frame is the complete drawable representation of one histogram render:
// bars, both axes' ticks, and the title. A Frame with Placeholder set and
// no bars is the defined empty state.
type Frame struct {
	Width, Height int
	Plot          Rect
	Bars          []Bar
	XTicks        []Tick
	YTicks        []Tick
	Title         string
	Placeholder   string
}

// Layout converts a histogram into a Frame. It is referentially
// transparent: identical histogram and options always produce an identical
// frame, which the tests assert with a deep compare.
func Layout(h histogram.Histogram, opts Options) Frame {
	f := Frame{
		Width:  opts.Width,
		Height: opts.Height,
		Title:  fmt.Sprintf("%s histogram", h.Field),
	}
	inner := Rect{
		X: float64(opts.Margins.Left),
		Y: float64(opts.Margins.Top),
		W: float64(opts.Width - opts.Margins.Left - opts.Margins.Right),
		H: float64(opts.Height - opts.Margins.Top - opts.Margins.Bottom),
	}
	f.Plot = inner

	if h.Empty() {
		f.Placeholder = opts.Placeholder
		return f
	}

	x := NewLinearScale(h.Min, h.Max, inner.X, inner.X+inner.W)
	maxCount := float64(h.MaxCount())
	// count axis: zero anchored, top padded to the next nice tick
	yTickVals := NiceTicks(0, maxCount, opts.YTicks)
	yMax := maxCount
	if n := len(yTickVals); n > 0 && yTickVals[n-1] > yMax {
		yMax = yTickVals[n-1]
	}
	y := NewLinearScale(0, yMax, inner.Y+inner.H, inner.Y)

	for _, b := range h.Bins {
		x0 := x.Apply(b.Low)
		x1 := x.Apply(b.High)
		top := y.Apply(float64(b.Count))
		bar := Bar{
			Rect: Rect{
				X: x0 + opts.BarGap/2,
				Y: top,
				W: (x1 - x0) - opts.BarGap,
				H: (inner.Y + inner.H) - top,
			},
			Count:   b.Count,
			Percent: b.Percent,
		}
		if bar.W < 1 {
			bar.W = 1
		}
		if bar.H >= opts.MinLabelHeight {
			bar.Label = strconv.Itoa(b.Count)
		}
		f.Bars = append(f.Bars, bar)
	}

	// x ticks at each bin edge, thinned when bins are narrow
	edges := binEdges(h)
	stride := 1
	if len(edges) > 1 {
		minGap := 46.0
		for stride < len(edges) && (x.Apply(edges[stride])-x.Apply(edges[0])) < minGap {
			stride++
		}
	}
	for i, e := range edges {
		if i%stride != 0 && i != len(edges)-1 {
			continue
		}
		f.XTicks = append(f.XTicks, Tick{Pos: x.Apply(e), Label: FormatTick(e)})
	}
	for _, v := range yTickVals {
		f.YTicks = append(f.YTicks, Tick{Pos: y.Apply(v), Label: FormatTick(v)})
	}
	return f
}

func binEdges(h histogram.Histogram) []float64 {
	if len(h.Bins) == 0 {
		return nil
	}
	out := make([]float64, 0, len(h.Bins)+1)
	for _, b := range h.Bins {
		out = append(out, b.Low)
	}
	out = append(out, h.Bins[len(h.Bins)-1].High)
	return out
}
