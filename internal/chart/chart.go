package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"VixLens/internal/model"
)

var ErrEmptyBucket = errors.New("bucket has no returns to plot")

// Renderer writes charts as PNG files under Dir.
type Renderer struct {
	Dir    string
	Width  vg.Length
	Height vg.Length
}

func NewRenderer(dir string, widthIn, heightIn float64) *Renderer {
	return &Renderer{
		Dir:    dir,
		Width:  vg.Length(widthIn) * vg.Inch,
		Height: vg.Length(heightIn) * vg.Inch,
	}
}

// ScatterLabels names the two series on the scatter chart.
type ScatterLabels struct {
	Equity     string
	Volatility string
	Period     int
}

// HistogramBins is floor(sqrt(n)), never below one.
func HistogramBins(n int) int {
	return max(1, int(math.Floor(math.Sqrt(float64(n)))))
}

// Scatter plots return percent against volatility level and returns the
// written file path.
func (r *Renderer) Scatter(records []model.ReturnRecord, labels ScatterLabels) (string, error) {
	data := make(plotter.XYs, len(records))
	for i, rec := range records {
		data[i].X = rec.PercentChange
		data[i].Y = rec.Level
	}

	eq, vol := displaySymbol(labels.Equity), displaySymbol(labels.Volatility)
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s Returns vs. %s Prices", eq, vol)
	p.X.Label.Text = fmt.Sprintf("%s Returns (%s) %%", eq, model.PeriodLabel(labels.Period))
	p.Y.Label.Text = fmt.Sprintf("%s Prices", vol)
	p.Add(dashedGrid())

	s, err := plotter.NewScatter(data)
	if err != nil {
		return "", fmt.Errorf("create scatter plot: %w", err)
	}
	s.GlyphStyle.Color = color.RGBA{B: 255, A: 255}
	s.GlyphStyle.Radius = vg.Points(1.5)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)

	name := fmt.Sprintf("scatter_%s_%s_%d.png", fileSymbol(labels.Equity), fileSymbol(labels.Volatility), labels.Period)
	return r.save(p, r.Width, r.Height, name)
}

// Histogram plots the return distribution of bucket index.
func (r *Renderer) Histogram(index int, b model.Bucket) (string, error) {
	if len(b.Returns) == 0 {
		return "", ErrEmptyBucket
	}
	values := make(plotter.Values, len(b.Returns))
	copy(values, b.Returns)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Returns for levels in %s", b)
	p.X.Label.Text = "Return %"
	p.Y.Label.Text = "Count"

	h, err := plotter.NewHist(values, HistogramBins(len(values)))
	if err != nil {
		return "", fmt.Errorf("create histogram plot: %w", err)
	}
	h.FillColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	p.Add(h)

	return r.save(p, r.Width, r.Height*2/3, fmt.Sprintf("bucket_%02d.png", index))
}

func (r *Renderer) save(p *plot.Plot, w, h vg.Length, name string) (string, error) {
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(r.Dir, name)
	if err := p.Save(w, h, path); err != nil {
		return "", fmt.Errorf("save plot (%s): %w", path, err)
	}
	return path, nil
}

func dashedGrid() *plotter.Grid {
	grid := plotter.NewGrid()
	dashes := []vg.Length{vg.Points(2), vg.Points(2)}
	grid.Horizontal.Dashes = dashes
	grid.Vertical.Dashes = dashes
	return grid
}

// displaySymbol drops the index caret and maps ^GSPC to its common name.
func displaySymbol(symbol string) string {
	s := strings.TrimPrefix(symbol, "^")
	if s == "GSPC" {
		return "SPX"
	}
	return s
}

func fileSymbol(symbol string) string {
	return strings.ToLower(strings.TrimPrefix(symbol, "^"))
}
