package visual

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"

	"github.com/tabscope-org/tabscope/dataset"
)

// ============================================================================
// HEAT-MAP — Correlation matrix rendering
// ============================================================================
// Axis labels are the participating column names in Dataset order; no
// clustering or reordering is applied. The color range is fixed to
// [-1, 1] so plots of different datasets are comparable.
// ============================================================================

// PlotCorrelationMatrix computes the correlation matrix and renders it
// as a heat-map.
//
// Fails with ErrInsufficientData when fewer than two numeric columns
// exist and ErrRender when the output destination is unwritable.
func PlotCorrelationMatrix(ds *dataset.Dataset, opts ...Option) (*Artifact, error) {
	cfg := applyOptions(opts)

	m, err := Correlate(ds, opts...)
	if err != nil {
		return nil, err
	}
	return renderMatrix(m, cfg)
}

// PlotMatrix renders an already-computed matrix, for callers that need
// both the numbers and the image without computing twice.
func PlotMatrix(m *Matrix, opts ...Option) (*Artifact, error) {
	return renderMatrix(m, applyOptions(opts))
}

func renderMatrix(m *Matrix, cfg *config) (*Artifact, error) {
	pal, err := paletteFor(cfg.palette)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = cfg.title
	if p.Title.Text == "" {
		p.Title.Text = "Correlation Matrix"
	}

	h := plotter.NewHeatMap(corrGrid{m}, pal)
	h.Min = -1
	h.Max = 1
	p.Add(h)

	p.X.Tick.Marker = nameTicks{names: m.Columns}
	p.Y.Tick.Marker = nameTicks{names: m.Columns}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight

	if cfg.annotate {
		labels, err := cellLabels(m)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRender, err)
		}
		p.Add(labels)
	}

	return writeArtifact(p, cfg)
}

// writeArtifact saves the plot to the configured path, or returns an
// in-memory PNG handle when no path is set.
func writeArtifact(p *plot.Plot, cfg *config) (*Artifact, error) {
	if cfg.outputPath != "" {
		if err := p.Save(cfg.width, cfg.height, cfg.outputPath); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRender, cfg.outputPath, err)
		}
		return &Artifact{Path: cfg.outputPath}, nil
	}

	wt, err := p.WriterTo(cfg.width, cfg.height, "png")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return &Artifact{wt: wt}, nil
}

// paletteFor resolves a color scale name.
func paletteFor(name string) (palette.Palette, error) {
	switch name {
	case "", "blue-red":
		cm := moreland.SmoothBlueRed()
		cm.SetMin(-1)
		cm.SetMax(1)
		return cm.Palette(255), nil
	case "kindlmann":
		cm := moreland.Kindlmann()
		cm.SetMin(-1)
		cm.SetMax(1)
		return cm.Palette(255), nil
	case "black-body":
		cm := moreland.BlackBody()
		cm.SetMin(-1)
		cm.SetMax(1)
		return cm.Palette(255), nil
	case "heat":
		return palette.Heat(12, 1), nil
	}
	return nil, fmt.Errorf("%w: unknown palette %q", ErrRender, name)
}

// ============================================================================
// GRID AND TICKS
// ============================================================================

// corrGrid adapts a Matrix to plotter.GridXYZ. Cell (c, r) sits at
// coordinates (c, r) so ticks at integer positions label cell centers.
type corrGrid struct {
	m *Matrix
}

func (g corrGrid) Dims() (c, r int)   { n := len(g.m.Columns); return n, n }
func (g corrGrid) Z(c, r int) float64 { return g.m.Values[r][c] }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

// nameTicks labels integer axis positions with column names.
type nameTicks struct {
	names []string
}

func (n nameTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for i, name := range n.names {
		v := float64(i)
		if v < min || v > max {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: name})
	}
	return ticks
}

// cellLabels builds centered coefficient annotations for each cell.
func cellLabels(m *Matrix) (*plotter.Labels, error) {
	n := len(m.Columns)
	xy := plotter.XYLabels{
		XYs:    make(plotter.XYs, 0, n*n),
		Labels: make([]string, 0, n*n),
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := m.Values[r][c]
			label := "NaN"
			if !math.IsNaN(v) {
				label = fmt.Sprintf("%.2f", v)
			}
			xy.XYs = append(xy.XYs, plotter.XY{X: float64(c), Y: float64(r)})
			xy.Labels = append(xy.Labels, label)
		}
	}

	labels, err := plotter.NewLabels(xy)
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
	}
	return labels, nil
}
