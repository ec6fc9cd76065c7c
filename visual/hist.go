package visual

import (
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/tabscope-org/tabscope/dataset"
)

// ============================================================================
// DISTRIBUTIONS — Histogram grid over numeric columns
// ============================================================================

// histCols is the number of histogram panels per grid row.
const histCols = 3

// PlotDistributions renders a histogram per numeric column, tiled three
// per row into a single image.
//
// Fails with ErrInsufficientData when no numeric column exists and
// ErrRender when the output destination is unwritable.
func PlotDistributions(ds *dataset.Dataset, opts ...Option) (*Artifact, error) {
	cfg := applyOptions(opts)

	cols := ds.NumericColumns()
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: no numeric columns", ErrInsufficientData)
	}

	nCols := histCols
	if len(cols) < nCols {
		nCols = len(cols)
	}
	nRows := (len(cols) + nCols - 1) / nCols

	plots := make([][]*plot.Plot, nRows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, nCols)
	}

	for i, col := range cols {
		p := plot.New()
		p.Title.Text = col.Name
		p.Y.Label.Text = "count"

		values := col.Floats()
		if len(values) > 0 {
			h, err := plotter.NewHist(plotter.Values(values), cfg.bins)
			if err != nil {
				return nil, fmt.Errorf("%w: column %q: %v", ErrRender, col.Name, err)
			}
			p.Add(h)
		}

		plots[i/nCols][i%nCols] = p
	}

	img := vgimg.New(cfg.width, cfg.height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: nRows,
		Cols: nCols,
		PadX: vgimg.DefaultDPI / 16,
		PadY: vgimg.DefaultDPI / 16,
	}

	canvases := plot.Align(plots, tiles, dc)
	for r := range plots {
		for c := range plots[r] {
			if plots[r][c] != nil {
				plots[r][c].Draw(canvases[r][c])
			}
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	if cfg.outputPath == "" {
		return &Artifact{wt: png}, nil
	}

	f, err := os.Create(cfg.outputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRender, cfg.outputPath, err)
	}
	defer f.Close()
	if _, err := png.WriteTo(f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRender, cfg.outputPath, err)
	}
	return &Artifact{Path: cfg.outputPath}, nil
}
