package visual

import "gonum.org/v1/plot/vg"

// ============================================================================
// VISUAL OPTIONS — Functional options for plotting
// ============================================================================

// Option configures plotting via the functional options pattern.
type Option func(*config)

type config struct {
	outputPath string
	annotate   bool
	width      vg.Length
	height     vg.Length
	palette    string
	policy     MissingPolicy
	title      string
	bins       int
}

// WithOutputPath writes the artifact to the given file path; the image
// format follows the path's extension. Without it the artifact is an
// in-memory PNG handle.
func WithOutputPath(path string) Option {
	return func(c *config) { c.outputPath = path }
}

// WithAnnotations prints each coefficient in its heat-map cell.
func WithAnnotations() Option {
	return func(c *config) { c.annotate = true }
}

// WithSize sets the figure size.
func WithSize(width, height vg.Length) Option {
	return func(c *config) {
		c.width = width
		c.height = height
	}
}

// WithPalette selects the color scale: "blue-red" (diverging, default),
// "kindlmann", "black-body", or "heat".
func WithPalette(name string) Option {
	return func(c *config) { c.palette = name }
}

// WithMissingPolicy selects how missing values are excluded from the
// correlation computation. Default is PairwiseComplete.
func WithMissingPolicy(p MissingPolicy) Option {
	return func(c *config) { c.policy = p }
}

// WithTitle overrides the plot title.
func WithTitle(title string) Option {
	return func(c *config) { c.title = title }
}

// WithBins sets the histogram bin count for distribution plots.
func WithBins(n int) Option {
	return func(c *config) { c.bins = n }
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		width:   8 * vg.Inch,
		height:  6 * vg.Inch,
		palette: "blue-red",
		bins:    30,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
