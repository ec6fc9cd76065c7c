package visual

import (
	"fmt"
	"io"
)

// Artifact is a rendered image. It is either saved at Path, or held in
// memory and writable via WriteTo when no output path was configured.
// The renderer keeps no reference to it after returning.
type Artifact struct {
	// Path is the saved file location, empty for in-memory artifacts.
	Path string

	wt io.WriterTo
}

// InMemory reports whether the artifact is an in-memory handle.
func (a *Artifact) InMemory() bool { return a.wt != nil }

// WriteTo writes an in-memory artifact (PNG bytes) to w.
func (a *Artifact) WriteTo(w io.Writer) (int64, error) {
	if a.wt == nil {
		return 0, fmt.Errorf("artifact was saved to %s, not held in memory", a.Path)
	}
	return a.wt.WriteTo(w)
}
