package illusion

import "fmt"

// FontLoadError reports a font that could not be resolved into glyph
// outlines. It is fatal and non-retryable.
type FontLoadError struct {
	Source string // file path or "embedded"/"bytes"
	Err    error
}

func (e *FontLoadError) Error() string {
	return fmt.Sprintf("load font %s: %v", e.Source, e.Err)
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// FontSizeNotFoundError reports that the bounded downward search exhausted
// its floor or iteration budget without finding a size that fits the canvas.
type FontSizeNotFoundError struct {
	Text       string
	Start      int // initial guess the search descended from
	Floor      int
	Iterations int
}

func (e *FontSizeNotFoundError) Error() string {
	return fmt.Sprintf("no font size fits %q: searched downward from %d to floor %d in %d iterations",
		e.Text, e.Start, e.Floor, e.Iterations)
}

// InvalidGeometryError reports a degenerate text strip that cannot be mapped
// onto the disk.
type InvalidGeometryError struct {
	Width  int
	Height int
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("degenerate text strip %dx%d", e.Width, e.Height)
}

// InvalidParameterError reports an out-of-range configuration value. It is
// raised eagerly at validation time, never deferred into the pipeline.
type InvalidParameterError struct {
	Param  string
	Value  interface{}
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Param, e.Value, e.Reason)
}
