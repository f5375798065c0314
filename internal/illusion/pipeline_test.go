package illusion

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"
	"strings"
	"testing"
)

func pipelineConfig() Config {
	cfg := DefaultConfig()
	cfg.Text = "HI"
	cfg.Side = 128
	cfg.Rotations = 2
	return cfg
}

func TestRenderDeterministic(t *testing.T) {
	cfg := pipelineConfig()
	pipe, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	pipe.OutputAlpha = true

	first, err := pipe.Render(cfg)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := pipe.Render(cfg)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Equal(first.(*image.NRGBA).Pix, second.(*image.NRGBA).Pix) {
		t.Error("repeated renders are not bit-identical")
	}
}

func TestRenderScenarioTwoStamps(t *testing.T) {
	cfg := pipelineConfig()
	pipe, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	pipe.OutputAlpha = true

	img, err := pipe.Render(cfg)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	final := img.(*image.NRGBA)

	bounds := final.Bounds()
	if bounds.Dx() != cfg.Side || bounds.Dy() != cfg.Side {
		t.Fatalf("output is %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), cfg.Side, cfg.Side)
	}

	// Outside the disk only background may appear.
	bg := color.NRGBA{R: cfg.BackgroundColor.R, G: cfg.BackgroundColor.G, B: cfg.BackgroundColor.B, A: 0xFF}
	r := float64(cfg.Side) / 2
	ink := 0
	for y := 0; y < cfg.Side; y++ {
		for x := 0; x < cfg.Side; x++ {
			px := final.NRGBAAt(x, y)
			outside := math.Hypot(float64(x)-r, float64(y)-r) > r
			if outside && px != bg {
				t.Fatalf("non-background pixel outside disk at (%d,%d): %v", x, y, px)
			}
			if px != bg {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Fatal("render produced no ink at all")
	}

	// The two stamps lie at 0° and 90°: the composite must be the union of
	// the base distortion and its quarter turn.
	text := cfg.effectiveText(nil)
	size, box, err := SolveFontSize(pipe.Engine, cfg, text)
	if err != nil {
		t.Fatalf("SolveFontSize() error = %v", err)
	}
	raster, _, err := pipe.Engine.Rasterize(text, size)
	if err != nil {
		t.Fatalf("Rasterize() error = %v", err)
	}
	base, err := Distort(raster, box, cfg)
	if err != nil {
		t.Fatalf("Distort() error = %v", err)
	}
	quarter := rotateNearest(base, 90)
	clearOutsideDisk(quarter)
	for y := 0; y < cfg.Side; y++ {
		for x := 0; x < cfg.Side; x++ {
			wantInk := base.NRGBAAt(x, y).A != 0 || quarter.NRGBAAt(x, y).A != 0
			gotInk := final.NRGBAAt(x, y) != bg
			if gotInk != wantInk {
				t.Fatalf("stamp mismatch at (%d,%d): got ink %v, want %v", x, y, gotInk, wantInk)
			}
		}
	}
}

func TestRenderTruncationWarnsOnce(t *testing.T) {
	cfg := pipelineConfig()
	cfg.CharMax = 10
	cfg.Text = strings.Repeat("A", 50)

	pipe, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	log := &countingLogger{}
	pipe.Logger = log

	if _, err := pipe.Render(cfg); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if log.warnings != 1 {
		t.Errorf("warnings = %d, want exactly 1", log.warnings)
	}
}

func TestRenderRejectsInvalidConfig(t *testing.T) {
	cfg := pipelineConfig()
	pipe, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	cfg.Rotations = 0
	_, err = pipe.Render(cfg)
	var perr *InvalidParameterError
	if !errors.As(err, &perr) {
		t.Fatalf("Render() error = %v, want *InvalidParameterError", err)
	}
}

func TestNewPipelineValidates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Side = -1
	if _, err := NewPipeline(cfg); err == nil {
		t.Fatal("NewPipeline() accepted an invalid config")
	}
}
