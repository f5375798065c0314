package illusion

import (
	"image"
	"math"
	"strings"
)

// Width classes for the point-size heuristic. Characters not listed weigh
// the same as the medium-narrow class.
var widthClasses = []struct {
	chars  string
	weight int
}{
	{"lij|' ", 37},
	{"![]fI.,:;/\\t", 50},
	{"`-(){}r\"", 60},
	{"*^zcsJkvxy", 85},
	{"aebdhnopqug#$L+<>=?_~FZT0123456789", 95},
	{"BSPEAKVXY&UwNRCHD", 112},
	{"QGOMm%W@", 135},
}

const defaultCharWeight = 50

// EstimatePointSize derives a starting point size from per-character width
// weights. The estimate is only a search origin, never trusted as a fit.
func EstimatePointSize(text string) int {
	total := 0
	for _, r := range text {
		weight := defaultCharWeight
		for _, class := range widthClasses {
			if strings.ContainsRune(class.chars, r) {
				weight = class.weight
				break
			}
		}
		total += weight
	}
	milinches := float64(total) * 6 / 1000
	guess := int(math.Round(280 - 18.7*milinches))
	if guess < 60 {
		return 60
	}
	if guess > 220 {
		return 220
	}
	return guess
}

// Search bounds for SolveFontSize. The decrement is 1 point per iteration,
// so the iteration cap comfortably covers the whole range from the largest
// possible guess down to the floor.
const (
	sizeFloor     = 1
	sizeStep      = 1
	maxSizeSearch = 256
)

// SolveFontSize finds the largest point size whose measured ink bounding box
// plus padding fits the canvas. It starts from the heuristic estimate and
// iterates strictly downward, measuring with the engine at every step. The
// search is hard-bounded: it either returns a fitting size or fails with
// *FontSizeNotFoundError.
func SolveFontSize(engine GlyphEngine, cfg Config, text string) (int, image.Rectangle, error) {
	start := EstimatePointSize(text)
	size := start
	for iter := 0; iter < maxSizeSearch && size >= sizeFloor; iter++ {
		_, box, err := engine.Rasterize(text, size)
		if err != nil {
			return 0, image.Rectangle{}, err
		}
		if box.Dx()+2*cfg.CropX <= cfg.Side && box.Dy()+2*cfg.CropY <= cfg.Side {
			return size, box, nil
		}
		size -= sizeStep
	}
	return 0, image.Rectangle{}, &FontSizeNotFoundError{
		Text:       text,
		Start:      start,
		Floor:      sizeFloor,
		Iterations: maxSizeSearch,
	}
}
