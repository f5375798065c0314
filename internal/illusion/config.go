package illusion

import (
	"image/color"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Config holds every knob of the illusion pipeline. Construct one with
// DefaultConfig, adjust fields, then Validate before rendering. A validated
// Config is read-only for the rest of the pipeline.
type Config struct {
	// Text is the phrase to hide in the illusion.
	Text string

	// FontPath names a TrueType font file on disk. FontData, when non-empty,
	// takes precedence. When both are empty the embedded Go Regular font is
	// used.
	FontPath string
	FontData []byte

	// Side is the pixel side length of the square output canvas.
	Side int

	// CharMax caps the rendered text length (in runes); longer input is
	// truncated with a warning.
	CharMax int

	// CropX and CropY are the horizontal and vertical padding kept around the
	// ink bounding box when fitting and cropping the text strip.
	CropX int
	CropY int

	// DarknessThreshold splits glyph pixels from background: a pixel whose
	// green channel is at or above the threshold becomes transparent,
	// anything darker becomes opaque text color.
	DarknessThreshold int

	TextColor       color.RGBA
	BackgroundColor color.RGBA

	// Rotations is the number of stamped copies, spread over half a turn.
	Rotations int

	// UpperCase folds the text to upper case before rendering.
	UpperCase bool
}

// Defaults matching the reference settings the illusion was tuned with.
const (
	DefaultSide              = 1024
	DefaultCharMax           = 22
	DefaultCropX             = 14
	DefaultCropY             = 5
	DefaultDarknessThreshold = 116
	DefaultRotations         = 6
)

func DefaultConfig() Config {
	return Config{
		Text:              "HELLO WORLD",
		Side:              DefaultSide,
		CharMax:           DefaultCharMax,
		CropX:             DefaultCropX,
		CropY:             DefaultCropY,
		DarknessThreshold: DefaultDarknessThreshold,
		TextColor:         color.RGBA{A: 0xFF},
		BackgroundColor:   color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		Rotations:         DefaultRotations,
		UpperCase:         true,
	}
}

// Validate rejects out-of-range settings. Values are never clamped silently;
// the caller gets an *InvalidParameterError naming the offending field.
func (c Config) Validate() error {
	if c.Side <= 0 {
		return &InvalidParameterError{Param: "Side", Value: c.Side, Reason: "must be positive"}
	}
	if c.CropX < 0 || c.CropX >= c.Side/2 {
		return &InvalidParameterError{Param: "CropX", Value: c.CropX, Reason: "must be in [0, Side/2)"}
	}
	if c.CropY < 0 || c.CropY >= c.Side/2 {
		return &InvalidParameterError{Param: "CropY", Value: c.CropY, Reason: "must be in [0, Side/2)"}
	}
	if c.DarknessThreshold < 0 || c.DarknessThreshold > 255 {
		return &InvalidParameterError{Param: "DarknessThreshold", Value: c.DarknessThreshold, Reason: "must be in [0, 255]"}
	}
	if c.Rotations < 1 {
		return &InvalidParameterError{Param: "Rotations", Value: c.Rotations, Reason: "must be at least 1"}
	}
	if c.CharMax < 1 {
		return &InvalidParameterError{Param: "CharMax", Value: c.CharMax, Reason: "must be at least 1"}
	}
	return nil
}

var upperCaser = cases.Upper(language.Und)

// effectiveText applies case folding and the CharMax truncation policy.
// When truncation happens a single warning is logged.
func (c Config) effectiveText(log Logger) string {
	text := c.Text
	if c.UpperCase {
		text = upperCaser.String(text)
	}
	if utf8.RuneCountInString(text) > c.CharMax {
		runes := []rune(text)
		text = string(runes[:c.CharMax])
		if log != nil {
			log.Warnf("config", "text too long, truncating to %d characters: %q", c.CharMax, text)
		}
	}
	return text
}

// ParseColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA" hex notation (leading
// '#' optional) into an RGBA color.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	var r, g, b uint64
	a := uint64(0xFF)
	var err error
	switch len(hex) {
	case 3:
		if r, err = strconv.ParseUint(hex[0:1], 16, 8); err == nil {
			if g, err = strconv.ParseUint(hex[1:2], 16, 8); err == nil {
				b, err = strconv.ParseUint(hex[2:3], 16, 8)
			}
		}
		r, g, b = r*17, g*17, b*17
	case 6, 8:
		if r, err = strconv.ParseUint(hex[0:2], 16, 8); err == nil {
			if g, err = strconv.ParseUint(hex[2:4], 16, 8); err == nil {
				b, err = strconv.ParseUint(hex[4:6], 16, 8)
			}
		}
		if err == nil && len(hex) == 8 {
			a, err = strconv.ParseUint(hex[6:8], 16, 8)
		}
	default:
		return color.RGBA{}, &InvalidParameterError{Param: "color", Value: s, Reason: "must be #RGB, #RRGGBB or #RRGGBBAA"}
	}
	if err != nil {
		return color.RGBA{}, &InvalidParameterError{Param: "color", Value: s, Reason: "invalid hex digit"}
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
}
