package illusion

import (
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// GlyphEngine is the narrow capability interface the pipeline needs from a
// text rasterizer: draw a string at a point size onto a fresh canvas and
// report the tight ink bounding box of the glyphs actually drawn. An
// implementation must be a pure function of (text, pointSize) so repeated
// calls are bit-identical.
type GlyphEngine interface {
	Rasterize(text string, pointSize int) (*image.RGBA, image.Rectangle, error)
}

const glyphDPI = 72

// Freetype rasterizes text with the freetype glyph renderer onto a square
// canvas taken from the Config. It implements GlyphEngine.
type Freetype struct {
	font       *truetype.Font
	side       int
	text       color.RGBA
	background color.RGBA
}

// NewFreetype resolves the configured font into glyph outlines. Resolution
// order: Config.FontData, Config.FontPath, embedded Go Regular.
func NewFreetype(cfg Config) (*Freetype, error) {
	data := cfg.FontData
	source := "bytes"
	if len(data) == 0 && cfg.FontPath != "" {
		b, err := os.ReadFile(cfg.FontPath)
		if err != nil {
			return nil, &FontLoadError{Source: cfg.FontPath, Err: err}
		}
		data = b
		source = cfg.FontPath
	}
	if len(data) == 0 {
		data = goregular.TTF
		source = "embedded"
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, &FontLoadError{Source: source, Err: err}
	}
	return &Freetype{
		font:       f,
		side:       cfg.Side,
		text:       cfg.TextColor,
		background: cfg.BackgroundColor,
	}, nil
}

// Rasterize draws text horizontally centered with the baseline on the canvas
// center line, then scans for the ink bounding box. The returned box is empty
// when the text left no ink.
func (e *Freetype) Rasterize(text string, pointSize int) (*image.RGBA, image.Rectangle, error) {
	img := image.NewRGBA(image.Rect(0, 0, e.side, e.side))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: e.background}, image.Point{}, draw.Src)

	// Measure first so the string can be centered before drawing.
	face := truetype.NewFace(e.font, &truetype.Options{
		Size:    float64(pointSize),
		DPI:     glyphDPI,
		Hinting: font.HintingFull,
	})
	defer face.Close()
	width := font.MeasureString(face, text).Ceil()

	c := freetype.NewContext()
	c.SetDPI(glyphDPI)
	c.SetFont(e.font)
	c.SetFontSize(float64(pointSize))
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(&image.Uniform{C: e.text})
	c.SetHinting(font.HintingFull)

	pt := freetype.Pt((e.side-width)/2, e.side/2)
	if _, err := c.DrawString(text, pt); err != nil {
		return nil, image.Rectangle{}, &FontLoadError{Source: "glyphs", Err: err}
	}

	return img, inkBounds(img, e.background), nil
}

// inkBounds returns the tight rectangle enclosing every pixel that differs
// from the background color, or the empty rectangle when there is none.
func inkBounds(img *image.RGBA, bg color.RGBA) image.Rectangle {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		row := img.Pix[off : off+b.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			if row[x] == bg.R && row[x+1] == bg.G && row[x+2] == bg.B {
				continue
			}
			px := b.Min.X + x/4
			if px < minX {
				minX = px
			}
			if px > maxX {
				maxX = px
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < minX || maxY < minY {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}
