package illusion

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
)

// stripWidthFraction is the share of the canvas side the canonical text
// strip is scaled to span before it is bent around the disk.
const stripWidthFraction = 1.0

// Distort warps the rasterized text into the circular anamorphic shape.
//
// The ink bounding box (expanded by the crop padding) is cut out of the
// raster, scaled to the canonical strip width preserving aspect ratio,
// binarized against the darkness threshold, and then resampled column by
// column so that each destination column's pixels span exactly the chord of
// the disk at that column. Everything outside the disk is fully transparent.
func Distort(raster *image.RGBA, box image.Rectangle, cfg Config) (*image.NRGBA, error) {
	padded := image.Rect(
		box.Min.X-cfg.CropX, box.Min.Y-cfg.CropY,
		box.Max.X+cfg.CropX, box.Max.Y+cfg.CropY,
	).Intersect(raster.Bounds())
	if padded.Dx() <= 0 || padded.Dy() <= 0 {
		return nil, &InvalidGeometryError{Width: padded.Dx(), Height: padded.Dy()}
	}

	stripW := int(math.Round(stripWidthFraction * float64(cfg.Side)))
	stripH := int(math.Round(float64(padded.Dy()) * float64(stripW) / float64(padded.Dx())))
	if stripW <= 0 || stripH <= 0 {
		return nil, &InvalidGeometryError{Width: stripW, Height: stripH}
	}

	strip := image.NewRGBA(image.Rect(0, 0, stripW, stripH))
	xdraw.CatmullRom.Scale(strip, strip.Bounds(), raster, padded, xdraw.Src, nil)

	mask := binarize(strip, cfg.DarknessThreshold, cfg.TextColor)

	dst := image.NewNRGBA(image.Rect(0, 0, cfg.Side, cfg.Side))
	radius := float64(cfg.Side) / 2
	for x := 0; x < cfg.Side; x++ {
		u := float64(x) - radius
		chordSq := radius*radius - u*u
		if chordSq < 0 {
			continue
		}
		half := math.Sqrt(chordSq)
		yLo := int(math.Ceil(radius - half))
		yHi := int(math.Floor(radius + half))
		if yLo < 0 {
			yLo = 0
		}
		if yHi > cfg.Side-1 {
			yHi = cfg.Side - 1
		}
		rows := yHi - yLo + 1
		if rows <= 0 {
			continue
		}
		sx := x * stripW / cfg.Side
		if sx > stripW-1 {
			sx = stripW - 1
		}
		for j := 0; j < rows; j++ {
			sy := j * stripH / rows
			dst.SetNRGBA(x, yLo+j, mask.NRGBAAt(sx, sy))
		}
	}
	return dst, nil
}

// binarize applies the two-level opacity rule: a strip pixel whose green
// channel is at or above the threshold becomes fully transparent, anything
// darker becomes opaque text color. No intermediate alpha is produced.
func binarize(strip *image.RGBA, threshold int, textColor color.RGBA) *image.NRGBA {
	b := strip.Bounds()
	out := image.NewNRGBA(b)
	opaque := color.NRGBA{R: textColor.R, G: textColor.G, B: textColor.B, A: 0xFF}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if int(strip.RGBAAt(x, y).G) >= threshold {
				continue // stays zero, fully transparent
			}
			out.SetNRGBA(x, y, opaque)
		}
	}
	return out
}
