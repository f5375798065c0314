package illusion

import (
	"image"
	"math"
)

// Stamp composites rotations copies of the distorted image, the i-th rotated
// by i*180/rotations degrees about the canvas center, into a fresh
// accumulator. Stamping runs sequentially in index order; overlapping ink
// resolves to the union of all stamps.
func Stamp(distorted *image.NRGBA, rotations int) *image.NRGBA {
	acc := image.NewNRGBA(distorted.Bounds())
	for i := 0; i < rotations; i++ {
		angle := float64(i) * 180 / float64(rotations)
		layer := rotateNearest(distorted, angle)
		clearOutsideDisk(layer)
		compositeOver(acc, layer)
	}
	return acc
}

// clearOutsideDisk forces full transparency outside the inscribed disk.
// Nearest-neighbor rotation can drag a boundary pixel a fraction outward;
// the accumulator's exterior must stay transparent regardless.
func clearOutsideDisk(img *image.NRGBA) {
	b := img.Bounds()
	r := float64(b.Dx()) / 2
	for y := b.Min.Y; y < b.Max.Y; y++ {
		v := float64(y-b.Min.Y) - r
		for x := b.Min.X; x < b.Max.X; x++ {
			u := float64(x-b.Min.X) - r
			if u*u+v*v > r*r {
				i := img.PixOffset(x, y)
				img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0, 0, 0, 0
			}
		}
	}
}

// rotateNearest rotates src counter-clockwise by degrees about the image
// center using inverse-mapped nearest-neighbor sampling. Alpha bytes are
// copied verbatim, so a binary mask stays binary with no halo pixels. A zero
// angle is an exact identity.
func rotateNearest(src *image.NRGBA, degrees float64) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	cx := float64(b.Min.X) + float64(b.Dx())/2
	cy := float64(b.Min.Y) + float64(b.Dy())/2
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		fy := float64(y) + 0.5 - cy
		for x := b.Min.X; x < b.Max.X; x++ {
			fx := float64(x) + 0.5 - cx
			sx := int(math.Floor(cx + fx*cos - fy*sin))
			sy := int(math.Floor(cy + fx*sin + fy*cos))
			if sx < b.Min.X || sx >= b.Max.X || sy < b.Min.Y || sy >= b.Max.Y {
				continue
			}
			dst.SetNRGBA(x, y, src.NRGBAAt(sx, sy))
		}
	}
	return dst
}

// compositeOver applies the standard "over" operator, src onto dst, in
// place. Both images must share identical bounds.
func compositeOver(dst, src *image.NRGBA) {
	n := len(dst.Pix)
	for i := 0; i+3 < n; i += 4 {
		sa := uint32(src.Pix[i+3])
		if sa == 0 {
			continue
		}
		if sa == 0xFF {
			copy(dst.Pix[i:i+4], src.Pix[i:i+4])
			continue
		}
		da := uint32(dst.Pix[i+3])
		outA := sa*255 + da*(255-sa) // alpha scaled by 255
		for c := 0; c < 3; c++ {
			sc := uint32(src.Pix[i+c])
			dc := uint32(dst.Pix[i+c])
			dst.Pix[i+c] = uint8((sc*sa*255 + dc*da*(255-sa) + outA/2) / outA)
		}
		dst.Pix[i+3] = uint8((outA + 127) / 255)
	}
}
