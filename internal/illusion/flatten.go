package illusion

import (
	"image"
	"image/color"
)

// Flatten substitutes the background color for every fully transparent pixel
// and composites partially opaque pixels over the background, producing an
// image with no transparency left. With keepAlpha the result is an NRGBA
// image whose alpha channel is uniformly opaque; otherwise the alpha channel
// is dropped into a plain RGBA buffer. Every written pixel carries a complete
// color tuple including the alpha byte.
func Flatten(acc *image.NRGBA, background color.RGBA, keepAlpha bool) image.Image {
	b := acc.Bounds()
	var out interface {
		image.Image
		Set(x, y int, c color.Color)
	}
	if keepAlpha {
		out = image.NewNRGBA(b)
	} else {
		out = image.NewRGBA(b)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := acc.NRGBAAt(x, y)
			var flat color.RGBA
			switch px.A {
			case 0:
				flat = color.RGBA{R: background.R, G: background.G, B: background.B, A: 0xFF}
			case 0xFF:
				flat = color.RGBA{R: px.R, G: px.G, B: px.B, A: 0xFF}
			default:
				a := uint32(px.A)
				flat = color.RGBA{
					R: uint8((uint32(px.R)*a + uint32(background.R)*(255-a) + 127) / 255),
					G: uint8((uint32(px.G)*a + uint32(background.G)*(255-a) + 127) / 255),
					B: uint8((uint32(px.B)*a + uint32(background.B)*(255-a) + 127) / 255),
					A: 0xFF,
				}
			}
			out.Set(x, y, flat)
		}
	}
	return out
}
