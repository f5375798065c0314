package illusion

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"
)

// solidRaster returns an S x S canvas filled with fill and the given ink box.
func solidRaster(side int, fill color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: fill}, image.Point{}, draw.Src)
	return img
}

func distortConfig(side int) Config {
	cfg := DefaultConfig()
	cfg.Side = side
	cfg.CropX = 4
	cfg.CropY = 2
	return cfg
}

func TestDistortDiskInvariant(t *testing.T) {
	cfg := distortConfig(128)
	raster := solidRaster(cfg.Side, color.RGBA{A: 0xFF}) // all ink
	dst, err := Distort(raster, image.Rect(10, 50, 110, 70), cfg)
	if err != nil {
		t.Fatalf("Distort() error = %v", err)
	}

	r := float64(cfg.Side) / 2
	for y := 0; y < cfg.Side; y++ {
		for x := 0; x < cfg.Side; x++ {
			dx := float64(x) - r
			dy := float64(y) - r
			if math.Hypot(dx, dy) > r && dst.NRGBAAt(x, y).A != 0 {
				t.Fatalf("opaque pixel outside disk at (%d,%d)", x, y)
			}
		}
	}
}

func TestDistortChordHeights(t *testing.T) {
	cfg := distortConfig(128)
	// A fully dark raster binarizes to a fully opaque strip, so the opaque
	// pixel count per column is exactly the mapped chord height.
	raster := solidRaster(cfg.Side, color.RGBA{A: 0xFF})
	dst, err := Distort(raster, image.Rect(10, 50, 110, 70), cfg)
	if err != nil {
		t.Fatalf("Distort() error = %v", err)
	}

	r := float64(cfg.Side) / 2
	for x := 0; x < cfg.Side; x++ {
		count := 0
		for y := 0; y < cfg.Side; y++ {
			if dst.NRGBAAt(x, y).A != 0 {
				count++
			}
		}
		u := float64(x) - r
		arg := r*r - u*u
		want := 0
		if arg >= 0 {
			want = int(math.Round(2 * math.Sqrt(arg)))
		}
		if diff := count - want; diff < -1 || diff > 1 {
			t.Errorf("column %d: %d opaque rows, want %d ±1", x, count, want)
		}
	}
}

func TestDistortCarriesTextColor(t *testing.T) {
	cfg := distortConfig(64)
	cfg.TextColor = color.RGBA{R: 0x90, B: 0xFF, A: 0xFF}
	raster := solidRaster(cfg.Side, color.RGBA{A: 0xFF})
	dst, err := Distort(raster, image.Rect(8, 24, 56, 40), cfg)
	if err != nil {
		t.Fatalf("Distort() error = %v", err)
	}

	want := color.NRGBA{R: 0x90, B: 0xFF, A: 0xFF}
	opaque := 0
	for y := 0; y < cfg.Side; y++ {
		for x := 0; x < cfg.Side; x++ {
			px := dst.NRGBAAt(x, y)
			if px.A == 0 {
				continue
			}
			if px != want {
				t.Fatalf("opaque pixel at (%d,%d) = %v, want %v", x, y, px, want)
			}
			opaque++
		}
	}
	if opaque == 0 {
		t.Fatal("no opaque pixels produced")
	}
}

func TestDistortBinaryAlphaOnly(t *testing.T) {
	cfg := distortConfig(96)
	// Mid-grey raster: the scaler may smear values, but the mask must still
	// be strictly two-level.
	raster := solidRaster(cfg.Side, color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xFF})
	dst, err := Distort(raster, image.Rect(10, 40, 86, 56), cfg)
	if err != nil {
		t.Fatalf("Distort() error = %v", err)
	}
	for i := 3; i < len(dst.Pix); i += 4 {
		if a := dst.Pix[i]; a != 0 && a != 0xFF {
			t.Fatalf("intermediate alpha %d at pixel %d", a, i/4)
		}
	}
}

func TestDistortDegenerateBox(t *testing.T) {
	cfg := distortConfig(128)
	cfg.CropX = 0
	cfg.CropY = 0
	raster := solidRaster(cfg.Side, color.RGBA{A: 0xFF})

	// A box entirely outside the raster leaves nothing to crop.
	_, err := Distort(raster, image.Rect(-40, -40, -20, -20), cfg)
	var geomErr *InvalidGeometryError
	if !errors.As(err, &geomErr) {
		t.Fatalf("Distort() error = %v, want *InvalidGeometryError", err)
	}
}

func TestBinarizeThresholdMonotonic(t *testing.T) {
	// Vertical green gradient.
	strip := image.NewRGBA(image.Rect(0, 0, 16, 256))
	for y := 0; y < 256; y++ {
		for x := 0; x < 16; x++ {
			strip.SetRGBA(x, y, color.RGBA{G: uint8(y), A: 0xFF})
		}
	}

	textColor := color.RGBA{A: 0xFF}
	prev := -1
	for threshold := 0; threshold <= 256; threshold += 16 {
		th := threshold
		if th > 255 {
			th = 255
		}
		mask := binarize(strip, th, textColor)
		count := 0
		for i := 3; i < len(mask.Pix); i += 4 {
			if mask.Pix[i] == 0xFF {
				count++
			}
		}
		if count < prev {
			t.Fatalf("opaque count dropped from %d to %d when threshold rose to %d", prev, count, th)
		}
		prev = count
	}
}
