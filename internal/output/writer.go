// Package output is the persistence side of the renderer: file naming,
// image encoding and the optional answer-key QR stamp. The core pipeline
// never touches the filesystem; everything that does lives here.
package output

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const jpegQuality = 95

// AlphaCapable reports whether the format for ext can carry an alpha
// channel.
func AlphaCapable(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return false
	default:
		return true
	}
}

// FileNameFor derives an output path in dir from the illusion text, the way
// a user would name the print by hand. Characters unusable in file names are
// stripped; if nothing usable remains the name falls back to a random UUID.
func FileNameFor(text, ext, dir string) string {
	name := sanitizeName(text)
	if name == "" {
		name = uuid.NewString()
	}
	return filepath.Join(dir, name+ext)
}

func sanitizeName(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == 0:
			b.WriteRune('_')
		case r < 0x20 || r == 0x7F:
			// drop control characters
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Save encodes img to path, choosing the codec from the file extension.
// PNG is the default when the path has no extension.
func Save(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case "", ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
	default:
		return fmt.Errorf("unsupported image format %q", ext)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
