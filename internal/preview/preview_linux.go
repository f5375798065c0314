//go:build linux && cgo

// Package preview blits a rendered illusion to the Linux framebuffer so the
// result can be checked on an attached display without leaving the terminal.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"time"

	fb "github.com/gonutz/framebuffer"
	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// Show scales img onto /dev/fb0 and holds it there for the given duration.
// The console is switched to graphics mode while the image is up so the
// cursor does not blink over it, and restored afterwards.
func Show(img image.Image, hold time.Duration, log logger) error {
	dev, err := fb.Open("/dev/fb0")
	if err != nil {
		return fmt.Errorf("open framebuffer: %w", err)
	}
	defer dev.Close()

	if err := setConsoleMode(kdGraphics); err != nil {
		if log != nil {
			log.Errorf("preview", "KD_GRAPHICS failed: %v", err)
		}
	}
	defer func() {
		if err := setConsoleMode(kdText); err != nil && log != nil {
			log.Errorf("preview", "KD_TEXT restore failed: %v", err)
		}
	}()

	blit(dev, img)
	if log != nil {
		bounds := dev.Bounds()
		log.Infof("preview", "framebuffer preview up, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	}
	time.Sleep(hold)
	return nil
}

// blit writes img to the framebuffer with nearest-neighbor scaling.
func blit(dev *fb.Device, img image.Image) {
	bounds := dev.Bounds()
	fbWidth := bounds.Dx()
	fbHeight := bounds.Dy()
	src := img.Bounds()
	for y := 0; y < fbHeight; y++ {
		sy := src.Min.Y + (y*src.Dy())/fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := src.Min.X + (x*src.Dx())/fbWidth
			r, g, b, _ := img.At(sx, sy).RGBA()
			dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xFF})
		}
	}
}

// setConsoleMode flips the active virtual terminal between text and graphics
// mode. Prefers /dev/tty, falls back to /dev/tty0.
func setConsoleMode(mode int) error {
	paths := []string{"/dev/tty", "/dev/tty0"}
	var lastErr error
	for _, p := range paths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("KDSETMODE on %s: %w", p, err)
			continue
		}
		return nil
	}
	return lastErr
}
