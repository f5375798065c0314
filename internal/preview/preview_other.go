//go:build !linux || !cgo

package preview

import (
	"errors"
	"image"
	"time"
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// Show is only available on Linux, where the framebuffer device exists.
func Show(img image.Image, hold time.Duration, log logger) error {
	return errors.New("framebuffer preview requires linux")
}
