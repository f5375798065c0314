package output

import (
	"image"
	"image/draw"

	"github.com/skip2/go-qrcode"
)

const defaultQRCodeSizePx = 128

// AnswerKeyQR returns a QR code image encoding the payload, used as a
// scannable answer key for the illusion. If payload is empty, it returns
// (nil, nil).
func AnswerKeyQR(payload string, sizePx int) (image.Image, error) {
	if payload == "" {
		return nil, nil
	}
	if sizePx <= 0 {
		sizePx = defaultQRCodeSizePx
	}

	qrCode, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	return qrCode.Image(sizePx), nil
}

// StampAnswerKey draws the answer-key QR code for payload into the
// bottom-right corner of dst. The code is sized relative to the canvas so it
// stays unobtrusive next to the illusion disk.
func StampAnswerKey(dst draw.Image, payload string) error {
	bounds := dst.Bounds()
	size := bounds.Dx() / 8
	margin := bounds.Dx() / 64
	qrImg, err := AnswerKeyQR(payload, size)
	if err != nil || qrImg == nil {
		return err
	}
	corner := image.Rect(
		bounds.Max.X-margin-size, bounds.Max.Y-margin-size,
		bounds.Max.X-margin, bounds.Max.Y-margin,
	)
	draw.Draw(dst, corner, qrImg, qrImg.Bounds().Min, draw.Over)
	return nil
}
