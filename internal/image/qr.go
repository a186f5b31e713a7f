package imagepkg

import (
	"bytes"
	"image"
	"image/png"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// QRPrefix marks element content that should be rendered as a QR code.
const QRPrefix = "qr:"

// qrSize is the pixel size of generated codes; they are rescaled into the
// element area when drawn.
const qrSize = 512

// GenerateQRPNG returns PNG bytes of a QR code for the given text.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	pngBytes, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return pngBytes, nil
}

// GenerateQRImage returns an image.Image for further composition.
func GenerateQRImage(text string, size int) (image.Image, error) {
	b, err := GenerateQRPNG(text, size)
	if err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(b))
}

// QRProvider resolves "qr:<text>" content to a QR code image.
type QRProvider struct{}

func (QRProvider) TryGet(dir, content string) image.Image {
	text, ok := strings.CutPrefix(content, QRPrefix)
	if !ok || text == "" {
		return nil
	}
	img, err := GenerateQRImage(text, qrSize)
	if err != nil {
		return nil
	}
	return img
}
