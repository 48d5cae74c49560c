package otpauth

import (
	"errors"

	qrcode "github.com/skip2/go-qrcode"
)

// QRCode renders a provisioning URI as a PNG QR code with the given edge
// size in pixels.
func QRCode(uri string, size int) ([]byte, error) {
	png, err := qrcode.Encode(uri, qrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrFailedToEncodeQR, err)
	}
	return png, nil
}
