package render

import (
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

// qrImage returns the QR code for the stamp text, stamp.Size pixels square.
func qrImage(stamp QRStamp) (image.Image, error) {
	q, err := qrcode.New(stamp.Text, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return q.Image(stamp.Size), nil
}
