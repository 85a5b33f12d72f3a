package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"cardrender/internal/config"
)

// Template describes where and how a name is drawn on a card image.
type Template struct {
	ID        string
	Title     string
	ImagePath string
	FontPath  string
	FontSize  float64
	Color     color.NRGBA
	// OffsetY shifts the text centre from the image centre, in pixels.
	OffsetY int
	QR      QRStamp
}

// QRStamp is an optional QR code pasted onto the card. It is skipped when
// Text is empty.
type QRStamp struct {
	Text string
	Size int
	X, Y int
}

// DefaultTemplate returns the classic Eid card styling for the
// template image at path.
func DefaultTemplate(path string) Template {
	return Template{
		ID:        "default",
		ImagePath: path,
		FontPath:  "fonts/DINNextLTArabic-Regular_0.ttf",
		FontSize:  80,
		Color:     color.NRGBA{R: 0x4D, G: 0xD6, B: 0xE9, A: 0xFF},
		OffsetY:   40,
	}
}

// TemplateFromConfig converts a configured card template.
func TemplateFromConfig(id string, tc config.TemplateConfig) (Template, error) {
	c, err := ParseHexColor(tc.Color)
	if err != nil {
		return Template{}, fmt.Errorf("template %s: %w", id, err)
	}
	return Template{
		ID:        id,
		Title:     tc.Title,
		ImagePath: tc.Image,
		FontPath:  tc.Font,
		FontSize:  tc.FontSize,
		Color:     c,
		OffsetY:   tc.OffsetY,
		QR: QRStamp{
			Text: tc.QR.Text,
			Size: tc.QR.Size,
			X:    tc.QR.X,
			Y:    tc.QR.Y,
		},
	}, nil
}

// ParseHexColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA"; the leading '#' is
// optional.
func ParseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
