// Package render draws a name onto a card template and encodes the result as
// PNG.
package render

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"cardrender/internal/domain"
	"cardrender/internal/shaping"
)

// Card is one rendered card.
type Card struct {
	PNG    []byte
	Width  int
	Height int
	Font   FontOutcome
	// FontErr explains a FallbackFont outcome; it wraps domain.ErrFontLoad.
	FontErr error
}

// Renderer is safe for concurrent use.
type Renderer struct {
	fonts fontCache
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

var defaultRenderer = NewRenderer()

// RenderFile renders name onto the image at templatePath with the default
// card styling and returns the PNG bytes.
func RenderFile(name, templatePath string) ([]byte, error) {
	card, err := defaultRenderer.Render(DefaultTemplate(templatePath), name)
	if err != nil {
		return nil, err
	}
	return card.PNG, nil
}

// Render draws name centred on the template image, shifted vertically by
// tpl.OffsetY. A missing or undecodable template image yields an error
// wrapping domain.ErrTemplateNotFound. A font that cannot be loaded does not
// fail the render: the card reports FallbackFont instead.
func (r *Renderer) Render(tpl Template, name string) (Card, error) {
	src, err := imaging.Open(tpl.ImagePath)
	if err != nil {
		return Card{}, fmt.Errorf("%w: %s: %v", domain.ErrTemplateNotFound, tpl.ImagePath, err)
	}

	canvas := imaging.Clone(src)
	text := shaping.Prepare(name)

	face, outcome, fontErr := r.fonts.face(tpl.FontPath, tpl.FontSize)
	drawCentered(canvas, face, text, tpl)

	if tpl.QR.Text != "" {
		qr, err := qrImage(tpl.QR)
		if err != nil {
			return Card{}, fmt.Errorf("qr stamp for template %s: %w", tpl.ID, err)
		}
		canvas = imaging.Paste(canvas, qr, image.Pt(tpl.QR.X, tpl.QR.Y))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return Card{}, fmt.Errorf("encode png: %w", err)
	}

	size := canvas.Bounds().Size()
	return Card{
		PNG:     buf.Bytes(),
		Width:   size.X,
		Height:  size.Y,
		Font:    outcome,
		FontErr: fontErr,
	}, nil
}

// textOrigin returns the dot position that centres the ink box of text on
// the canvas, moved down by offsetY.
func textOrigin(face font.Face, text string, canvas image.Rectangle, offsetY int) (fixed.Point26_6, fixed.Rectangle26_6) {
	bounds, _ := font.BoundString(face, text)
	w := bounds.Max.X - bounds.Min.X
	h := bounds.Max.Y - bounds.Min.Y

	x := (fixed.I(canvas.Dx())-w)/2 - bounds.Min.X
	y := (fixed.I(canvas.Dy())-h)/2 + fixed.I(offsetY) - bounds.Min.Y
	return fixed.P(x.Round(), y.Round()), bounds
}

func drawCentered(canvas *image.NRGBA, face font.Face, text string, tpl Template) {
	dot, _ := textOrigin(face, text, canvas.Bounds(), tpl.OffsetY)
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(tpl.Color),
		Face: face,
		Dot:  dot,
	}
	d.DrawString(text)
}
