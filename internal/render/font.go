package render

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"cardrender/internal/domain"
)

// FontOutcome tells which face a card was drawn with.
type FontOutcome int

const (
	// RequestedFont means the template's font was loaded at the requested size.
	RequestedFont FontOutcome = iota
	// FallbackFont means the built-in bitmap face was used; it ignores the
	// requested size.
	FallbackFont
)

func (o FontOutcome) String() string {
	if o == FallbackFont {
		return "fallback"
	}
	return "requested"
}

// fontCache keeps parsed fonts by path. Failed loads are not cached, so a
// font that appears later is picked up on the next render.
type fontCache struct {
	mu    sync.Mutex
	fonts map[string]*opentype.Font
}

func (c *fontCache) parsed(path string) (*opentype.Font, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.fonts[path]; ok {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	if c.fonts == nil {
		c.fonts = make(map[string]*opentype.Font)
	}
	c.fonts[path] = f
	return f, nil
}

// face returns a face for the template. When the font cannot be loaded it
// returns basicfont.Face7x13 together with an error wrapping ErrFontLoad.
func (c *fontCache) face(path string, size float64) (font.Face, FontOutcome, error) {
	if path == "" {
		return basicfont.Face7x13, FallbackFont, fmt.Errorf("%w: no font configured", domain.ErrFontLoad)
	}
	f, err := c.parsed(path)
	if err != nil {
		return basicfont.Face7x13, FallbackFont, fmt.Errorf("%w: %s: %v", domain.ErrFontLoad, path, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13, FallbackFont, fmt.Errorf("%w: %s at %.1fpx: %v", domain.ErrFontLoad, path, size, err)
	}
	return face, RequestedFont, nil
}
