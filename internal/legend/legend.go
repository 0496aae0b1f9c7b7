// Package legend draws the colored bullets of the layer control.
package legend

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
)

const supersample = 4

// ErrInvalidColor is returned for colors not in #rrggbb form.
var ErrInvalidColor = errors.New("invalid color")

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Swatch draws a filled circle of the given color on a transparent square.
// The circle is drawn oversized and scaled down for smooth edges.
func Swatch(hex string, size int) (image.Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("swatch size must be > 0, got %d", size)
	}
	c, err := ParseHex(hex)
	if err != nil {
		return nil, err
	}

	big := size * supersample
	src := image.NewRGBA(image.Rect(0, 0, big, big))
	r := float64(big) / 2
	for y := 0; y < big; y++ {
		for x := 0; x < big; x++ {
			dx, dy := float64(x)+0.5-r, float64(y)+0.5-r
			if dx*dx+dy*dy <= r*r {
				src.SetRGBA(x, y, c)
			}
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst, nil
}

// EncodeWebP writes img as lossless WebP.
func EncodeWebP(w io.Writer, img image.Image) error {
	return webp.Encode(w, img, &webp.Options{Lossless: true})
}
