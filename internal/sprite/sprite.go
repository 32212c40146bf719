// Package sprite prepares the rocket image and the geometry used to place it.
package sprite

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/zzzbluecode/Rocket-Pet-App/internal/motion"
)

// Load decodes an image file and scales it to a size x size square.
func Load(path string, size int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return Scale(src, size), nil
}

func Scale(src image.Image, size int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// Silhouette draws a plain rocket pointing along +X, used when no image
// file is configured.
func Silhouette(size int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float32(size)

	body := vector.NewRasterizer(size, size)
	body.MoveTo(s*0.95, s*0.5)
	body.LineTo(s*0.65, s*0.3)
	body.LineTo(s*0.2, s*0.3)
	body.LineTo(s*0.2, s*0.7)
	body.LineTo(s*0.65, s*0.7)
	body.ClosePath()
	body.Draw(dst, dst.Bounds(), image.NewUniform(colornames.Whitesmoke), image.Point{})

	fins := vector.NewRasterizer(size, size)
	fins.MoveTo(s*0.35, s*0.3)
	fins.LineTo(s*0.1, s*0.08)
	fins.LineTo(s*0.1, s*0.3)
	fins.ClosePath()
	fins.MoveTo(s*0.35, s*0.7)
	fins.LineTo(s*0.1, s*0.92)
	fins.LineTo(s*0.1, s*0.7)
	fins.ClosePath()
	fins.Draw(dst, dst.Bounds(), image.NewUniform(colornames.Orangered), image.Point{})

	flame := vector.NewRasterizer(size, size)
	flame.MoveTo(s*0.2, s*0.4)
	flame.LineTo(s*0.02, s*0.5)
	flame.LineTo(s*0.2, s*0.6)
	flame.ClosePath()
	flame.Draw(dst, dst.Bounds(), image.NewUniform(color.RGBA{0xff, 0xa5, 0x00, 0xcc}), image.Point{})

	return dst
}

// Rotation returns the clockwise draw rotation in radians for a heading in
// degrees. Headings grow counter-clockwise on screen while the renderer
// rotates clockwise, hence the sign flip. offset compensates for artwork
// that does not point along +X.
func Rotation(angle, offset float64) float64 {
	return -(angle + offset) * math.Pi / 180
}

// Contains reports whether p falls within the size x size box centred on c.
func Contains(c motion.Vec2, size float64, p motion.Vec2) bool {
	half := size / 2
	return math.Abs(p.X-c.X) <= half && math.Abs(p.Y-c.Y) <= half
}
