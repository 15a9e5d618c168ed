package parallax

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// maxDecodeSize caps decoded image dimensions. Larger images are scaled
// down on load; no texture can hold them anyway.
const maxDecodeSize = maxTextureSize

// DecodeImage reads and decodes one image file. PNG, JPEG, GIF, BMP and
// WebP are supported. Images wider or taller than the texture limit are
// scaled down, keeping their aspect ratio.
func DecodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	Logger().Debug("parallax: decoded image", "path", path, "format", format, "size", img.Bounds().Size())
	return fitImage(img, maxDecodeSize), nil
}

// fitImage scales img down so neither side exceeds limit.
func fitImage(img image.Image, limit int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= limit && h <= limit {
		return img
	}
	scale := float64(limit) / float64(max(w, h))
	nw := max(1, int(float64(w)*scale))
	nh := max(1, int(float64(h)*scale))
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// LoadImages decodes every path concurrently and uploads the results as
// ebiten images, in path order. An empty path yields a nil image. The first
// error cancels the remaining decodes.
func LoadImages(ctx context.Context, paths []string) ([]*ebiten.Image, error) {
	decoded := make([]image.Image, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, p := range paths {
		if p == "" {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := DecodeImage(p)
			if err != nil {
				return err
			}
			decoded[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Uploads stay on the calling goroutine.
	out := make([]*ebiten.Image, len(paths))
	for i, img := range decoded {
		if img != nil {
			out[i] = ebiten.NewImageFromImage(img)
		}
	}
	return out, nil
}
