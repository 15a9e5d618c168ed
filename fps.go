package parallax

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay displays the current FPS and TPS in the top-left corner.
// The text is redrawn roughly every half second.
type fpsOverlay struct {
	img        *ebiten.Image
	lastUpdate time.Time
	op         ebiten.DrawImageOptions
}

func newFPSOverlay() *fpsOverlay {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &fpsOverlay{img: ebiten.NewImage(100, 32)}
}

func (f *fpsOverlay) update() {
	now := time.Now()
	if now.Sub(f.lastUpdate) < 500*time.Millisecond {
		return
	}
	f.lastUpdate = now

	f.img.Clear()
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (f *fpsOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(f.img, &f.op)
}
