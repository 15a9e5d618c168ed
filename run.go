package parallax

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Resizable lets the user resize the window. Each resize is forwarded
	// to the engine as a viewport change.
	Resizable bool
}

// Run opens a window and drives e until the window closes. The engine is
// destroyed when Run returns.
func Run(e *Engine, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	defer e.Destroy()

	Logger().Info("parallax: starting", "width", cfg.Width, "height", cfg.Height)
	return ebiten.RunGame(e)
}
