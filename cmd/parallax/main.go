// Command parallax shows a parallax scene described by a JSON manifest.
//
// Keys: arrows tilt, F fades items in and out, Space pauses, S takes a
// screenshot, Escape quits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/parallax"
	"github.com/phanxgames/parallax/x11pointer"
)

const tiltStep = 0.5 // degrees per tick

var errQuit = errors.New("quit")

func main() {
	manifest := flag.String("manifest", "parallax.json", "path to the scene manifest")
	noHW := flag.Bool("no-hw", false, "use the software compositor")
	globalPointer := flag.Bool("global-pointer", false, "follow the pointer across the whole X11 screen")
	debug := flag.Bool("debug", false, "log per-frame stats")
	showFPS := flag.Bool("fps", false, "show an FPS overlay")
	script := flag.String("script", "", "JSON test script to run")
	shots := flag.String("screenshots", parallax.DefaultScreenshotDir, "screenshot directory")
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 720, "window height")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	parallax.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	log := parallax.Logger()

	opts := parallax.DefaultOptions()
	opts.NoHardware = *noHW
	opts.Debug = *debug
	opts.ShowFPS = *showFPS
	opts.ScreenshotDir = *shots

	if *globalPointer {
		src, err := x11pointer.Open()
		if err != nil {
			log.Warn("global pointer unavailable, using window pointer", "err", err)
		} else {
			defer src.Close()
			opts.Pointer = src
		}
	}

	e, err := parallax.NewEngineFromManifest(context.Background(), *manifest, opts)
	if err != nil {
		log.Error("load scene", "err", err)
		os.Exit(1)
	}

	if *script != "" {
		runner, err := loadRunner(*script)
		if err != nil {
			log.Error("load script", "err", err)
			os.Exit(1)
		}
		e.SetTestRunner(runner)
	}

	c := &controls{engine: e}
	e.SetUpdateFunc(c.update)

	err = parallax.Run(e, parallax.RunConfig{
		Title:     "Parallax",
		Width:     *width,
		Height:    *height,
		Resizable: true,
	})
	if err != nil && !errors.Is(err, errQuit) {
		log.Error("run", "err", err)
		os.Exit(1)
	}
}

func loadRunner(path string) (*parallax.TestRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parallax.LoadTestScript(data)
}

// controls maps keys onto engine operations. Arrow keys simulate a device
// tilt so the tilt path can be tried on a desktop.
type controls struct {
	engine *parallax.Engine
	tilt   parallax.TiltSample
	fadeIn bool
	shots  int
}

func (c *controls) update() error {
	e := c.engine
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if e.Animating() {
			e.StopAnimating()
		} else {
			e.StartAnimating()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		c.fadeIn = !c.fadeIn
		e.FadeItems(c.fadeIn)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		c.shots++
		e.Screenshot(fmt.Sprintf("shot-%03d", c.shots))
	}

	tilted := false
	step := func(key ebiten.Key, v *float64, d float64) {
		if ebiten.IsKeyPressed(key) {
			*v += d
			tilted = true
		}
	}
	step(ebiten.KeyArrowLeft, &c.tilt.Gamma, -tiltStep)
	step(ebiten.KeyArrowRight, &c.tilt.Gamma, tiltStep)
	step(ebiten.KeyArrowUp, &c.tilt.Beta, -tiltStep)
	step(ebiten.KeyArrowDown, &c.tilt.Beta, tiltStep)
	if tilted {
		e.Tilt(c.tilt)
	}
	return nil
}
