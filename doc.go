// Package parallax is a multi-layer parallax effect for [Ebitengine].
//
// A stack of image layers is displaced by pointer or device-tilt input.
// Each layer moves in proportion to its own shift factor, is scaled to
// cover the viewport and overscanned so its edges never show. Layers may
// carry foreground items that fade and scale in with an ease-out-back
// curve (via [gween]).
//
// # Quick start
//
// The simplest way to get started is [Run] with a JSON manifest:
//
//	e, err := parallax.NewEngineFromManifest(ctx, "scene.json", parallax.DefaultOptions())
//	if err != nil {
//		log.Fatal(err)
//	}
//	parallax.Run(e, parallax.RunConfig{Title: "Parallax", Width: 1280, Height: 720})
//
// Stacks can also be built in code with [LayerBuilder]:
//
//	st, err := parallax.NewLayerBuilder().
//		Add(parallax.LayerSpec{Shift: &parallax.Vec2{X: 0.1}, Image: sky}).
//		Add(parallax.LayerSpec{Shift: &parallax.Vec2{X: 1, Y: 0.5}, Image: hills}).
//		Build()
//
// [Engine] implements [ebiten.Game], so it can be driven by
// [ebiten.RunGame] directly or embedded in another game.
//
// # Input
//
// Pointer movement, device tilt, [Engine.SetShift] and resizes are queued
// as commands on a [Donburi] event bus and applied in order at the start of
// the next tick. A smoother then moves the displayed shift a fixed fraction
// of the way towards the input every frame.
//
// # Compositors
//
// The hardware compositor draws every layer and item as a textured quad
// through one Kage shader into an offscreen canvas. When the shader cannot
// be built, or [Options.NoHardware] is set, the software compositor assigns
// placements to each layer's [Element] instead and the elements draw
// themselves. Items only fade on the hardware path.
//
// # Logging
//
// The package is silent by default. Install a logger with [SetLogger].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package parallax
