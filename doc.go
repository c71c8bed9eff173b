// Package cadence is an animation choreography layer for a retained 2D scene
// graph on [Ebitengine].
//
// Everything is driven by one cooperative clock, the [Ticker]. Tweens,
// timelines, oscillators, particle fields and the controllers built on them
// register with it and advance once per [Ticker.Advance]. Under Ebitengine,
// [Scene.Update] advances the scene's ticker once per tick; headless code and
// tests call Advance or [Scene.Step] directly with any step they like.
//
// # Quick start
//
//	scene := cadence.NewScene()
//	box := cadence.NewRect("box", 40, 40, cadence.ColorWhite)
//	scene.Root().AddChild(box)
//
//	scene.Ticker().TweenAlpha(box, 0, 500*time.Millisecond, ease.OutQuad)
//
//	cadence.Run(scene, cadence.RunConfig{Title: "fade", Width: 320, Height: 240})
//
// # Building blocks
//
// [Ticker.Tween] interpolates a [TweenSpec] through a [gween] easing curve.
// [Ticker.Oscillate] ping-pongs forever, [Ticker.After] is the timer used for
// every delay. [Ticker.Compose] lays out a [Timeline] of overlapping steps
// from relative offsets.
//
// Every started animation is a [Handle]. A handle belongs to one controller,
// which cancels it before starting a replacement for the same role. Cancel is
// idempotent and safe inside callbacks; no callback fires after it.
//
// # Effects and controllers
//
// [ParticleField] loops randomized drifting particles. [ScanLineField]
// flickers horizontal lines. [Aberration] breathes a red/blue channel split.
// [Typer] reveals text with a blinking cursor and sequences whole consoles.
// [MenuButton] plays an ornamental activation choreography on hover or
// keyboard selection. [Console] and [Menu] assemble these into a loading
// screen and a main menu.
//
// Randomness comes from an injected [Rand]; seed one with [NewRand] for
// reproducible runs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package cadence
