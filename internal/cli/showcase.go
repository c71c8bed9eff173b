package cli

import (
	"github.com/phanxgames/cadence"
)

// Showcase layout.
const (
	screenW  = 640
	screenH  = 480
	consoleX = 20
	consoleY = 20
	menuX    = 40
	menuY    = 280
)

// showcase is the loading console followed by the main menu, wired onto one
// scene. The menu stays hidden and inert until the console is done.
type showcase struct {
	scene   *cadence.Scene
	console *cadence.Console
	menu    *cadence.Menu

	// update, when set, runs after every scene step. An error ends the run.
	update func() error
}

func newShowcase(cfg cadence.Config, rng cadence.Rand) *showcase {
	scene := cadence.NewScene()
	scene.ClearColor = cadence.Color{R: 0.04, G: 0.05, B: 0.07, A: 1}

	sc := &showcase{
		scene:   scene,
		console: cadence.NewConsole(scene, cfg, rng, consoleX, consoleY),
		menu:    cadence.NewMenu(scene, cfg.Menu, cfg.Button, rng),
	}
	sc.menu.Root().SetPosition(menuX, menuY)
	sc.menu.Root().Visible = false
	scene.SetOverlayFunc(sc.console.DrawOverlay)

	sc.console.OnDone = func() {
		sc.menu.Root().Visible = true
		sc.menu.Ready()
	}
	return sc
}

func (sc *showcase) start() {
	sc.console.Start()
}

func (sc *showcase) runUpdate() error {
	if sc.update == nil {
		return nil
	}
	return sc.update()
}
