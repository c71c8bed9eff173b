package cli

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"

	"github.com/phanxgames/cadence"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	Seed    uint64
	ShowFPS bool
	Debug   bool
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Open a window and play the console and menu",
		Long: `Open an Ebitengine window, play the loading console with its scan
lines and chromatic aberration, then show the main menu.

Hover a button or select it with Up/Down (W/S) to activate its
ornament; Enter confirms and Escape quits.

Examples:
  cadence play
  cadence play --config cadence.yaml --fps`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, cmd)
		},
	}

	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().BoolVar(&opts.ShowFPS, "fps", false, "show FPS and TPS")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "log scheduler stats to stderr every frame")

	return cmd
}

func runPlay(opts *PlayOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	sc := newShowcase(cfg, cadence.NewRand(seed))
	sc.scene.SetDebugMode(opts.Debug)
	sc.menu.OnConfirm = func(i int, label string) {
		fmt.Fprintf(cmd.OutOrStdout(), "selected %q\n", label)
	}
	sc.update = func() error {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		return nil
	}
	sc.scene.SetUpdateFunc(sc.runUpdate)
	if opts.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "seed %d, intensity %s\n", seed, sc.console.Aberration().Level())
	}
	sc.start()

	if err := cadence.Run(sc.scene, cadence.RunConfig{
		Title:   "cadence",
		Width:   screenW,
		Height:  screenH,
		ShowFPS: opts.ShowFPS,
	}); err != nil {
		return WrapExitError(ExitCommandError, "window closed with error", err)
	}
	return nil
}
