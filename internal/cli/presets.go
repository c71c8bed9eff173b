package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/phanxgames/cadence"
)

// PresetEntry is one aberration preset in the presets output.
type PresetEntry struct {
	Name    string  `json:"name"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
	Scale   float64 `json:"scale"`
	Default bool    `json:"default,omitempty"`
}

// NewPresetsCommand creates the presets command.
func NewPresetsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List chromatic aberration intensity presets",
		Long: `List the intensity presets from the active configuration, sorted by
name. The configured intensity is marked.

Examples:
  cadence presets
  cadence presets --config cadence.yaml --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresets(rootOpts, cmd.OutOrStdout())
		},
	}
	return cmd
}

func runPresets(opts *RootOptions, w io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	entries := presetEntries(cfg)

	if opts.Format == "json" {
		if err := writeJSON(w, entries); err != nil {
			return WrapExitError(ExitCommandError, "failed to write presets", err)
		}
		return nil
	}
	for _, e := range entries {
		mark := " "
		if e.Default {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %-8s offset (%g, %g)  scale %g\n", mark, e.Name, e.OffsetX, e.OffsetY, e.Scale)
	}
	return nil
}

func presetEntries(cfg cadence.Config) []PresetEntry {
	names := cadence.IntensityNames(cfg.Intensities)
	out := make([]PresetEntry, 0, len(names))
	for _, name := range names {
		in := cfg.Intensities[name]
		out = append(out, PresetEntry{
			Name:    name,
			OffsetX: in.OffsetX,
			OffsetY: in.OffsetY,
			Scale:   in.Scale,
			Default: name == cfg.Intensity,
		})
	}
	return out
}
