package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/cadence"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Config   string // YAML config path, empty for defaults
	Messages string // YAML message list path, empty for the config's
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the cadence CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cadence",
		Short: "cadence - animation choreography",
		Long:  "Plays and traces the loading console and menu animations built on the cadence scheduler.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "path to YAML config")
	cmd.PersistentFlags().StringVar(&opts.Messages, "messages", "", "path to YAML message list")

	cmd.AddCommand(NewTraceCommand(opts))
	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewPresetsCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadConfig resolves the configuration from the global flags. A message
// file that cannot be read or parsed falls back to the config's messages.
func loadConfig(opts *RootOptions) (cadence.Config, error) {
	cfg := cadence.DefaultConfig()
	if opts.Config != "" {
		data, err := os.ReadFile(opts.Config)
		if err != nil {
			return cfg, WrapExitError(ExitCommandError, "failed to read config", err)
		}
		cfg, err = cadence.LoadConfig(data)
		if err != nil {
			return cfg, WrapExitError(ExitCommandError, "invalid config", err)
		}
	}
	if opts.Messages != "" {
		data, err := os.ReadFile(opts.Messages)
		if err != nil {
			data = nil
		}
		cfg.Messages = cadence.LoadMessages(data, cfg.Messages)
	}
	return cfg, nil
}
