package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/cadence"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Script   string
	Step     time.Duration
	Duration time.Duration
	Seed     uint64
}

// TraceEvent is a single entry in the trace timeline.
type TraceEvent struct {
	At      time.Duration `json:"at"`
	Frame   uint64        `json:"frame"`
	Kind    string        `json:"kind"` // "typed", "console", "state", "input", "confirm"
	Subject string        `json:"subject"`
	Detail  string        `json:"detail,omitempty"`
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	Seed     uint64        `json:"seed"`
	Step     time.Duration `json:"step"`
	Elapsed  time.Duration `json:"elapsed"`
	Timeline []TraceEvent  `json:"timeline"`
	Finished bool          `json:"finished"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Run the console and menu headlessly and print a timeline",
		Long: `Run the loading console and the main menu without a window,
advancing the scheduler in fixed steps, and print every typed line,
button state transition and scripted input with its time and frame.

An optional JSON script drives the menu: hover, leave, confirm, next,
prev and wait steps.

Examples:
  cadence trace
  cadence trace --duration 6s --step 10ms --seed 7
  cadence trace --script menu.json --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Script, "script", "", "path to a JSON input script")
	cmd.Flags().DurationVar(&opts.Step, "step", 16*time.Millisecond, "scheduler step")
	cmd.Flags().DurationVar(&opts.Duration, "duration", 8*time.Second, "scene time to simulate")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 1, "random seed for particles and scan lines")

	return cmd
}

func runTrace(opts *TraceOptions, w io.Writer) error {
	if opts.Step <= 0 {
		return NewExitError(ExitCommandError, "step must be positive")
	}
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}

	var runner *cadence.ScriptRunner
	if opts.Script != "" {
		data, err := os.ReadFile(opts.Script)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read script", err)
		}
		runner, err = cadence.LoadScript(data)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid script", err)
		}
	}

	sc := newShowcase(cfg, cadence.NewRand(opts.Seed))
	res, err := trace(sc, cfg, opts.Seed, opts.Step, opts.Duration, runner)
	if err != nil {
		return WrapExitError(ExitFailure, "scene update failed", err)
	}

	if opts.Format == "json" {
		if err := writeJSON(w, res); err != nil {
			return WrapExitError(ExitCommandError, "failed to write trace", err)
		}
	} else {
		writeTraceText(w, res, opts.Verbose)
	}

	if !res.Finished {
		return NewExitError(ExitFailure, "trace ended before the console and script finished")
	}
	return nil
}

// trace plays the showcase headlessly and records its timeline. It stops at
// the first update error.
func trace(sc *showcase, cfg cadence.Config, seed uint64, step, limit time.Duration, runner *cadence.ScriptRunner) (TraceResult, error) {
	tk := sc.scene.Ticker()
	res := TraceResult{Seed: seed, Step: step}

	record := func(kind, subject, detail string) {
		res.Timeline = append(res.Timeline, TraceEvent{
			At: tk.Now(), Frame: tk.Frame(), Kind: kind, Subject: subject, Detail: detail,
		})
	}

	for _, b := range sc.menu.Buttons() {
		name := b.Node().Name
		b.OnStateChange = func(from, to cadence.ActivationState) {
			record("state", name, from.String()+" -> "+to.String())
		}
	}
	sc.menu.OnConfirm = func(i int, label string) {
		record("confirm", fmt.Sprintf("item-%d", i), label)
	}
	prevDone := sc.console.OnDone
	sc.console.OnDone = func() {
		record("console", "console-output", "done")
		prevDone()
	}
	if runner != nil {
		runner.OnStep = func(action, target string) {
			record("input", action, target)
		}
	}

	// The script starts once the menu is up.
	script := runner
	typed := 0
	sc.scene.SetUpdateFunc(func() error {
		if seq := sc.console.Sequence(); seq != nil {
			for typed < seq.Index() && typed < len(cfg.Messages) {
				record("typed", fmt.Sprintf("line-%d", typed), cfg.Messages[typed].Text)
				typed++
			}
		}
		if runner != nil && sc.console.Done() {
			sc.scene.SetScript(runner)
			runner = nil
		}
		return sc.runUpdate()
	})

	sc.start()
	for tk.Now() < limit {
		if err := sc.scene.Step(step); err != nil {
			res.Elapsed = tk.Now()
			return res, err
		}
	}

	res.Elapsed = tk.Now()
	res.Finished = sc.console.Done() && (script == nil || script.Done())
	return res, nil
}

func writeTraceText(w io.Writer, res TraceResult, verbose bool) {
	for _, ev := range res.Timeline {
		if ev.Detail != "" {
			fmt.Fprintf(w, "%8v  f%-5d %-8s %-16s %s\n", ev.At, ev.Frame, ev.Kind, ev.Subject, ev.Detail)
		} else {
			fmt.Fprintf(w, "%8v  f%-5d %-8s %s\n", ev.At, ev.Frame, ev.Kind, ev.Subject)
		}
	}
	if verbose {
		fmt.Fprintf(w, "seed %d, step %v, elapsed %v, %d events, finished %v\n",
			res.Seed, res.Step, res.Elapsed, len(res.Timeline), res.Finished)
	}
}
