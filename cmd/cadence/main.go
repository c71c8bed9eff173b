// Command cadence plays and traces the loading console and menu animations.
package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/cadence/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
