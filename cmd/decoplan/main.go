// Command decoplan is a thin CLI shell around the decompression planning
// engine: it builds a Plan from flags, replans a legal ascent, computes a
// fine-grained Result, and prints a summary. Per spec.md §1 the shell is
// explicitly out of the core's scope; this is a demo consumer, not part
// of the engine's contract.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "decoplan:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "decoplan",
		Short: "Plan decompression stops for a dive profile",
		Long: `decoplan builds a dive profile from flags, replans a legal
decompression ascent using the Bühlmann ZH-L16A model with gradient
factors, and prints a fine-grained re-sampled result.`,
	}

	root.AddCommand(newPlanCmd())
	return root
}
