// SpaceConcept production planner.
//
// Turns a made-to-order rope-course order into a priced bill of materials,
// a feasibility verdict against warehouse stock, and an operator-facing
// cutting plan.
//
// Build:
//
//	go build -o spaceconcept ./cmd/spaceconcept
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	root := &cobra.Command{
		Use:           "spaceconcept",
		Short:         "Production planning for made-to-order rope courses",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newPlanCmd(log))
	root.AddCommand(newRopesCmd(log))
	root.AddCommand(newCatalogCmd(log))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
