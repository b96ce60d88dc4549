package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/opghpgkh322/SpaceConcept-APP/internal/catalog"
)

func newCatalogCmd(log zerolog.Logger) *cobra.Command {
	var workspacePath string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the workspace catalog",
	}
	cmd.PersistentFlags().StringVarP(&workspacePath, "workspace", "w", "", "path to workspace file (default ~/.spaceconcept/workspace.json)")

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Check catalog referential integrity and composition cycles",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, path, err := loadWorkspace(workspacePath)
			if err != nil {
				return err
			}
			if err := ws.Catalog.Validate(); err != nil {
				return err
			}
			coster := catalog.NewCoster(&ws.Catalog)
			for _, p := range ws.Catalog.Products {
				if _, err := coster.ProductCost(p.ID); err != nil {
					return fmt.Errorf("product %q: %w", p.Name, err)
				}
			}
			log.Info().Str("workspace", path).
				Int("materials", len(ws.Catalog.Materials)).
				Int("products", len(ws.Catalog.Products)).
				Int("stages", len(ws.Catalog.Stages)).
				Msg("catalog validated")
			fmt.Fprintln(cmd.OutOrStdout(), "catalog OK")
			return nil
		},
	}

	costs := &cobra.Command{
		Use:   "costs",
		Short: "Print unit production costs for every product and stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, _, err := loadWorkspace(workspacePath)
			if err != nil {
				return err
			}
			coster := catalog.NewCoster(&ws.Catalog)
			out := cmd.OutOrStdout()

			for _, p := range ws.Catalog.Products {
				cost, err := coster.ProductCost(p.ID)
				if err != nil {
					return fmt.Errorf("product %q: %w", p.Name, err)
				}
				fmt.Fprintf(out, "product %-24s %s\n", p.Name, cost.StringFixed(2))
			}
			for _, s := range ws.Catalog.Stages {
				length := s.Length
				if length <= 0 {
					length = 1
				}
				cost, err := coster.StageCost(s.ID, length)
				if err != nil {
					return fmt.Errorf("stage %q: %w", s.Name, err)
				}
				fmt.Fprintf(out, "stage   %-24s %s (at %.2f m)\n", s.Name, cost.StringFixed(2), length)
			}
			return nil
		},
	}

	cmd.AddCommand(validate, costs)
	return cmd
}
