package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/opghpgkh322/SpaceConcept-APP/internal/engine"
	"github.com/opghpgkh322/SpaceConcept-APP/internal/model"
	"github.com/opghpgkh322/SpaceConcept-APP/internal/project"
)

// routeFile is the on-disk shape of a stage-to-route assignment list.
// Stages are referenced by catalog name; length overrides the stage's
// nominal length when the order calls for a custom span.
type routeFile []struct {
	Stage    string  `json:"stage"`
	Route    int     `json:"route"`
	Position int     `json:"position"`
	Length   float64 `json:"length,omitempty"`
}

func newRopesCmd(log zerolog.Logger) *cobra.Command {
	var (
		workspacePath string
		routesPath    string
		auto          bool
	)

	cmd := &cobra.Command{
		Use:   "ropes",
		Short: "Compute safety rope and clamp quantities for planned routes",
		Long: "Partitions stage-to-route assignments into rope segments (dynamic " +
			"and zip stages break the rope) and prints the rope meters and clamp " +
			"count. Use --auto to place all static catalog stages on one route.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRopes(cmd, workspacePath, routesPath, auto)
		},
	}

	cmd.Flags().StringVarP(&workspacePath, "workspace", "w", "", "path to workspace file (default ~/.spaceconcept/workspace.json)")
	cmd.Flags().StringVarP(&routesPath, "routes", "r", "", "route assignment file (.json)")
	cmd.Flags().BoolVar(&auto, "auto", false, "auto-plan: all static stages on route 1 in catalog order")
	return cmd
}

func runRopes(cmd *cobra.Command, workspacePath, routesPath string, auto bool) error {
	ws, _, err := loadWorkspace(workspacePath)
	if err != nil {
		return err
	}

	var assignments []model.RouteAssignment
	switch {
	case auto:
		assignments = engine.AutoPlan(ws.Catalog.Stages)
	case routesPath != "":
		assignments, err = loadRoutes(&ws, routesPath)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("either --routes or --auto is required")
	}

	if len(assignments) == 0 {
		return fmt.Errorf("no static stages to rig; safety rope is not required")
	}

	segments, totals, err := engine.Segment(assignments)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), formatSegments(segments, totals))
	return nil
}

func loadRoutes(ws *project.Workspace, path string) ([]model.RouteAssignment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read routes file: %w", err)
	}
	var file routeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse routes file: %w", err)
	}

	assignments := make([]model.RouteAssignment, 0, len(file))
	for _, row := range file {
		stage := ws.Catalog.FindStageByName(row.Stage)
		if stage == nil {
			return nil, fmt.Errorf("stage %q missing from the catalog", row.Stage)
		}
		assigned := *stage
		if row.Length > 0 {
			assigned.Length = row.Length
		}
		assignments = append(assignments, model.RouteAssignment{
			Stage:    assigned,
			Route:    row.Route,
			Position: row.Position,
		})
	}
	return assignments, nil
}
