package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/opghpgkh322/SpaceConcept-APP/internal/catalog"
	"github.com/opghpgkh322/SpaceConcept-APP/internal/engine"
	"github.com/opghpgkh322/SpaceConcept-APP/internal/importer"
	"github.com/opghpgkh322/SpaceConcept-APP/internal/model"
	"github.com/opghpgkh322/SpaceConcept-APP/internal/project"
	"github.com/opghpgkh322/SpaceConcept-APP/internal/warehouse"
)

func newPlanCmd(log zerolog.Logger) *cobra.Command {
	var (
		workspacePath string
		orderPath     string
		confirm       bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Calculate an order: bill of materials, feasibility, cutting plan",
		Long: "Resolves an order file against the workspace catalog, prices the " +
			"required materials, checks warehouse stock, and prints the cutting " +
			"plan. With --confirm the pipeline is recomputed against current " +
			"stock and the consumption is committed to the workspace.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, log, workspacePath, orderPath, confirm)
		},
	}

	cmd.Flags().StringVarP(&workspacePath, "workspace", "w", "", "path to workspace file (default ~/.spaceconcept/workspace.json)")
	cmd.Flags().StringVarP(&orderPath, "order", "o", "", "order file (.txt or .xlsx)")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "commit stock consumption after a feasible run")
	cmd.MarkFlagRequired("order")
	return cmd
}

func runPlan(cmd *cobra.Command, log zerolog.Logger, workspacePath, orderPath string, confirm bool) error {
	ws, path, err := loadWorkspace(workspacePath)
	if err != nil {
		return err
	}
	if err := ws.Catalog.Validate(); err != nil {
		return err
	}

	order, err := loadOrder(&ws.Catalog, orderPath)
	if err != nil {
		return err
	}

	store := warehouse.NewStore(ws.Stock, log)
	planner := engine.NewPlanner(&ws.Catalog, store, ws.Settings, log)

	var result *engine.Result
	if confirm {
		result, err = planner.Confirm(order, nil)
	} else {
		result, err = planner.Plan(order, nil)
	}
	if result != nil {
		fmt.Fprint(cmd.OutOrStdout(), formatResult(result))
	}
	if err != nil {
		return err
	}

	if confirm {
		ws.Stock = store.Snapshot()
		if err := project.SaveWorkspace(path, ws); err != nil {
			return err
		}
		log.Info().Str("workspace", path).Msg("workspace saved")
	}
	return nil
}

func loadWorkspace(path string) (project.Workspace, string, error) {
	if path == "" {
		defaultPath, err := project.DefaultWorkspacePath()
		if err != nil {
			return project.Workspace{}, "", err
		}
		path = defaultPath
	}
	ws, err := project.LoadWorkspace(path)
	return ws, path, err
}

func loadOrder(cat *catalog.Catalog, path string) ([]model.OrderLine, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return importer.ImportOrderXLSX(cat, path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read order file: %w", err)
		}
		return importer.ParseOrderText(cat, string(data))
	}
}
