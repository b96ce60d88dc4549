// Package project reads and writes the workspace file that supplies the
// planning engine with its catalog and stock. The engine itself never
// touches the filesystem; this is the external-collaborator side.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/opghpgkh322/SpaceConcept-APP/internal/catalog"
	"github.com/opghpgkh322/SpaceConcept-APP/internal/model"
)

// Workspace ties the catalog, the stock snapshot and the planner settings
// together for save/load.
type Workspace struct {
	Catalog  catalog.Catalog    `json:"catalog"`
	Stock    []model.StockEntry `json:"stock"`
	Settings model.PlanSettings `json:"settings"`
}

func NewWorkspace() Workspace {
	return Workspace{
		Settings: model.DefaultSettings(),
	}
}

// DefaultWorkspacePath returns ~/.spaceconcept/workspace.json.
func DefaultWorkspacePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".spaceconcept", "workspace.json"), nil
}

// LoadWorkspace reads the workspace from the specified JSON file. A missing
// file yields a fresh workspace with default settings, saved in place so the
// next run finds it.
func LoadWorkspace(path string) (Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			ws := NewWorkspace()
			if saveErr := SaveWorkspace(path, ws); saveErr != nil {
				return ws, saveErr
			}
			return ws, nil
		}
		return Workspace{}, fmt.Errorf("failed to read workspace file: %w", err)
	}
	var ws Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return Workspace{}, fmt.Errorf("failed to parse workspace file: %w", err)
	}
	return ws, nil
}

// SaveWorkspace writes the workspace as indented JSON, creating parent
// directories as needed. The file is written to a temp path and renamed into
// place so an interrupted save never truncates the previous workspace.
func SaveWorkspace(path string, ws Workspace) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}

	data, err := json.MarshalIndent(ws, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal workspace: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".workspace-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write workspace: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace workspace file: %w", err)
	}
	return nil
}
