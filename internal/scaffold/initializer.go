// Package scaffold writes a starter warren.yml.
package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/warren/internal/config"
	"github.com/dyluth/warren/internal/printer"
)

//go:embed templates/*
var templatesFS embed.FS

// ConfigFile is the name of the file Initialize creates.
const ConfigFile = "warren.yml"

// Initialize writes the starter configuration into dir.
// With force an existing warren.yml is replaced.
func Initialize(dir string, force bool) (string, error) {
	path := filepath.Join(dir, ConfigFile)

	if force {
		if _, err := os.Stat(path); err == nil {
			printer.Warning("Removing existing %s...\n", ConfigFile)
			if err := os.Remove(path); err != nil {
				return "", fmt.Errorf("failed to remove %s: %w", ConfigFile, err)
			}
		}
	}

	content, err := templatesFS.ReadFile("templates/warren.yml.tmpl")
	if err != nil {
		return "", fmt.Errorf("failed to read warren.yml template: %w", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	// The template must always pass the same validation as user configs
	if _, err := config.Load(path); err != nil {
		return "", fmt.Errorf("created %s is invalid: %w", ConfigFile, err)
	}

	return path, nil
}

// PrintSuccess prints the created file and next steps.
func PrintSuccess(path string) {
	printer.Success("Created %s\n", path)
	printer.Println("\nNext steps:")
	printer.Println("  1. Edit the operations and roles to fit your colony")
	printer.Println("  2. Run 'warren body --ratio 0,2,1 --fraction 0.5 --energy 1300' to size ratio bodies")
	printer.Println("  3. Run 'warren run --cycles 300' to simulate the colony")
}
