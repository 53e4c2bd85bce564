// Package projectdir provides constants and helpers for the .bpm workspace
// directory.
package projectdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// Dir is the name of the per-project state directory.
	Dir = ".bpm"

	// DefaultConfigFile is the config file name inside Dir.
	DefaultConfigFile = "bpm.toml"

	// DefaultSchemaFile is the name the project file schema is exported
	// under inside Dir, for editors that validate JSON.
	DefaultSchemaFile = "project.schema.json"
)

// DirPath returns the path of the .bpm directory within workDir.
func DirPath(workDir string) string {
	if workDir == "" {
		workDir = "."
	}
	if workDir == "." {
		return Dir
	}
	return filepath.Join(workDir, Dir)
}

// ConfigPath returns the path of the config file within workDir.
func ConfigPath(workDir string) string {
	return filepath.Join(DirPath(workDir), DefaultConfigFile)
}

// SchemaPath returns the path of the exported schema within workDir.
func SchemaPath(workDir string) string {
	return filepath.Join(DirPath(workDir), DefaultSchemaFile)
}

// Ensure creates the .bpm directory within workDir and returns its path.
func Ensure(workDir string) (string, error) {
	dir := DirPath(workDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", Dir, err)
	}
	return dir, nil
}
