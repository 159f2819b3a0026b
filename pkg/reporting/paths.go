package reporting

import (
	"path/filepath"
)

// DefaultPathManager implements output path management
type DefaultPathManager struct{}

// NewDefaultPathManager creates a new path manager
func NewDefaultPathManager() *DefaultPathManager {
	return &DefaultPathManager{}
}

// GetDefaultOutputDir returns the directory reports are written to.
// Reports land next to the analyzed workbook.
func (p *DefaultPathManager) GetDefaultOutputDir(sourceFile string) string {
	dir := filepath.Dir(sourceFile)
	if dir == "" {
		return "."
	}
	return dir
}

// Package-level convenience function
func DefaultOutputDir(sourceFile string) string {
	return NewDefaultPathManager().GetDefaultOutputDir(sourceFile)
}
