package app

import (
	"context"
	"path/filepath"

	"github.com/vk/cellconf/internal/config"
	"github.com/vk/cellconf/internal/ctxlog"
	"github.com/vk/cellconf/internal/fsutil"
)

// File name conventions within a workspace. Locations are assembled in
// load order: the global defaults first, then each cell's own layer pair,
// so later files override earlier ones under the builder's last-wins rule.
const (
	globalDefaultsName = "defaults.conf.hcl"
	globalDropInDir    = "defaults.d"
	cellConfigName     = "cell.conf.hcl"
	localConfigName    = "local.conf.hcl"
)

// sourceLocations discovers every existing configuration source file for
// the workspace and tags it with its layer and owning cell. Missing files
// are not an error; a cell without overrides simply contributes nothing.
func sourceLocations(ctx context.Context, workspace *config.Workspace) []config.SourceLocation {
	logger := ctxlog.FromContext(ctx)

	var locations []config.SourceLocation

	// Global layer: the workspace defaults file, then any drop-in files in
	// lexical order so their override order is stable across runs.
	defaultsPath := filepath.Join(workspace.Dir, globalDefaultsName)
	if fsutil.FileExists(defaultsPath) {
		locations = append(locations, config.SourceLocation{Path: defaultsPath, Layer: config.LayerGlobal})
	}
	dropInDir := filepath.Join(workspace.Dir, globalDropInDir)
	if dropIns, err := fsutil.FindFilesByExtension(dropInDir, ".hcl"); err == nil {
		for _, path := range dropIns {
			locations = append(locations, config.SourceLocation{Path: path, Layer: config.LayerGlobal})
		}
	}

	// Cell and local layers, in declaration order.
	for _, cell := range workspace.Cells {
		cellPath := filepath.Join(cell.Path, cellConfigName)
		if fsutil.FileExists(cellPath) {
			locations = append(locations, config.SourceLocation{
				Path:  cellPath,
				Layer: config.LayerCell,
				Cell:  cell.Identifier,
			})
		}
		localPath := filepath.Join(cell.Path, localConfigName)
		if fsutil.FileExists(localPath) {
			locations = append(locations, config.SourceLocation{
				Path:  localPath,
				Layer: config.LayerLocal,
				Cell:  cell.Identifier,
			})
		}
	}

	logger.Debug("Discovered configuration sources.", "count", len(locations))
	return locations
}
