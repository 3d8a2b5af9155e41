package hcl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/cellconf/internal/config"
	"github.com/vk/cellconf/internal/ctxlog"
	"github.com/vk/cellconf/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL loader with its own parser instance.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Statically verify the interface contract.
var _ config.Loader = (*Loader)(nil)

// LoadWorkspace parses the workspace manifest and returns the declared cell
// topology. Cell paths are resolved relative to the manifest's directory.
func (l *Loader) LoadWorkspace(ctx context.Context, path string) (*config.Workspace, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading workspace manifest.", "path", path)

	hclFile, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, parseError(path, diags)
	}

	var wsFile schema.WorkspaceFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &wsFile); diags.HasErrors() {
		return nil, parseError(path, diags)
	}

	if len(wsFile.Cells) == 0 {
		return nil, fmt.Errorf("workspace manifest %s declares no cells", path)
	}

	dir := filepath.Dir(path)
	ws := &config.Workspace{Dir: dir}
	for _, decl := range wsFile.Cells {
		cell := &config.Cell{
			Identifier: decl.Name,
			Path:       filepath.Join(dir, decl.Path),
			IsRoot:     decl.Root,
		}
		ws.Cells = append(ws.Cells, cell)
		if decl.Root {
			if ws.Root != "" {
				return nil, fmt.Errorf("workspace manifest %s declares more than one root cell (%q and %q)", path, ws.Root, decl.Name)
			}
			ws.Root = decl.Name
		}
	}
	if ws.Root == "" {
		return nil, fmt.Errorf("workspace manifest %s declares no root cell", path)
	}

	logger.Debug("Workspace manifest loaded.", "cells", len(ws.Cells), "root", ws.Root)
	return ws, nil
}

// Load reads override entries from every location, in order. In strict mode
// the first malformed file aborts the load; otherwise malformed files are
// skipped and their ParseErrors are returned as an aggregate alongside the
// entries that did load.
func (l *Loader) Load(ctx context.Context, locations []config.SourceLocation, opts config.Options) ([]config.OverrideEntry, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading configuration sources.", "locations", len(locations), "strict", opts.Strict)

	var entries []config.OverrideEntry
	var merr *multierror.Error
	for _, loc := range locations {
		fileEntries, err := l.loadFile(ctx, loc)
		if err != nil {
			if opts.Strict {
				return nil, err
			}
			logger.Warn("Skipping malformed configuration source.", "path", loc.Path, "error", err)
			merr = multierror.Append(merr, err)
			continue
		}
		entries = append(entries, fileEntries...)
	}

	logger.Debug("Configuration sources loaded.", "entries", len(entries))
	return entries, merr.ErrorOrNil()
}

// loadFile parses a single source file and translates its sections into
// flat override entries, preserving source order.
func (l *Loader) loadFile(ctx context.Context, loc config.SourceLocation) ([]config.OverrideEntry, error) {
	hclFile, diags := l.parser.ParseHCLFile(loc.Path)
	if diags.HasErrors() {
		return nil, parseError(loc.Path, diags)
	}

	var src schema.SourceFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &src); diags.HasErrors() {
		return nil, parseError(loc.Path, diags)
	}

	var entries []config.OverrideEntry
	for _, section := range src.Sections {
		sectionEntries, err := l.translateSection(ctx, loc, section)
		if err != nil {
			return nil, err
		}
		entries = append(entries, sectionEntries...)
	}
	return entries, nil
}

// parseError converts HCL diagnostics into the loader's ParseError type,
// pointing at the first diagnostic's source position when available.
func parseError(path string, diags hcl.Diagnostics) *config.ParseError {
	line := 0
	for _, diag := range diags {
		if diag.Subject != nil {
			line = diag.Subject.Start.Line
			break
		}
	}
	return &config.ParseError{File: path, Line: line, Detail: diags.Error()}
}
