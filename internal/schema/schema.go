package schema

import "github.com/hashicorp/hcl/v2"

// --- Configuration Source Structures ---

// Section represents a `section` block inside a configuration source file.
// Its body holds plain attributes, one per configuration field. An attribute
// whose expression evaluates to null is the "ignore default" marker.
type Section struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// SourceFile represents the top-level structure of one configuration source
// file, containing all of its sections.
type SourceFile struct {
	Sections []*Section `hcl:"section,block"`
	Body     hcl.Body   `hcl:",remain"`
}

// --- Workspace Manifest Structures ---

// CellDecl represents a `cell` block from the workspace manifest. The path
// is relative to the manifest's directory; exactly one cell must set
// root = true.
type CellDecl struct {
	Name string `hcl:"name,label"`
	Path string `hcl:"path"`
	Root bool   `hcl:"root,optional"`
}

// WorkspaceFile represents the top-level structure of the workspace
// manifest, declaring every cell in the workspace.
type WorkspaceFile struct {
	Cells []*CellDecl `hcl:"cell,block"`
	Body  hcl.Body    `hcl:",remain"`
}
