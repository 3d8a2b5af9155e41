package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/cellconf/internal/config"
)

// TraceStep records what one layer contributed during a provenance trace.
type TraceStep struct {
	Layer      config.Layer
	Found      bool
	Suppressed bool
	Value      string
	File       string
	Line       int
}

// Trace is the full provenance record of a single (cell, key) resolution,
// listing every layer consulted in walk order and the final outcome.
type Trace struct {
	Cell     string
	Key      config.Key
	Steps    []TraceStep
	Resolved bool
	Value    Value
}

// Explain reproduces the resolution walk for one key and records what each
// layer contributed, whether or not it won. Unlike Resolve, the walk does
// not stop at the winning layer, so shadowed values appear in the trace.
func (e *Engine) Explain(ctx context.Context, cellID string, key config.Key) (*Trace, error) {
	if _, err := e.registry.Resolve(cellID); err != nil {
		return nil, err
	}

	trace := &Trace{Cell: cellID, Key: key}
	decided := false
	for _, rule := range layerOrder {
		entry, ok := e.graph.Lookup(rule.layer, cellID, key)
		step := TraceStep{Layer: rule.layer, Found: ok}
		if ok {
			step.Suppressed = entry.Suppressed
			step.Value = entry.Value
			step.File = entry.File
			step.Line = entry.Line
		}
		trace.Steps = append(trace.Steps, step)

		if !ok || decided {
			continue
		}
		decided = true
		if !entry.Suppressed {
			trace.Resolved = true
			trace.Value = Value{Raw: entry.Value, Provenance: rule.provenance}
		}
	}
	return trace, nil
}

// Render writes the trace in its diagnostic form: one line per layer
// consulted, then the final outcome.
func (t *Trace) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s for cell %q:\n", t.Key, t.Cell)
	for _, step := range t.Steps {
		switch {
		case !step.Found:
			fmt.Fprintf(&b, "  %-6s  unset\n", step.Layer)
		case step.Suppressed:
			fmt.Fprintf(&b, "  %-6s  ignore default  (%s:%d)\n", step.Layer, step.File, step.Line)
		default:
			fmt.Fprintf(&b, "  %-6s  %s  (%s:%d)\n", step.Layer, step.Value, step.File, step.Line)
		}
	}
	if t.Resolved {
		fmt.Fprintf(&b, "  -> %s  (%s)\n", t.Value.Raw, t.Value.Provenance)
	} else {
		fmt.Fprintf(&b, "  -> no configured value\n")
	}
	return b.String()
}
