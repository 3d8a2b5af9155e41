package hcl

import (
	"context"
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/cellconf/internal/config"
	"github.com/vk/cellconf/internal/ctxlog"
	"github.com/vk/cellconf/internal/schema"
)

// translateSection converts one `section` block into flat override entries.
// Attributes are emitted in source order so the builder's last-wins rule
// reflects the order the author wrote them.
func (l *Loader) translateSection(ctx context.Context, loc config.SourceLocation, section *schema.Section) ([]config.OverrideEntry, error) {
	logger := ctxlog.FromContext(ctx)

	attrs, diags := section.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, parseError(loc.Path, diags)
	}

	ordered := make([]string, 0, len(attrs))
	for name := range attrs {
		ordered = append(ordered, name)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return attrs[ordered[i]].Range.Start.Byte < attrs[ordered[j]].Range.Start.Byte
	})

	entries := make([]config.OverrideEntry, 0, len(ordered))
	for _, name := range ordered {
		attr := attrs[name]
		entry := config.OverrideEntry{
			Key:   config.Key{Section: section.Name, Field: name},
			Layer: loc.Layer,
			Cell:  loc.Cell,
			File:  loc.Path,
			Line:  attr.Range.Start.Line,
		}

		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, parseError(loc.Path, diags)
		}

		switch {
		case val.IsNull():
			// A null attribute is the "ignore default" marker: it blocks
			// fallback into less specific layers without supplying a value.
			entry.Suppress = true
		default:
			str, err := stringify(val)
			if err != nil {
				return nil, &config.ParseError{
					File:   loc.Path,
					Line:   attr.Range.Start.Line,
					Detail: fmt.Sprintf("attribute %q in section %q: %v", name, section.Name, err),
				}
			}
			entry.Value = str
		}

		logger.Debug("Translated configuration entry.",
			"key", entry.Key.String(), "layer", entry.Layer.String(), "cell", entry.Cell, "suppress", entry.Suppress)
		entries = append(entries, entry)
	}
	return entries, nil
}

// stringify converts an evaluated attribute value into the engine's opaque
// string payload. Scalars convert via cty's standard conversions; anything
// else is rejected.
func stringify(val cty.Value) (string, error) {
	if !val.IsKnown() {
		return "", fmt.Errorf("value is not known at load time")
	}
	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("cannot convert %s to string: %w", val.Type().FriendlyName(), err)
	}
	return converted.AsString(), nil
}
