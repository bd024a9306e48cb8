// Package codegen renders the generated Rust and GDScript sources from a
// resolved schema model. The emitters are pure, single-pass renderers; both
// backends must classify every class identically.
package codegen

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/godot-ecs/nodegen/internal/classify"
	"github.com/godot-ecs/nodegen/internal/generr"
	"github.com/godot-ecs/nodegen/internal/hierarchy"
	"github.com/godot-ecs/nodegen/internal/schema"
)

// RegenerateCommand is named in every generated-file banner.
const RegenerateCommand = "nodegen generate"

// Model is the fully resolved input to the emitters: one schema version,
// its hierarchy index, and the category partition of its Node descendants.
type Model struct {
	API        *schema.ExtensionAPI
	Index      *hierarchy.Index
	NodeTypes  []string // Node and all its descendants, discovery order
	Categories classify.Categories
}

// BuildModel indexes and partitions one schema version.
func BuildModel(api *schema.ExtensionAPI) (*Model, error) {
	ix, err := hierarchy.New(api)
	if err != nil {
		return nil, generr.Wrap(generr.PhaseIndex, api.Version, err, "failed to index hierarchy")
	}
	nodeTypes, err := ix.Descendants(classify.RootNode)
	if err != nil {
		return nil, generr.Wrap(generr.PhaseIndex, api.Version, err, "failed to resolve node types")
	}
	return &Model{
		API:        api,
		Index:      ix,
		NodeTypes:  nodeTypes,
		Categories: classify.Categorize(nodeTypes, ix),
	}, nil
}

// Generator accumulates one output file.
type Generator struct {
	buf    bytes.Buffer
	indent int
}

// NewGenerator creates a new code generator
func NewGenerator() *Generator {
	return &Generator{}
}

// reset clears the generator state
func (g *Generator) reset() {
	g.buf.Reset()
	g.indent = 0
}

// writeLine writes a formatted line with proper indentation
func (g *Generator) writeLine(format string, args ...interface{}) {
	if format == "" {
		g.buf.WriteString("\n")
		return
	}
	for i := 0; i < g.indent; i++ {
		g.buf.WriteString("    ")
	}
	if len(args) > 0 {
		g.buf.WriteString(fmt.Sprintf(format, args...))
	} else {
		g.buf.WriteString(format)
	}
	g.buf.WriteString("\n")
}

// cfgFor is shorthand for the guard a class carries in generated Rust.
func cfgFor(class string) string {
	return classify.CfgAttribute(class)
}

// sortedCopy returns names sorted without touching the partition's order.
func sortedCopy(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	sort.Strings(out)
	return out
}
