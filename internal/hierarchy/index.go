// Package hierarchy indexes the single-parent inheritance forest of a schema.
package hierarchy

import (
	"fmt"

	"github.com/godot-ecs/nodegen/internal/schema"
)

// Index answers ancestry questions about one schema version. It is built
// once per version and never mutated afterwards.
type Index struct {
	parents  map[string]string
	children map[string][]string
	order    []string
}

// New builds parent and children lookups in one pass over the class records.
// A cyclic parent chain is a fatal input error, not something to recover from.
func New(api *schema.ExtensionAPI) (*Index, error) {
	ix := &Index{
		parents:  make(map[string]string, len(api.Classes)),
		children: make(map[string][]string),
		order:    make([]string, 0, len(api.Classes)),
	}
	for _, c := range api.Classes {
		ix.order = append(ix.order, c.Name)
		if c.Inherits == "" {
			continue
		}
		ix.parents[c.Name] = c.Inherits
		ix.children[c.Inherits] = append(ix.children[c.Inherits], c.Name)
	}
	if err := ix.checkAcyclic(); err != nil {
		return nil, err
	}
	return ix, nil
}

// checkAcyclic walks every parent chain; a chain longer than the class count
// can only mean a cycle.
func (ix *Index) checkAcyclic() error {
	limit := len(ix.parents) + 1
	for name := range ix.parents {
		current := name
		for steps := 0; ; steps++ {
			parent, ok := ix.parents[current]
			if !ok {
				break
			}
			if steps > limit {
				return fmt.Errorf("cyclic inheritance detected at class %q", name)
			}
			current = parent
		}
	}
	return nil
}

// Parent returns the direct parent of name, if it has one.
func (ix *Index) Parent(name string) (string, bool) {
	parent, ok := ix.parents[name]
	return parent, ok
}

// ParentMap exposes the class→parent lookup. Callers must not mutate it.
func (ix *Index) ParentMap() map[string]string {
	return ix.parents
}

// IsDescendantOf walks the parent chain from name until ancestor is found
// or the root is reached. A class is not its own descendant.
func (ix *Index) IsDescendantOf(name, ancestor string) bool {
	current := name
	for {
		parent, ok := ix.parents[current]
		if !ok {
			return false
		}
		if parent == ancestor {
			return true
		}
		current = parent
	}
}

// Ancestors returns the parent chain of name from child to root, stopping
// before (and excluding) stop. Returns nil when name has no parent.
func (ix *Index) Ancestors(name, stop string) []string {
	var chain []string
	current := name
	for {
		parent, ok := ix.parents[current]
		if !ok || parent == stop {
			return chain
		}
		chain = append(chain, parent)
		current = parent
	}
}

// Descendants returns root and every class transitively descended from it,
// in depth-first discovery order. The root must exist in the schema; its
// absence is a configuration error.
func (ix *Index) Descendants(root string) ([]string, error) {
	if !ix.contains(root) {
		return nil, fmt.Errorf("hierarchy root %q is absent from the schema", root)
	}
	var result []string
	stack := []string{root}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		result = append(result, current)
		kids := ix.children[current]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return result, nil
}

func (ix *Index) contains(name string) bool {
	for _, n := range ix.order {
		if n == name {
			return true
		}
	}
	return false
}
