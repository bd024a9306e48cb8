// Package classify partitions Node descendants into the hierarchy branches
// the generated dispatch code is organized around, and resolves the
// conditional-compilation guards a class needs.
package classify

import "github.com/godot-ecs/nodegen/internal/hierarchy"

// Branch roots of the Godot node hierarchy:
// Node -> {Node3D, CanvasItem -> {Node2D, Control}, others}.
const (
	RootNode       = "Node"
	RootNode3D     = "Node3D"
	RootNode2D     = "Node2D"
	RootControl    = "Control"
	RootCanvasItem = "CanvasItem"
)

// Categories holds the four disjoint partitions of Node descendants, each in
// discovery order. Emitters that need determinism sort explicitly.
type Categories struct {
	Spatial3D []string
	Spatial2D []string
	Control   []string
	Universal []string
}

// Categorize assigns each node type to exactly one category, first match
// wins, in this order: 3D branch, 2D branch, Control branch, direct Node
// child. The order is the system's defined tie-break; do not reorder it.
// Classes matching none of the four are left out entirely.
func Categorize(nodeTypes []string, ix *hierarchy.Index) Categories {
	var cats Categories
	for _, nodeType := range nodeTypes {
		switch {
		case ix.IsDescendantOf(nodeType, RootNode3D):
			cats.Spatial3D = append(cats.Spatial3D, nodeType)
		case ix.IsDescendantOf(nodeType, RootNode2D):
			cats.Spatial2D = append(cats.Spatial2D, nodeType)
		case ix.IsDescendantOf(nodeType, RootControl):
			cats.Control = append(cats.Control, nodeType)
		default:
			if parent, ok := ix.Parent(nodeType); ok && parent == RootNode {
				cats.Universal = append(cats.Universal, nodeType)
			}
		}
	}
	return cats
}
