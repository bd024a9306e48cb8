package hierarchy

import (
	"testing"

	"github.com/godot-ecs/nodegen/internal/schema"
)

func buildIndex(t *testing.T, classes []schema.Class) *Index {
	t.Helper()
	ix, err := New(&schema.ExtensionAPI{Classes: classes, Version: "test"})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	return ix
}

func sampleClasses() []schema.Class {
	return []schema.Class{
		{Name: "Object"},
		{Name: "Node", Inherits: "Object"},
		{Name: "Node3D", Inherits: "Node"},
		{Name: "Camera3D", Inherits: "Node3D"},
		{Name: "CanvasItem", Inherits: "Node"},
		{Name: "Node2D", Inherits: "CanvasItem"},
		{Name: "Sprite2D", Inherits: "Node2D"},
		{Name: "Control", Inherits: "CanvasItem"},
		{Name: "RefCounted", Inherits: "Object"},
	}
}

func TestIsDescendantOf(t *testing.T) {
	ix := buildIndex(t, sampleClasses())

	tests := []struct {
		name     string
		ancestor string
		want     bool
	}{
		{"Camera3D", "Node3D", true},
		{"Camera3D", "Node", true},
		{"Camera3D", "Object", true},
		{"Sprite2D", "CanvasItem", true},
		{"Sprite2D", "Node3D", false},
		{"Node3D", "Node3D", false}, // a class is not its own descendant
		{"RefCounted", "Node", false},
		{"Unknown", "Node", false},
	}

	for _, tt := range tests {
		if got := ix.IsDescendantOf(tt.name, tt.ancestor); got != tt.want {
			t.Errorf("IsDescendantOf(%s, %s) = %v, want %v", tt.name, tt.ancestor, got, tt.want)
		}
	}
}

func TestDescendants(t *testing.T) {
	ix := buildIndex(t, sampleClasses())

	got, err := ix.Descendants("Node")
	if err != nil {
		t.Fatalf("Descendants(Node) returned error: %v", err)
	}

	want := []string{"Node", "Node3D", "Camera3D", "CanvasItem", "Node2D", "Sprite2D", "Control"}
	if len(got) != len(want) {
		t.Fatalf("Descendants(Node) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Descendants(Node)[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDescendantsMissingRoot(t *testing.T) {
	ix := buildIndex(t, sampleClasses())
	if _, err := ix.Descendants("Spatial"); err == nil {
		t.Error("Descendants(Spatial) should fail when the root is absent")
	}
}

func TestAncestors(t *testing.T) {
	ix := buildIndex(t, sampleClasses())

	tests := []struct {
		name string
		stop string
		want []string
	}{
		{"Sprite2D", "Node", []string{"Node2D", "CanvasItem"}},
		{"Camera3D", "Node", []string{"Node3D"}},
		{"Node3D", "Node", nil},
		{"Sprite2D", "Object", []string{"Node2D", "CanvasItem", "Node"}},
	}

	for _, tt := range tests {
		got := ix.Ancestors(tt.name, tt.stop)
		if len(got) != len(tt.want) {
			t.Errorf("Ancestors(%s, %s) = %v, want %v", tt.name, tt.stop, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("Ancestors(%s, %s)[%d] = %s, want %s", tt.name, tt.stop, i, got[i], tt.want[i])
			}
		}
	}
}

func TestCyclicInheritanceIsFatal(t *testing.T) {
	classes := []schema.Class{
		{Name: "A", Inherits: "B"},
		{Name: "B", Inherits: "A"},
	}
	if _, err := New(&schema.ExtensionAPI{Classes: classes, Version: "test"}); err == nil {
		t.Error("New() should reject cyclic inheritance")
	}
}
