package codegen

import (
	"github.com/godot-ecs/nodegen/internal/classify"
	"github.com/godot-ecs/nodegen/internal/ident"
)

// GenerateTypeChecking renders the Rust dispatch source: per-branch probe
// functions, symmetric removal functions, and the string-keyed dispatcher
// used when GDScript has already classified the node.
func (g *Generator) GenerateTypeChecking(m *Model) string {
	g.reset()

	g.writeLine("//! 🤖 This file is generated. Changes to it will be lost.")
	g.writeLine("//! To regenerate: %s", RegenerateCommand)
	g.writeLine("")
	g.writeLine("use bevy_ecs::system::EntityCommands;")
	g.writeLine("use crate::interop::{GodotNode, node_markers::*};")
	g.writeLine("")

	g.writeComprehensiveAdd(m)
	g.writeStringDispatch(m)
	g.writeComprehensiveRemove()

	g.writeCheckFunction("3d", m.Categories.Spatial3D)
	g.writeRemoveFunction("3d", m.Categories.Spatial3D)
	g.writeCheckFunction("2d", m.Categories.Spatial2D)
	g.writeRemoveFunction("2d", m.Categories.Spatial2D)
	g.writeCheckFunction("control", m.Categories.Control)
	g.writeRemoveFunction("control", m.Categories.Control)
	g.writeCheckFunction("universal", m.Categories.Universal)
	g.writeRemoveFunction("universal", m.Categories.Universal)

	return g.buf.String()
}

func (g *Generator) writeComprehensiveAdd(m *Model) {
	g.writeLine("/// Adds appropriate marker components to an entity based on the Godot node type.")
	g.writeLine("/// This function is automatically generated and handles all %d Godot node types.", len(m.NodeTypes))
	g.writeLine("///")
	g.writeLine("/// Godot's hierarchy: Node -> {Node3D, CanvasItem -> {Node2D, Control}, Others}")
	g.writeLine("/// We check the major branches: 3D, 2D, Control (UI), and Universal (direct Node children)")
	g.writeLine("pub fn add_comprehensive_node_type_markers(")
	g.writeLine("    entity_commands: &mut EntityCommands,")
	g.writeLine("    node: &mut GodotNode,")
	g.writeLine(") {")
	g.writeLine("    // All nodes inherit from Node, so add this first")
	g.writeLine("    entity_commands.insert(NodeMarker);")
	g.writeLine("")
	g.writeLine("    // Check the major hierarchy branches to minimize FFI calls")
	g.writeLine("    if node.try_get::<godot::classes::Node3D>().is_some() {")
	g.writeLine("        entity_commands.insert(Node3DMarker);")
	g.writeLine("        check_3d_node_types_comprehensive(entity_commands, node);")
	g.writeLine("    } else if node.try_get::<godot::classes::Node2D>().is_some() {")
	g.writeLine("        entity_commands.insert(Node2DMarker);")
	g.writeLine("        entity_commands.insert(CanvasItemMarker); // Node2D inherits from CanvasItem")
	g.writeLine("        check_2d_node_types_comprehensive(entity_commands, node);")
	g.writeLine("    } else if node.try_get::<godot::classes::Control>().is_some() {")
	g.writeLine("        entity_commands.insert(ControlMarker);")
	g.writeLine("        entity_commands.insert(CanvasItemMarker); // Control inherits from CanvasItem")
	g.writeLine("        check_control_node_types_comprehensive(entity_commands, node);")
	g.writeLine("    }")
	g.writeLine("")
	g.writeLine("    // Check node types that inherit directly from Node")
	g.writeLine("    check_universal_node_types_comprehensive(entity_commands, node);")
	g.writeLine("}")
	g.writeLine("")
}

// writeStringDispatch renders the string-keyed dispatcher. Each arm inserts
// the matched class's marker and then every implied ancestor marker, walking
// child to root and stopping before Node, so the marker set always matches
// what the probe-based path would produce.
func (g *Generator) writeStringDispatch(m *Model) {
	g.writeLine("/// Adds node type markers based on a pre-analyzed type string from GDScript.")
	g.writeLine("/// This avoids FFI calls by using type information determined on the GDScript side.")
	g.writeLine("/// Inserts the matched type's marker plus every inherited ancestor marker,")
	g.writeLine("/// most-derived first, up to (but not including) Node.")
	g.writeLine("pub fn add_node_type_markers_from_string(")
	g.writeLine("    entity_commands: &mut EntityCommands,")
	g.writeLine("    node_type: &str,")
	g.writeLine(") {")
	g.writeLine("    // All nodes inherit from Node")
	g.writeLine("    entity_commands.insert(NodeMarker);")
	g.writeLine("")
	g.writeLine("    // Add appropriate markers based on the type string")
	g.writeLine("    match node_type {")

	for _, class := range sortedCopy(m.NodeTypes) {
		if class == classify.RootNode {
			continue // NodeMarker already added above
		}
		if cfg := cfgFor(class); cfg != "" {
			g.writeLine("        %s", cfg)
		}
		g.writeLine("        %q => {", class)
		g.writeLine("            entity_commands.insert(%sMarker);", class)
		for _, ancestor := range m.Index.Ancestors(class, classify.RootNode) {
			g.writeLine("            entity_commands.insert(%sMarker);", ancestor)
		}
		g.writeLine("        }")
	}

	g.writeLine("        // For any unrecognized type, we already have NodeMarker")
	g.writeLine("        // This handles custom user types that extend Godot nodes")
	g.writeLine("        _ => {}")
	g.writeLine("    }")
	g.writeLine("}")
	g.writeLine("")
}

func (g *Generator) writeComprehensiveRemove() {
	g.writeLine("pub fn remove_comprehensive_node_type_markers(")
	g.writeLine("    entity_commands: &mut EntityCommands,")
	g.writeLine("    node: &mut GodotNode,")
	g.writeLine(") {")
	g.writeLine("    // All nodes inherit from Node, so remove this first")
	g.writeLine("    entity_commands.remove::<NodeMarker>();")
	g.writeLine("")
	g.writeLine("    entity_commands.remove::<Node3DMarker>();")
	g.writeLine("    remove_3d_node_types_comprehensive(entity_commands, node);")
	g.writeLine("")
	g.writeLine("    entity_commands.remove::<Node2DMarker>();")
	g.writeLine("    entity_commands.remove::<CanvasItemMarker>(); // Node2D inherits from CanvasItem")
	g.writeLine("    remove_2d_node_types_comprehensive(entity_commands, node);")
	g.writeLine("")
	g.writeLine("    entity_commands.remove::<ControlMarker>();")
	g.writeLine("    remove_control_node_types_comprehensive(entity_commands, node);")
	g.writeLine("")
	g.writeLine("    remove_universal_node_types_comprehensive(entity_commands, node);")
	g.writeLine("}")
	g.writeLine("")
}

// writeCheckFunction renders a branch-specific probe function. An empty
// category still yields a well-formed function with no probes.
func (g *Generator) writeCheckFunction(name string, types []string) {
	g.writeLine("fn check_%s_node_types_comprehensive(", name)
	g.writeLine("    entity_commands: &mut EntityCommands,")
	g.writeLine("    node: &mut GodotNode,")
	g.writeLine(") {")

	for _, class := range sortedCopy(types) {
		if cfg := cfgFor(class); cfg != "" {
			g.writeLine("    %s", cfg)
		}
		g.writeLine("    if node.try_get::<godot::classes::%s>().is_some() {", ident.RustClassName(class))
		g.writeLine("        entity_commands.insert(%sMarker);", class)
		g.writeLine("    }")
	}

	g.writeLine("}")
	g.writeLine("")
}

// writeRemoveFunction renders the symmetric removal function. Ungated
// removes go in one builder chain; gated removes get their own chain per
// distinct guard so the cfg attribute can wrap the whole statement.
func (g *Generator) writeRemoveFunction(name string, types []string) {
	g.writeLine("fn remove_%s_node_types_comprehensive(", name)
	g.writeLine("    entity_commands: &mut EntityCommands,")
	g.writeLine("    _node: &mut GodotNode,")
	g.writeLine(") {")
	g.writeLine("    entity_commands")

	var gatedOrder []string
	gated := make(map[string][]string)
	for _, class := range sortedCopy(types) {
		if cfg := cfgFor(class); cfg != "" {
			if _, seen := gated[cfg]; !seen {
				gatedOrder = append(gatedOrder, cfg)
			}
			gated[cfg] = append(gated[cfg], class)
			continue
		}
		g.writeLine("        .remove::<%sMarker>()", class)
	}
	g.writeLine("        ;")

	for _, cfg := range gatedOrder {
		g.writeLine("")
		g.writeLine("    %s", cfg)
		g.writeLine("    entity_commands")
		for _, class := range gated[cfg] {
			g.writeLine("        .remove::<%sMarker>()", class)
		}
		g.writeLine("        ;")
	}

	g.writeLine("}")
	g.writeLine("")
}
