package codegen

// Common types are probed before the alphabetical remainder of each branch.
// This ordering is an optimization, not a correctness requirement: first
// match and alphabetical order must agree on the final answer because the
// shortlists only contain leaf-level or mutually exclusive types.
var (
	common3D = []string{
		"MeshInstance3D", "StaticBody3D", "RigidBody3D", "CharacterBody3D",
		"Area3D", "Camera3D", "DirectionalLight3D", "OmniLight3D",
		"SpotLight3D", "CollisionShape3D",
	}
	common2D = []string{
		"Sprite2D", "StaticBody2D", "RigidBody2D", "CharacterBody2D",
		"Area2D", "Camera2D", "CollisionShape2D", "AnimatedSprite2D",
	}
	commonControl = []string{
		"Button", "Label", "Panel", "VBoxContainer", "HBoxContainer",
		"MarginContainer", "ColorRect", "LineEdit", "TextEdit", "CheckBox",
	}
	commonUniversal = []string{
		"AnimationPlayer", "Timer", "AudioStreamPlayer", "HTTPRequest",
		"CanvasLayer",
	}
)

// GenerateGDScriptWatcher renders the scene tree watcher script: the
// classifier mirroring the Rust branch precedence, the signal-capability
// bitmask helper, and the full-tree analyzer.
func (g *Generator) GenerateGDScriptWatcher(m *Model) string {
	g.reset()

	g.writeLine("class_name OptimizedSceneTreeWatcher")
	g.writeLine("extends Node")
	g.writeLine("")
	g.writeLine("# 🤖 This file is generated. Changes to it will be lost.")
	g.writeLine("# To regenerate: %s", RegenerateCommand)
	g.writeLine("")
	g.writeLine("# Generated for Godot version: %s", m.API.Header.VersionFullName)
	g.writeLine("# If you need support for a different version, swap out `optimized_scene_tree_watcher.gd`")
	g.writeLine("# with `optimized_scene_tree_watcher_versions/optimized_scene_tree_watcher*_*_*.gd_ignore` of your desired version.")
	g.writeLine("")
	g.writeLine("# Optimized Scene Tree Watcher")
	g.writeLine("# This GDScript class intercepts scene tree events and performs type analysis")
	g.writeLine("# on the GDScript side to avoid expensive FFI calls from Rust.")
	g.writeLine("# Handles %d different Godot node types.", len(m.NodeTypes))
	g.writeLine("")
	g.writeLine("# Reference to the Rust SceneTreeWatcher")
	g.writeLine("var rust_watcher: Node = null")
	g.writeLine("")

	g.writeWatcherLifecycle()
	g.writeCollisionMask()
	g.writeTypeAnalysis(m)
	g.writeInitialTreeAnalysis()

	return g.buf.String()
}

func (g *Generator) writeWatcherLifecycle() {
	g.writeLine("func _ready():")
	g.writeLine("    name = \"OptimizedSceneTreeWatcher\"")
	g.writeLine("")
	g.writeLine("    # Auto-detect the Rust SceneTreeWatcher using multiple strategies:")
	g.writeLine("    # 1. Try production path: /root/BevyAppSingleton (autoload singleton)")
	g.writeLine("    # 2. Try as sibling: get_parent().get_node(\"SceneTreeWatcher\") (test framework)")
	g.writeLine("    # 3. Use set_rust_watcher() if watcher is set externally")
	g.writeLine("")
	g.writeLine("    # Strategy 1: Production - BevyApp autoload singleton")
	g.writeLine("    var bevy_app = get_node_or_null(\"/root/BevyAppSingleton\")")
	g.writeLine("    if bevy_app:")
	g.writeLine("        rust_watcher = bevy_app.get_node_or_null(\"SceneTreeWatcher\")")
	g.writeLine("")
	g.writeLine("    # Strategy 2: Test environment - sibling node")
	g.writeLine("    if not rust_watcher and get_parent():")
	g.writeLine("        rust_watcher = get_parent().get_node_or_null(\"SceneTreeWatcher\")")
	g.writeLine("")
	g.writeLine("    # If still not found, it may be set later via set_rust_watcher()")
	g.writeLine("    if not rust_watcher:")
	g.writeLine("        push_warning(\"[OptimizedSceneTreeWatcher] SceneTreeWatcher not found. Will wait for set_rust_watcher() call.\")")
	g.writeLine("")
	g.writeLine("    # Connect to scene tree signals - these will forward to Rust with type info")
	g.writeLine("    # Use immediate connections for add/remove to get events as early as possible")
	g.writeLine("    get_tree().node_added.connect(_on_node_added)")
	g.writeLine("    get_tree().node_removed.connect(_on_node_removed)")
	g.writeLine("    get_tree().node_renamed.connect(_on_node_renamed, CONNECT_DEFERRED)")
	g.writeLine("")
	g.writeLine("func set_rust_watcher(watcher: Node):")
	g.writeLine("    \"\"\"Called from Rust to set the SceneTreeWatcher reference (optional)\"\"\"")
	g.writeLine("    rust_watcher = watcher")
	g.writeLine("")
	g.writeLine("func _on_node_added(node: Node):")
	g.writeLine("    \"\"\"Handle node added events with type optimization\"\"\"")
	g.writeLine("    if not rust_watcher:")
	g.writeLine("        return")
	g.writeLine("")
	g.writeLine("    # Check if node is still valid")
	g.writeLine("    if not is_instance_valid(node):")
	g.writeLine("        return")
	g.writeLine("")
	g.writeLine("    # Check if node is marked to be excluded from scene tree watcher")
	g.writeLine("    if node.has_meta(\"_bevy_exclude\"):")
	g.writeLine("        return")
	g.writeLine("")
	g.writeLine("    # Analyze node type on GDScript side - this is much faster than FFI")
	g.writeLine("    var node_type = _analyze_node_type(node)")
	g.writeLine("    var node_name = node.name")
	g.writeLine("    var parent = node.get_parent()")
	g.writeLine("    var parent_id = parent and parent.get_instance_id() or 0")
	g.writeLine("    var collision_mask = _compute_collision_mask(node)")
	g.writeLine("")
	g.writeLine("    # Collect groups for this node")
	g.writeLine("    var node_groups = PackedStringArray()")
	g.writeLine("    for group in node.get_groups():")
	g.writeLine("        node_groups.append(group)")
	g.writeLine("")
	g.writeLine("    # Forward to Rust watcher with pre-analyzed metadata")
	g.writeLine("    # Try newest API first (with groups), then fall back to older APIs")
	g.writeLine("    if rust_watcher.has_method(\"scene_tree_event_typed_metadata_groups\"):")
	g.writeLine("        rust_watcher.scene_tree_event_typed_metadata_groups(")
	g.writeLine("            node,")
	g.writeLine("            \"NodeAdded\",")
	g.writeLine("            node_type,")
	g.writeLine("            node_name,")
	g.writeLine("            parent_id,")
	g.writeLine("            collision_mask,")
	g.writeLine("            node_groups")
	g.writeLine("        )")
	g.writeLine("    elif rust_watcher.has_method(\"scene_tree_event_typed_metadata\"):")
	g.writeLine("        rust_watcher.scene_tree_event_typed_metadata(")
	g.writeLine("            node,")
	g.writeLine("            \"NodeAdded\",")
	g.writeLine("            node_type,")
	g.writeLine("            node_name,")
	g.writeLine("            parent_id,")
	g.writeLine("            collision_mask")
	g.writeLine("        )")
	g.writeLine("    elif rust_watcher.has_method(\"scene_tree_event_typed\"):")
	g.writeLine("        rust_watcher.scene_tree_event_typed(node, \"NodeAdded\", node_type)")
	g.writeLine("    else:")
	g.writeLine("        # Fallback to regular method if typed method not available")
	g.writeLine("        rust_watcher.scene_tree_event(node, \"NodeAdded\")")
	g.writeLine("")
	g.writeLine("func _on_node_removed(node: Node):")
	g.writeLine("    \"\"\"Handle node removed events - no type analysis needed for removal\"\"\"")
	g.writeLine("    if not rust_watcher:")
	g.writeLine("        return")
	g.writeLine("")
	g.writeLine("    # This is called immediately (not deferred) so the node should still be valid")
	g.writeLine("    # We need to send this event so Rust can clean up the corresponding Bevy entity")
	g.writeLine("    rust_watcher.scene_tree_event(node, \"NodeRemoved\")")
	g.writeLine("")
	g.writeLine("func _on_node_renamed(node: Node):")
	g.writeLine("    \"\"\"Handle node renamed events - no type analysis needed for renaming\"\"\"")
	g.writeLine("    if not rust_watcher:")
	g.writeLine("        return")
	g.writeLine("")
	g.writeLine("    # Check if node is still valid")
	g.writeLine("    if not is_instance_valid(node):")
	g.writeLine("        return")
	g.writeLine("")
	g.writeLine("    var node_name = node.name")
	g.writeLine("    if rust_watcher.has_method(\"scene_tree_event_named\"):")
	g.writeLine("        rust_watcher.scene_tree_event_named(node, \"NodeRenamed\", node_name)")
	g.writeLine("    else:")
	g.writeLine("        rust_watcher.scene_tree_event(node, \"NodeRenamed\")")
	g.writeLine("")
}

// writeCollisionMask renders the 4-bit capability mask over the fixed
// collision signals a physics-ish node may expose.
func (g *Generator) writeCollisionMask() {
	g.writeLine("func _compute_collision_mask(node: Node) -> int:")
	g.writeLine("    var mask = 0")
	g.writeLine("    if node.has_signal(\"body_entered\"):")
	g.writeLine("        mask |= 1")
	g.writeLine("    if node.has_signal(\"body_exited\"):")
	g.writeLine("        mask |= 2")
	g.writeLine("    if node.has_signal(\"area_entered\"):")
	g.writeLine("        mask |= 4")
	g.writeLine("    if node.has_signal(\"area_exited\"):")
	g.writeLine("        mask |= 8")
	g.writeLine("    return mask")
	g.writeLine("")
}

func (g *Generator) writeTypeAnalysis(m *Model) {
	g.writeLine("func _analyze_node_type(node: Node) -> String:")
	g.writeLine("    \"\"\"")
	g.writeLine("    Analyze node type hierarchy on GDScript side.")
	g.writeLine("    Returns the most specific built-in Godot type name.")
	g.writeLine("    This avoids multiple FFI calls that would be needed on the Rust side.")
	g.writeLine("    Generated from Godot extension API to ensure completeness.")
	g.writeLine("    \"\"\"")
	g.writeLine("")
	g.writeLine("    # Check Node3D hierarchy first (most common in 3D games)")
	g.writeLine("    if node is Node3D:")
	g.writeBranchProbes(m.Categories.Spatial3D, common3D, "        ")
	g.writeLine("        return \"Node3D\"")
	g.writeLine("")
	g.writeLine("    # Check Node2D hierarchy (common in 2D games)")
	g.writeLine("    elif node is Node2D:")
	g.writeBranchProbes(m.Categories.Spatial2D, common2D, "        ")
	g.writeLine("        return \"Node2D\"")
	g.writeLine("")
	g.writeLine("    # Check Control hierarchy (UI elements)")
	g.writeLine("    elif node is Control:")
	g.writeBranchProbes(m.Categories.Control, commonControl, "        ")
	g.writeLine("        return \"Control\"")
	g.writeLine("")
	g.writeLine("    # Check other common node types that inherit directly from Node")
	for _, class := range inCategory(commonUniversal, m.Categories.Universal) {
		g.writeLine("    elif node is %s: return \"%s\"", class, class)
	}
	for _, class := range sortedCopy(m.Categories.Universal) {
		if contains(commonUniversal, class) {
			continue
		}
		g.writeLine("    elif node is %s: return \"%s\"", class, class)
	}
	g.writeLine("")
	g.writeLine("    # Default fallback")
	g.writeLine("    return \"Node\"")
	g.writeLine("")
}

// writeBranchProbes emits `if node is T: return "T"` probes: the common
// shortlist first, then the remaining branch members alphabetically.
func (g *Generator) writeBranchProbes(members, common []string, indent string) {
	for _, class := range inCategory(common, members) {
		g.writeLine("%sif node is %s: return \"%s\"", indent, class, class)
	}
	for _, class := range sortedCopy(members) {
		if contains(common, class) {
			continue
		}
		g.writeLine("%sif node is %s: return \"%s\"", indent, class, class)
	}
}

func (g *Generator) writeInitialTreeAnalysis() {
	g.writeLine("func analyze_initial_tree() -> Dictionary:")
	g.writeLine("    \"\"\"")
	g.writeLine("    Analyze the entire initial scene tree and return node information with types.")
	g.writeLine("    Returns a Dictionary with PackedArrays for maximum performance:")
	g.writeLine("    {")
	g.writeLine("        \"instance_ids\": PackedInt64Array,")
	g.writeLine("        \"node_types\": PackedStringArray,")
	g.writeLine("        \"node_names\": PackedStringArray,")
	g.writeLine("        \"parent_ids\": PackedInt64Array,")
	g.writeLine("        \"collision_masks\": PackedInt64Array,")
	g.writeLine("        \"groups\": Array[PackedStringArray]  # Added in v2 - may not be present in older addons")
	g.writeLine("    }")
	g.writeLine("    Used for optimized initial scene tree setup.")
	g.writeLine("    \"\"\"")
	g.writeLine("    var instance_ids = PackedInt64Array()")
	g.writeLine("    var node_types = PackedStringArray()")
	g.writeLine("    var node_names = PackedStringArray()")
	g.writeLine("    var parent_ids = PackedInt64Array()")
	g.writeLine("    var collision_masks = PackedInt64Array()")
	g.writeLine("    var groups = []  # Array of PackedStringArrays")
	g.writeLine("    var root = get_tree().get_root()")
	g.writeLine("    if root:")
	g.writeLine("        _analyze_node_recursive(root, instance_ids, node_types, node_names, parent_ids, collision_masks, groups)")
	g.writeLine("")
	g.writeLine("    return {")
	g.writeLine("        \"instance_ids\": instance_ids,")
	g.writeLine("        \"node_types\": node_types,")
	g.writeLine("        \"node_names\": node_names,")
	g.writeLine("        \"parent_ids\": parent_ids,")
	g.writeLine("        \"collision_masks\": collision_masks,")
	g.writeLine("        \"groups\": groups")
	g.writeLine("    }")
	g.writeLine("")
	g.writeLine("func _analyze_node_recursive(node: Node, instance_ids: PackedInt64Array, node_types: PackedStringArray, node_names: PackedStringArray, parent_ids: PackedInt64Array, collision_masks: PackedInt64Array, groups: Array):")
	g.writeLine("    \"\"\"Recursively analyze nodes and collect type information into PackedArrays\"\"\"")
	g.writeLine("    # Check if node is still valid before processing")
	g.writeLine("    if not is_instance_valid(node):")
	g.writeLine("        return")
	g.writeLine("")
	g.writeLine("    # Check if node is marked to be excluded from scene tree watcher")
	g.writeLine("    if node.has_meta(\"_bevy_exclude\"):")
	g.writeLine("        return")
	g.writeLine("")
	g.writeLine("    # Add this node's information with pre-analyzed type")
	g.writeLine("    var instance_id = node.get_instance_id()")
	g.writeLine("    var node_type = _analyze_node_type(node)")
	g.writeLine("    var node_name = node.name")
	g.writeLine("    var parent = node.get_parent()")
	g.writeLine("    var parent_id = parent and parent.get_instance_id() or 0")
	g.writeLine("    var collision_mask = _compute_collision_mask(node)")
	g.writeLine("")
	g.writeLine("    # Collect groups for this node")
	g.writeLine("    var node_groups = PackedStringArray()")
	g.writeLine("    for group in node.get_groups():")
	g.writeLine("        node_groups.append(group)")
	g.writeLine("")
	g.writeLine("    # Only append if we have valid data")
	g.writeLine("    if instance_id != 0 and node_type != \"\":")
	g.writeLine("        instance_ids.append(instance_id)")
	g.writeLine("        node_types.append(node_type)")
	g.writeLine("        node_names.append(node_name)")
	g.writeLine("        parent_ids.append(parent_id)")
	g.writeLine("        collision_masks.append(collision_mask)")
	g.writeLine("        groups.append(node_groups)")
	g.writeLine("")
	g.writeLine("    # Recursively process children")
	g.writeLine("    for child in node.get_children():")
	g.writeLine("        _analyze_node_recursive(child, instance_ids, node_types, node_names, parent_ids, collision_masks, groups)")
}

// inCategory filters the common shortlist down to names the schema version
// actually has, preserving the shortlist's order.
func inCategory(common, members []string) []string {
	var out []string
	for _, class := range common {
		if contains(members, class) {
			out = append(out, class)
		}
	}
	return out
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
