package codegen

// GenerateNodeMarkers renders the Rust file declaring one zero-size marker
// component per Node-derived class, sorted by schema name. Marker types keep
// the schema name verbatim; only probe paths go through ident.RustClassName.
func (g *Generator) GenerateNodeMarkers(m *Model) string {
	g.reset()

	g.writeLine("use bevy_ecs::component::Component;")
	g.writeLine("use bevy_ecs::prelude::ReflectComponent;")
	g.writeLine("use bevy_reflect::Reflect;")
	g.writeLine("")
	g.writeLine("/// Marker components for Godot node types.")
	g.writeLine("/// These enable type-safe ECS queries like: Query<&GodotNodeHandle, With<Sprite2DMarker>>")
	g.writeLine("///")
	g.writeLine("/// 🤖 This file is generated. Changes to it will be lost.")
	g.writeLine("/// To regenerate: `%s`", RegenerateCommand)
	g.writeLine("")

	for _, class := range sortedCopy(m.NodeTypes) {
		if cfg := cfgFor(class); cfg != "" {
			g.writeLine(cfg)
		}
		g.writeLine("#[derive(Component, Debug, Clone, Copy, PartialEq, Eq, Default, Reflect)]")
		g.writeLine("#[reflect(Component)]")
		g.writeLine("pub struct %sMarker;", class)
		g.writeLine("")
	}

	return g.buf.String()
}
