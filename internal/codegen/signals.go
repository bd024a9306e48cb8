package codegen

import (
	"strings"

	"github.com/godot-ecs/nodegen/internal/ident"
	"github.com/godot-ecs/nodegen/internal/markup"
)

// GenerateSignalNames renders the Rust file with one Signals container per
// class that declares signals, each signal as a doc-commented string
// constant. Returns the rendered source and the number of constants.
func (g *Generator) GenerateSignalNames(m *Model) (string, int) {
	g.reset()

	g.writeLine("#![allow(dead_code)]")
	g.writeLine("//! 🤖 This file is generated. Changes to it will be lost.")
	g.writeLine("//! To regenerate: %s", RegenerateCommand)
	g.writeLine("//!")
	g.writeLine("//! Signal name constants for Godot classes.")
	g.writeLine("//! These provide convenient, discoverable signal names for connecting to Godot signals.")
	g.writeLine("//!")
	g.writeLine("//! Example usage:")
	g.writeLine("//! ```ignore")
	g.writeLine("//! use godot_bevy::interop::signal_names::ButtonSignals;")
	g.writeLine("//! // Connect to the \"pressed\" signal")
	g.writeLine("//! button.connect(ButtonSignals::PRESSED.into(), callable);")
	g.writeLine("//! ```")
	g.writeLine("")

	signalCount := 0
	for i := range m.API.Classes {
		class := &m.API.Classes[i]
		if class.Signals == nil {
			continue
		}

		rustName := ident.RustClassName(class.Name)
		structName := rustName + "Signals"
		cfg := cfgFor(class.Name)

		if cfg != "" {
			g.writeLine(cfg)
		}
		g.writeLine("/// Signal constants for `%s`", rustName)
		g.writeLine("pub struct %s;", structName)
		g.writeLine("")

		if cfg != "" {
			g.writeLine(cfg)
		}
		g.writeLine("impl %s {", structName)

		for _, signal := range class.Signals {
			description := strings.TrimSpace(signal.Description)
			if description != "" {
				description = markup.SanitizeDocComment(markup.ToMarkdown(description))
				for _, line := range strings.Split(strings.ReplaceAll(description, "\r\n", "\n"), "\n") {
					g.writeLine("    /// %s", strings.TrimRight(line, " \t"))
				}
			} else {
				g.writeLine("    /// Signal `%s`", signal.Name)
			}
			g.writeLine("    pub const %s: &'static str = \"%s\";", ident.ConstName(signal.Name), signal.Name)
			g.writeLine("")
			signalCount++
		}

		g.writeLine("}")
		g.writeLine("")
	}

	return g.buf.String(), signalCount
}
