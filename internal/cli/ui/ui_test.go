package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinterNoColor(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)

	p.Successf("generated %d node markers", 917)
	p.Warnf("cargo-fmt not found - skipping formatting")
	p.Errorf("generation failed")
	p.Infof("  • %s", "node_markers4_4.rs")

	out := buf.String()
	for _, want := range []string{
		"✅ generated 917 node markers",
		"⚠ cargo-fmt not found",
		"❌ generation failed",
		"  • node_markers4_4.rs",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("no-color output must not contain ANSI escapes")
	}
}
