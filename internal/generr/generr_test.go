package generr

import (
	"errors"
	"fmt"
	"testing"
)

func TestGenerationErrorMessage(t *testing.T) {
	err := Fatalf(PhaseLoad, "4.4", "extension API dump missing")
	want := "load [4.4]: extension API dump missing"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	runLevel := Fatalf(PhaseActivate, "", "no versions generated")
	if runLevel.Error() != "activate: no versions generated" {
		t.Errorf("Error() = %q", runLevel.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(PhaseWrite, "4.3", cause, "failed to write markers file")

	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"fatal", Fatalf(PhaseDump, "4.4", "no godot binary"), true},
		{"warning", Warnf(PhaseFormat, "4.4", "rustfmt missing"), false},
		{"plain error defaults to fatal", errors.New("boom"), true},
		{"wrapped fatal", fmt.Errorf("outer: %w", Fatalf(PhaseLoad, "4.2", "bad json")), true},
		{"wrapped warning", fmt.Errorf("outer: %w", Warnf(PhaseFormat, "4.2", "skip")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFatal(tt.err); got != tt.want {
				t.Errorf("IsFatal() = %v, want %v", got, tt.want)
			}
		})
	}
}
