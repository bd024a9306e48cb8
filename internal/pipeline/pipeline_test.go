package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godot-ecs/nodegen/internal/cli/config"
	"github.com/godot-ecs/nodegen/internal/cli/ui"
	"github.com/godot-ecs/nodegen/internal/generr"
	"github.com/godot-ecs/nodegen/internal/genlog"
)

const fixtureAPI = `{
  "header": {
    "version_major": 4,
    "version_minor": 3,
    "version_patch": 0,
    "version_status": "stable",
    "version_build": "official",
    "version_full_name": "Godot Engine v4.3.stable.official",
    "precision": "single"
  },
  "classes": [
    {"name": "Object", "api_type": "core"},
    {"name": "Node", "api_type": "core", "inherits": "Object",
     "signals": [{"name": "renamed", "description": "Emitted when the node is renamed."}]},
    {"name": "Node3D", "api_type": "core", "inherits": "Node"},
    {"name": "CanvasItem", "api_type": "core", "inherits": "Node"},
    {"name": "Node2D", "api_type": "core", "inherits": "CanvasItem"},
    {"name": "Sprite2D", "api_type": "core", "inherits": "Node2D"},
    {"name": "Control", "api_type": "core", "inherits": "CanvasItem"},
    {"name": "Timer", "api_type": "core", "inherits": "Node",
     "signals": [{"name": "timeout", "description": "Emitted when the timer reaches 0."}]}
  ]
}`

// recordingRunner logs every external command and can be scripted to fail
// particular executables or to drop a file on disk mid-call.
type recordingRunner struct {
	calls   []string
	failFor map[string]error
	onRun   func(dir, name string, args []string) error
}

func (r *recordingRunner) Run(_ context.Context, dir string, name string, args ...string) error {
	r.calls = append(r.calls, name+" "+strings.Join(args, " "))
	if err, ok := r.failFor[name]; ok {
		return err
	}
	if r.onRun != nil {
		return r.onRun(dir, name, args)
	}
	return nil
}

func testConfig(root string, versions ...string) *config.Config {
	return &config.Config{
		ProjectRoot: root,
		APIVersions: versions,
		Godot: config.GodotConfig{
			Commands:           []string{"godot"},
			VersionManager:     "gdenv",
			DumpTimeoutSeconds: 30,
		},
		Format: config.FormatConfig{Enabled: false, Command: "cargo"},
	}
}

func placeDump(t *testing.T, paths Paths, version string) {
	t.Helper()
	dest := paths.ExtensionAPIFile(version)
	require.NoError(t, os.MkdirAll(filepath.Dir(dest), 0o755))
	require.NoError(t, os.WriteFile(dest, []byte(fixtureAPI), 0o644))
}

func newTestPipeline(cfg *config.Config, runner CommandRunner) (*Pipeline, *bytes.Buffer) {
	var out bytes.Buffer
	p := New(cfg, genlog.NewNop(), ui.NewPrinter(&out, true)).WithRunner(runner)
	return p, &out
}

func TestRunGeneratesAllArtifacts(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root, "4.2", "4.3")
	paths := NewPaths(root)
	placeDump(t, paths, "4.2")
	placeDump(t, paths, "4.3")

	p, _ := newTestPipeline(cfg, &recordingRunner{})
	require.NoError(t, p.Run(context.Background()))

	for _, version := range cfg.APIVersions {
		for _, f := range []string{
			paths.NodeMarkersFile(version),
			paths.TypeCheckingFile(version),
			paths.WatcherFile(version),
			paths.SignalNamesFile(version),
		} {
			if _, err := os.Stat(f); err != nil {
				t.Errorf("missing artifact for %s: %s", version, f)
			}
		}
	}
}

func TestRunActivatesLatestWatcher(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root, "4.3", "4.2")
	paths := NewPaths(root)
	placeDump(t, paths, "4.2")
	placeDump(t, paths, "4.3")

	p, _ := newTestPipeline(cfg, &recordingRunner{})
	require.NoError(t, p.Run(context.Background()))

	active, err := os.ReadFile(paths.ActiveWatcherFile())
	require.NoError(t, err)
	latest, err := os.ReadFile(paths.WatcherFile("4.3"))
	require.NoError(t, err)
	assert.Equal(t, latest, active, "active watcher must match the latest version's artifact")
}

func TestRunIsDeterministic(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root, "4.3")
	paths := NewPaths(root)
	placeDump(t, paths, "4.3")

	p, _ := newTestPipeline(cfg, &recordingRunner{})
	require.NoError(t, p.Run(context.Background()))

	first := map[string][]byte{}
	for _, f := range []string{
		paths.NodeMarkersFile("4.3"),
		paths.TypeCheckingFile("4.3"),
		paths.WatcherFile("4.3"),
		paths.SignalNamesFile("4.3"),
	} {
		data, err := os.ReadFile(f)
		require.NoError(t, err)
		first[f] = data
	}

	require.NoError(t, p.Run(context.Background()))
	for f, want := range first {
		got, err := os.ReadFile(f)
		require.NoError(t, err)
		assert.Equal(t, want, got, "regeneration changed %s", f)
	}
}

func TestDumpReusesExistingFile(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root, "4.3")
	paths := NewPaths(root)
	placeDump(t, paths, "4.3")

	runner := &recordingRunner{}
	p, _ := newTestPipeline(cfg, runner)
	require.NoError(t, p.Run(context.Background()))
	assert.Empty(t, runner.calls, "existing dump must not trigger engine or gdenv calls")
}

func TestDumpInvokesEngineAndVersionManager(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root, "4.3")
	paths := NewPaths(root)

	runner := &recordingRunner{
		onRun: func(dir, name string, args []string) error {
			if name == "godot" {
				return os.WriteFile(filepath.Join(dir, "extension_api.json"), []byte(fixtureAPI), 0o644)
			}
			return nil
		},
	}
	p, _ := newTestPipeline(cfg, runner)
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, []string{
		"gdenv install 4.3",
		"gdenv use 4.3",
		"godot --headless --dump-extension-api-with-docs",
	}, runner.calls)

	if _, err := os.Stat(paths.ExtensionAPIFile("4.3")); err != nil {
		t.Errorf("engine output was not relocated to the versioned dump path: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "extension_api.json")); !errors.Is(err, os.ErrNotExist) {
		t.Error("raw engine output should not remain in the project root")
	}
}

func TestDumpExhaustionIsFatal(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root, "4.3")
	cfg.Godot.VersionManager = ""
	paths := NewPaths(root)

	// Runner succeeds but never produces the output file.
	p, _ := newTestPipeline(cfg, &recordingRunner{})
	err := p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, generr.IsFatal(err))

	var genErr *generr.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, generr.PhaseDump, genErr.Phase)

	if _, statErr := os.Stat(paths.ActiveWatcherFile()); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("failed run must not install an active watcher")
	}
}

func TestSkipDumpWithMissingFileFails(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root, "4.3")

	runner := &recordingRunner{}
	p, _ := newTestPipeline(cfg, runner)
	p.SkipDump = true

	err := p.Run(context.Background())
	require.Error(t, err)
	assert.Empty(t, runner.calls, "skip-dump must not touch the engine")

	var genErr *generr.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, generr.PhaseLoad, genErr.Phase)
}

func TestFormatterFailureIsOnlyAWarning(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root, "4.3")
	cfg.Format.Enabled = true
	paths := NewPaths(root)
	placeDump(t, paths, "4.3")

	runner := &recordingRunner{failFor: map[string]error{"cargo": errors.New("rustfmt missing")}}
	p, out := newTestPipeline(cfg, runner)
	require.NoError(t, p.Run(context.Background()), "formatting is best-effort")

	assert.Contains(t, out.String(), "could not format")
	// One fmt attempt per Rust artifact, none for the GDScript file.
	fmtCalls := 0
	for _, call := range runner.calls {
		if strings.HasPrefix(call, "cargo fmt") {
			fmtCalls++
		}
	}
	assert.Equal(t, 3, fmtCalls)
}

func TestFirstVersionFailureStopsRun(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root, "4.2", "4.3")
	paths := NewPaths(root)
	// Only the second version has a dump; the first must abort the run
	// before the second is ever processed.
	placeDump(t, paths, "4.3")

	runner := &recordingRunner{failFor: map[string]error{"godot": errors.New("not installed")}}
	p, _ := newTestPipeline(cfg, runner)
	require.Error(t, p.Run(context.Background()))

	if _, err := os.Stat(paths.NodeMarkersFile("4.3")); !errors.Is(err, os.ErrNotExist) {
		t.Error("later versions must not be generated after an earlier fatal error")
	}
}
