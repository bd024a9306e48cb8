package pipeline

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/godot-ecs/nodegen/internal/generr"
	"github.com/godot-ecs/nodegen/internal/genlog"
)

// CommandRunner executes one external command. Tests substitute a fake.
type CommandRunner interface {
	Run(ctx context.Context, dir string, name string, args ...string) error
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.Run()
}

// dumpAPI produces the extension API dump for one version. An existing dump
// is reused as-is. Each candidate godot command gets one bounded attempt;
// the engine writes extension_api.json into the working directory, which is
// then relocated to the version-specific destination. Exhausting every
// candidate is fatal for this version.
func (p *Pipeline) dumpAPI(ctx context.Context, log *genlog.Logger, version string) error {
	dest := p.paths.ExtensionAPIFile(version)
	log.Step("generating extension API dump", zap.String("version", version))

	if _, err := os.Stat(dest); err == nil {
		log.Nested().Step("dump already exists, skipping generation", zap.String("path", dest))
		return nil
	}

	if err := p.switchEngineVersion(ctx, version); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return generr.Wrap(generr.PhaseDump, version, err, "failed to create dump directory")
	}

	timeout := time.Duration(p.cfg.Godot.DumpTimeoutSeconds) * time.Second
	produced := filepath.Join(p.paths.Root, "extension_api.json")

	for _, candidate := range p.cfg.Godot.Commands {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		err := p.runner.Run(attemptCtx, p.paths.Root, candidate, "--headless", "--dump-extension-api-with-docs")
		cancel()
		if err != nil {
			log.Nested().Debug("candidate failed", zap.String("command", candidate), zap.Error(err))
			continue
		}
		if _, err := os.Stat(produced); err != nil {
			continue
		}
		if err := os.Rename(produced, dest); err != nil {
			return generr.Wrap(generr.PhaseDump, version, err, "failed to relocate engine output")
		}
		log.Nested().Step("generated dump", zap.String("path", dest), zap.String("command", candidate))
		return nil
	}

	return generr.Fatalf(generr.PhaseDump, version,
		"could not run Godot to generate extension_api.json; "+
			"ensure Godot 4 is installed and available in PATH")
}

// switchEngineVersion asks the configured version manager to install and
// select the engine release before dumping. A missing manager is an
// environment error, not something to silently skip.
func (p *Pipeline) switchEngineVersion(ctx context.Context, version string) error {
	manager := p.cfg.Godot.VersionManager
	if manager == "" {
		return nil
	}
	if err := p.runner.Run(ctx, p.paths.Root, manager, "install", version); err != nil {
		return generr.Wrap(generr.PhaseDump, version, err, "failed to install engine version via "+manager)
	}
	if err := p.runner.Run(ctx, p.paths.Root, manager, "use", version); err != nil {
		return generr.Wrap(generr.PhaseDump, version, err, "failed to select engine version via "+manager)
	}
	return nil
}
