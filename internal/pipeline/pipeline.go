// Package pipeline drives generation end to end: one pass per schema
// version, then activation of the most recent version's watcher script.
// Nothing is shared across versions; every derived index is rebuilt fresh.
package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/godot-ecs/nodegen/internal/cli/config"
	"github.com/godot-ecs/nodegen/internal/cli/ui"
	"github.com/godot-ecs/nodegen/internal/codegen"
	"github.com/godot-ecs/nodegen/internal/generr"
	"github.com/godot-ecs/nodegen/internal/genlog"
	"github.com/godot-ecs/nodegen/internal/schema"
)

// Pipeline runs the full generation for every configured schema version.
type Pipeline struct {
	cfg    *config.Config
	paths  Paths
	log    *genlog.Logger
	ui     *ui.Printer
	runner CommandRunner

	// SkipDump generates from existing dumps without invoking the engine.
	SkipDump bool
}

// New assembles a pipeline over the given configuration.
func New(cfg *config.Config, log *genlog.Logger, printer *ui.Printer) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		paths:  NewPaths(cfg.ProjectRoot),
		log:    log,
		ui:     printer,
		runner: ExecRunner{},
	}
}

// WithRunner substitutes the external-command runner. Used in tests.
func (p *Pipeline) WithRunner(r CommandRunner) *Pipeline {
	p.runner = r
	return p
}

// DumpDir exposes the directory holding the versioned schema dumps.
func (p *Pipeline) DumpDir() string {
	return p.paths.DumpDir()
}

// Run processes every configured version in order, then copies the latest
// version's watcher artifact to the active path. The copy happens only
// after all versions generated successfully; a fatal error on any version
// aborts the whole run and leaves the active watcher untouched.
func (p *Pipeline) Run(ctx context.Context) error {
	p.log.Step("starting Godot type generation pipeline")

	for _, version := range p.cfg.APIVersions {
		p.log.Step("processing API version", zap.String("version", version))
		if err := p.GenerateVersion(ctx, version); err != nil {
			return err
		}
	}

	latest, err := p.cfg.LatestVersion()
	if err != nil {
		return generr.Wrap(generr.PhaseActivate, "", err, "cannot pick latest version")
	}
	if err := p.activateWatcher(latest); err != nil {
		return err
	}

	p.log.Step("generation complete")
	p.ui.Successf("Generation complete!")
	p.ui.Infof("")
	p.ui.Infof("Files generated:")
	for _, path := range p.paths.AllGeneratedFiles(p.cfg.APIVersions) {
		if rel, relErr := filepath.Rel(p.paths.Root, path); relErr == nil {
			path = rel
		}
		p.ui.Infof("   • %s", path)
	}
	return nil
}

// Dump fetches the extension API dump for every configured version without
// generating any code.
func (p *Pipeline) Dump(ctx context.Context) error {
	for _, version := range p.cfg.APIVersions {
		if err := p.dumpAPI(ctx, p.log.Nested(), version); err != nil {
			return err
		}
	}
	return nil
}

// GenerateVersion runs one schema version through dump, load, partition and
// both backend emitters.
func (p *Pipeline) GenerateVersion(ctx context.Context, version string) error {
	log := p.log.Nested()

	if !p.SkipDump {
		if err := p.dumpAPI(ctx, log, version); err != nil {
			return err
		}
	}

	log.Step("parsing extension API", zap.String("version", version))
	api, err := schema.Load(p.paths.ExtensionAPIFile(version), version)
	if err != nil {
		return generr.Wrap(generr.PhaseLoad, version, err, "failed to load extension API")
	}

	model, err := codegen.BuildModel(api)
	if err != nil {
		return err
	}

	gen := codegen.NewGenerator()

	log.Step("generating node markers", zap.Int("types", len(model.NodeTypes)))
	markersFile := p.paths.NodeMarkersFile(version)
	if err := p.writeArtifact(markersFile, gen.GenerateNodeMarkers(model)); err != nil {
		return generr.Wrap(generr.PhaseWrite, version, err, "failed to write node markers")
	}
	p.formatRustFile(ctx, log.Nested(), markersFile)

	log.Step("generating type checking code")
	typeCheckingFile := p.paths.TypeCheckingFile(version)
	if err := p.writeArtifact(typeCheckingFile, gen.GenerateTypeChecking(model)); err != nil {
		return generr.Wrap(generr.PhaseWrite, version, err, "failed to write type checking code")
	}
	p.formatRustFile(ctx, log.Nested(), typeCheckingFile)

	log.Step("generating GDScript scene tree watcher")
	if err := p.writeArtifact(p.paths.WatcherFile(version), gen.GenerateGDScriptWatcher(model)); err != nil {
		return generr.Wrap(generr.PhaseWrite, version, err, "failed to write GDScript watcher")
	}

	signalsSource, signalCount := gen.GenerateSignalNames(model)
	log.Step("generating signal names", zap.Int("signals", signalCount))
	signalsFile := p.paths.SignalNamesFile(version)
	if err := p.writeArtifact(signalsFile, signalsSource); err != nil {
		return generr.Wrap(generr.PhaseWrite, version, err, "failed to write signal names")
	}
	p.formatRustFile(ctx, log.Nested(), signalsFile)

	return nil
}

// activateWatcher copies the designated version's watcher script to the
// fixed path the addon loads.
func (p *Pipeline) activateWatcher(version string) error {
	source := p.paths.WatcherFile(version)
	content, err := os.ReadFile(source)
	if err != nil {
		return generr.Wrap(generr.PhaseActivate, version, err, "cannot read watcher artifact")
	}
	if err := p.writeArtifact(p.paths.ActiveWatcherFile(), string(content)); err != nil {
		return generr.Wrap(generr.PhaseActivate, version, err, "cannot install active watcher")
	}
	p.log.Step("activated watcher", zap.String("version", version))
	return nil
}

func (p *Pipeline) writeArtifact(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
