package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/godot-ecs/nodegen/internal/genlog"
)

// formatRustFile runs the external formatter on one just-written Rust
// artifact. Formatting is best-effort: any failure is downgraded to a
// warning and generation still counts as successful.
func (p *Pipeline) formatRustFile(ctx context.Context, log *genlog.Logger, file string) {
	if !p.cfg.Format.Enabled {
		return
	}

	fmtCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	err := p.runner.Run(fmtCtx, p.paths.Root, p.cfg.Format.Command, "fmt", "--", file)
	if err != nil {
		log.Warn("could not format generated file",
			zap.String("file", filepath.Base(file)), zap.Error(err))
		p.ui.Warnf("could not format %s: %v", filepath.Base(file), err)
		return
	}
	log.Debug("formatted generated file", zap.String("file", filepath.Base(file)))
}
