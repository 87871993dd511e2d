package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/taigrr/painter/pkg/config"
	"github.com/taigrr/painter/pkg/models"
	"github.com/taigrr/painter/pkg/pipeline"
	"github.com/taigrr/painter/pkg/render"
)

// renderFrames renders n consecutive frames without input and writes each
// to fmt.Sprintf(pattern, i).
func renderFrames(ctx context.Context, logger *slog.Logger, cfg pipeline.Config, scene config.Scene, mesh *models.Mesh, n int, pattern string) error {
	if _, err := render.FormatFromPath(fmt.Sprintf(pattern, 0)); err != nil {
		return fmt.Errorf("output pattern %q: %w", pattern, err)
	}
	if dir := filepath.Dir(pattern); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}
	fb := render.NewFramebuffer(cfg.Width, cfg.Height)
	frame := scene.FrameState()
	motion := scene.Motion()

	var total pipeline.Stats
	bar := progressbar.Default(int64(n), "rendering")
	for i := range n {
		if err := ctx.Err(); err != nil {
			return err
		}

		frame.Advance(pipeline.Controls{}, motion)
		stats, err := p.Render(frame, mesh, fb)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		total.Drawn += stats.Drawn
		total.Culled += stats.Culled

		if err := fb.Save(fmt.Sprintf(pattern, i)); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		bar.Add(1)
	}
	bar.Finish()

	logger.Info("frames written", "count", n, "pattern", pattern,
		"drawn", total.Drawn, "culled", total.Culled)
	return nil
}
