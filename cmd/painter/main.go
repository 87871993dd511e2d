// painter - flat-shaded software rasterizer
// Spins an OBJ or GLB mesh in the terminal, in a window, or renders frames
// to image files.
//
// Controls:
//
//	W/S         - Move camera forward/back
//	A/D         - Move camera left/right
//	Space/E     - Move camera up (Space in the window)
//	C/Q         - Move camera down (Shift in the window)
//	X           - Cycle fill, outline and both
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/taigrr/painter/pkg/config"
	"github.com/taigrr/painter/pkg/models"
	"github.com/taigrr/painter/pkg/pipeline"
)

var (
	scenePath = flag.String("config", "", "Scene file (YAML)")
	targetFPS = flag.Int("fps", 0, "Target FPS (default from scene, 60)")
	bgColor   = flag.String("bg", "", "Background color (R,G,B, #rrggbb or name)")
	drawMode  = flag.String("mode", "", "Draw mode: fill, outline or both")
	frames    = flag.Int("frames", 0, "Render N frames to files instead of the terminal")
	outPath   = flag.String("out", "frame-%04d.png", "Output pattern for -frames (png, jpg, gif, bmp, tiff)")
	window    = flag.Bool("window", false, "Open a desktop window instead of using the terminal")
	verbose   = flag.Bool("v", false, "Debug logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "painter - flat-shaded software rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: painter [options] <model.obj|model.glb>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/S         - Move forward/back\n")
		fmt.Fprintf(os.Stderr, "  A/D         - Move left/right\n")
		fmt.Fprintf(os.Stderr, "  Space/E     - Move up (window: Space)\n")
		fmt.Fprintf(os.Stderr, "  C/Q         - Move down (window: Shift)\n")
		fmt.Fprintf(os.Stderr, "  X           - Cycle draw mode\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	pipeline.SetLogger(logger)

	scene, err := loadScene()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	modelPath := scene.Model
	if flag.NArg() > 0 {
		modelPath = flag.Arg(0)
	}
	if modelPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger, scene, modelPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadScene reads the scene file, if any, and applies flag overrides.
func loadScene() (config.Scene, error) {
	scene := config.Default()
	if *scenePath != "" {
		var err error
		scene, err = config.Load(*scenePath)
		if err != nil {
			return scene, err
		}
	}
	if *targetFPS > 0 {
		scene.FPS = *targetFPS
	}
	if *bgColor != "" {
		scene.Background = *bgColor
	}
	if *drawMode != "" {
		scene.Mode = *drawMode
	}
	return scene, nil
}

func run(ctx context.Context, logger *slog.Logger, scene config.Scene, modelPath string) error {
	mesh, err := models.Load(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	if scene.Fit > 0 {
		mesh.Normalize(scene.Fit)
	}
	logger.Info("model loaded",
		"file", filepath.Base(modelPath), "triangles", mesh.TriangleCount(),
		"size", mesh.Size())

	cfg, err := scene.PipelineConfig()
	if err != nil {
		return err
	}

	switch {
	case *frames > 0:
		return renderFrames(ctx, logger, cfg, scene, mesh, *frames, *outPath)
	case *window:
		return runWindow(cfg, scene, mesh)
	default:
		return runTerminal(ctx, logger, cfg, scene, mesh, filepath.Base(modelPath))
	}
}
