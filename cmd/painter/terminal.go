package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/painter/pkg/config"
	"github.com/taigrr/painter/pkg/models"
	"github.com/taigrr/painter/pkg/pipeline"
	"github.com/taigrr/painter/pkg/render"
)

// HUD renders an overlay with model info and frame statistics
type HUD struct {
	filename  string
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD
func NewHUD(filename string) *HUD {
	return &HUD{
		filename: filename,
		fpsTime:  time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD overlay directly to the terminal. The HUD rows are
// cleared even when show is false so that toggling it off works.
func (h *HUD) Render(width, height int, show bool, stats pipeline.Stats, mode render.Mode) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)
	if !show {
		return
	}

	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	titleCol := max((width-len(h.filename)-2)/2, 1)
	fmt.Printf("%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, h.filename, reset)

	polys := fmt.Sprintf(" %d/%d tris ", stats.Drawn, stats.Source)
	fmt.Printf("%s%s%s%s%s%s", moveTo(1, max(width-len(polys), 1)), bgBlack, fgCyan, bold, polys, reset)

	fmt.Printf("%s%s%s mode: %s  culled: %d  clipped: %d %s",
		moveTo(height, 1), bgBlack, fgWhite, mode, stats.Culled, stats.ClippedOut, reset)
}

func runTerminal(ctx context.Context, logger *slog.Logger, cfg pipeline.Config, scene config.Scene, mesh *models.Mesh, filename string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	termRenderer := render.NewTerminalRenderer(term, width, height)
	cfg.Width, cfg.Height = termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(cfg.Width, cfg.Height)

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	frame := scene.FrameState()
	motion := scene.Motion()
	hud := NewHUD(filename)
	showHUD := false

	var in input
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				in.requestResize(ev.Width, ev.Height)

			case uv.KeyPressEvent:
				now := time.Now()
				switch {
				case ev.MatchString("escape", "ctrl+c"):
					cancel()
					return
				case ev.MatchString("w", "up"):
					in.press(keyForward, now)
				case ev.MatchString("s", "down"):
					in.press(keyBack, now)
				case ev.MatchString("a", "left"):
					in.press(keyLeft, now)
				case ev.MatchString("d", "right"):
					in.press(keyRight, now)
				case ev.MatchString("space", "e"):
					in.press(keyUp, now)
				case ev.MatchString("c", "q", "shift+space"):
					in.press(keyDown, now)
				case ev.MatchString("x"):
					in.cycleMode()
				case ev.MatchString("?", "shift+/"):
					in.flipHUD()
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w", "up"):
					in.release(keyForward)
				case ev.MatchString("s", "down"):
					in.release(keyBack)
				case ev.MatchString("a", "left"):
					in.release(keyLeft)
				case ev.MatchString("d", "right"):
					in.release(keyRight)
				case ev.MatchString("space", "e"):
					in.release(keyUp)
				case ev.MatchString("c", "q", "shift+space"):
					in.release(keyDown)
				}
			}
		}
	}()

	targetDuration := time.Second / time.Duration(scene.FPS)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		now := time.Now()
		fi := in.drain(now)

		if fi.resize != nil {
			width, height = fi.resize.X, fi.resize.Y
			term.Erase()
			term.Resize(width, height)
			termRenderer = render.NewTerminalRenderer(term, width, height)
			fbWidth, fbHeight := termRenderer.FramebufferSize()
			if err := p.Resize(fbWidth, fbHeight); err != nil {
				logger.Warn("resize ignored", "width", width, "height", height, "err", err)
			} else {
				fb.Resize(fbWidth, fbHeight)
			}
		}
		for range fi.modeSteps {
			p.SetMode(p.Config().Mode.Next())
		}
		if fi.toggleHUD {
			showHUD = !showHUD
		}

		frame.Advance(fi.controls, motion)

		stats, err := p.Render(frame, mesh, fb)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}

		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(width, height, showHUD, stats, p.Config().Mode)

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
