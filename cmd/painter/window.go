package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/taigrr/painter/pkg/config"
	"github.com/taigrr/painter/pkg/models"
	"github.com/taigrr/painter/pkg/pipeline"
	"github.com/taigrr/painter/pkg/render"
)

// runWindow opens a desktop window that displays the presented frame and
// forwards keyboard input. It blocks until the window closes.
func runWindow(cfg pipeline.Config, scene config.Scene, mesh *models.Mesh) error {
	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	g := &windowGame{
		p:      p,
		mesh:   mesh,
		fb:     render.NewFramebuffer(cfg.Width, cfg.Height),
		frame:  scene.FrameState(),
		motion: scene.Motion(),
	}
	ebiten.SetWindowTitle(fmt.Sprintf("painter (%s)", mesh.Name))
	ebiten.SetWindowSize(cfg.Width*4, cfg.Height*4)
	ebiten.SetTPS(scene.FPS)
	return ebiten.RunGame(g)
}

type windowGame struct {
	p      *pipeline.Pipeline
	mesh   *models.Mesh
	fb     *render.Framebuffer
	frame  *pipeline.FrameState
	motion *pipeline.Motion
	fbImg  *ebiten.Image
	xDown  bool
}

func (g *windowGame) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	x := ebiten.IsKeyPressed(ebiten.KeyX)
	if x && !g.xDown {
		g.p.SetMode(g.p.Config().Mode.Next())
	}
	g.xDown = x

	ctrl := pipeline.Controls{
		Forward: ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Back:    ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:    ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:   ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Up:      ebiten.IsKeyPressed(ebiten.KeySpace),
		Down:    ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight),
	}
	g.frame.Advance(ctrl, g.motion)

	if _, err := g.p.Render(g.frame, g.mesh, g.fb); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	front := g.fb.Front()
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(g.fb.Width, g.fb.Height)
	}
	g.fbImg.WritePixels(front.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width, g.fb.Height
}
