// Package pipeline turns a source mesh into a finished frame: world, view
// and projection transforms, backface culling, flat shading, depth sorting
// and rasterization onto a render.Surface.
package pipeline

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/taigrr/painter/pkg/math3d"
	"github.com/taigrr/painter/pkg/models"
	"github.com/taigrr/painter/pkg/render"
)

// guardBand bounds projected coordinates, in multiples of the viewport.
// Triangles reaching past it are dropped instead of rasterized.
const guardBand = 16.0

// Config parameterizes a Pipeline.
type Config struct {
	Width, Height int     // Viewport size in pixels
	FOV           float64 // Field of view in degrees
	Near, Far     float64 // Projection planes

	LightDir math3d.Vec3 // Direction towards the light; normalized by New
	Offset   math3d.Vec3 // World translation of the mesh
	Spin     math3d.Vec3 // Radians per unit of FrameState.Theta about X, Y and Z

	Shading       bool // Flat shade by light angle; otherwise use BaseColor
	ViewTransform bool // Apply the camera view matrix; otherwise the camera is fixed at the origin looking down +Z
	FlipY         bool // Put +Y at the top of the screen

	Mode         render.Mode
	BaseColor    color.RGBA
	OutlineColor color.RGBA
	Background   color.RGBA
}

// DefaultConfig returns the configuration used when nothing else is given.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:         width,
		Height:        height,
		FOV:           60,
		Near:          0.1,
		Far:           1000,
		LightDir:      math3d.V3(-1, 1, -1),
		Offset:        math3d.V3(0, 0, 8),
		Spin:          math3d.V3(1, 0, 0.7),
		Shading:       true,
		ViewTransform: true,
		FlipY:         true,
		Mode:          render.ModeFill,
		BaseColor:     render.Gray(200),
		OutlineColor:  render.ColorWhite,
		Background:    render.ColorSlate,
	}
}

// Stats counts what happened to the source triangles in one frame.
type Stats struct {
	Source     int // Triangles in the source mesh
	Culled     int // Facing away from the camera
	Degenerate int // Zero-area in world or screen space
	ClippedOut int // Behind the camera or outside the guard band
	Drawn      int // Handed to the rasterizer successfully
}

// Pipeline renders frames for one viewport. It is not safe for concurrent
// use; each goroutine needs its own Pipeline.
type Pipeline struct {
	cfg    Config
	light  math3d.Vec3
	proj   math3d.Mat4
	raster *render.Rasterizer

	// per-frame meshes, reset after every frame
	visible *models.Mesh
	screen  *models.Mesh
}

// New validates cfg and builds the projection. An invalid projection
// yields math3d.ErrInvalidProjection; a zero light direction yields
// math3d.ErrDegenerateGeometry.
func New(cfg Config) (*Pipeline, error) {
	light, err := cfg.LightDir.Unit()
	if err != nil {
		return nil, fmt.Errorf("light direction: %w", err)
	}

	p := &Pipeline{
		cfg:     cfg,
		light:   light,
		raster:  render.NewRasterizer(nil),
		visible: models.NewMesh("visible"),
		screen:  models.NewMesh("screen"),
	}
	if err := p.Resize(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}

	Logger().Info("pipeline ready",
		"width", cfg.Width, "height", cfg.Height,
		"fov", cfg.FOV, "mode", cfg.Mode.String(),
		"shading", cfg.Shading, "view", cfg.ViewTransform)
	return p, nil
}

// Config returns the active configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// SetMode switches between fill, outline and both.
func (p *Pipeline) SetMode(m render.Mode) {
	p.cfg.Mode = m
}

// Resize changes the viewport and rebuilds the projection for the new
// aspect ratio. On error the previous viewport is kept.
func (p *Pipeline) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", math3d.ErrInvalidProjection, width, height)
	}
	proj, err := math3d.Perspective(p.cfg.FOV, float64(width)/float64(height), p.cfg.Near, p.cfg.Far)
	if err != nil {
		return fmt.Errorf("projection: %w", err)
	}
	p.cfg.Width, p.cfg.Height = width, height
	p.proj = proj
	Logger().Debug("viewport resized", "width", width, "height", height)
	return nil
}

// WorldMatrix places the mesh for animation angle theta:
// translation · Rz · Rx · Ry.
func (p *Pipeline) WorldMatrix(theta float64) math3d.Mat4 {
	spin := p.cfg.Spin.Scale(theta)
	return math3d.Translate(p.cfg.Offset).
		Mul(math3d.RotateZ(spin.Z)).
		Mul(math3d.RotateX(spin.X)).
		Mul(math3d.RotateY(spin.Y))
}

// ViewMatrix returns the camera transform for frame, or the identity when
// the view transform is disabled.
func (p *Pipeline) ViewMatrix(frame *FrameState) (math3d.Mat4, error) {
	if !p.cfg.ViewTransform {
		return math3d.Identity(), nil
	}
	return math3d.LookAt(frame.Camera, frame.Camera.Add(frame.LookDir), frame.Up)
}

// eye returns the camera position used for culling.
func (p *Pipeline) eye(frame *FrameState) math3d.Vec3 {
	if !p.cfg.ViewTransform {
		return math3d.Zero3()
	}
	return frame.Camera
}

// Shade maps a unit normal to a gray level: (n·light + 1) clamped to
// [0, 2] and scaled by 127, so channels range over 0..254.
func (p *Pipeline) Shade(normal math3d.Vec3) color.RGBA {
	intensity := math.Max(0, math.Min(2, normal.Dot(p.light)+1))
	return render.Gray(uint8(intensity * 127))
}

// Render draws src as seen from frame onto surf and presents it. The
// source mesh is only read. Triangles that cannot be drawn are counted in
// the returned Stats; an error means the frame as a whole failed.
func (p *Pipeline) Render(frame *FrameState, src *models.Mesh, surf render.Surface) (Stats, error) {
	stats := Stats{Source: src.TriangleCount()}
	defer p.visible.Reset()
	defer p.screen.Reset()

	world := p.WorldMatrix(frame.Theta)
	view, err := p.ViewMatrix(frame)
	if err != nil {
		return stats, fmt.Errorf("view matrix: %w", err)
	}
	eye := p.eye(frame)

	for _, tri := range src.Triangles {
		w := tri.Transform(world)

		normal, err := w.Normal()
		if err != nil {
			stats.Degenerate++
			continue
		}
		if normal.Dot(w.P[0].Vec3().Sub(eye)) >= 0 {
			stats.Culled++
			continue
		}

		c := p.cfg.BaseColor
		if p.cfg.Shading {
			c = p.Shade(normal)
		}
		p.visible.Add(w.Transform(view).WithColor(c))
	}

	// Sort on camera-space depth, before the perspective divide
	p.visible.Sort()

	for _, tri := range p.visible.Triangles {
		s, err := p.project(tri)
		if err != nil {
			stats.ClippedOut++
			if errors.Is(err, math3d.ErrPerspectiveDivideByZero) {
				Logger().Debug("triangle dropped", "err", err)
			}
			continue
		}
		p.screen.Add(s)
	}

	surf.Clear(p.cfg.Background)
	p.raster.SetSurface(surf)
	for _, tri := range p.screen.Triangles {
		err := p.raster.Draw(tri, p.cfg.Mode, p.cfg.OutlineColor)
		if errors.Is(err, math3d.ErrDegenerateGeometry) {
			stats.Degenerate++
			continue
		}
		if err != nil {
			return stats, fmt.Errorf("rasterize: %w", err)
		}
		stats.Drawn++
	}

	if err := surf.Present(); err != nil {
		return stats, fmt.Errorf("present: %w", err)
	}

	Logger().Debug("frame rendered",
		"theta", frame.Theta, "source", stats.Source, "drawn", stats.Drawn,
		"culled", stats.Culled, "degenerate", stats.Degenerate, "clipped", stats.ClippedOut)
	return stats, nil
}

// project maps a view-space triangle to screen space: projection,
// perspective divide and viewport transform.
func (p *Pipeline) project(tri models.Triangle) (models.Triangle, error) {
	w, h := float64(p.cfg.Width), float64(p.cfg.Height)

	for i, v := range tri.P {
		clip := p.proj.MulVec4(v)
		if clip.W < 0 {
			return tri, fmt.Errorf("vertex %d behind camera (w=%g)", i, clip.W)
		}
		ndc, err := clip.PerspectiveDivide()
		if err != nil {
			return tri, fmt.Errorf("vertex %d: %w", i, err)
		}
		if !ndc.IsFinite() || math.Abs(ndc.X) > guardBand || math.Abs(ndc.Y) > guardBand {
			return tri, fmt.Errorf("vertex %d outside guard band: %v", i, ndc)
		}
		if p.cfg.FlipY {
			ndc.Y = -ndc.Y
		}
		ndc.X = (ndc.X + 1) * 0.5 * w
		ndc.Y = (ndc.Y + 1) * 0.5 * h
		tri.P[i] = ndc
	}
	return tri, nil
}
