// Package config loads painter scene files.
//
// A scene file is YAML. Every key is optional; missing keys keep the
// values from Default.
//
//	model: teapot.obj
//	width: 160
//	height: 96
//	fov: 60
//	light: [-1, 1, -1]
//	offset: [0, 0, 8]
//	spin: [1, 0, 0.7]
//	mode: both          # fill | outline | both
//	background: "#0f1111"
//	outline: white
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/painter/pkg/math3d"
	"github.com/taigrr/painter/pkg/pipeline"
	"github.com/taigrr/painter/pkg/render"
)

// ErrInvalidScene is returned for scene values that cannot be used.
var ErrInvalidScene = errors.New("invalid scene")

// maxSceneSize bounds the scene files Load accepts.
const maxSceneSize = 1 << 20

// Vec is a 3-component vector written as a YAML sequence.
type Vec [3]float64

// Vec3 converts v to a math3d vector.
func (v Vec) Vec3() math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

// Scene describes what to render and how.
type Scene struct {
	Model string  `yaml:"model"` // Mesh file, overridden by a command-line argument
	Fit   float64 `yaml:"fit"`   // Rescale the mesh so its largest side is this long; 0 keeps it as is

	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	FOV    float64 `yaml:"fov"`
	Near   float64 `yaml:"near"`
	Far    float64 `yaml:"far"`
	FPS    int     `yaml:"fps"`

	Light  Vec `yaml:"light"`
	Offset Vec `yaml:"offset"`
	Spin   Vec `yaml:"spin"`
	Camera Vec `yaml:"camera"`
	Look   Vec `yaml:"look"`

	Shading bool `yaml:"shading"`
	View    bool `yaml:"view"`
	FlipY   bool `yaml:"flip_y"`

	Mode       string `yaml:"mode"`
	Background string `yaml:"background"`
	Outline    string `yaml:"outline"`
	BaseColor  string `yaml:"base_color"`
}

// Default returns the built-in scene: a spinning, flat-shaded mesh eight
// units in front of a camera at the origin.
func Default() Scene {
	return Scene{
		Fit:        2,
		Width:      160,
		Height:     96,
		FOV:        60,
		Near:       0.1,
		Far:        1000,
		FPS:        60,
		Light:      Vec{-1, 1, -1},
		Offset:     Vec{0, 0, 8},
		Spin:       Vec{1, 0, 0.7},
		Look:       Vec{0, 0, 1},
		Shading:    true,
		View:       true,
		FlipY:      true,
		Mode:       "fill",
		Background: "#0f1111",
		Outline:    "white",
		BaseColor:  "#c8c8c8",
	}
}

// Load reads a scene file. Keys missing from the file keep their defaults.
func Load(path string) (Scene, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Scene{}, fmt.Errorf("stat scene: %w", err)
	}
	if info.Size() > maxSceneSize {
		return Scene{}, fmt.Errorf("%w: %s is %d bytes", ErrInvalidScene, path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("read scene: %w", err)
	}

	scene, err := Parse(data)
	if err != nil {
		return Scene{}, fmt.Errorf("%s: %w", path, err)
	}
	return scene, nil
}

// Parse decodes a YAML scene on top of Default.
func Parse(data []byte) (Scene, error) {
	scene := Default()
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return Scene{}, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	if scene.FPS <= 0 {
		return Scene{}, fmt.Errorf("%w: fps %d", ErrInvalidScene, scene.FPS)
	}
	if scene.Fit < 0 {
		return Scene{}, fmt.Errorf("%w: fit %g", ErrInvalidScene, scene.Fit)
	}
	if err := checkLook(scene.Look.Vec3()); err != nil {
		return Scene{}, err
	}
	return scene, nil
}

// checkLook rejects look directions the view matrix cannot be built from:
// zero length, or parallel to the camera up vector.
func checkLook(look math3d.Vec3) error {
	dir, err := look.Unit()
	if err != nil {
		return fmt.Errorf("%w: look %v: %w", ErrInvalidScene, look, err)
	}
	if dir.Cross(math3d.Up()).LenSq() < 1e-12 {
		return fmt.Errorf("%w: look %v is parallel to up: %w", ErrInvalidScene, look, math3d.ErrDegenerateGeometry)
	}
	return nil
}

// PipelineConfig converts the scene into a pipeline configuration.
// Projection and light checks happen later, in pipeline.New.
func (s Scene) PipelineConfig() (pipeline.Config, error) {
	mode, err := render.ParseMode(s.Mode)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	bg, err := parseColor("background", s.Background)
	if err != nil {
		return pipeline.Config{}, err
	}
	outline, err := parseColor("outline", s.Outline)
	if err != nil {
		return pipeline.Config{}, err
	}
	base, err := parseColor("base_color", s.BaseColor)
	if err != nil {
		return pipeline.Config{}, err
	}

	return pipeline.Config{
		Width:         s.Width,
		Height:        s.Height,
		FOV:           s.FOV,
		Near:          s.Near,
		Far:           s.Far,
		LightDir:      s.Light.Vec3(),
		Offset:        s.Offset.Vec3(),
		Spin:          s.Spin.Vec3(),
		Shading:       s.Shading,
		ViewTransform: s.View,
		FlipY:         s.FlipY,
		Mode:          mode,
		Background:    bg,
		OutlineColor:  outline,
		BaseColor:     base,
	}, nil
}

func parseColor(key, value string) (render.Color, error) {
	c, err := render.ParseColor(value)
	if err != nil {
		return render.Color{}, fmt.Errorf("%w: %s: %w", ErrInvalidScene, key, err)
	}
	return c, nil
}

// FrameState returns the starting frame state for the scene camera.
func (s Scene) FrameState() *pipeline.FrameState {
	frame := pipeline.NewFrameState()
	frame.Camera = s.Camera.Vec3()
	frame.LookDir = s.Look.Vec3()
	return frame
}

// Motion returns camera motion settings for the scene frame rate. With
// FlipY off the screen maps +Y downward, so vertical input is inverted.
func (s Scene) Motion() *pipeline.Motion {
	m := pipeline.NewMotion(s.FPS)
	m.InvertY = !s.FlipY
	return m
}
