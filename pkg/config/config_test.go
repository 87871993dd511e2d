package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/painter/pkg/math3d"
	"github.com/taigrr/painter/pkg/pipeline"
	"github.com/taigrr/painter/pkg/render"
)

func TestDefaultMatchesPipelineDefaults(t *testing.T) {
	s := Default()
	got, err := s.PipelineConfig()
	require.NoError(t, err)

	want := pipeline.DefaultConfig(s.Width, s.Height)
	assert.Equal(t, want, got)
}

func TestParseKeepsDefaults(t *testing.T) {
	s, err := Parse([]byte("fov: 90\nmode: both\n"))
	require.NoError(t, err)

	assert.Equal(t, 90.0, s.FOV)
	assert.Equal(t, "both", s.Mode)
	assert.Equal(t, Default().Width, s.Width)
	assert.Equal(t, Default().Offset, s.Offset)
	assert.True(t, s.Shading)
}

func TestParseFull(t *testing.T) {
	data := []byte(`
model: cube.obj
fit: 0
width: 80
height: 40
fov: 45
near: 0.5
far: 50
fps: 30
light: [0, 0, -1]
offset: [1, 2, 3]
spin: [0, 1, 0]
camera: [0, 0, -2]
look: [0, 0, 1]
shading: false
view: false
flip_y: false
mode: outline
background: black
outline: "255,0,0"
base_color: "#0f0"
`)
	s, err := Parse(data)
	require.NoError(t, err)

	cfg, err := s.PipelineConfig()
	require.NoError(t, err)

	assert.Equal(t, "cube.obj", s.Model)
	assert.Zero(t, s.Fit)
	assert.Equal(t, 80, cfg.Width)
	assert.Equal(t, 40, cfg.Height)
	assert.Equal(t, 45.0, cfg.FOV)
	assert.Equal(t, 0.5, cfg.Near)
	assert.Equal(t, 50.0, cfg.Far)
	assert.Equal(t, math3d.V3(0, 0, -1), cfg.LightDir)
	assert.Equal(t, math3d.V3(1, 2, 3), cfg.Offset)
	assert.Equal(t, math3d.V3(0, 1, 0), cfg.Spin)
	assert.False(t, cfg.Shading)
	assert.False(t, cfg.ViewTransform)
	assert.False(t, cfg.FlipY)
	assert.Equal(t, render.ModeOutline, cfg.Mode)
	assert.Equal(t, render.ColorBlack, cfg.Background)
	assert.Equal(t, render.RGB(255, 0, 0), cfg.OutlineColor)
	assert.Equal(t, render.RGB(0, 255, 0), cfg.BaseColor)

	frame := s.FrameState()
	assert.Equal(t, math3d.V3(0, 0, -2), frame.Camera)
	assert.Equal(t, math3d.V3(0, 0, 1), frame.LookDir)
	assert.Equal(t, math3d.Up(), frame.Up)

	assert.True(t, s.Motion().InvertY)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "width: [1, 2"},
		{"wrong type", "width: wide"},
		{"zero fps", "fps: 0"},
		{"negative fit", "fit: -1"},
		{"zero look", "look: [0, 0, 0]"},
		{"look straight up", "look: [0, 2, 0]"},
		{"look straight down", "look: [0, -1, 0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidScene)
		})
	}
}

func TestParseLookBuildsView(t *testing.T) {
	s, err := Parse([]byte("look: [1, -0.5, 1]\ncamera: [0, 3, -4]\n"))
	require.NoError(t, err)

	cfg, err := s.PipelineConfig()
	require.NoError(t, err)
	p, err := pipeline.New(cfg)
	require.NoError(t, err)

	_, err = p.ViewMatrix(s.FrameState())
	assert.NoError(t, err)
}

func TestParseLookDegenerate(t *testing.T) {
	_, err := Parse([]byte("look: [0, 1, 0]"))
	assert.ErrorIs(t, err, ErrInvalidScene)
	assert.ErrorIs(t, err, math3d.ErrDegenerateGeometry)
}

func TestPipelineConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Scene)
	}{
		{"mode", func(s *Scene) { s.Mode = "points" }},
		{"background", func(s *Scene) { s.Background = "#12345" }},
		{"outline", func(s *Scene) { s.Outline = "not-a-color" }},
		{"base color", func(s *Scene) { s.BaseColor = "1,2" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			_, err := s.PipelineConfig()
			assert.ErrorIs(t, err, ErrInvalidScene)
		})
	}
}

func TestInvalidProjectionSurfacesInPipeline(t *testing.T) {
	s := Default()
	s.FOV = 180

	cfg, err := s.PipelineConfig()
	require.NoError(t, err)

	_, err = pipeline.New(cfg)
	assert.ErrorIs(t, err, math3d.ErrInvalidProjection)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 64\nheight: 32\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, s.Width)
	assert.Equal(t, 32, s.Height)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("mode: [fill]\n"), 0o644))
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrInvalidScene)
}
