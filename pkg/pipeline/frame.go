package pipeline

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/painter/pkg/math3d"
)

// FrameState is the mutable state carried from one frame to the next. The
// control loop owns it and hands it to Render by pointer.
type FrameState struct {
	Camera   math3d.Vec3 // Camera position in world space
	LookDir  math3d.Vec3 // Direction the camera faces
	Up       math3d.Vec3 // Camera up hint
	Velocity math3d.Vec3 // Camera velocity per frame
	Theta    float64     // Accumulated animation angle
}

// NewFrameState returns a camera at the origin looking down +Z.
func NewFrameState() *FrameState {
	return &FrameState{
		LookDir: math3d.Forward(),
		Up:      math3d.Up(),
	}
}

// Controls is the set of movement keys held during a frame.
type Controls struct {
	Up, Down      bool
	Forward, Back bool
	Left, Right   bool
}

// Direction returns the summed movement axes with +Y up. It is the zero
// vector when no key is held or opposite keys cancel.
func (c Controls) Direction() math3d.Vec3 {
	var d math3d.Vec3
	if c.Right {
		d.X++
	}
	if c.Left {
		d.X--
	}
	if c.Up {
		d.Y++
	}
	if c.Down {
		d.Y--
	}
	if c.Forward {
		d.Z++
	}
	if c.Back {
		d.Z--
	}
	return d
}

// Motion turns held controls into camera movement. Velocity gains Accel
// per frame along the held direction up to MaxSpeed and decays toward
// zero through a critically damped spring per axis.
type Motion struct {
	Accel     float64 // Velocity added per frame while a key is held
	MaxSpeed  float64 // Velocity magnitude above which input is ignored
	ThetaStep float64 // Animation angle added per frame
	InvertY   bool    // Treat +Y as down, for y-down screen mappings

	spring harmonica.Spring
	decay  [3]float64 // spring velocity per axis
}

// NewMotion creates a Motion tuned for the given frame rate.
func NewMotion(fps int) *Motion {
	return &Motion{
		Accel:     0.02,
		MaxSpeed:  0.15,
		ThetaStep: 0.015,
		// Frequency 4.0 = moderate decay, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 4.0, 1.0),
	}
}

// Advance moves the frame state forward by one frame.
func (f *FrameState) Advance(ctrl Controls, m *Motion) {
	dir := ctrl.Direction()
	if m.InvertY {
		dir.Y = -dir.Y
	}

	if dir.LenSq() > 0 && f.Velocity.Len() < m.MaxSpeed {
		f.Velocity = f.Velocity.Add(dir.Normalize().Scale(m.Accel))
	}
	if speed := f.Velocity.Len(); speed > m.MaxSpeed {
		f.Velocity = f.Velocity.Scale(m.MaxSpeed / speed)
	}

	f.Camera = f.Camera.Add(f.Velocity)

	f.Velocity.X, m.decay[0] = m.spring.Update(f.Velocity.X, m.decay[0], 0)
	f.Velocity.Y, m.decay[1] = m.spring.Update(f.Velocity.Y, m.decay[1], 0)
	f.Velocity.Z, m.decay[2] = m.spring.Update(f.Velocity.Z, m.decay[2], 0)

	f.Theta += m.ThetaStep
}
