package render

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// spinAxis tracks the accumulated angle and current speed for one rotation
// axis. With easing the speed springs from rest toward the configured rate
// using a critically damped spring; otherwise it is the rate itself.
type spinAxis struct {
	angle  float64
	speed  float64
	target float64
	spring harmonica.Spring
	accel  float64 // internal spring velocity
}

func newSpinAxis(target float64, fps int) spinAxis {
	return spinAxis{
		target: target,
		// Frequency 4.0 = moderate ramp, damping 1.0 = critically damped
		// (no overshoot past the configured speed).
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

func (a *spinAxis) advance(ease bool) {
	if ease {
		a.speed, a.accel = a.spring.Update(a.speed, a.accel, a.target)
	} else {
		a.speed = a.target
	}
	a.angle += a.speed
}

// spin is the accumulated rotation state owned by the animation loop. All
// angles start at zero and grow unbounded; they are never wrapped.
type spin struct {
	x, y, z spinAxis
	ease    bool
}

func newSpin(cfg Config) *spin {
	fps := 60
	if cfg.Pause > 0 {
		fps = int(math.Round(float64(time.Second) / float64(cfg.Pause)))
		if fps < 1 {
			fps = 1
		}
	}
	return &spin{
		x:    newSpinAxis(cfg.SpeedX, fps),
		y:    newSpinAxis(cfg.SpeedY, fps),
		z:    newSpinAxis(cfg.SpeedZ, fps),
		ease: cfg.Ease,
	}
}

func (s *spin) angles() (ax, ay, az float64) {
	return s.x.angle, s.y.angle, s.z.angle
}

func (s *spin) advance() {
	s.x.advance(s.ease)
	s.y.advance(s.ease)
	s.z.advance(s.ease)
}
