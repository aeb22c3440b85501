package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"spinmesh/pkg/math3d"
)

// Animator is the outer animation driver. It owns the accumulated rotation
// state and runs the pipeline once per frame: rotate, project, composite,
// present, advance, sleep. It has two states, running and terminated; once
// terminated no further frames are produced.
type Animator struct {
	cfg       Config
	mesh      Mesh
	proj      Projector
	presenter *Presenter
	clear     func() error
	spin      *spin
}

// NewAnimator validates the configuration and mesh and returns a driver
// ready to run. It refuses to start rather than produce degenerate output.
func NewAnimator(cfg Config, m Mesh, out io.Writer) (*Animator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if m.VertexCount() == 0 {
		return nil, errors.New("mesh has no vertices")
	}
	for e := 0; e < m.EdgeCount(); e++ {
		i, j := m.Edge(e)
		if i < 0 || i >= m.VertexCount() || j < 0 || j >= m.VertexCount() {
			return nil, fmt.Errorf("edge %d references vertex out of range [0, %d)", e, m.VertexCount())
		}
	}
	return &Animator{
		cfg:       cfg,
		mesh:      m,
		proj:      NewProjector(cfg),
		presenter: NewPresenter(out, cfg.Char),
		clear:     func() error { return ClearScreen(out) },
		spin:      newSpin(cfg),
	}, nil
}

// Run drives the loop until ctx is canceled or a frame faults. It returns
// ctx.Err() on cancellation (the expected termination path) and the fault
// otherwise. Cancellation is observed both between frames and during the
// inter-frame pause. A failed frame is never retried.
func (a *Animator) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := a.renderFrame(); err != nil {
			return err
		}
		a.spin.advance()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(a.cfg.Pause):
		}
	}
}

// renderFrame runs one full pipeline pass. Pipeline stages do not catch
// faults themselves; a panic in any stage aborts the frame and surfaces
// here as an error.
func (a *Animator) renderFrame() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render frame: %v", r)
		}
	}()

	frame := a.composite()
	if err := a.clear(); err != nil {
		return fmt.Errorf("clear screen: %w", err)
	}
	if err := a.presenter.Present(frame); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	return nil
}

// composite builds the frame for the current rotation angles.
func (a *Animator) composite() *Frame {
	ax, ay, az := a.spin.angles()

	projected := make([]Point, a.mesh.VertexCount())
	for i := range projected {
		pos, _ := a.mesh.Vertex(i)
		projected[i] = a.proj.Project(math3d.Rotate(pos, ax, ay, az))
	}

	frame := NewFrame(a.cfg, a.mesh.Colored())
	frame.DrawEdges(a.mesh, projected)
	return frame
}
