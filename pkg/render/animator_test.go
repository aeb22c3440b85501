package render

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"spinmesh/pkg/math3d"
)

func v3(x, y, z float64) math3d.Vec3 { return math3d.V3(x, y, z) }

type mockVertex struct {
	pos   math3d.Vec3
	color Color
}

// mockMesh implements Mesh for testing.
type mockMesh struct {
	vertices []mockVertex
	edges    [][2]int
	colored  bool
}

func (m *mockMesh) VertexCount() int { return len(m.vertices) }
func (m *mockMesh) EdgeCount() int   { return len(m.edges) }
func (m *mockMesh) Colored() bool    { return m.colored }
func (m *mockMesh) Edge(i int) (int, int) {
	return m.edges[i][0], m.edges[i][1]
}
func (m *mockMesh) Vertex(i int) (math3d.Vec3, Color) {
	return m.vertices[i].pos, m.vertices[i].color
}

// panicMesh faults when the pipeline reads vertex data.
type panicMesh struct{ mockMesh }

func (m *panicMesh) Vertex(i int) (math3d.Vec3, Color) {
	panic("vertex table corrupted")
}

func newTestAnimator(t *testing.T, cfg Config, m Mesh, out *bytes.Buffer) *Animator {
	t.Helper()
	a, err := NewAnimator(cfg, m, out)
	if err != nil {
		t.Fatal(err)
	}
	a.clear = func() error { return nil } // no terminal in tests
	return a
}

func TestNewAnimatorRejectsBadInput(t *testing.T) {
	valid := &mockMesh{
		vertices: []mockVertex{{pos: v3(0, 0, 0)}, {pos: v3(1, 0, 0)}},
		edges:    [][2]int{{0, 1}},
	}

	badCanvas := DefaultConfig()
	badCanvas.Width = 0

	badPause := DefaultConfig()
	badPause.Pause = -time.Second

	badChar := DefaultConfig()
	badChar.Char = '\x00'

	tests := []struct {
		name string
		cfg  Config
		mesh Mesh
	}{
		{"non-positive canvas", badCanvas, valid},
		{"negative pause", badPause, valid},
		{"unprintable fill char", badChar, valid},
		{"empty vertex list", DefaultConfig(), &mockMesh{}},
		{"edge index out of range", DefaultConfig(), &mockMesh{
			vertices: []mockVertex{{pos: v3(0, 0, 0)}},
			edges:    [][2]int{{0, 7}},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewAnimator(tc.cfg, tc.mesh, &bytes.Buffer{}); err == nil {
				t.Error("expected configuration error, got nil")
			}
		})
	}
}

func TestRenderFrameHorizontalEdge(t *testing.T) {
	// A single edge between (-1,0,0) and (1,0,0) with no rotation must
	// produce a contiguous horizontal run of fill characters centered on
	// the middle row.
	cfg := DefaultConfig()
	cfg.SpeedX, cfg.SpeedY, cfg.SpeedZ = 0, 0, 0

	mesh := &mockMesh{
		vertices: []mockVertex{{pos: v3(-1, 0, 0)}, {pos: v3(1, 0, 0)}},
		edges:    [][2]int{{0, 1}},
	}

	var buf bytes.Buffer
	a := newTestAnimator(t, cfg, mesh, &buf)
	if err := a.renderFrame(); err != nil {
		t.Fatal(err)
	}

	rows := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(rows) != cfg.Height {
		t.Fatalf("got %d rows, want %d", len(rows), cfg.Height)
	}

	for y, row := range rows {
		if y == cfg.Height/2 {
			continue
		}
		if strings.ContainsRune(row, '#') {
			t.Errorf("row %d should be blank: %q", y, row)
		}
	}

	mid := rows[cfg.Height/2]
	run := strings.TrimSpace(mid)
	if run != strings.Repeat("#", len(run)) || len(run) == 0 {
		t.Fatalf("middle row is not a contiguous run: %q", mid)
	}
	// Projection puts the endpoints at columns 26 and 53, symmetric about
	// the horizontal center within truncation.
	first := strings.IndexRune(mid, '#')
	last := strings.LastIndex(mid, "#")
	if first != 26 || last != 53 {
		t.Errorf("run spans [%d, %d], want [26, 53]", first, last)
	}
}

func TestRenderFrameEmptyEdgeList(t *testing.T) {
	cfg := DefaultConfig()
	mesh := &mockMesh{vertices: []mockVertex{{pos: v3(0.3, -0.2, 0.1)}}}

	var buf bytes.Buffer
	a := newTestAnimator(t, cfg, mesh, &buf)

	// Every frame stays blank regardless of accumulated rotation.
	for range 3 {
		buf.Reset()
		if err := a.renderFrame(); err != nil {
			t.Fatal(err)
		}
		if strings.ContainsRune(buf.String(), '#') {
			t.Fatal("frame with no edges drew fill characters")
		}
		a.spin.advance()
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pause = time.Millisecond

	mesh := &mockMesh{
		vertices: []mockVertex{{pos: v3(-1, 0, 0)}, {pos: v3(1, 0, 0)}},
		edges:    [][2]int{{0, 1}},
	}

	var buf bytes.Buffer
	a := newTestAnimator(t, cfg, mesh, &buf)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not observe cancellation")
	}
}

func TestRunReturnsImmediatelyWhenAlreadyCanceled(t *testing.T) {
	mesh := &mockMesh{
		vertices: []mockVertex{{pos: v3(0, 0, 0)}, {pos: v3(1, 0, 0)}},
		edges:    [][2]int{{0, 1}},
	}

	var buf bytes.Buffer
	a := newTestAnimator(t, DefaultConfig(), mesh, &buf)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := a.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
	if buf.Len() != 0 {
		t.Error("no frame should be produced after cancellation")
	}
}

func TestRunSurfacesFrameFault(t *testing.T) {
	mesh := &panicMesh{mockMesh{
		vertices: []mockVertex{{pos: v3(0, 0, 0)}, {pos: v3(1, 0, 0)}},
		edges:    [][2]int{{0, 1}},
	}}

	var buf bytes.Buffer
	a := newTestAnimator(t, DefaultConfig(), mesh, &buf)

	err := a.Run(context.Background())
	if err == nil {
		t.Fatal("expected fault from panicking pipeline stage")
	}
	if errors.Is(err, context.Canceled) {
		t.Error("fault must be distinguishable from cancellation")
	}
	if !strings.Contains(err.Error(), "vertex table corrupted") {
		t.Errorf("fault detail lost: %v", err)
	}
}

func TestSpinFixedIncrements(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpeedX, cfg.SpeedY, cfg.SpeedZ = 0.03, 0.02, -0.01

	s := newSpin(cfg)
	for range 10 {
		s.advance()
	}
	ax, ay, az := s.angles()

	const tol = 1e-12
	if diff := ax - 0.3; diff > tol || diff < -tol {
		t.Errorf("ax = %v, want 0.3", ax)
	}
	if diff := ay - 0.2; diff > tol || diff < -tol {
		t.Errorf("ay = %v, want 0.2", ay)
	}
	if diff := az + 0.1; diff > tol || diff < -tol {
		t.Errorf("az = %v, want -0.1", az)
	}
}

func TestSpinEaseRampsUp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Ease = true
	cfg.SpeedX = 0.5

	s := newSpin(cfg)
	s.advance()
	first := s.x.speed
	if first <= 0 || first >= cfg.SpeedX {
		t.Fatalf("eased speed should start between 0 and target, got %v", first)
	}

	for range 500 {
		s.advance()
	}
	if s.x.speed < cfg.SpeedX*0.95 {
		t.Errorf("eased speed did not converge to target: %v", s.x.speed)
	}
	if s.x.speed > cfg.SpeedX*1.05 {
		t.Errorf("critically damped spring overshot target: %v", s.x.speed)
	}
}
