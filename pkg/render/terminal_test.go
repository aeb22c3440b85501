package render

import (
	"bytes"
	"strings"
	"testing"
)

func smallFrame(w, h int, colored bool) *Frame {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = w, h
	return NewFrame(cfg, colored)
}

func TestPresentPlain(t *testing.T) {
	f := smallFrame(3, 2, false)
	f.Set(Point{1, 0}, Color{})
	f.Set(Point{2, 1}, Color{})

	var buf bytes.Buffer
	if err := NewPresenter(&buf, '#').Present(f); err != nil {
		t.Fatal(err)
	}

	want := " # \n  #\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestPresentTruecolorEscape(t *testing.T) {
	f := smallFrame(2, 1, true)
	f.Set(Point{0, 0}, RGB(1, 22, 203))

	var buf bytes.Buffer
	if err := NewPresenter(&buf, '#').Present(f); err != nil {
		t.Fatal(err)
	}

	// Byte-for-byte 24-bit foreground sequence, then a space, then the row
	// terminator.
	want := "\x1b[38;2;1;22;203m#\x1b[0m \n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestPresentBlankFrame(t *testing.T) {
	f := smallFrame(4, 3, false)

	var buf bytes.Buffer
	if err := NewPresenter(&buf, '#').Present(f); err != nil {
		t.Fatal(err)
	}

	want := strings.Repeat("    \n", 3)
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestPresentRowMajorOrder(t *testing.T) {
	f := smallFrame(2, 2, false)
	f.Set(Point{0, 1}, Color{})

	var buf bytes.Buffer
	if err := NewPresenter(&buf, '@').Present(f); err != nil {
		t.Fatal(err)
	}

	rows := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0] != "  " || rows[1] != "@ " {
		t.Errorf("rows = %q, point (0,1) should be in the second row", rows)
	}
}
