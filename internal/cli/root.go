package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	charmlog "github.com/charmbracelet/log"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"spinmesh/pkg/render"
	"spinmesh/pkg/scene"
)

var (
	version = "dev" // semantic version (e.g., "v1.2.3")
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version. Typically
// called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// options holds the command-line overrides applied on top of the scene
// file's configuration. Only flags the user actually set take effect.
type options struct {
	width  int
	height int
	scaleX float64
	scaleY float64
	dist   float64
	char   string
	pause  float64
	speedX float64
	speedY float64
	speedZ float64
	ease   bool
}

// errReported marks errors whose message has already been shown to the
// user, so Execute does not print them a second time.
var errReported = errors.New("reported")

func markReported(err error) error {
	return errors.Join(errReported, err)
}

// Execute runs the spinmesh CLI and returns an error if the command fails.
// Errors not already shown to the user (scene load failures, bad flags) are
// printed to stderr.
func Execute(ctx context.Context) error {
	var (
		verbose bool
		opts    options
	)

	root := newRootCmd(&verbose, &opts)
	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}

func newRootCmd(verbose *bool, opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "spinmesh <scene.toml|model.glb>",
		Short: "spinmesh animates a rotating 3D wireframe mesh in the terminal",
		Long: `spinmesh renders a rotating 3D wireframe mesh as ASCII art, optionally
with truecolor per-vertex shading, until interrupted.

Scenes come from a TOML file (vertex/edge lists plus render settings, the
format the authoring exporter emits) or from a glTF binary model, whose
triangle and line primitives become the wireframe.`,
		Args:          cobra.ExactArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if *verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], *opts)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("spinmesh %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(verbose, "verbose", "v", false, "enable verbose logging")

	fl := root.Flags()
	fl.IntVar(&opts.width, "width", 0, "canvas width in cells")
	fl.IntVar(&opts.height, "height", 0, "canvas height in cells")
	fl.Float64Var(&opts.scaleX, "scale-x", 0, "horizontal projection scale")
	fl.Float64Var(&opts.scaleY, "scale-y", 0, "vertical projection scale")
	fl.Float64Var(&opts.dist, "dist", 0, "perspective distance (zoom)")
	fl.StringVar(&opts.char, "char", "", "fill character for drawn cells")
	fl.Float64Var(&opts.pause, "pause", 0, "seconds between frames")
	fl.Float64Var(&opts.speedX, "speed-x", 0, "X rotation in radians per frame")
	fl.Float64Var(&opts.speedY, "speed-y", 0, "Y rotation in radians per frame")
	fl.Float64Var(&opts.speedZ, "speed-z", 0, "Z rotation in radians per frame")
	fl.BoolVar(&opts.ease, "ease", false, "spring rotation up to speed instead of starting at full rate")

	return root
}

func run(cmd *cobra.Command, path string, opts options) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	var (
		cfg  render.Config
		mesh *scene.Mesh
	)

	autoSize := false
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		s, err := scene.Load(path)
		if err != nil {
			return err
		}
		cfg, mesh, autoSize = s.Config, s.Mesh, s.AutoSize
	case ".glb", ".gltf":
		m, err := scene.LoadGLB(path, logger)
		if err != nil {
			return err
		}
		// A model brings no canvas of its own.
		cfg, mesh, autoSize = render.DefaultConfig(), m, true
	default:
		return fmt.Errorf("unsupported scene format %q (use .toml or .glb)", ext)
	}

	if autoSize {
		if w, h, ok := terminalSize(); ok {
			logger.Debug("using terminal size", "width", w, "height", h)
			cfg.Width, cfg.Height = w, h
		}
	}

	if err := applyOverrides(cmd, &cfg, opts); err != nil {
		return err
	}

	anim, err := render.NewAnimator(cfg, mesh, os.Stdout)
	if err != nil {
		return err
	}

	logger.Info("scene loaded",
		"vertices", mesh.VertexCount(),
		"edges", mesh.EdgeCount(),
		"colored", mesh.Colored(),
		"canvas", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))

	err = anim.Run(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		printStopped(os.Stdout)
		err = markReported(err)
	case err != nil:
		printFailed(os.Stdout, err)
		err = markReported(err)
	}

	// The acknowledgement gate keeps the final message visible even when
	// the hosting window closes with the process.
	waitForEnter(os.Stdin, os.Stdout)
	return err
}

// applyOverrides copies the flags the user explicitly set into cfg.
func applyOverrides(cmd *cobra.Command, cfg *render.Config, opts options) error {
	fl := cmd.Flags()
	if fl.Changed("width") {
		cfg.Width = opts.width
	}
	if fl.Changed("height") {
		cfg.Height = opts.height
	}
	if fl.Changed("scale-x") {
		cfg.ScaleX = opts.scaleX
	}
	if fl.Changed("scale-y") {
		cfg.ScaleY = opts.scaleY
	}
	if fl.Changed("dist") {
		cfg.Dist = opts.dist
	}
	if fl.Changed("char") {
		r, n := utf8.DecodeRuneInString(opts.char)
		if n == 0 || len(opts.char) != n {
			return fmt.Errorf("char must be a single character, got %q", opts.char)
		}
		cfg.Char = r
	}
	if fl.Changed("pause") {
		cfg.Pause = time.Duration(opts.pause * float64(time.Second))
	}
	if fl.Changed("speed-x") {
		cfg.SpeedX = opts.speedX
	}
	if fl.Changed("speed-y") {
		cfg.SpeedY = opts.speedY
	}
	if fl.Changed("speed-z") {
		cfg.SpeedZ = opts.speedZ
	}
	if fl.Changed("ease") {
		cfg.Ease = opts.ease
	}
	return nil
}

// terminalSize queries the attached terminal for its cell dimensions.
func terminalSize() (width, height int, ok bool) {
	term := uv.DefaultTerminal()
	w, h, err := term.GetSize()
	if err != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}
