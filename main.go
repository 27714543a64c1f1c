//go:build !(js && wasm)

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/voxelsplace/voxview/api"
	"github.com/voxelsplace/voxview/desktop"
	"github.com/voxelsplace/voxview/render"
	"github.com/voxelsplace/voxview/utils"
	"github.com/voxelsplace/voxview/vlog"
	"github.com/voxelsplace/voxview/vox"
)

func usage() {
	fmt.Println("Usage: voxview <command> [flags] [args]")
	fmt.Println("Commands:")
	fmt.Println("  render [flags] input.vox output.png|jpg|bmp   (rasterize a shape)")
	fmt.Println("  view [flags] input.vox                        (open the interactive viewer)")
	fmt.Println("  info [flags] input.vox                        (print shape details)")
	fmt.Println("  glb [flags] output.glb input1.vox [input2.vox ...]  (greedy mesh shapes into a .glb, one node each)")
	fmt.Println("  compile [flags] input.vox output.voxs         (write a compiled snapshot)")
	fmt.Println("  gensphere <diameter> output.vox               (write a layered sphere)")
	fmt.Println("  gennoise [-seed n] <side> <percentage> <amount> <output_dir>  (write random grids)")
	fmt.Println("Common flags: -palette f=360,e=200 | default | sphere, -palette-json file, -v")
}

// shared holds the flags every shape command takes.
type shared struct {
	palette     string
	paletteJSON string
	verbose     bool
}

func (s *shared) register(fs *flag.FlagSet) {
	fs.StringVar(&s.palette, "palette", "default", "palette: default, sphere or c=hue,...")
	fs.StringVar(&s.paletteJSON, "palette-json", "", "read the palette from a JSON object file")
	fs.BoolVar(&s.verbose, "v", false, "log debug output to stderr")
}

func (s *shared) setup() (vox.Palette, error) {
	if s.verbose {
		vlog.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if s.paletteJSON != "" {
		f, err := os.Open(s.paletteJSON)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return vox.ReadPaletteJSON(f)
	}
	switch s.palette {
	case "", "default":
		return vox.DefaultPalette(), nil
	case "sphere":
		return vox.SpherePalette(), nil
	}
	return vox.ParsePalette(s.palette)
}

type renderFlags struct {
	script string
	hud    bool
	bg     string
	width  int
	height int
}

func (r *renderFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&r.script, "cmds", "", "transform commands run after placement, e.g. \"ry+ ry+ tx-\"")
	fs.BoolVar(&r.hud, "hud", false, "draw the transform readout")
	fs.StringVar(&r.bg, "bg", "#000000", "background color")
	fs.IntVar(&r.width, "w", render.DefaultWidth, "frame width")
	fs.IntVar(&r.height, "h", render.DefaultHeight, "frame height")
}

func (r *renderFlags) options() ([]render.Option, error) {
	bg, err := render.ParseHexColor(r.bg)
	if err != nil {
		return nil, err
	}
	return []render.Option{render.WithSize(r.width, r.height), render.WithBackground(bg)}, nil
}

func fail(err error) {
	fmt.Println("Error:", err)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd, args := os.Args[1], os.Args[2:]
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = usage
	var sh shared
	var rf renderFlags

	switch cmd {
	case "render":
		sh.register(fs)
		rf.register(fs)
		_ = fs.Parse(args)
		if fs.NArg() != 2 {
			usage()
			os.Exit(1)
		}
		p, err := sh.setup()
		if err != nil {
			fail(err)
		}
		opts, err := rf.options()
		if err != nil {
			fail(err)
		}
		st, err := utils.RunRender(utils.RenderJob{
			In: fs.Arg(0), Out: fs.Arg(1),
			Palette: p, Script: rf.script, HUD: rf.hud, Options: opts,
		})
		if err != nil {
			fail(err)
		}
		fmt.Printf("Painted %d of %d voxels (%d off screen, %d occluded)\n", st.Painted, st.Projected, st.OffScreen, st.Occluded)
	case "view":
		sh.register(fs)
		rf.register(fs)
		out := fs.String("out", "", "write the last frame here on exit (.png, .jpg, .bmp)")
		_ = fs.Parse(args)
		if fs.NArg() != 1 {
			usage()
			os.Exit(1)
		}
		p, err := sh.setup()
		if err != nil {
			fail(err)
		}
		opts, err := rf.options()
		if err != nil {
			fail(err)
		}
		data, err := os.ReadFile(fs.Arg(0))
		if err != nil {
			fail(err)
		}
		s, err := api.LoadShape(data, p, rf.script)
		if err != nil {
			fail(fmt.Errorf("%s: %w", fs.Arg(0), err))
		}
		sess := api.NewSession(s, opts...)
		if rf.hud {
			sess.ToggleHUD()
		}
		if err := desktop.Run(sess, desktop.Config{Title: "voxview: " + filepath.Base(fs.Arg(0)), Out: *out}); err != nil {
			fail(err)
		}
	case "info":
		sh.register(fs)
		_ = fs.Parse(args)
		if fs.NArg() != 1 {
			usage()
			os.Exit(1)
		}
		p, err := sh.setup()
		if err != nil {
			fail(err)
		}
		if err := utils.RunInfo(os.Stdout, fs.Arg(0), p); err != nil {
			fail(err)
		}
		return
	case "glb":
		sh.register(fs)
		script := fs.String("cmds", "", "transform commands run after placement")
		_ = fs.Parse(args)
		if fs.NArg() < 2 {
			usage()
			os.Exit(1)
		}
		p, err := sh.setup()
		if err != nil {
			fail(err)
		}
		if err := utils.RunShape2GLB(fs.Args()[1:], fs.Arg(0), p, *script); err != nil {
			fail(err)
		}
	case "compile":
		sh.register(fs)
		_ = fs.Parse(args)
		if fs.NArg() != 2 {
			usage()
			os.Exit(1)
		}
		p, err := sh.setup()
		if err != nil {
			fail(err)
		}
		if err := utils.RunCompile(fs.Arg(0), fs.Arg(1), p); err != nil {
			fail(err)
		}
	case "gensphere":
		_ = fs.Parse(args)
		if fs.NArg() != 2 {
			usage()
			os.Exit(1)
		}
		var n int
		if _, err := fmt.Sscan(fs.Arg(0), &n); err != nil {
			fail(err)
		}
		if err := utils.RunGenerateSphere(n, fs.Arg(1)); err != nil {
			fail(err)
		}
	case "gennoise":
		seed := fs.Int64("seed", 1, "base random seed")
		_ = fs.Parse(args)
		if fs.NArg() != 4 {
			usage()
			os.Exit(1)
		}
		var n, amount int
		var perc float64
		if _, err := fmt.Sscan(fs.Arg(0), &n); err != nil {
			fail(err)
		}
		if _, err := fmt.Sscan(fs.Arg(1), &perc); err != nil {
			fail(err)
		}
		if _, err := fmt.Sscan(fs.Arg(2), &amount); err != nil {
			fail(err)
		}
		if err := utils.RunGenerateNoise(n, perc, amount, *seed, fs.Arg(3)); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(1)
	}

	fmt.Println("Operation completed!")
}
