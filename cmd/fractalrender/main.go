// Command fractalrender renders a fractal to an image file.
//
// Usage:
//
//	fractalrender -kind julia -palette sunset -width 1200 -height 800 -o julia.png
//	fractalrender -kind multibrot -params power=5,smooth=1 -iter 500
//	fractalrender -session view.json -zoom 0.25 -center -0.745,0.11
//	fractalrender -session view.json -undo
//	fractalrender -list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/export"
	"github.com/gogpu/fractal/formula"
	"github.com/gogpu/fractal/history"
	"github.com/gogpu/fractal/palette"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "fractalrender:", err)
		os.Exit(1)
	}
}

type config struct {
	kind    string
	palette string
	width   int
	height  int
	maxIter int
	iterSet bool
	params  map[string]float64
	bounds  *fractal.Bounds
	center  *[2]float64
	zoom    float64
	output  string
	thumb   int
	quality int
	workers int
	session string
	undo    bool
	redo    bool
	list    bool
	verbose bool
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	var cfg config
	var params, bounds, center string

	fs := flag.NewFlagSet("fractalrender", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.kind, "kind", "mandelbrot", "fractal kind (see -list)")
	fs.StringVar(&cfg.palette, "palette", "smooth", "color palette (see -list)")
	fs.IntVar(&cfg.width, "width", 800, "image width")
	fs.IntVar(&cfg.height, "height", 600, "image height")
	fs.IntVar(&cfg.maxIter, "iter", 256, "maximum iterations")
	fs.StringVar(&params, "params", "", "kind parameters as name=value,...")
	fs.StringVar(&bounds, "bounds", "", "plane rectangle as xmin,xmax,ymin,ymax")
	fs.StringVar(&center, "center", "", "move the view centre to x,y")
	fs.Float64Var(&cfg.zoom, "zoom", 1, "zoom factor around the centre (<1 zooms in)")
	fs.StringVar(&cfg.output, "o", "fractal.png", "output file (.png, .jpg, .bmp, .tiff)")
	fs.IntVar(&cfg.thumb, "thumb", 0, "also write a thumbnail with this maximum edge")
	fs.IntVar(&cfg.quality, "quality", 90, "JPEG quality")
	fs.IntVar(&cfg.workers, "workers", 0, "worker limit (0 = one per CPU)")
	fs.StringVar(&cfg.session, "session", "", "JSON file keeping the view history between runs")
	fs.BoolVar(&cfg.undo, "undo", false, "render the previous view from the session")
	fs.BoolVar(&cfg.redo, "redo", false, "render the next view from the session")
	fs.BoolVar(&cfg.list, "list", false, "list kinds and palettes and exit")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "iter" {
			cfg.iterSet = true
		}
	})

	var err error
	if cfg.params, err = parseParams(params); err != nil {
		return nil, err
	}
	if bounds != "" {
		v, err := parseFloats(bounds, 4)
		if err != nil {
			return nil, fmt.Errorf("-bounds: %w", err)
		}
		cfg.bounds = &fractal.Bounds{XMin: v[0], XMax: v[1], YMin: v[2], YMax: v[3]}
	}
	if center != "" {
		v, err := parseFloats(center, 2)
		if err != nil {
			return nil, fmt.Errorf("-center: %w", err)
		}
		cfg.center = &[2]float64{v[0], v[1]}
	}
	if cfg.undo && cfg.redo {
		return nil, errors.New("-undo and -redo are exclusive")
	}
	if (cfg.undo || cfg.redo) && cfg.session == "" {
		return nil, errors.New("-undo and -redo need -session")
	}
	return &cfg, nil
}

// parseParams parses "name=value,name=value".
func parseParams(s string) (map[string]float64, error) {
	out := make(map[string]float64)
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, kv := range strings.Split(s, ",") {
		name, value, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("-params: %q is not name=value", kv)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("-params: %s: %w", name, err)
		}
		out[name] = f
	}
	return out, nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma separated numbers, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	fractal.SetLogger(log)

	kinds := formula.NewRegistry()
	palettes := palette.NewRegistry()
	if cfg.list {
		printList(stdout, kinds, palettes)
		return nil
	}

	kind, err := kinds.Create(cfg.kind)
	if err != nil {
		return err
	}
	pal, err := palettes.Get(cfg.palette)
	if err != nil {
		return err
	}

	session, err := loadSession(cfg.session)
	if err != nil {
		return err
	}
	state, err := resolveView(cfg, kind, session)
	if err != nil {
		return err
	}
	fractal.ApplyParams(kind, state.Params)

	vp, err := fractal.NewViewport(fractal.Bounds{
		XMin: state.XMin, XMax: state.XMax, YMin: state.YMin, YMax: state.YMax,
	}, cfg.width, cfg.height)
	if err != nil {
		return err
	}
	job, err := fractal.NewJob(fractal.JobConfig{Kind: kind, Palette: pal, Viewport: vp, MaxIter: state.MaxIter})
	if err != nil {
		return err
	}

	var opts []fractal.Option
	if cfg.workers > 0 {
		opts = append(opts, fractal.WithMaxWorkers(cfg.workers))
	}
	engine := fractal.NewEngine(opts...)
	defer engine.Close()

	log.Info("rendering", "kind", kind.Key(), "palette", cfg.palette, "viewport", vp.String(),
		"maxIter", state.MaxIter, "workers", engine.Workers())

	var submitOpts []fractal.SubmitOption
	if f, ok := stderr.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		submitOpts = append(submitOpts, fractal.WithProgress(progressBar(stderr)))
	}

	start := time.Now()
	img, err := engine.Submit(ctx, job, submitOpts...)
	if err != nil {
		return err
	}
	log.Info("rendered", "elapsed", time.Since(start).Round(time.Millisecond))

	if err := export.Save(cfg.output, img, &export.Options{Quality: cfg.quality}); err != nil {
		return err
	}
	log.Info("saved", "path", cfg.output)

	if cfg.thumb > 0 {
		path := thumbPath(cfg.output)
		if err := export.Save(path, export.Thumbnail(img, cfg.thumb, cfg.thumb), &export.Options{Quality: cfg.quality}); err != nil {
			return err
		}
		log.Info("saved thumbnail", "path", path)
	}

	if session != nil {
		state.Params = fractal.Snapshot(kind)
		if !cfg.undo && !cfg.redo {
			session.Push(kind.Key(), state)
		}
		return saveSession(cfg.session, session)
	}
	return nil
}

// resolveView picks the view to render. It starts from the kind's default
// rectangle fitted to the image size, or from the session's saved view, and
// applies -bounds, -center, -zoom, -iter and -params on top. With -undo or
// -redo the session's history entry is used unchanged.
func resolveView(cfg *config, kind fractal.Kind, session *history.Session) (history.State, error) {
	b := kind.DefaultBounds()
	if vp, err := fractal.NewViewport(b, cfg.width, cfg.height); err == nil {
		if vp, err = vp.FitAspect(); err == nil {
			b = vp.Bounds
		}
	}
	state := history.State{MaxIter: cfg.maxIter, Params: fractal.Snapshot(kind)}
	setBounds(&state, b)

	if session != nil {
		state = session.Restore(kind.Key(), state)
		switch {
		case cfg.undo:
			st, ok := session.Undo(kind.Key())
			if !ok {
				return state, errors.New("nothing to undo")
			}
			return st, nil
		case cfg.redo:
			st, ok := session.Redo(kind.Key())
			if !ok {
				return state, errors.New("nothing to redo")
			}
			return st, nil
		}
	}

	b = fractal.Bounds{XMin: state.XMin, XMax: state.XMax, YMin: state.YMin, YMax: state.YMax}
	if cfg.bounds != nil {
		b = *cfg.bounds
	}
	if cfg.center != nil {
		cx, cy := b.Center()
		dx, dy := cfg.center[0]-cx, cfg.center[1]-cy
		b = fractal.Bounds{XMin: b.XMin + dx, XMax: b.XMax + dx, YMin: b.YMin + dy, YMax: b.YMax + dy}
	}
	if cfg.zoom != 1 {
		vp, err := fractal.NewViewport(b, cfg.width, cfg.height)
		if err != nil {
			return state, err
		}
		if vp, err = vp.ZoomAt(float64(cfg.width)/2, float64(cfg.height)/2, cfg.zoom); err != nil {
			return state, err
		}
		b = vp.Bounds
	}
	setBounds(&state, b)

	if cfg.iterSet {
		state.MaxIter = cfg.maxIter
	}
	if len(cfg.params) > 0 && state.Params == nil {
		state.Params = make(map[string]float64, len(cfg.params))
	}
	for name, v := range cfg.params {
		state.Params[name] = v
	}
	return state, nil
}

func setBounds(s *history.State, b fractal.Bounds) {
	s.XMin, s.XMax, s.YMin, s.YMax = b.XMin, b.XMax, b.YMin, b.YMax
}

func loadSession(path string) (*history.Session, error) {
	if path == "" {
		return nil, nil
	}
	s := history.NewSession(history.DefaultCapacity)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if err := s.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", path, err)
	}
	return s, nil
}

func saveSession(path string, s *history.Session) error {
	data, err := s.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func thumbPath(output string) string {
	if i := strings.LastIndexByte(output, '.'); i > 0 {
		return output[:i] + "_thumb" + output[i:]
	}
	return output + "_thumb"
}

func printList(w io.Writer, kinds *fractal.KindRegistry, palettes *fractal.PaletteRegistry) {
	fmt.Fprintln(w, "Kinds:")
	for _, e := range kinds.List() {
		fmt.Fprintf(w, "  %-14s %s\n", e.Key, e.Name)
		k, _ := kinds.Create(e.Key)
		for _, p := range k.Params() {
			fmt.Fprintf(w, "      %-12s default %g, range [%g, %g]\n", p.Name, p.Default, p.Min, p.Max)
		}
	}
	fmt.Fprintln(w, "Palettes:")
	for _, e := range palettes.List() {
		fmt.Fprintf(w, "  %-14s %s\n", e.Key, e.Name)
	}
}

// progressBar returns a progress callback drawing a single-line bar.
func progressBar(w io.Writer) func(done, total int) {
	const width = 40
	return func(done, total int) {
		n := done * width / total
		fmt.Fprintf(w, "\r[%s%s] %3d%%", strings.Repeat("#", n), strings.Repeat(" ", width-n), done*100/total)
		if done == total {
			fmt.Fprintln(w)
		}
	}
}
