// Command raycamview renders a camera-ray stream to PNG snapshots.
//
// It either connects to a camera server over a websocket:
//
//	raycamview -url ws://host:8080/camera -out shot-%d.png -every 10
//
// or replays a recorded stream from a YAML or JSON file:
//
//	raycamview -replay capture.yaml -out frame-%d.png
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/gogpu/raycam"
	"github.com/gogpu/raycam/internal/config"
	"github.com/gogpu/raycam/render"
	"github.com/gogpu/raycam/session"
	"github.com/gogpu/raycam/transport/ws"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		url        = flag.String("url", "", "camera server websocket URL")
		camera     = flag.String("camera", "", "camera name to subscribe to")
		replay     = flag.String("replay", "", "replay a recorded stream instead of connecting")
		record     = flag.String("record", "", "write received frames to this replay file on exit")
		out        = flag.String("out", "", "PNG path; %d is replaced by the frame number")
		every      = flag.Int("every", 0, "write one PNG every N frames")
		preview    = flag.Int("preview", 0, "downscale snapshots to this width (0 keeps full size)")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "url":
			cfg.URL = *url
		case "camera":
			cfg.Camera = *camera
		case "out":
			cfg.Out = *out
		case "every":
			cfg.Every = *every
		case "preview":
			cfg.Preview = *preview
		case "v":
			if *verbose {
				cfg.LogLevel = "debug"
			}
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	level, _ := cfg.Level()
	raycam.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *replay != "" {
		err = runReplay(cfg, *replay)
	} else {
		err = runLive(ctx, cfg, *record)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runReplay(cfg config.Config, path string) error {
	rep, err := config.LoadReplay(path)
	if err != nil {
		return err
	}
	frames, err := rep.RayFrames()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	sess := session.New(nil, session.WithRenderOptions(cfg.RenderOptions()...))
	snap := newSnapshotter(cfg)
	sess.OnFrame(snap.observe)
	if err := sess.Subscribe(rep.Camera.Info()); err != nil {
		return err
	}
	for _, f := range frames {
		if err := sess.SubmitFrame(f); err != nil {
			return err
		}
	}
	if err := sess.Exit(); err != nil {
		return err
	}
	raycam.Logger().Info("replay finished", "frames", len(frames), "written", snap.written)
	return snap.err
}

func runLive(ctx context.Context, cfg config.Config, recordPath string) error {
	opts := []ws.Option{ws.WithCamera(cfg.Camera)}
	if cfg.Compression != "" {
		opts = append(opts, ws.WithCompression(cfg.Compression))
	}
	if cfg.ValidateSchema {
		opts = append(opts, ws.WithSchemaValidation())
	}
	client, err := ws.Dial(ctx, cfg.URL, opts...)
	if err != nil {
		return err
	}
	defer client.Close()

	sess := session.New(client, session.WithRenderOptions(cfg.RenderOptions()...))
	snap := newSnapshotter(cfg)
	sess.OnFrame(snap.observe)

	var rec recorder
	if recordPath != "" {
		sess.OnFrame(func(*render.Result) error {
			rec.add(sess)
			return nil
		})
	}

	err = client.Run(ctx, sess)
	if ctx.Err() != nil {
		err = nil
	}
	if recordPath != "" {
		if werr := rec.write(recordPath); werr != nil && err == nil {
			err = werr
		}
	}
	raycam.Logger().Info("stream ended", "frames", client.Frames(), "dropped", client.Dropped(), "written", snap.written)
	if err != nil {
		return err
	}
	return snap.err
}

// snapshotter writes every Nth rendered frame to disk.
type snapshotter struct {
	out     string
	every   int
	preview int

	n       int
	written int
	err     error
}

func newSnapshotter(cfg config.Config) *snapshotter {
	return &snapshotter{out: cfg.Out, every: cfg.Every, preview: cfg.Preview}
}

func (s *snapshotter) observe(res *render.Result) error {
	s.n++
	if s.out == "" || s.n%s.every != 0 {
		return nil
	}
	path := outputPath(s.out, s.n)
	if err := s.save(path, res.Image); err != nil {
		s.err = err
		return err
	}
	s.written++
	raycam.Logger().Debug("wrote snapshot", "path", path, "entities", len(res.Entities), "labels", len(res.Labels))
	return nil
}

func (s *snapshotter) save(path string, pm *raycam.Pixmap) error {
	if s.preview <= 0 || s.preview >= pm.Width() {
		return pm.SavePNG(path)
	}
	h := max(1, pm.Height()*s.preview/pm.Width())
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, pm.Scaled(s.preview, h)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// outputPath substitutes the frame number into a "%d" template.
func outputPath(tmpl string, n int) string {
	if !strings.Contains(tmpl, "%d") {
		return tmpl
	}
	return strings.Replace(tmpl, "%d", fmt.Sprint(n), 1)
}

// recorder keeps every frame that reached the session for WriteReplay.
type recorder struct {
	mu     sync.Mutex
	info   raycam.CameraInfo
	frames []*raycam.RayFrame
}

func (r *recorder) add(sess *session.Session) {
	frames := sess.Frames()
	if len(frames) == 0 {
		return
	}
	info, _ := sess.Info()
	r.mu.Lock()
	defer r.mu.Unlock()
	if info != r.info {
		// A new camera descriptor starts a new recording.
		r.info, r.frames = info, r.frames[:0]
	}
	r.frames = append(r.frames, frames[len(frames)-1])
}

func (r *recorder) write(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return nil
	}
	return config.WriteReplay(path, r.info, r.frames)
}
