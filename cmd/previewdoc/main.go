// Command previewdoc renders a preview of every catalog location and writes
// a markdown location list referencing the images.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/preview"
	"github.com/gogpu/preview/geom"
	"github.com/gogpu/preview/internal/catalog"
	"github.com/gogpu/preview/internal/cli"
	"github.com/gogpu/preview/scene"
)

const frameTime = 16 * time.Millisecond

func main() {
	if err := cli.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "previewdoc: %v\n", err)
		os.Exit(1)
	}

	var (
		out       = flag.String("out", cli.Env("PREVIEWDOC_OUT", "docs"), "output directory")
		size      = flag.Int("size", cli.EnvInt("PREVIEWDOC_SIZE", preview.DefaultSize), "image width and height in pixels")
		maxFrames = flag.Int("max-frames", 600, "give up after this many host frames")
		logLevel  = flag.String("log-level", cli.Env("LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	)
	flag.Parse()

	log := cli.NewLogger(os.Stderr, *logLevel, "text")
	preview.SetLogger(log)

	if err := run(log, *out, *size, *maxFrames); err != nil {
		log.Error("previewdoc failed", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, out string, size, maxFrames int) error {
	imageDir := filepath.Join(out, "images", "locations")
	if err := os.MkdirAll(imageDir, 0o755); err != nil {
		return err
	}

	sc := scene.New()
	svc := preview.New(sc)
	svc.Attach(sc)

	entries := catalog.All()
	doc := newLocationDoc(len(entries))
	remaining := len(entries)
	var writeErr error

	log.Info("documenting locations", "count", len(entries))
	for i, e := range entries {
		path := filepath.Join(imageDir, e.Name+".png")
		svc.Enqueue(preview.Request{
			Target:             e.Prefab(),
			Width:              size,
			Height:             size,
			Rotation:           geom.Euler(-24, -231, 26),
			FieldOfView:        20,
			DistanceMultiplier: 1.1,
			Callback: func(img *image.RGBA) {
				remaining--
				rendered := false
				if img != nil {
					if err := writePNG(path, img); err != nil {
						writeErr = err
					} else {
						rendered = true
					}
				}
				doc.set(i, e, rendered)
				if remaining == 0 {
					writeErr = firstErr(writeErr, doc.save(filepath.Join(out, "locations", "location-list.md")))
				}
			},
		})
	}

	for frames := 0; remaining > 0; frames++ {
		if frames == maxFrames {
			return fmt.Errorf("%d previews still pending after %d frames", remaining, maxFrames)
		}
		sc.Step(frameTime)
	}
	if writeErr != nil {
		return writeErr
	}

	st := svc.Stats()
	log.Info("location list written",
		"rendered", st.Completed, "failed", st.Failed+st.Rejected, "batches", st.Batches)
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
