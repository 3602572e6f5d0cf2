package main

import (
	"context"
	"time"

	"github.com/gogpu/preview/scene"
)

// host steps the scene on its own goroutine. All scene access from
// handlers goes through Post.
type host struct {
	scene *scene.Scene
	tick  time.Duration
}

func newHost(sc *scene.Scene, tick time.Duration) *host {
	return &host{scene: sc, tick: tick}
}

// run steps the scene once per tick until ctx is done.
func (h *host) run(ctx context.Context) {
	t := time.NewTicker(h.tick)
	defer t.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			h.scene.Step(now.Sub(last))
			last = now
		}
	}
}

// post runs fn on the host goroutine at the start of the next frame.
func (h *host) post(fn func()) {
	h.scene.Post(fn)
}
