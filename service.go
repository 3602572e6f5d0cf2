package preview

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/gogpu/preview/render"
	"github.com/gogpu/preview/scene"
)

// State is the scheduler's position within a tick cycle.
type State int32

const (
	// Idle means nothing is queued or waiting.
	Idle State = iota

	// Draining means the queue is being emptied into a new batch.
	Draining

	// WaitingOneTick means a spawned batch waits for the next tick.
	WaitingOneTick

	// Rendering means a batch is being captured.
	Rendering
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Draining:
		return "draining"
	case WaitingOneTick:
		return "waiting"
	case Rendering:
		return "rendering"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// TickSource calls registered functions once per host frame.
// *scene.Scene is a TickSource.
type TickSource interface {
	OnTick(fn func())
}

// Stats counts what a Service has done since it was created.
type Stats struct {
	Enqueued     uint64 // requests accepted
	Rejected     uint64 // requests refused by Enqueue
	Completed    uint64 // callbacks that received an image
	Failed       uint64 // accepted requests whose callback received nil
	Batches      uint64 // non-empty batches spawned
	RigsAcquired uint64
	RigsReleased uint64
}

type counters struct {
	enqueued, rejected, completed, failed, batches atomic.Uint64
	rigsAcquired, rigsReleased                     atomic.Uint64
}

// Service renders previews of scene objects.
//
// Enqueue may be called from any goroutine. Everything else, including
// Tick and all callbacks, runs on the host thread.
type Service struct {
	scene  *scene.Scene
	opts   options
	raster *render.Rasterizer

	queue   queue
	pending []*Job
	state   atomic.Int32
	stats   counters
}

// New creates a Service rendering into sc. The service does nothing until
// it is ticked, either by calling Tick once per frame or through Attach.
func New(sc *scene.Scene, opts ...Option) *Service {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	raster := render.NewRasterizer()
	raster.Supersample = o.supersample
	raster.Ambient = o.ambient

	Logger().Info("preview: service created",
		"parked", o.parked, "layer", o.layer, "fallback", o.fallback)
	return &Service{scene: sc, opts: o, raster: raster}
}

// Attach registers Tick with src so the service runs every host frame.
func (s *Service) Attach(src TickSource) {
	src.OnTick(s.Tick)
}

// Enqueue submits a request. It returns false, after calling the callback
// with nil, if the request is invalid or its target has no geometry; the
// queue is left untouched. A request without a callback is refused without
// any call. An accepted request gets exactly one callback on a later tick.
//
// Enqueue reads the target's hierarchy, so the target must not be modified
// concurrently.
func (s *Service) Enqueue(req Request) bool {
	req = req.normalized()
	if err := s.admit(req); err != nil {
		s.stats.rejected.Add(1)
		name := ""
		if req.Target != nil {
			name = req.Target.Name
		}
		Logger().Debug("preview: request rejected", "target", name, "err", err)
		if req.Callback != nil {
			req.Callback(nil)
		}
		return false
	}
	s.queue.push(req)
	s.stats.enqueued.Add(1)
	return true
}

// EnqueueObject submits a request for target with default size, rotation
// and framing.
func (s *Service) EnqueueObject(target *scene.Object, callback func(*image.RGBA)) bool {
	return s.Enqueue(Request{Target: target, Callback: callback})
}

func (s *Service) admit(req Request) error {
	if err := req.validate(); err != nil {
		return err
	}
	if req.Target.IsDestroyed() {
		return ErrTargetDestroyed
	}
	if !req.Target.HasGeometry() {
		return ErrNoGeometry
	}
	return nil
}

// Tick advances the scheduler by one host frame: the batch spawned on the
// previous tick is rendered, then the queue is drained and the next batch
// spawned.
func (s *Service) Tick() {
	if batch := s.pending; len(batch) > 0 {
		s.pending = nil
		s.setState(Rendering)
		s.renderBatch(batch)
	}

	s.setState(Draining)
	reqs := s.queue.drain()
	if len(reqs) == 0 {
		s.setState(Idle)
		return
	}
	batch := make([]*Job, 0, len(reqs))
	for _, req := range reqs {
		batch = append(batch, s.spawn(req))
	}
	s.pending = batch
	s.stats.batches.Add(1)
	Logger().Debug("preview: batch spawned", "jobs", len(batch), "frame", s.scene.Frame())
	s.setState(WaitingOneTick)
}

// renderBatch captures every job in order with one rig.
func (s *Service) renderBatch(batch []*Job) {
	r := s.acquireRig()
	defer s.releaseRig(r)

	for _, job := range batch {
		if job.State == JobFailed {
			s.finish(job, nil, job.Err)
			continue
		}
		img, err := s.capture(r, job)
		s.finish(job, img, err)
	}
	Logger().Debug("preview: batch rendered", "jobs", len(batch), "frame", s.scene.Frame())
}

// finish completes job exactly once. The clone is gone and the fallback
// timer stopped before the callback runs.
func (s *Service) finish(job *Job, img *image.RGBA, err error) {
	if job.done {
		return
	}
	job.done = true
	if job.Clone != nil && !job.Clone.IsDestroyed() {
		s.scene.Destroy(job.Clone)
	}
	job.fallback.Stop()

	if err != nil {
		job.fail(err)
		img = nil
		s.stats.failed.Add(1)
		Logger().Warn("preview: job failed", "job", job.ID, "target", job.Request.Target.Name, "err", err)
	} else {
		job.State = JobRendered
		s.stats.completed.Add(1)
	}
	s.deliver(job, img)
}

// deliver runs the callback. A panicking callback does not stop the batch.
func (s *Service) deliver(job *Job, img *image.RGBA) {
	defer func() {
		if p := recover(); p != nil {
			Logger().Warn("preview: callback panicked", "job", job.ID, "panic", p)
		}
	}()
	job.Request.Callback(img)
}

func (s *Service) setState(st State) {
	s.state.Store(int32(st))
}

// State returns where the scheduler is in its cycle.
func (s *Service) State() State {
	return State(s.state.Load())
}

// Queued returns the number of requests waiting for the next drain.
func (s *Service) Queued() int {
	return s.queue.len()
}

// Pending returns the jobs spawned on the last tick and waiting to render.
// It must be called from the host thread.
func (s *Service) Pending() []Job {
	out := make([]Job, len(s.pending))
	for i, j := range s.pending {
		out[i] = *j
	}
	return out
}

// Stats returns a snapshot of the service counters.
func (s *Service) Stats() Stats {
	return Stats{
		Enqueued:     s.stats.enqueued.Load(),
		Rejected:     s.stats.rejected.Load(),
		Completed:    s.stats.completed.Load(),
		Failed:       s.stats.failed.Load(),
		Batches:      s.stats.batches.Load(),
		RigsAcquired: s.stats.rigsAcquired.Load(),
		RigsReleased: s.stats.rigsReleased.Load(),
	}
}
