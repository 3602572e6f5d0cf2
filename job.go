package preview

import (
	"github.com/google/uuid"

	"github.com/gogpu/preview/geom"
	"github.com/gogpu/preview/scene"
)

// JobState is the lifecycle stage of a Job.
type JobState int

const (
	// JobSpawned means the clone exists and waits for the next tick.
	JobSpawned JobState = iota

	// JobRendered means the callback received an image.
	JobRendered

	// JobFailed means the callback received nil.
	JobFailed
)

// String returns the state name.
func (s JobState) String() string {
	switch s {
	case JobSpawned:
		return "spawned"
	case JobRendered:
		return "rendered"
	case JobFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Job is one request in flight. Its clone belongs to the job until the
// capture completes.
type Job struct {
	ID      uuid.UUID
	Request Request
	State   JobState
	Err     error

	// Clone is the stripped copy of the target, nil if spawning failed
	// before it was created.
	Clone *scene.Object

	// Size is the extent of the clone's bounding box.
	Size geom.Vec3

	fallback *scene.Timer
	done     bool
}

func newJob(req Request) *Job {
	return &Job{ID: uuid.New(), Request: req, State: JobSpawned}
}

// fail marks the job failed without completing it; the callback is deferred
// to the render pass so batch order is kept.
func (j *Job) fail(err error) {
	j.State = JobFailed
	j.Err = err
}
