package preview

import "fmt"

// spawn clones the request's target into isolation and returns its job.
// A job that cannot be spawned is returned in the failed state; its
// callback fires with the rest of the batch.
func (s *Service) spawn(req Request) *Job {
	job := newJob(req)
	if err := s.spawnClone(job); err != nil {
		job.fail(err)
		if job.Clone != nil {
			s.scene.Destroy(job.Clone)
		}
		Logger().Debug("preview: spawn failed", "job", job.ID, "target", req.Target.Name, "err", err)
		return job
	}
	Logger().Debug("preview: spawned", "job", job.ID, "target", req.Target.Name, "size", job.Size)
	return job
}

func (s *Service) spawnClone(job *Job) error {
	target := job.Request.Target
	if target.IsDestroyed() {
		return ErrTargetDestroyed
	}

	// Clone from an inactive prefab so that nothing on the copy starts.
	wasActive := target.ActiveSelf()
	target.SetActive(false)
	clone, err := s.scene.Instantiate(target, s.opts.parked, job.Request.Rotation)
	target.SetActive(wasActive)
	if err != nil {
		return fmt.Errorf("clone %q: %w", target.Name, err)
	}
	job.Clone = clone
	clone.Name = target.Name
	clone.SetLayerRecursive(s.opts.layer)

	bounds := clone.RendererBounds()
	if !bounds.IsEmpty() {
		offset := s.opts.parked.Sub(bounds.Center())
		clone.Transform.Position = clone.Transform.Position.Add(offset)
		job.Size = bounds.Size()
	}

	if err := strip(s.scene, clone); err != nil {
		return err
	}

	job.fallback = s.scene.After(s.opts.fallback, func() {
		if clone.IsDestroyed() {
			return
		}
		Logger().Warn("preview: deleting unrendered clone", "job", job.ID, "target", clone.Name)
		s.scene.Destroy(clone)
	})
	return nil
}
