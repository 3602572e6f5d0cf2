package preview

import (
	"fmt"
	"image"

	"github.com/gogpu/preview/render"
)

// capture renders job's clone with the rig and returns the decoded image.
// The clone is destroyed and the offscreen target released on every path.
func (s *Service) capture(r *rig, job *Job) (img *image.RGBA, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("preview: capture panicked: %v", p)
		}
	}()

	req := job.Request
	clone := job.Clone
	if clone.IsDestroyed() {
		return nil, ErrCloneDestroyed
	}

	dev := s.scene.Graphics()
	rt, err := dev.GetTemporary(req.Width, req.Height)
	if err != nil {
		return nil, err
	}
	prev := dev.Active()
	dev.SetActive(rt)
	defer func() {
		dev.ReleaseTemporary(rt)
		dev.SetActive(prev)
	}()

	clone.SetActive(true)
	defer clone.SetActive(false)
	d := Distance(job.Size, req.FieldOfView, req.DistanceMultiplier)
	r.frame(s.opts.parked, job.Size, d, req.FieldOfView, s.opts.farClip)
	stats, err := r.camera.Render()
	s.scene.Destroy(clone)
	if err != nil {
		return nil, err
	}
	if stats.Drawn == 0 {
		return nil, ErrNothingRendered
	}

	pix, err := dev.ReadPixels()
	if err != nil {
		return nil, err
	}
	tex, err := render.NewTexture(req.Width, req.Height)
	if err != nil {
		return nil, err
	}
	if err := tex.UpdateData(pix); err != nil {
		return nil, err
	}
	return tex.Image(), nil
}
