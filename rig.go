package preview

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/preview/geom"
	"github.com/gogpu/preview/scene"
)

// Fixed orientations of the capture camera and light.
var (
	cameraRotation = geom.Euler(0, 180, 0)
	lightRotation  = geom.Euler(5, 180, 5)
)

// cameraNear keeps close framing distances from clipping the subject.
const cameraNear = 0.01

// rig is the camera and light shared by one batch.
type rig struct {
	camera    *scene.Camera
	cameraObj *scene.Object
	lightObj  *scene.Object
}

func (s *Service) acquireRig() *rig {
	mask := scene.MaskOf(s.opts.layer)

	cam := scene.NewCamera()
	cam.Near = cameraNear
	cam.Far = s.opts.farClip
	cam.Background = gputypes.ColorTransparent
	cam.ClearFlags = gputypes.LoadOpClear
	cam.CullingMask = mask
	cam.Rasterizer = s.raster

	cameraObj := scene.NewEmpty("Preview Camera")
	cameraObj.Transform.Position = s.opts.parked
	cameraObj.Transform.Rotation = cameraRotation
	cameraObj.SetLayer(s.opts.layer)
	cameraObj.AddComponent(cam)

	light := scene.NewLight()
	light.CullingMask = mask

	lightObj := scene.NewEmpty("Preview Light")
	lightObj.Transform.Position = s.opts.parked
	lightObj.Transform.Rotation = lightRotation
	lightObj.SetLayer(s.opts.layer)
	lightObj.AddComponent(light)

	s.scene.Add(cameraObj)
	s.scene.Add(lightObj)
	s.stats.rigsAcquired.Add(1)
	return &rig{camera: cam, cameraObj: cameraObj, lightObj: lightObj}
}

func (s *Service) releaseRig(r *rig) {
	s.scene.Destroy(r.cameraObj)
	s.scene.Destroy(r.lightObj)
	s.stats.rigsReleased.Add(1)
}

// farMargin keeps the back of the subject inside the far plane.
const farMargin = 1

// frame points the camera at the parked position from distance d and pushes
// the far plane out past a subject of the given size when farClip is short.
func (r *rig) frame(parked, size geom.Vec3, d, fov, farClip float64) {
	r.camera.FieldOfView = fov
	r.camera.Far = max(farClip, d+size.Length()+farMargin)
	r.cameraObj.Transform.Position = parked.Sub(cameraRotation.Forward().Mul(d))
}
