// Package preview renders still preview images of scene objects without
// disturbing the live scene.
//
// A [Service] accepts [Request] values from any goroutine and, driven by the
// host tick, turns each one into exactly one callback carrying either an
// image of the requested size or nil.
//
// # Pipeline
//
// Every tick the service first renders the batch it spawned on the previous
// tick, then drains the queue and spawns the next batch:
//
//   - the target is cloned at a parked coordinate far from the live scene,
//     moved onto an isolation layer and recentered on its bounding box
//   - every component except pure visuals is stripped from the clone,
//     dependents before the components they depend on
//   - one tick later a disposable camera and light are set up, each clone
//     is rendered into a temporary offscreen target and read back, and the
//     camera and light are destroyed again
//
// The one-tick gap lets the host finish destroying the stripped components
// before the clone is activated.
//
// # Quick Start
//
//	sc := scene.New()
//	svc := preview.New(sc)
//	svc.Attach(sc)
//
//	svc.Enqueue(preview.Request{
//	    Target:   prefab,
//	    Width:    256,
//	    Height:   256,
//	    Callback: func(img *image.RGBA) { ... },
//	})
//
//	for {
//	    sc.Step(16 * time.Millisecond)
//	}
//
// # Logging
//
// The package is silent by default. See [SetLogger].
package preview
