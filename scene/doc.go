// Package scene is a small in-process host world: a tree of objects with
// components, layers and a frame clock.
//
// It models the host behaviors the preview pipeline has to live with.
// Destroying an object or component is deferred to the end of the frame,
// so work scheduled in the same frame still sees the old state. Behaviors
// start the first time their object becomes active in a scene. Timers,
// posted work and per-frame hooks run from [Scene.Step], which the host
// calls once per frame.
//
// A Scene is not safe for concurrent use. [Scene.Post] is the only method
// that may be called from other goroutines.
package scene
