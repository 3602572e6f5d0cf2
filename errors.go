package preview

import "errors"

var (
	// ErrNoGeometry is returned when a target has nothing that can be drawn.
	ErrNoGeometry = errors.New("preview: target has no geometry")

	// ErrInvalidRequest is returned for requests with out-of-range fields.
	ErrInvalidRequest = errors.New("preview: invalid request")

	// ErrNilCallback is returned for requests without a callback.
	ErrNilCallback = errors.New("preview: nil callback")

	// ErrTargetDestroyed is returned when the target was destroyed before
	// it could be cloned.
	ErrTargetDestroyed = errors.New("preview: target destroyed")

	// ErrCloneDestroyed is returned when a clone was deleted before it was
	// rendered, usually by the fallback timer.
	ErrCloneDestroyed = errors.New("preview: clone destroyed before render")

	// ErrNothingRendered is returned when a capture drew no geometry.
	ErrNothingRendered = errors.New("preview: nothing rendered")

	// ErrStripCycle is returned when component dependencies form a cycle
	// and cannot be removed in order.
	ErrStripCycle = errors.New("preview: component dependency cycle")
)
