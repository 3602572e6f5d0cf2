package preview

import (
	"math"

	"github.com/gogpu/preview/geom"
)

// framePadding is added to the largest extent so edges do not touch the
// image border.
const framePadding = 0.1

// Distance returns how far the camera must stand from a subject of the
// given bounding size so that it fills a view of fov degrees. Only the X
// and Y extents count; the camera looks along Z.
func Distance(size geom.Vec3, fov, multiplier float64) float64 {
	extent := max(size.X, size.Y) + framePadding
	return extent / math.Tan(fov*geom.Deg2Rad/2) * multiplier
}
