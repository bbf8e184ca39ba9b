package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an oriented bounding box. Extent holds half-sizes along the box's local axes.
type Box struct {
	Center   mgl64.Vec3
	Rotation mgl64.Quat
	Extent   mgl64.Vec3
}

// Axes returns the box's local X, Y and Z axes in world space
func (b Box) Axes() [3]mgl64.Vec3 {
	return [3]mgl64.Vec3{
		b.Rotation.Rotate(ForwardAxis),
		b.Rotation.Rotate(SideAxis),
		b.Rotation.Rotate(UpAxis),
	}
}

// Corners returns the eight world-space corners
func (b Box) Corners() [8]mgl64.Vec3 {
	axes := b.Axes()
	var corners [8]mgl64.Vec3
	for i := range corners {
		c := b.Center
		for a := 0; a < 3; a++ {
			sign := 1.0
			if i&(1<<a) != 0 {
				sign = -1.0
			}
			c = c.Add(axes[a].Mul(sign * b.Extent[a]))
		}
		corners[i] = c
	}
	return corners
}

// projectedRadius is the half-length of the box's shadow on axis
func (b Box) projectedRadius(axis mgl64.Vec3, axes [3]mgl64.Vec3) float64 {
	r := 0.0
	for i := 0; i < 3; i++ {
		r += math.Abs(b.Extent[i] * axes[i].Dot(axis))
	}
	return r
}

// Intersects reports whether the boxes interpenetrate by more than tolerance on every
// separating axis. Boxes that only touch face to face do not intersect.
func (b Box) Intersects(o Box, tolerance float64) bool {
	ba, oa := b.Axes(), o.Axes()

	axes := make([]mgl64.Vec3, 0, 15)
	axes = append(axes, ba[:]...)
	axes = append(axes, oa[:]...)
	for i := range ba {
		for j := range oa {
			cross := ba[i].Cross(oa[j])
			if cross.Len() > Epsilon {
				axes = append(axes, cross.Normalize())
			}
		}
	}

	d := o.Center.Sub(b.Center)
	for _, axis := range axes {
		gap := math.Abs(d.Dot(axis))
		if gap >= b.projectedRadius(axis, ba)+o.projectedRadius(axis, oa)-tolerance {
			return false
		}
	}
	return true
}

// ContainsFootprint reports whether the point (x, y) lies inside the box seen from above
func (b Box) ContainsFootprint(x, y float64) bool {
	local := b.Rotation.Inverse().Rotate(mgl64.Vec3{x - b.Center.X(), y - b.Center.Y(), 0})
	return math.Abs(local.X()) <= b.Extent.X() && math.Abs(local.Y()) <= b.Extent.Y()
}
