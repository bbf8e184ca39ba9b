// Package geometry holds the rigid-transform and bounding-volume math used to place pieces.
//
// Conventions: right-handed, +X is a connection point's forward axis, +Z is up.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the default tolerance for geometric comparisons
const Epsilon = 1e-6

var (
	// ForwardAxis is the local axis a connection point faces along
	ForwardAxis = mgl64.Vec3{1, 0, 0}
	// SideAxis completes the right-handed basis
	SideAxis = mgl64.Vec3{0, 1, 0}
	// UpAxis is the world up direction
	UpAxis = mgl64.Vec3{0, 0, 1}
)

// Pose is a rigid transform: rotation followed by translation
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Identity returns the neutral pose at the origin
func Identity() Pose {
	return Pose{Rotation: mgl64.QuatIdent()}
}

// At returns an unrotated pose at position
func At(position mgl64.Vec3) Pose {
	return Pose{Position: position, Rotation: mgl64.QuatIdent()}
}

// Yawed returns a pose at position rotated about the up axis by degrees
func Yawed(position mgl64.Vec3, degrees float64) Pose {
	return Pose{Position: position, Rotation: YawRotation(degrees)}
}

// YawRotation is a rotation about the up axis
func YawRotation(degrees float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(degrees), UpAxis)
}

// Forward returns the pose's forward direction
func (p Pose) Forward() mgl64.Vec3 {
	return p.Rotation.Rotate(ForwardAxis)
}

// Compose returns the world pose of a child whose pose is local relative to p
func (p Pose) Compose(local Pose) Pose {
	return Pose{
		Position: p.Position.Add(p.Rotation.Rotate(local.Position)),
		Rotation: p.Rotation.Mul(local.Rotation).Normalize(),
	}
}

// Inverse returns the pose that undoes p
func (p Pose) Inverse() Pose {
	inv := p.Rotation.Inverse()
	return Pose{
		Position: inv.Rotate(p.Position.Mul(-1)),
		Rotation: inv,
	}
}

// TransformPoint maps a point from p's local frame into the parent frame
func (p Pose) TransformPoint(v mgl64.Vec3) mgl64.Vec3 {
	return p.Position.Add(p.Rotation.Rotate(v))
}

// ApproxEqual compares poses within tolerance; q and -q are the same rotation.
func (p Pose) ApproxEqual(o Pose, tolerance float64) bool {
	if !Near(p.Position, o.Position, tolerance) {
		return false
	}
	return math.Abs(p.Rotation.Dot(o.Rotation)) >= 1-tolerance
}

// RotFromXZ builds the rotation whose forward axis is x, keeping z as the secondary (up) axis.
// When x is parallel to z any perpendicular side axis is chosen.
func RotFromXZ(x, z mgl64.Vec3) mgl64.Quat {
	xAxis := x.Normalize()
	yAxis := z.Cross(xAxis)
	if yAxis.Len() < Epsilon {
		alt := SideAxis
		if math.Abs(xAxis.Dot(alt)) > 0.9 {
			alt = ForwardAxis
		}
		yAxis = alt.Sub(xAxis.Mul(alt.Dot(xAxis)))
	}
	yAxis = yAxis.Normalize()
	zAxis := xAxis.Cross(yAxis)

	m := mgl64.Mat4FromCols(xAxis.Vec4(0), yAxis.Vec4(0), zAxis.Vec4(0), mgl64.Vec4{0, 0, 0, 1})
	return mgl64.Mat4ToQuat(m).Normalize()
}

// Near reports whether two points are within an absolute distance of each other
func Near(a, b mgl64.Vec3, tolerance float64) bool {
	return a.Sub(b).Len() <= tolerance
}
