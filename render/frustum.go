package render

import (
	"github.com/aukilabs/ringsmapeditor/geometry"
	"github.com/aukilabs/ringsmapeditor/host"
	"github.com/chewxy/math32"
)

const (
	DefaultFOV      = 90
	nearPlaneOffset = 1
)

type plane struct {
	normal geometry.Vector
	d      float32
}

func (p plane) distance(v geometry.Vector) float32 {
	return p.normal.Dot(v) - p.d
}

func newPlane(normal, point geometry.Vector) plane {
	n := normal.Normalized()
	return plane{normal: n, d: n.Dot(point)}
}

// Frustum is the camera view volume: a near plane and four side planes.
// Normals point inward.
type Frustum struct {
	planes [5]plane
}

// NewFrustum builds the view frustum of the camera for a canvas of the given
// size. fov is the horizontal field of view in degrees.
func NewFrustum(cam host.Camera, canvasSize geometry.Vector2, fov float32) Frustum {
	loc := cam.Location()
	rot := cam.Rotation()
	forward, right, up := rot.Forward(), rot.Right(), rot.Up()

	aspect := float32(1)
	if canvasSize.Y > 0 {
		aspect = canvasSize.X / canvasSize.Y
	}
	tanH := math32.Tan(fov * math32.Pi / 360)
	tanV := tanH / aspect

	return Frustum{
		planes: [5]plane{
			newPlane(forward, loc.Add(forward.Mul(nearPlaneOffset))),
			newPlane(forward.Mul(tanH).Add(right), loc),
			newPlane(forward.Mul(tanH).Sub(right), loc),
			newPlane(forward.Mul(tanV).Add(up), loc),
			newPlane(forward.Mul(tanV).Sub(up), loc),
		},
	}
}

// Contains reports whether p is in view.
func (f Frustum) Contains(p geometry.Vector) bool {
	for _, pl := range f.planes {
		if pl.distance(p) < 0 {
			return false
		}
	}
	return true
}

// ClipLine clips the segment from a to b to the frustum. It returns false
// when nothing of the segment is in view.
func (f Frustum) ClipLine(a, b geometry.Vector) (geometry.Vector, geometry.Vector, bool) {
	t0, t1 := float32(0), float32(1)

	for _, pl := range f.planes {
		da, db := pl.distance(a), pl.distance(b)

		switch {
		case da < 0 && db < 0:
			return a, b, false
		case da < 0:
			t0 = math32.Max(t0, da/(da-db))
		case db < 0:
			t1 = math32.Min(t1, da/(da-db))
		}

		if t0 > t1 {
			return a, b, false
		}
	}

	dir := b.Sub(a)
	return a.Add(dir.Mul(t0)), a.Add(dir.Mul(t1)), true
}
