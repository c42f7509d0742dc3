package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const parallelEpsilon = 1e-6

// Box is an oriented box centered on Location. Size is the full extent along
// each local axis.
type Box struct {
	Location    Vector
	Orientation mgl32.Quat
	Size        Vector
}

func NewBox(location Vector, rotation Rotator, size Vector) Box {
	return Box{
		Location:    location,
		Orientation: rotation.Quat(),
		Size:        size,
	}
}

// IsInBox reports whether p lies inside the box, faces included.
func (b Box) IsInBox(p Vector) bool {
	local := InverseRotateVector(p.Sub(b.Location), b.Orientation)
	half := b.Size.Mul(0.5)

	return math32.Abs(local.X) <= half.X &&
		math32.Abs(local.Y) <= half.Y &&
		math32.Abs(local.Z) <= half.Z
}

// RayIntersects returns the distance along dir at which the ray starting at
// origin enters the box. A ray starting inside reports its exit distance.
func (b Box) RayIntersects(origin, dir Vector, maxDist float32) (float32, bool) {
	q := b.Orientation.Normalize()
	localOrigin := InverseRotateVector(origin.Sub(b.Location), q)
	localDir := InverseRotateVector(dir, q).Normalized()
	half := b.Size.Mul(0.5)

	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	slabs := [3][3]float32{
		{localOrigin.X, localDir.X, half.X},
		{localOrigin.Y, localDir.Y, half.Y},
		{localOrigin.Z, localDir.Z, half.Z},
	}

	for _, s := range slabs {
		o, d, h := s[0], s[1], s[2]

		if math32.Abs(d) < parallelEpsilon {
			if o < -h || o > h {
				return 0, false
			}
			continue
		}

		t1 := (-h - o) / d
		t2 := (h - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
	}

	if tmax < tmin || tmin > maxDist || tmax < 0 {
		return 0, false
	}

	if tmin >= 0 {
		return tmin, true
	}
	return tmax, true
}

// Corners returns the eight corners of the box in world space. The first
// four are the bottom face, the last four the top face, in matching order.
func (b Box) Corners() [8]Vector {
	half := b.Size.Mul(0.5)
	local := [8]Vector{
		{-half.X, -half.Y, -half.Z},
		{half.X, -half.Y, -half.Z},
		{half.X, half.Y, -half.Z},
		{-half.X, half.Y, -half.Z},
		{-half.X, -half.Y, half.Z},
		{half.X, -half.Y, half.Z},
		{half.X, half.Y, half.Z},
		{-half.X, half.Y, half.Z},
	}

	var corners [8]Vector
	for i, c := range local {
		corners[i] = b.Location.Add(RotateVector(c, b.Orientation))
	}
	return corners
}
