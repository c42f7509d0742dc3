package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Cylinder is an oriented cylinder centered on Location with its axis along
// the local Z axis.
type Cylinder struct {
	Location    Vector
	Orientation mgl32.Quat
	Radius      float32
	Height      float32
}

func NewCylinder(location Vector, rotation Rotator, radius, height float32) Cylinder {
	return Cylinder{
		Location:    location,
		Orientation: rotation.Quat(),
		Radius:      radius,
		Height:      height,
	}
}

// IsInCylinder reports whether p lies inside the cylinder, surface included.
func (c Cylinder) IsInCylinder(p Vector) bool {
	local := InverseRotateVector(p.Sub(c.Location), c.Orientation)

	return local.X*local.X+local.Y*local.Y <= c.Radius*c.Radius &&
		math32.Abs(local.Z) <= c.Height*0.5
}

// RayIntersects returns the smallest positive distance at which the ray hits
// the lateral surface or one of the caps, within maxDist.
func (c Cylinder) RayIntersects(origin, dir Vector, maxDist float32) (float32, bool) {
	q := c.Orientation.Normalize()
	o := InverseRotateVector(origin.Sub(c.Location), q)
	d := InverseRotateVector(dir, q).Normalized()

	halfHeight := c.Height * 0.5
	radiusSqr := c.Radius * c.Radius
	closest := float32(math32.MaxFloat32)
	hit := false

	consider := func(t float32) {
		if t > 0 && t <= maxDist && t < closest {
			closest = t
			hit = true
		}
	}

	a := d.X*d.X + d.Y*d.Y
	b := 2 * (o.X*d.X + o.Y*d.Y)
	cc := o.X*o.X + o.Y*o.Y - radiusSqr

	if math32.Abs(a) > parallelEpsilon {
		if disc := b*b - 4*a*cc; disc >= 0 {
			sqrtDisc := math32.Sqrt(disc)
			for _, t := range [2]float32{(-b - sqrtDisc) / (2 * a), (-b + sqrtDisc) / (2 * a)} {
				if z := o.Z + t*d.Z; z >= -halfHeight && z <= halfHeight {
					consider(t)
				}
			}
		}
	}

	if math32.Abs(d.Z) > parallelEpsilon {
		for _, capZ := range [2]float32{-halfHeight, halfHeight} {
			t := (capZ - o.Z) / d.Z
			x := o.X + t*d.X
			y := o.Y + t*d.Y
			if x*x+y*y <= radiusSqr {
				consider(t)
			}
		}
	}

	return closest, hit
}

// Circles returns the bottom and top rims of the cylinder in world space,
// each sampled with the given number of segments.
func (c Cylinder) Circles(segments int) (bottom, top []Vector) {
	if segments < 3 {
		segments = 3
	}

	bottom = make([]Vector, segments)
	top = make([]Vector, segments)
	halfHeight := c.Height * 0.5

	for i := 0; i < segments; i++ {
		angle := 2 * math32.Pi * float32(i) / float32(segments)
		s, co := math32.Sincos(angle)
		x, y := co*c.Radius, s*c.Radius

		bottom[i] = c.Location.Add(RotateVector(Vector{x, y, -halfHeight}, c.Orientation))
		top[i] = c.Location.Add(RotateVector(Vector{x, y, halfHeight}, c.Orientation))
	}
	return bottom, top
}
