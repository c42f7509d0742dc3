package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func EqualWithEpsilon(a float32, b float32, epsilon float32) bool {
	return math32.Abs(a-b) <= epsilon
}

// Vector is a position or direction in world space. X points forward, Y right
// and Z up.
type Vector struct {
	X float32 `json:"X"`
	Y float32 `json:"Y"`
	Z float32 `json:"Z"`
}

func NewVector(x, y, z float32) Vector {
	return Vector{X: x, Y: y, Z: z}
}

func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vector) Mul(s float32) Vector {
	return Vector{v.X * s, v.Y * s, v.Z * s}
}

func (v Vector) Dot(o Vector) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector) Cross(o Vector) Vector {
	return fromVec3(v.vec3().Cross(o.vec3()))
}

func (v Vector) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalized returns the unit vector of v, or the zero vector when v has no
// length.
func (v Vector) Normalized() Vector {
	l := v.Length()
	if l == 0 {
		return Vector{}
	}
	return v.Mul(1 / l)
}

func (v Vector) Distance(o Vector) float32 {
	return v.Sub(o).Length()
}

func (v Vector) EqualWithEpsilon(o Vector, epsilon float32) bool {
	return EqualWithEpsilon(v.X, o.X, epsilon) &&
		EqualWithEpsilon(v.Y, o.Y, epsilon) &&
		EqualWithEpsilon(v.Z, o.Z, epsilon)
}

func (v Vector) vec3() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func fromVec3(v mgl32.Vec3) Vector {
	return Vector{v[0], v[1], v[2]}
}

// Vector2 is a position on the canvas, in pixels.
type Vector2 struct {
	X float32
	Y float32
}
