package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// UnitsPerTurn is the number of rotator units in a full turn.
	UnitsPerTurn = 65536

	// UnitsPerDegree converts degrees into rotator units.
	UnitsPerDegree float32 = 182.044449
)

// Rotator is an orientation expressed in the engine's fixed-point angular
// unit. Yaw turns about +Z, pitch about +Y and roll about +X.
type Rotator struct {
	Pitch int32 `json:"Pitch"`
	Yaw   int32 `json:"Yaw"`
	Roll  int32 `json:"Roll"`
}

func NewRotator(pitch, yaw, roll int32) Rotator {
	return Rotator{Pitch: pitch, Yaw: yaw, Roll: roll}
}

// NormalizeUnrealRotation wraps a rotation into [0, 65536) and then shifts
// it into [-32768, 32767].
func NormalizeUnrealRotation(r int32) int32 {
	n := int64(r) % UnitsPerTurn
	if n < 0 {
		n += UnitsPerTurn
	}
	if n > 32767 {
		n -= UnitsPerTurn
	}
	return int32(n)
}

// DegreesToUnits converts degrees into rotator units, truncating toward zero.
func DegreesToUnits(deg float32) int32 {
	return int32(deg * UnitsPerDegree)
}

func UnitsToDegrees(units int32) float32 {
	return float32(units) * 360 / UnitsPerTurn
}

// Add adds each component without wrapping.
func (r Rotator) Add(o Rotator) Rotator {
	return Rotator{r.Pitch + o.Pitch, r.Yaw + o.Yaw, r.Roll + o.Roll}
}

// AddDegrees adds the given angles in degrees and normalizes each resulting
// component.
func (r Rotator) AddDegrees(pitch, yaw, roll float32) Rotator {
	return Rotator{
		Pitch: NormalizeUnrealRotation(r.Pitch + DegreesToUnits(pitch)),
		Yaw:   NormalizeUnrealRotation(r.Yaw + DegreesToUnits(yaw)),
		Roll:  NormalizeUnrealRotation(r.Roll + DegreesToUnits(roll)),
	}
}

func (r Rotator) Normalized() Rotator {
	return Rotator{
		Pitch: NormalizeUnrealRotation(r.Pitch),
		Yaw:   NormalizeUnrealRotation(r.Yaw),
		Roll:  NormalizeUnrealRotation(r.Roll),
	}
}

// Quat returns the unit quaternion of the rotator.
func (r Rotator) Quat() mgl32.Quat {
	const halfRadiansPerUnit = math32.Pi / UnitsPerTurn

	sp, cp := math32.Sincos(float32(r.Pitch) * halfRadiansPerUnit)
	sy, cy := math32.Sincos(float32(r.Yaw) * halfRadiansPerUnit)
	sr, cr := math32.Sincos(float32(r.Roll) * halfRadiansPerUnit)

	return mgl32.Quat{
		W: cr*cp*cy + sr*sp*sy,
		V: mgl32.Vec3{
			cr*sp*sy - sr*cp*cy,
			-cr*sp*cy - sr*cp*sy,
			cr*cp*sy - sr*sp*cy,
		},
	}
}

// Rotate rotates v by the rotator.
func (r Rotator) Rotate(v Vector) Vector {
	return RotateVector(v, r.Quat())
}

func (r Rotator) Forward() Vector {
	return r.Rotate(Vector{X: 1})
}

func (r Rotator) Right() Vector {
	return r.Rotate(Vector{Y: 1})
}

func (r Rotator) Up() Vector {
	return r.Rotate(Vector{Z: 1})
}

// RotateVector rotates v by q.
func RotateVector(v Vector, q mgl32.Quat) Vector {
	return fromVec3(q.Rotate(v.vec3()))
}

// InverseRotateVector rotates v by the conjugate of q, moving a world-space
// direction into the local frame of q.
func InverseRotateVector(v Vector, q mgl32.Quat) Vector {
	return fromVec3(q.Conjugate().Rotate(v.vec3()))
}
