package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const epsilon = 1e-3

func TestEqualWithEpsilon(t *testing.T) {
	require.True(t, EqualWithEpsilon(0.1, 0.2, 0.11))
	require.False(t, EqualWithEpsilon(0.1, 0.3, 0.11))
}

func TestVector(t *testing.T) {
	a := NewVector(1, 2, 3)
	b := NewVector(4, 5, 6)

	require.Equal(t, NewVector(5, 7, 9), a.Add(b))
	require.Equal(t, NewVector(3, 3, 3), b.Sub(a))
	require.Equal(t, NewVector(2, 4, 6), a.Mul(2))
	require.Equal(t, float32(32), a.Dot(b))
	require.Equal(t, NewVector(0, 0, 1), NewVector(1, 0, 0).Cross(NewVector(0, 1, 0)))
	require.Equal(t, float32(5), NewVector(3, 4, 0).Length())
	require.Equal(t, Vector{}, Vector{}.Normalized())
	require.True(t, NewVector(0, 0, 10).Normalized().EqualWithEpsilon(NewVector(0, 0, 1), epsilon))
}

func TestNormalizeUnrealRotation(t *testing.T) {
	tests := []struct {
		in  int32
		out int32
	}{
		{in: 0, out: 0},
		{in: 32767, out: 32767},
		{in: 32768, out: -32768},
		{in: 32777, out: -32759},
		{in: 65536, out: 0},
		{in: -65536, out: 0},
		{in: -1, out: -1},
		{in: -32769, out: 32767},
		{in: 70000, out: 4464},
	}

	for _, test := range tests {
		require.Equal(t, test.out, NormalizeUnrealRotation(test.in), "input %d", test.in)
	}
}

func TestRotatorAddDegrees(t *testing.T) {
	t.Run("full turn is identity", func(t *testing.T) {
		r := NewRotator(1000, -2000, 3000)
		require.Equal(t, r, r.AddDegrees(360, 360, 360))
		require.Equal(t, r, r.AddDegrees(-360, -360, -360))
	})

	t.Run("result stays in range", func(t *testing.T) {
		r := NewRotator(32000, 0, 0).AddDegrees(90, 0, 0)
		require.GreaterOrEqual(t, r.Pitch, int32(-32768))
		require.LessOrEqual(t, r.Pitch, int32(32767))
		require.Less(t, r.Pitch, int32(0))
	})

	t.Run("truncates toward zero", func(t *testing.T) {
		require.Equal(t, int32(182), DegreesToUnits(1))
		require.Equal(t, int32(-182), DegreesToUnits(-1))
	})
}

func TestRotatorBasis(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		r := Rotator{}
		require.True(t, r.Forward().EqualWithEpsilon(NewVector(1, 0, 0), epsilon))
		require.True(t, r.Right().EqualWithEpsilon(NewVector(0, 1, 0), epsilon))
		require.True(t, r.Up().EqualWithEpsilon(NewVector(0, 0, 1), epsilon))
	})

	t.Run("yaw turns forward toward right", func(t *testing.T) {
		r := NewRotator(0, 16384, 0)
		require.True(t, r.Forward().EqualWithEpsilon(NewVector(0, 1, 0), epsilon))
	})

	t.Run("pitch turns forward up", func(t *testing.T) {
		r := NewRotator(16384, 0, 0)
		require.True(t, r.Forward().EqualWithEpsilon(NewVector(0, 0, 1), epsilon))
	})

	t.Run("roll keeps forward", func(t *testing.T) {
		r := NewRotator(0, 0, 16384)
		require.True(t, r.Forward().EqualWithEpsilon(NewVector(1, 0, 0), epsilon))
	})

	t.Run("inverse rotation", func(t *testing.T) {
		q := NewRotator(1234, -5678, 910).Quat()
		v := NewVector(10, -20, 30)
		require.True(t, InverseRotateVector(RotateVector(v, q), q).EqualWithEpsilon(v, epsilon))
	})
}

func TestBoxIsInBox(t *testing.T) {
	box := NewBox(NewVector(100, 0, 0), Rotator{}, NewVector(200, 100, 50))

	require.True(t, box.IsInBox(NewVector(100, 0, 0)))
	require.True(t, box.IsInBox(NewVector(199, 49, 24)))
	require.True(t, box.IsInBox(NewVector(200, 0, 0)))
	require.False(t, box.IsInBox(NewVector(201, 0, 0)))
	require.False(t, box.IsInBox(NewVector(100, 51, 0)))

	rotated := NewBox(Vector{}, NewRotator(0, 16384, 0), NewVector(200, 20, 20))
	require.True(t, rotated.IsInBox(NewVector(0, 90, 0)))
	require.False(t, rotated.IsInBox(NewVector(90, 0, 0)))
}

func TestBoxRayIntersects(t *testing.T) {
	box := NewBox(Vector{}, Rotator{}, NewVector(200, 200, 200))

	t.Run("hit from outside", func(t *testing.T) {
		d, ok := box.RayIntersects(NewVector(-1000, 0, 0), NewVector(1, 0, 0), 5000)
		require.True(t, ok)
		require.InDelta(t, 900, d, epsilon)
	})

	t.Run("unnormalized direction", func(t *testing.T) {
		d, ok := box.RayIntersects(NewVector(-1000, 0, 0), NewVector(10, 0, 0), 5000)
		require.True(t, ok)
		require.InDelta(t, 900, d, epsilon)
	})

	t.Run("start inside reports exit", func(t *testing.T) {
		d, ok := box.RayIntersects(Vector{}, NewVector(1, 0, 0), 5000)
		require.True(t, ok)
		require.InDelta(t, 100, d, epsilon)
	})

	t.Run("too far", func(t *testing.T) {
		_, ok := box.RayIntersects(NewVector(-1000, 0, 0), NewVector(1, 0, 0), 500)
		require.False(t, ok)
	})

	t.Run("behind", func(t *testing.T) {
		_, ok := box.RayIntersects(NewVector(-1000, 0, 0), NewVector(-1, 0, 0), 5000)
		require.False(t, ok)
	})

	t.Run("parallel and outside", func(t *testing.T) {
		_, ok := box.RayIntersects(NewVector(-1000, 150, 0), NewVector(1, 0, 0), 5000)
		require.False(t, ok)
	})

	t.Run("rotated box", func(t *testing.T) {
		thin := NewBox(Vector{}, NewRotator(0, 16384, 0), NewVector(200, 20, 20))

		d, ok := thin.RayIntersects(NewVector(0, -1000, 0), NewVector(0, 1, 0), 5000)
		require.True(t, ok)
		require.InDelta(t, 900, d, epsilon)

		_, ok = thin.RayIntersects(NewVector(50, -1000, 0), NewVector(0, 1, 0), 5000)
		require.False(t, ok)
	})
}

func TestBoxCorners(t *testing.T) {
	box := NewBox(NewVector(10, 0, 0), Rotator{}, NewVector(2, 2, 2))
	corners := box.Corners()

	require.True(t, corners[0].EqualWithEpsilon(NewVector(9, -1, -1), epsilon))
	require.True(t, corners[6].EqualWithEpsilon(NewVector(11, 1, 1), epsilon))
}

func TestCylinderIsInCylinder(t *testing.T) {
	c := NewCylinder(Vector{}, Rotator{}, 50, 100)

	require.True(t, c.IsInCylinder(Vector{}))
	require.True(t, c.IsInCylinder(NewVector(30, 40, 50)))
	require.False(t, c.IsInCylinder(NewVector(30, 41, 0)))
	require.False(t, c.IsInCylinder(NewVector(0, 0, 51)))

	lying := NewCylinder(Vector{}, NewRotator(16384, 0, 0), 50, 100)
	require.True(t, lying.IsInCylinder(NewVector(45, 0, 0)))
	require.False(t, lying.IsInCylinder(NewVector(0, 0, 51)))
}

func TestCylinderRayIntersects(t *testing.T) {
	c := NewCylinder(Vector{}, Rotator{}, 50, 100)

	t.Run("lateral hit", func(t *testing.T) {
		d, ok := c.RayIntersects(NewVector(-500, 0, 0), NewVector(1, 0, 0), 5000)
		require.True(t, ok)
		require.InDelta(t, 450, d, epsilon)
	})

	t.Run("cap hit along axis", func(t *testing.T) {
		d, ok := c.RayIntersects(NewVector(0, 0, 500), NewVector(0, 0, -1), 5000)
		require.True(t, ok)
		require.InDelta(t, 450, d, epsilon)
	})

	t.Run("start inside", func(t *testing.T) {
		d, ok := c.RayIntersects(Vector{}, NewVector(0, 1, 0), 5000)
		require.True(t, ok)
		require.InDelta(t, 50, d, epsilon)
	})

	t.Run("miss above", func(t *testing.T) {
		_, ok := c.RayIntersects(NewVector(-500, 0, 60), NewVector(1, 0, 0), 5000)
		require.False(t, ok)
	})

	t.Run("out of range", func(t *testing.T) {
		_, ok := c.RayIntersects(NewVector(-500, 0, 0), NewVector(1, 0, 0), 100)
		require.False(t, ok)
	})
}

func TestCylinderCircles(t *testing.T) {
	c := NewCylinder(Vector{}, Rotator{}, 10, 20)
	bottom, top := c.Circles(8)

	require.Len(t, bottom, 8)
	require.Len(t, top, 8)
	require.True(t, bottom[0].EqualWithEpsilon(NewVector(10, 0, -10), epsilon))
	require.True(t, top[0].EqualWithEpsilon(NewVector(10, 0, 10), epsilon))
}
