package simhost

import (
	"github.com/aukilabs/ringsmapeditor/geometry"
)

// Line is a line drawn on a Canvas.
type Line struct {
	From geometry.Vector2
	To   geometry.Vector2
}

// Canvas records what is drawn on it. Projection is a pinhole camera with a
// 90 degree horizontal field of view looking through Camera.
type Canvas struct {
	Width  float32
	Height float32
	Camera *Camera

	Strings []string
	Lines   []Line
	Boxes   []geometry.Vector2

	position geometry.Vector2
	color    [4]uint8
}

// NewCanvas returns a 1920x1080 canvas projecting through the host camera.
func NewCanvas(h *Host) *Canvas {
	return &Canvas{
		Width:  1920,
		Height: 1080,
		Camera: h.Cam,
	}
}

func (c *Canvas) Size() geometry.Vector2 {
	return geometry.Vector2{X: c.Width, Y: c.Height}
}

func (c *Canvas) SetColor(r, g, b, a uint8) {
	c.color = [4]uint8{r, g, b, a}
}

// Color returns the last color set.
func (c *Canvas) Color() [4]uint8 {
	return c.color
}

func (c *Canvas) SetPosition(p geometry.Vector2) {
	c.position = p
}

func (c *Canvas) DrawString(text string, scaleX, scaleY float32) {
	c.Strings = append(c.Strings, text)
}

func (c *Canvas) DrawBox(size geometry.Vector2) {
	c.Boxes = append(c.Boxes, size)
}

func (c *Canvas) DrawLine(from, to geometry.Vector2) {
	c.Lines = append(c.Lines, Line{From: from, To: to})
}

func (c *Canvas) Project(p geometry.Vector) geometry.Vector2 {
	center := geometry.Vector2{X: c.Width / 2, Y: c.Height / 2}
	if c.Camera == nil {
		return center
	}

	local := geometry.InverseRotateVector(p.Sub(c.Camera.Loc), c.Camera.Rot.Quat())
	if local.X <= 0 {
		return geometry.Vector2{X: -1, Y: -1}
	}

	focal := c.Width / 2
	return geometry.Vector2{
		X: center.X + local.Y/local.X*focal,
		Y: center.Y - local.Z/local.X*focal,
	}
}

// Reset clears what was recorded.
func (c *Canvas) Reset() {
	c.Strings = nil
	c.Lines = nil
	c.Boxes = nil
}
