// Package render draws the wireframe overlay of level objects and the HUD
// text on the game canvas.
package render

import (
	"github.com/aukilabs/ringsmapeditor/geometry"
	"github.com/aukilabs/ringsmapeditor/host"
	"github.com/aukilabs/ringsmapeditor/models"
	"github.com/chewxy/math32"
)

type Color [4]uint8

var (
	White  = Color{255, 255, 255, 255}
	Green  = Color{0, 255, 0, 255}
	Red    = Color{255, 0, 0, 255}
	Yellow = Color{255, 255, 0, 255}
)

const cylinderSegments = 24

var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Renderer draws world-space shapes clipped to the camera view.
type Renderer struct {
	Canvas  host.Canvas
	Frustum Frustum
}

func New(canvas host.Canvas, cam host.Camera) Renderer {
	return Renderer{
		Canvas:  canvas,
		Frustum: NewFrustum(cam, canvas.Size(), DefaultFOV),
	}
}

func (r Renderer) setColor(c Color) {
	r.Canvas.SetColor(c[0], c[1], c[2], c[3])
}

// Line draws the visible part of a world-space segment.
func (r Renderer) Line(a, b geometry.Vector) {
	a, b, ok := r.Frustum.ClipLine(a, b)
	if !ok {
		return
	}
	r.Canvas.DrawLine(r.Canvas.Project(a), r.Canvas.Project(b))
}

func (r Renderer) Box(b geometry.Box, c Color) {
	r.setColor(c)
	corners := b.Corners()
	for _, e := range boxEdges {
		r.Line(corners[e[0]], corners[e[1]])
	}
}

func (r Renderer) Cylinder(cyl geometry.Cylinder, c Color) {
	r.setColor(c)
	bottom, top := cyl.Circles(cylinderSegments)
	n := len(bottom)
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		r.Line(bottom[i], bottom[next])
		r.Line(top[i], top[next])
		if i%(n/4) == 0 {
			r.Line(bottom[i], top[i])
		}
	}
}

// Cone draws a cone with its apex at tip, opening backward along dir.
func (r Renderer) Cone(tip, dir geometry.Vector, radius, height float32, c Color) {
	if !r.Frustum.Contains(tip) {
		return
	}

	r.setColor(c)
	dir = dir.Normalized()
	base := tip.Sub(dir.Mul(height))

	side := dir.Cross(geometry.NewVector(0, 0, 1))
	if side.Length() < 1e-3 {
		side = dir.Cross(geometry.NewVector(0, 1, 0))
	}
	side = side.Normalized()
	other := dir.Cross(side).Normalized()

	const segments = 12
	prev := base.Add(side.Mul(radius))
	for i := 1; i <= segments; i++ {
		angle := float32(i) / segments
		p := base.Add(rim(side, other, radius, angle))
		r.Line(prev, p)
		r.Line(p, tip)
		prev = p
	}
}

func rim(side, other geometry.Vector, radius, fraction float32) geometry.Vector {
	s, c := math32.Sincos(2 * math32.Pi * fraction)
	return side.Mul(c * radius).Add(other.Mul(s * radius))
}

func (r Renderer) TriggerVolume(v *models.TriggerVolume, c Color) {
	switch g := v.Geometry.(type) {
	case *models.BoxGeometry:
		r.Box(geometry.NewBox(v.Location, v.Rotation, g.Size), c)
	case *models.CylinderGeometry:
		r.Cylinder(geometry.NewCylinder(v.Location, v.Rotation, g.Radius, g.Height), c)
	}
}

// Checkpoint draws the checkpoint volume and a green cone on its spawn point
// pointing along the spawn rotation.
func (r Renderer) Checkpoint(cp *models.Checkpoint, c Color) {
	r.TriggerVolume(cp.Volume, c)
	r.Cone(cp.SpawnWorldLocation(), cp.SpawnRotation.Forward(), 10, 40, Green)
}

func (r Renderer) Ring(ring *models.Ring, c Color) {
	r.TriggerVolume(ring.In, c)
	r.TriggerVolume(ring.Out, c)
}

// Object draws the overlay of any object. Meshes are drawn by the game.
func (r Renderer) Object(o models.Object, c Color) {
	switch o := o.(type) {
	case *models.TriggerVolume:
		r.TriggerVolume(o, c)
	case *models.Checkpoint:
		r.Checkpoint(o, c)
	case *models.Ring:
		r.Ring(o, c)
	}
}

func (r Renderer) Objects(objects []models.Object) {
	for _, o := range objects {
		r.Object(o, White)
	}
}

// Crosshair draws a small red square at the center of the canvas.
func Crosshair(canvas host.Canvas) {
	const size = 10

	s := canvas.Size()
	canvas.SetColor(Red[0], Red[1], Red[2], Red[3])
	canvas.SetPosition(geometry.Vector2{X: s.X/2 - size/2, Y: s.Y/2 - size/2})
	canvas.DrawBox(geometry.Vector2{X: size, Y: size})
}

// TextPanel writes lines of text from the top left of the canvas.
type TextPanel struct {
	canvas   host.Canvas
	position geometry.Vector2
	scale    float32
	padding  float32
}

func NewTextPanel(canvas host.Canvas) *TextPanel {
	return &TextPanel{
		canvas:   canvas,
		position: geometry.Vector2{X: 20, Y: 80},
		scale:    2,
		padding:  30,
	}
}

func (p *TextPanel) Line(text string, c Color) {
	p.canvas.SetColor(c[0], c[1], c[2], c[3])
	p.canvas.SetPosition(p.position)
	p.canvas.DrawString(text, p.scale, p.scale)
	p.position.Y += p.padding
}

// Skip leaves an empty line.
func (p *TextPanel) Skip() {
	p.position.Y += p.padding
}
