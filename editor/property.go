package editor

import (
	"fmt"

	"github.com/aukilabs/ringsmapeditor/geometry"
	"github.com/aukilabs/ringsmapeditor/models"
)

// PropertyKind is an attribute adjustable with the shoulder buttons.
type PropertyKind uint8

const (
	PropertyRotationPitch PropertyKind = iota
	PropertyRotationYaw
	PropertyRotationRoll
	PropertyMeshScale
	PropertyBoxSizeX
	PropertyBoxSizeY
	PropertyBoxSizeZ
	PropertyCylinderRadius
	PropertyCylinderHeight
)

func (k PropertyKind) String() string {
	switch k {
	case PropertyRotationPitch:
		return "Rotation Pitch"
	case PropertyRotationYaw:
		return "Rotation Yaw"
	case PropertyRotationRoll:
		return "Rotation Roll"
	case PropertyMeshScale:
		return "Scale"
	case PropertyBoxSizeX:
		return "Size X"
	case PropertyBoxSizeY:
		return "Size Y"
	case PropertyBoxSizeZ:
		return "Size Z"
	case PropertyCylinderRadius:
		return "Radius"
	case PropertyCylinderHeight:
		return "Height"
	default:
		return fmt.Sprintf("PropertyKind(%d)", uint8(k))
	}
}

// CatalogKind selects the list of properties offered for an object kind.
type CatalogKind uint8

const (
	CatalogObject CatalogKind = iota
	CatalogMesh
	CatalogBox
	CatalogCylinder
	CatalogCheckpoint
	CatalogRing
)

var rotationProperties = []PropertyKind{
	PropertyRotationPitch,
	PropertyRotationYaw,
	PropertyRotationRoll,
}

var catalogs = map[CatalogKind][]PropertyKind{
	CatalogObject:     rotationProperties,
	CatalogMesh:       append(rotationProperties[:3:3], PropertyMeshScale),
	CatalogBox:        append(rotationProperties[:3:3], PropertyBoxSizeX, PropertyBoxSizeY, PropertyBoxSizeZ),
	CatalogCylinder:   append(rotationProperties[:3:3], PropertyCylinderRadius, PropertyCylinderHeight),
	CatalogCheckpoint: rotationProperties,
	CatalogRing:       rotationProperties,
}

// Catalog returns the properties of the given catalog in cycling order.
func Catalog(k CatalogKind) []PropertyKind {
	return catalogs[k]
}

// CatalogFor returns the catalog matching the kind of o.
func CatalogFor(o models.Object) CatalogKind {
	switch o := o.(type) {
	case *models.Mesh:
		return CatalogMesh
	case *models.TriggerVolume:
		if o.VolumeType() == models.TriggerVolumeTypeCylinder {
			return CatalogCylinder
		}
		return CatalogBox
	case *models.Checkpoint:
		return CatalogCheckpoint
	case *models.Ring:
		return CatalogRing
	default:
		return CatalogObject
	}
}

// Rates are the per-second change applied while a shoulder button is held.
type Rates struct {
	RotationDegrees float32
	Scale           float32
	Size            float32
	Radius          float32
	Height          float32
}

func DefaultRates() Rates {
	return Rates{
		RotationDegrees: 90,
		Scale:           0.5,
		Size:            500,
		Radius:          500,
		Height:          500,
	}
}

const (
	minScale     = 0.01
	minDimension = 1
)

// PropertyCursor points at the property being edited. The index goes back
// to the first property whenever the catalog changes.
type PropertyCursor struct {
	catalog CatalogKind
	index   int
}

func (c *PropertyCursor) SetCatalog(k CatalogKind) {
	if c.catalog == k {
		return
	}
	c.catalog = k
	c.index = 0
}

func (c *PropertyCursor) Catalog() CatalogKind {
	return c.catalog
}

// Current returns the property being edited.
func (c *PropertyCursor) Current() PropertyKind {
	props := catalogs[c.catalog]
	if c.index >= len(props) {
		c.index = 0
	}
	return props[c.index]
}

// Cycle moves to the next property, wrapping to the first.
func (c *PropertyCursor) Cycle() PropertyKind {
	c.index = (c.index + 1) % len(catalogs[c.catalog])
	return c.Current()
}

// target is what an editing property mutates: an object and the rotation
// the mode applies to it every tick.
type target struct {
	object   models.Object
	rotation *geometry.Rotator
}

// apply changes the property by sign times its rate over dt seconds.
func (t target) apply(k PropertyKind, rates Rates, sign, dt float32) {
	rot := sign * rates.RotationDegrees * dt

	switch k {
	case PropertyRotationPitch:
		*t.rotation = t.rotation.AddDegrees(rot, 0, 0)
	case PropertyRotationYaw:
		*t.rotation = t.rotation.AddDegrees(0, rot, 0)
	case PropertyRotationRoll:
		*t.rotation = t.rotation.AddDegrees(0, 0, rot)

	case PropertyMeshScale:
		if m, ok := t.object.(*models.Mesh); ok {
			m.SetScale(max(m.Scale+sign*rates.Scale*dt, minScale))
		}

	case PropertyBoxSizeX, PropertyBoxSizeY, PropertyBoxSizeZ:
		if g, ok := boxGeometry(t.object); ok {
			delta := sign * rates.Size * dt
			switch k {
			case PropertyBoxSizeX:
				g.Size.X = max(g.Size.X+delta, minDimension)
			case PropertyBoxSizeY:
				g.Size.Y = max(g.Size.Y+delta, minDimension)
			default:
				g.Size.Z = max(g.Size.Z+delta, minDimension)
			}
		}

	case PropertyCylinderRadius:
		if g, ok := cylinderGeometry(t.object); ok {
			g.Radius = max(g.Radius+sign*rates.Radius*dt, minDimension)
		}
	case PropertyCylinderHeight:
		if g, ok := cylinderGeometry(t.object); ok {
			g.Height = max(g.Height+sign*rates.Height*dt, minDimension)
		}
	}
}

// reset sets the property back to its default.
func (t target) reset(k PropertyKind) {
	switch k {
	case PropertyRotationPitch:
		t.rotation.Pitch = 0
	case PropertyRotationYaw:
		t.rotation.Yaw = 0
	case PropertyRotationRoll:
		t.rotation.Roll = 0

	case PropertyMeshScale:
		if m, ok := t.object.(*models.Mesh); ok {
			m.SetScale(1)
		}

	case PropertyBoxSizeX:
		if g, ok := boxGeometry(t.object); ok {
			g.Size.X = models.DefaultBoxSize
		}
	case PropertyBoxSizeY:
		if g, ok := boxGeometry(t.object); ok {
			g.Size.Y = models.DefaultBoxSize
		}
	case PropertyBoxSizeZ:
		if g, ok := boxGeometry(t.object); ok {
			g.Size.Z = models.DefaultBoxSize
		}

	case PropertyCylinderRadius:
		if g, ok := cylinderGeometry(t.object); ok {
			g.Radius = models.DefaultCylinderRadius
		}
	case PropertyCylinderHeight:
		if g, ok := cylinderGeometry(t.object); ok {
			g.Height = models.DefaultCylinderHeight
		}
	}
}

func boxGeometry(o models.Object) (*models.BoxGeometry, bool) {
	v, ok := o.(*models.TriggerVolume)
	if !ok {
		return nil, false
	}
	g, ok := v.Geometry.(*models.BoxGeometry)
	return g, ok
}

func cylinderGeometry(o models.Object) (*models.CylinderGeometry, bool) {
	v, ok := o.(*models.TriggerVolume)
	if !ok {
		return nil, false
	}
	g, ok := v.Geometry.(*models.CylinderGeometry)
	return g, ok
}
