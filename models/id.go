package models

import "sync"

// ObjectID identifies an object within an ObjectManager. Zero is never
// assigned.
type ObjectID uint32

// A sequential id generator. Ids are never handed out twice so a stale id
// cannot resolve to a newer object.
type SequentialIDGenerator struct {
	mutex     sync.Mutex
	currentID ObjectID
}

// New returns a sequental id.
func (g *SequentialIDGenerator) New() ObjectID {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	g.currentID++
	return g.currentID
}

// Current returns the last id handed out.
func (g *SequentialIDGenerator) Current() ObjectID {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	return g.currentID
}
