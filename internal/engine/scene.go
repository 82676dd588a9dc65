package engine

type Scene struct {
	Name     string
	Entities []*Entity
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:     name,
		Entities: make([]*Entity, 0),
	}
}

func (s *Scene) AddEntity(e *Entity) {
	s.Entities = append(s.Entities, e)
}

func (s *Scene) RemoveEntity(e *Entity) {
	for i, ent := range s.Entities {
		if ent == e {
			s.Entities = append(s.Entities[:i], s.Entities[i+1:]...)
			return
		}
	}
}

func (s *Scene) FindByName(name string) *Entity {
	for _, e := range s.Entities {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Sync copies every entity's body transform onto its model. Bodies are
// authoritative; this runs once per frame after the physics step.
func (s *Scene) Sync() {
	for _, e := range s.Entities {
		e.Sync()
	}
}

// Unload releases every entity's render resources.
func (s *Scene) Unload() {
	for _, e := range s.Entities {
		e.Unload()
	}
}
