package ecs

// Removable is implemented by every component store so the Registry can
// strip an entity's data from all stores when it is destroyed.
type Removable interface {
	Remove(id EntityID)
}

// PtrComponentStore is a typed map store for one component kind.
// Tag components use struct{} as T.
type PtrComponentStore[T any] struct {
	data map[EntityID]*T
}

func NewPtrComponentStore[T any]() *PtrComponentStore[T] {
	return &PtrComponentStore[T]{
		data: make(map[EntityID]*T, 64),
	}
}

func (s *PtrComponentStore[T]) Set(id EntityID, c *T) {
	s.data[id] = c
}

func (s *PtrComponentStore[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *PtrComponentStore[T]) Remove(id EntityID) {
	delete(s.data, id)
}

func (s *PtrComponentStore[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *PtrComponentStore[T]) Len() int {
	return len(s.data)
}

// IDs returns a snapshot of the entity IDs in the store, safe to use while
// destroying entities.
func (s *PtrComponentStore[T]) IDs() []EntityID {
	ids := make([]EntityID, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids
}

// Single returns the only entry of the store. ok is false when the store is
// empty or holds more than one entity.
func (s *PtrComponentStore[T]) Single() (EntityID, *T, bool) {
	if len(s.data) != 1 {
		return 0, nil, false
	}
	for id, c := range s.data {
		return id, c, true
	}
	return 0, nil, false
}
