// Package container implements two ordered, generation-tracking
// containers: OrderedSet (permissive), which the resolver uses to model
// variable and function scoping without an explicit scope-stack data
// structure, and OrderedMap (strict: redeclaration is an error), which
// nothing outside this package uses.
package container

// Removed is one entry popped by RemoveLastAdded: the key that was
// declared, and the generation it held at the moment it was declared.
type Removed[K comparable] struct {
	Key        K
	Generation uint32
}

type setEntry[K comparable] struct {
	key K
	gen uint32
}

// OrderedSet tracks declarations of a key in insertion order, assigning
// each redeclaration of the same key an incrementing generation counter
// starting at 0. It never rejects a redeclaration; that permissiveness is
// what gives it its name ("Set" because lookups answer "is this key
// currently declared", not because the container forbids duplicates).
type OrderedSet[K comparable] struct {
	stack []setEntry[K]
	count map[K]uint32
}

// NewOrderedSet returns an empty set.
func NewOrderedSet[K comparable]() *OrderedSet[K] {
	return &OrderedSet[K]{count: make(map[K]uint32)}
}

// Insert records a new declaration of key and returns the generation
// assigned to it: 0 the first time a key is declared, incrementing by one
// on every redeclaration.
func (s *OrderedSet[K]) Insert(key K) uint32 {
	gen := s.count[key]
	s.count[key] = gen + 1
	s.stack = append(s.stack, setEntry[K]{key: key, gen: gen})
	return gen
}

// Contains reports whether key has any currently visible declaration.
func (s *OrderedSet[K]) Contains(key K) bool {
	return s.count[key] > 0
}

// CurrentGeneration returns the generation of the most recent still-visible
// declaration of key, or ok=false if key is not currently declared.
func (s *OrderedSet[K]) CurrentGeneration(key K) (gen uint32, ok bool) {
	c, present := s.count[key]
	if !present || c == 0 {
		return 0, false
	}
	return c - 1, true
}

// Len returns the number of currently visible declarations (including
// shadowed redeclarations of the same key).
func (s *OrderedSet[K]) Len() int {
	return len(s.stack)
}

// RemoveLastAdded pops the n most recently inserted declarations, in LIFO
// order, restoring each key's visible generation to what it was before that
// declaration was pushed. It panics if n exceeds Len, mirroring that this
// is a scope-exit operation the caller is expected to size correctly.
func (s *OrderedSet[K]) RemoveLastAdded(n int) []Removed[K] {
	if n > len(s.stack) {
		panic("container: RemoveLastAdded n exceeds set length")
	}
	removed := make([]Removed[K], 0, n)
	for i := 0; i < n; i++ {
		last := len(s.stack) - 1
		e := s.stack[last]
		s.stack = s.stack[:last]
		removed = append(removed, Removed[K]{Key: e.key, Generation: e.gen})
		if e.gen == 0 {
			delete(s.count, e.key)
		} else {
			s.count[e.key] = e.gen
		}
	}
	return removed
}
