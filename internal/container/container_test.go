package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vexlang/vexc/internal/container"
)

func TestOrderedSetGenerationBumping(t *testing.T) {
	s := container.NewOrderedSet[string]()
	assert.Equal(t, uint32(0), s.Insert("a"))
	assert.Equal(t, uint32(1), s.Insert("a"))
	assert.Equal(t, uint32(0), s.Insert("b"))
	assert.Equal(t, 3, s.Len())

	gen, ok := s.CurrentGeneration("a")
	assert.True(t, ok)
	assert.Equal(t, uint32(1), gen)
}

func TestOrderedSetRemoveLastAddedRestoresGeneration(t *testing.T) {
	s := container.NewOrderedSet[string]()
	s.Insert("a")
	s.Insert("a")
	s.Insert("b")

	removed := s.RemoveLastAdded(2)
	assert.Equal(t, []container.Removed[string]{
		{Key: "b", Generation: 0},
		{Key: "a", Generation: 1},
	}, removed)
	assert.Equal(t, 1, s.Len())

	gen, ok := s.CurrentGeneration("a")
	assert.True(t, ok)
	assert.Equal(t, uint32(0), gen)
	assert.False(t, s.Contains("b"))
}

func TestOrderedSetRemoveLastAddedToEmpty(t *testing.T) {
	s := container.NewOrderedSet[string]()
	s.Insert("a")
	removed := s.RemoveLastAdded(1)
	assert.Equal(t, []container.Removed[string]{{Key: "a", Generation: 0}}, removed)
	assert.False(t, s.Contains("a"))
	assert.Equal(t, 0, s.Len())
}

func TestOrderedMapStrictInsert(t *testing.T) {
	m := container.NewOrderedMap[string, int]()
	assert.NoError(t, m.Insert("a", 1))
	err := m.Insert("a", 2)
	assert.Error(t, err)
	var already *container.AlreadyKnownKeyError[string]
	assert.ErrorAs(t, err, &already)

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestOrderedMapUpdateUnknownKey(t *testing.T) {
	m := container.NewOrderedMap[string, int]()
	err := m.Update("missing", 1)
	var unknown *container.UnknownKeyError[string]
	assert.ErrorAs(t, err, &unknown)
}

func TestOrderedMapRemoveLastAdded(t *testing.T) {
	m := container.NewOrderedMap[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)
	removed := m.RemoveLastAdded(1)
	assert.Equal(t, []string{"b"}, removed)
	assert.Equal(t, 1, m.Len())
	_, ok := m.Get("b")
	assert.False(t, ok)
}
