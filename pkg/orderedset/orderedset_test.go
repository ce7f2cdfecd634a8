package orderedset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_InsertDeduplicates(t *testing.T) {
	s := New[int]()

	s.Insert(3)
	s.Insert(1)
	s.Insert(3)
	s.Insert(2)

	assert.Equal(t, 3, s.Len())
}

func TestSet_SliceIsAscending(t *testing.T) {
	s := New[int]()

	for _, v := range []int{5, 1, 4, 1, 3} {
		s.Insert(v)
	}

	assert.Equal(t, []int{1, 3, 4, 5}, s.Slice())
}

func TestSet_Contains(t *testing.T) {
	s := New[uint32]()
	s.Insert(7)

	assert.True(t, s.Contains(7))
	assert.False(t, s.Contains(8))
}

func TestSet_EmptySet(t *testing.T) {
	s := New[int]()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, []int{}, s.Slice())
}
