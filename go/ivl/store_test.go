package ivl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreGetMissingIsTop(t *testing.T) {
	s := New[int64]()
	assert.True(t, s.Get("x").IsTop())
}

func TestStoreJoinAllUnionOfKeys(t *testing.T) {
	a := New[int64]()
	a.Set("x", Point[int64](1))
	a.Set("y", Point[int64](2))

	b := New[int64]()
	b.Set("x", Point[int64](5))
	b.Set("z", Point[int64](9))

	joined := a.JoinAll(b)
	assert.True(t, joined.Get("x").Equal(FromBounds[int64](1, 5)))
	assert.True(t, joined.Get("y").Equal(Point[int64](2)), "y missing from b joins as itself")
	assert.True(t, joined.Get("z").Equal(Point[int64](9)), "z missing from a joins as itself")
}

func TestStoreEqualIsStructural(t *testing.T) {
	a := New[int64]()
	a.Set("x", Point[int64](1))

	b := New[int64]()
	b.Set("x", Point[int64](1))
	assert.True(t, a.Equal(b))

	b.Set("x", Point[int64](2))
	assert.False(t, a.Equal(b))
}

func TestStoreCloneIsIndependent(t *testing.T) {
	a := New[int64]()
	a.Set("x", Point[int64](1))
	b := a.Clone()
	b.Set("x", Point[int64](2))
	assert.True(t, a.Get("x").Equal(Point[int64](1)))
	assert.True(t, b.Get("x").Equal(Point[int64](2)))
}

func TestStoreIsBottom(t *testing.T) {
	s := New[int64]()
	s.Set("x", Point[int64](1))
	s.Set("y", Point[int64](2))
	assert.False(t, s.IsBottom())

	s.Set("y", Bottom[int64]())
	assert.True(t, s.IsBottom())
}

func TestStoreSortedNamesDeterministic(t *testing.T) {
	s := New[int64]()
	s.Set("z", Top[int64]())
	s.Set("a", Top[int64]())
	s.Set("m", Top[int64]())
	assert.Equal(t, []string{"a", "m", "z"}, s.SortedNames())
}
