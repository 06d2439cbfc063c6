package veb

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_EmptySetHas(t *testing.T) {
	s := NewSet()
	if s.Has(0) {
		t.Error("s.Has(0) returned true on an empty set")
	}
	if s.Has(1234567890) {
		t.Error("s.Has(1234567890) returned true on an empty set")
	}
	if s.Has(0xFFFFFFFFFFFFFFFF) {
		t.Error("s.Has(0xFFFFFFFFFFFFFFFF) returned true on an empty set")
	}
}

func Test_AdhocSetHas(t *testing.T) {
	s := NewSet()

	// prepare an ad-hoc set with three entries: 0, 2 and 255
	node := s.root
	for i := 0; i < numLevels-1; i++ {
		node.bitmap[0] = 0x1
		next := &Node{}
		node.children = append(node.children, next)
		node = next
	}
	node.bitmap[0] = 0x0000000000000005 // 0000 .... 0000 0101
	node.bitmap[3] = 0x8000000000000000 // 1000 0000 .... 0000

	if !s.Has(0) {
		t.Error("s.Has(0) returned false")
	}
	if !s.Has(2) {
		t.Error("s.Has(2) returned false")
	}
	if !s.Has(255) {
		t.Error("s.Has(255) returned false")
	}

	if s.Has(1) {
		t.Error("s.Has(1) returned true")
	}
	if s.Has(1234567890) {
		t.Error("s.Has(1234567890) returned true")
	}
	if s.Has(0xFFFFFFFFFFFFFFFF) {
		t.Error("s.Has(0xFFFFFFFFFFFFFFFF) returned true")
	}
}

func Test_AddHas(t *testing.T) {
	s := NewSet()

	vals := []uint64{0, 1, 2, 255, 256, 1234567890, 0xFFFFFFFFFFFFFFFF}
	for _, v := range vals {
		if !s.Add(v) {
			t.Errorf("s.Add(%v) returned false", v)
		}
		if !s.Has(v) {
			t.Errorf("s.Has(%v) returned false after s.Add", v)
		}
	}
	for _, v := range vals {
		if s.Add(v) {
			t.Errorf("s.Add(%v) of a present value returned true", v)
		}
	}
	if s.Len() != uint64(len(vals)) {
		t.Errorf("wrong s.Len() result: expected %v, got %v", len(vals), s.Len())
	}

	if s.Has(3) {
		t.Error("s.Has(3) returned true")
	}
	if s.Has(257) {
		t.Error("s.Has(257) returned true")
	}
}

func Test_AddDel(t *testing.T) {
	s := NewSet(10, 20, 30)

	require.True(t, s.Del(20))
	assert.False(t, s.Has(20))
	assert.True(t, s.Has(10))
	assert.True(t, s.Has(30))
	assert.Equal(t, uint64(2), s.Len())

	assert.False(t, s.Del(20), "a second delete must be a no-op")

	// a deleted value can come back
	require.True(t, s.Add(20))
	assert.True(t, s.Has(20))
	assert.Equal(t, uint64(3), s.Len())
}

func Test_FakeData(t *testing.T) {
	t.Parallel()

	const (
		total = 64 * 1024
		seed  = 1234567890
	)

	var (
		s     = NewSet()
		state = map[uint64]bool{}
		fake  = gofakeit.New(seed)
	)

	for i := 0; i < total; i++ {
		v := fake.Uint64()
		assert.Equal(t, !state[v], s.Add(v))
		state[v] = true
	}

	for v := range state {
		require.True(t, s.Has(v), "s.Has(%v)", v)
	}
	require.Equal(t, uint64(len(state)), s.Len())

	for v := range state {
		require.True(t, s.Del(v), "s.Del(%v)", v)
		require.False(t, s.Has(v), "s.Has(%v) after s.Del", v)
	}
	require.Equal(t, uint64(0), s.Len())
}
