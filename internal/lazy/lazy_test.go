package lazy

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSeq yields the given values and counts how many elements were
// produced across all iterations, standing in for an element constructor
// with observable side effects.
func countingSeq[T any](counter *int, values ...T) func(yield func(T) bool) {
	return func(yield func(T) bool) {
		for _, v := range values {
			*counter++
			if !yield(v) {
				return
			}
		}
	}
}

func TestList(t *testing.T) {
	t.Run("MaterializeOnce", func(t *testing.T) {
		var produced int
		l := NewList(countingSeq(&produced, "a", "b", "c"))

		assert.Equal(t, Unmaterialized, l.State())
		assert.Zero(t, produced)

		first := l.Items()
		assert.Equal(t, []string{"a", "b", "c"}, first)
		assert.Equal(t, Ready, l.State())
		assert.Equal(t, 3, produced)

		// Repeated reads hit the cache, never the sequence.
		second := l.Items()
		assert.Equal(t, first, second)
		l.Items()
		assert.Equal(t, 3, produced)
	})

	t.Run("OrderAndDuplicatesPreserved", func(t *testing.T) {
		var produced int
		l := NewList(countingSeq(&produced, "x", "y", "x", "x"))

		assert.Equal(t, []string{"x", "y", "x", "x"}, l.Items())
		assert.Equal(t, 4, l.Len())
	})

	t.Run("NilSequence", func(t *testing.T) {
		l := NewList[int](nil)
		assert.Empty(t, l.Items())
		assert.Zero(t, l.Len())
		assert.Equal(t, Ready, l.State())
	})

	t.Run("LenMaterializes", func(t *testing.T) {
		var produced int
		l := NewList(countingSeq(&produced, 1, 2))

		assert.Equal(t, 2, l.Len())
		assert.Equal(t, 2, produced)
		assert.Equal(t, Ready, l.State())
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		var produced int
		l := NewList(countingSeq(&produced, 1, 2, 3))

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.Len(t, l.Items(), 3)
			}()
		}
		wg.Wait()

		assert.Equal(t, 3, produced)
	})
}

func TestMap(t *testing.T) {
	type member struct {
		tag  string
		name string
	}

	keyFn := func(m member) string { return m.tag }

	t.Run("MaterializeOnce", func(t *testing.T) {
		var produced int
		m := NewMap(keyFn, countingSeq(&produced,
			member{"#AA", "one"},
			member{"#BB", "two"},
		))

		assert.Equal(t, Unmaterialized, m.State())
		assert.Zero(t, produced)

		got, ok := m.Get("#AA")
		require.True(t, ok)
		assert.Equal(t, "one", got.name)
		assert.Equal(t, Ready, m.State())
		assert.Equal(t, 2, produced)

		// All access paths share the one cache.
		m.Get("#BB")
		m.Values()
		assert.Equal(t, 2, m.Len())
		assert.Equal(t, 2, produced)
	})

	t.Run("LastWriteWinsOnDuplicateKey", func(t *testing.T) {
		var produced int
		m := NewMap(keyFn, countingSeq(&produced,
			member{"#AA", "first"},
			member{"#BB", "middle"},
			member{"#AA", "second"},
		))

		got, ok := m.Get("#AA")
		require.True(t, ok)
		assert.Equal(t, "second", got.name)
		assert.Equal(t, 2, m.Len())

		// The duplicate key keeps its first-seen position.
		values := m.Values()
		require.Len(t, values, 2)
		assert.Equal(t, "second", values[0].name)
		assert.Equal(t, "middle", values[1].name)
	})

	t.Run("StableIterationOrder", func(t *testing.T) {
		members := make([]member, 20)
		for i := range members {
			members[i] = member{tag: "#" + strconv.Itoa(i), name: strconv.Itoa(i)}
		}

		var produced int
		m := NewMap(keyFn, countingSeq(&produced, members...))

		first := m.Values()
		for range 5 {
			assert.Equal(t, first, m.Values())
		}
		assert.Equal(t, 20, produced)
	})

	t.Run("Missing", func(t *testing.T) {
		var produced int
		m := NewMap(keyFn, countingSeq(&produced, member{"#AA", "one"}))

		_, ok := m.Get("#ZZ")
		assert.False(t, ok)
	})

	t.Run("NilSequence", func(t *testing.T) {
		m := NewMap[member](keyFn, nil)
		assert.Empty(t, m.Values())
		assert.Zero(t, m.Len())
		_, ok := m.Get("#AA")
		assert.False(t, ok)
		assert.Equal(t, Ready, m.State())
	})

	t.Run("NilKeyFuncPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewMap[member](nil, nil)
		})
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		var produced int
		m := NewMap(keyFn, countingSeq(&produced,
			member{"#AA", "one"},
			member{"#BB", "two"},
		))

		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if i%2 == 0 {
					_, ok := m.Get("#AA")
					assert.True(t, ok)
				} else {
					assert.Len(t, m.Values(), 2)
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 2, produced)
	})
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unmaterialized", Unmaterialized.String())
	assert.Equal(t, "materializing", Materializing.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "unknown", State(99).String())
}
