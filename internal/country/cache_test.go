package country

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingResolver counts calls to the wrapped resolver.
type countingResolver struct {
	calls int
	next  Resolver
}

func (c *countingResolver) Resolve(name string) (string, bool) {
	c.calls++
	return c.next.Resolve(name)
}

func TestCached_MemoizesHitsAndMisses(t *testing.T) {
	inner := &countingResolver{next: NewDefaultTable()}
	c, err := NewCached(inner, 8)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		code, ok := c.Resolve("Vietnam")
		require.True(t, ok)
		assert.Equal(t, "VN", code)
	}
	for i := 0; i < 2; i++ {
		_, ok := c.Resolve("Narnia")
		assert.False(t, ok)
	}

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 2, c.Len())
}

func TestNewCached_DefaultSize(t *testing.T) {
	c, err := NewCached(NewDefaultTable(), 0)
	require.NoError(t, err)

	code, ok := c.Resolve("japan")
	assert.True(t, ok)
	assert.Equal(t, "JP", code)
}
