package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustJay7/precedent/internal/legal"
)

func okResult(name string) *legal.AnalysisResult {
	return &legal.AnalysisResult{
		LegalExplanation: &legal.LegalExplanation{CrimeName: name},
	}
}

func TestGetSet(t *testing.T) {
	c := NewCache(10, time.Minute)
	key := GenerateCacheKey("PC 240", "Texas")

	_, found := c.Get(key)
	assert.False(t, found)

	require.NoError(t, c.Set(key, okResult("Assault")))

	got, found := c.Get(key)
	require.True(t, found)
	assert.Equal(t, "Assault", got.LegalExplanation.CrimeName)

	stats := c.Stats()
	assert.EqualValues(t, 1, stats.Hits)
	assert.EqualValues(t, 1, stats.Misses)
	assert.Equal(t, 1, stats.Size)
	assert.False(t, stats.LastAccess.IsZero())
}

func TestGetReturnsFreshValues(t *testing.T) {
	c := NewCache(10, time.Minute)
	stored := okResult("Assault")
	require.NoError(t, c.Set("k", stored))

	// Changes after Set do not reach the cache.
	stored.LegalExplanation.CrimeName = "changed"

	first, found := c.Get("k")
	require.True(t, found)
	second, found := c.Get("k")
	require.True(t, found)

	assert.NotSame(t, first, second)
	assert.NotSame(t, first.LegalExplanation, second.LegalExplanation)
	assert.Equal(t, first, second)
	assert.Equal(t, "Assault", first.LegalExplanation.CrimeName)

	first.LegalExplanation.CrimeName = "mutated"
	third, _ := c.Get("k")
	assert.Equal(t, "Assault", third.LegalExplanation.CrimeName)
}

func TestSetRejectsFailedResults(t *testing.T) {
	c := NewCache(10, time.Minute)

	err := c.Set("k", &legal.AnalysisResult{Error: "Failed to process legal query"})
	assert.Error(t, err)
	assert.Error(t, c.Set("k", nil))
	assert.Equal(t, 0, c.Stats().Size)
}

func TestSizeBound(t *testing.T) {
	c := NewCache(3, time.Minute)

	for i := 0; i < 5; i++ {
		require.NoError(t, c.Set(fmt.Sprintf("k%d", i), okResult("x")))
	}
	assert.Equal(t, 3, c.Stats().Size)

	// Overwriting an existing key never evicts.
	require.NoError(t, c.Set("k4", okResult("y")))
	assert.Equal(t, 3, c.Stats().Size)
}

func TestDeleteAndClear(t *testing.T) {
	c := NewCache(10, time.Minute)
	require.NoError(t, c.Set("a", okResult("a")))
	require.NoError(t, c.Set("b", okResult("b")))

	c.Delete("a")
	_, found := c.Get("a")
	assert.False(t, found)

	c.Clear()
	stats := c.Stats()
	assert.Equal(t, 0, stats.Size)
	assert.EqualValues(t, 0, stats.Misses)
}

func TestGenerateCacheKeyIsUnambiguous(t *testing.T) {
	assert.NotEqual(t,
		GenerateCacheKey("a:b", "c"),
		GenerateCacheKey("a", "b:c"),
	)
	assert.Equal(t, GenerateCacheKey("DUI", "CA"), GenerateCacheKey("DUI", "CA"))
}
