package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockExceedTracker(t *testing.T) {
	tr := NewStockExceedTracker()
	assert.False(t, tr.Any())

	tr.Set("b", true)
	tr.Set("a", true)
	assert.True(t, tr.Any())
	assert.True(t, tr.Exceeded("a"))
	assert.Equal(t, []string{"a", "b"}, tr.Products())

	// Setting false clears membership, same as Remove.
	tr.Set("a", false)
	assert.False(t, tr.Exceeded("a"))
	assert.Equal(t, []string{"b"}, tr.Products())

	tr.Remove("b")
	assert.False(t, tr.Any())
	assert.Empty(t, tr.Products())

	// Removing an absent product is a no-op.
	tr.Remove("never-added")
	assert.False(t, tr.Any())
}
