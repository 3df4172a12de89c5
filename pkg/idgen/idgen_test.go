package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_NewID_Prefix(t *testing.T) {
	gen := New("book")

	id := gen.NewID()

	assert.True(t, strings.HasPrefix(id, "book_"))
	assert.Greater(t, len(id), len("book_"))
}

func TestGenerator_NewID_Unique(t *testing.T) {
	gen := New("brl")

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := gen.NewID()
		_, ok := seen[id]
		assert.False(t, ok, "duplicate id: %s", id)
		seen[id] = struct{}{}
	}
}
