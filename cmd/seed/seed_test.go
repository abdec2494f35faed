package main

import (
	"math/rand"
	"testing"

	"bookcatalog/internal/book"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomFields_AreValid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		f := randomFields(rng, i)
		_, err := book.Build(f, book.Options{RatingEnabled: true})
		require.NoError(t, err, "fields %d: %+v", i, f)
		assert.Contains(t, book.Categories, f.Category)
	}
}
