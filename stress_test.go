package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildStressScene(t *testing.T) {
	s := newTestStore()
	ids := buildStressScene(s, 7, DefaultLayout())

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, ids)
	assert.Len(t, s.Snapshot().Lines, 6)
	assert.Equal(t, []int{1}, s.Roots())
	assert.Equal(t, []int{2, 3}, s.Children(1))
	assert.Equal(t, 2, s.Depth(7))

	b, _ := s.Block(4)
	assert.Equal(t, 0.0, b.X)
	assert.Equal(t, 2*(defaultBlockHeight+60), b.Y)
}

func TestBuildStressScene_CyclesTypes(t *testing.T) {
	s := newTestStore()
	buildStressScene(s, int(numBlockTypes)+1, DefaultLayout())

	first, _ := s.Block(1)
	wrapped, _ := s.Block(int(numBlockTypes) + 1)
	assert.Equal(t, first.Type, wrapped.Type)
}
