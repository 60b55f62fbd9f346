package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTreeStore builds 1 -> {2, 3}, 2 -> 4, plus an unconnected root 5.
func newTreeStore(t *testing.T) *Store {
	t.Helper()
	s := newTestStore()
	s.AddBlock(ConditionActionHandler, 0, 0)
	s.AddBlock(EmailActionHandler, 0, 200)
	s.AddBlock(SMSActionHandler, 200, 100)
	s.AddBlock(WaitActionHandler, 0, 400)
	s.AddBlock(PushActionHandler, 400, -50)
	require.True(t, s.Connect(1, 2))
	require.True(t, s.Connect(1, 3))
	require.True(t, s.Connect(2, 4))
	return s
}

func TestHierarchy_ChildrenSortedByY(t *testing.T) {
	s := newTreeStore(t)
	assert.Equal(t, []int{3, 2}, s.Children(1))
	assert.Empty(t, s.Children(4))
	assert.Empty(t, s.Children(noParent))
}

func TestHierarchy_Roots(t *testing.T) {
	s := newTreeStore(t)
	assert.Equal(t, []int{5, 1}, s.Roots())
}

func TestHierarchy_Descendants(t *testing.T) {
	s := newTreeStore(t)
	assert.Equal(t, []int{3, 2, 4}, s.Descendants(1))
	assert.Empty(t, s.Descendants(3))
}

func TestHierarchy_Depth(t *testing.T) {
	s := newTreeStore(t)
	assert.Equal(t, 0, s.Depth(1))
	assert.Equal(t, 1, s.Depth(2))
	assert.Equal(t, 2, s.Depth(4))
	assert.Equal(t, -1, s.Depth(99))
}

func TestHierarchy_NextSiblingWraps(t *testing.T) {
	s := newTreeStore(t)
	assert.Equal(t, 2, s.nextSibling(3))
	assert.Equal(t, 3, s.nextSibling(2))
	assert.Equal(t, 4, s.nextSibling(4))
	assert.Equal(t, 1, s.nextSibling(5))
}
