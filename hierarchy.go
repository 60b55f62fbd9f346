package main

import "sort"

// Children returns the direct children of a block ordered by Y position, then
// id, so siblings read top to bottom.
func (s *Store) Children(parentID int) []int {
	var children []int
	for id, b := range s.blocks {
		if b.ParentID == parentID && parentID != noParent {
			children = append(children, id)
		}
	}
	s.sortByY(children)
	return children
}

// Roots returns every block without a parent.
func (s *Store) Roots() []int {
	var roots []int
	for id, b := range s.blocks {
		if !b.HasParent() {
			roots = append(roots, id)
		}
	}
	s.sortByY(roots)
	return roots
}

func (s *Store) sortByY(ids []int) {
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.blocks[ids[i]], s.blocks[ids[j]]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.ID < b.ID
	})
}

// Descendants returns every block below id, depth first.
func (s *Store) Descendants(id int) []int {
	var out []int
	for _, child := range s.Children(id) {
		out = append(out, child)
		out = append(out, s.Descendants(child)...)
	}
	return out
}

// Depth is the number of ancestors of a block; -1 if it does not exist.
func (s *Store) Depth(id int) int {
	b, ok := s.blocks[id]
	if !ok {
		return -1
	}
	depth := 0
	for b.HasParent() {
		depth++
		b = s.blocks[b.ParentID]
	}
	return depth
}

// Parent returns the parent id, or 0 for roots and unknown blocks.
func (s *Store) Parent(id int) int {
	if b, ok := s.blocks[id]; ok {
		return b.ParentID
	}
	return noParent
}

// nextSibling returns the sibling after id in Children order, wrapping.
func (s *Store) nextSibling(id int) int {
	var siblings []int
	if parent := s.Parent(id); parent != noParent {
		siblings = s.Children(parent)
	} else {
		siblings = s.Roots()
	}
	for i, sib := range siblings {
		if sib == id {
			return siblings[(i+1)%len(siblings)]
		}
	}
	return id
}
