package main

// buildStressScene adds n blocks laid out as a binary tree, level by level,
// cycling through every block type. It returns the ids in creation order.
func buildStressScene(store *Store, n int, layout Layout) []int {
	const gapX, gapY = 40.0, 60.0

	ids := make([]int, 0, n)
	level, first := 0, 1
	for i := 1; i <= n; i++ {
		if i >= first*2 {
			level++
			first *= 2
		}
		idx := i - first
		x := float64(idx) * (layout.BlockWidth + gapX)
		y := float64(level) * (layout.BlockHeight + gapY)

		t := BlockType((i - 1) % int(numBlockTypes))
		b := store.AddBlock(t, x, y)
		ids = append(ids, b.ID)
		if i > 1 {
			store.Connect(ids[i/2-1], b.ID)
		}
	}
	return ids
}
