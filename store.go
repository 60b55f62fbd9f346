package main

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

var (
	ErrUnknownBlock  = errors.New("blockflow: unknown block")
	ErrSelfReference = errors.New("blockflow: block cannot connect to itself")
	ErrCycle         = errors.New("blockflow: connection would create a cycle")
)

// Store is the scene: blocks keyed by id, the parent links between them and
// the lines derived from those links. It is owned by a single editor session
// and is not safe for concurrent use.
type Store struct {
	blocks    map[int]*Block
	order     []int
	lines     map[LineKey]Line
	nextID    int
	observers map[int]func(Change)
	nextSub   int
	log       *slog.Logger
}

func NewStore(log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		blocks:    make(map[int]*Block),
		order:     make([]int, 0),
		lines:     make(map[LineKey]Line),
		observers: make(map[int]func(Change)),
		log:       log,
	}
}

// Subscribe registers fn to be called after every committed mutation. The
// returned func removes the subscription.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.nextSub++
	id := s.nextSub
	s.observers[id] = fn
	return func() {
		delete(s.observers, id)
	}
}

func (s *Store) notify(changes ...Change) {
	if len(s.observers) == 0 {
		return
	}
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, c := range changes {
		for _, id := range ids {
			if fn, ok := s.observers[id]; ok {
				fn(c)
			}
		}
	}
}

func (s *Store) AddBlock(t BlockType, x, y float64) Block {
	if !t.Valid() {
		panic(fmt.Sprintf("blockflow: add block with unknown type %d", int(t)))
	}
	s.nextID++
	b := &Block{ID: s.nextID, Type: t, X: x, Y: y}
	s.blocks[b.ID] = b
	s.order = append(s.order, b.ID)
	s.log.Debug("block added", "id", b.ID, "type", t.String(), "x", x, "y", y)
	s.notify(Change{Kind: ChangeBlockAdded, BlockID: b.ID})
	return *b
}

// RemoveBlock deletes the block, detaches its children and drops every line
// touching it.
func (s *Store) RemoveBlock(id int) bool {
	if _, ok := s.blocks[id]; !ok {
		return false
	}

	changes := []Change{{Kind: ChangeBlockRemoved, BlockID: id}}
	for _, key := range sortedLineKeys(s.lines) {
		if key.From == id || key.To == id {
			delete(s.lines, key)
			changes = append(changes, Change{Kind: ChangeDisconnected, BlockID: key.To, Line: key})
		}
	}
	for _, b := range s.blocks {
		if b.ParentID == id {
			b.ParentID = noParent
		}
	}
	delete(s.blocks, id)
	for i, other := range s.order {
		if other == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	s.log.Debug("block removed", "id", id)
	s.notify(changes...)
	return true
}

func (s *Store) MoveBlock(id int, x, y float64) bool {
	b, ok := s.blocks[id]
	if !ok {
		return false
	}
	if b.X == x && b.Y == y {
		return true
	}
	b.X = x
	b.Y = y
	s.refreshLines(id)
	s.notify(Change{Kind: ChangeBlockMoved, BlockID: id})
	return true
}

func (s *Store) refreshLines(id int) {
	for key := range s.lines {
		if key.From == id || key.To == id {
			s.lines[key] = LineFor(anchorOf(*s.blocks[key.From]), anchorOf(*s.blocks[key.To]))
		}
	}
}

func (s *Store) checkConnect(source, target int) error {
	if source == target {
		return ErrSelfReference
	}
	if _, ok := s.blocks[source]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBlock, source)
	}
	if _, ok := s.blocks[target]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBlock, target)
	}
	// target becomes a child of source, so target must not be an ancestor.
	for cur, steps := source, 0; cur != noParent; steps++ {
		if cur == target {
			return ErrCycle
		}
		if steps > len(s.blocks) {
			return ErrCycle
		}
		cur = s.blocks[cur].ParentID
	}
	return nil
}

// Connect makes source the parent of target. A target that already has a
// different parent is re-parented. Links that would reference a missing
// block, the block itself or close a cycle are rejected and nothing changes.
func (s *Store) Connect(source, target int) bool {
	if err := s.checkConnect(source, target); err != nil {
		s.log.Debug("connect rejected", "source", source, "target", target, "err", err)
		return false
	}

	child := s.blocks[target]
	if child.ParentID == source {
		return true
	}

	var changes []Change
	if child.HasParent() {
		old := LineKey{From: child.ParentID, To: target}
		delete(s.lines, old)
		changes = append(changes, Change{Kind: ChangeDisconnected, BlockID: target, Line: old})
	}
	child.ParentID = source
	key := LineKey{From: source, To: target}
	s.lines[key] = LineFor(anchorOf(*s.blocks[source]), anchorOf(*child))
	changes = append(changes, Change{Kind: ChangeConnected, BlockID: target, Line: key})

	s.log.Debug("connected", "line", key.String())
	s.notify(changes...)
	return true
}

func (s *Store) Disconnect(key LineKey) bool {
	if _, ok := s.lines[key]; !ok {
		return false
	}
	delete(s.lines, key)
	if child, ok := s.blocks[key.To]; ok && child.ParentID == key.From {
		child.ParentID = noParent
	}
	s.log.Debug("disconnected", "line", key.String())
	s.notify(Change{Kind: ChangeDisconnected, BlockID: key.To, Line: key})
	return true
}

// SetAppearanceFor changes the block type and returns the appearance the
// render layer should now use.
func (s *Store) SetAppearanceFor(id int, t BlockType) (Appearance, bool) {
	appearance := ResolveAppearance(t)
	b, ok := s.blocks[id]
	if !ok {
		return Appearance{}, false
	}
	if b.Type != t {
		b.Type = t
		s.notify(Change{Kind: ChangeBlockRetyped, BlockID: id})
	}
	return appearance, true
}

func (s *Store) Block(id int) (Block, bool) {
	b, ok := s.blocks[id]
	if !ok {
		return Block{}, false
	}
	return *b, true
}

// Blocks returns a copy of the blocks in render order.
func (s *Store) Blocks() []Block {
	blocks := make([]Block, 0, len(s.order))
	for _, id := range s.order {
		blocks = append(blocks, *s.blocks[id])
	}
	return blocks
}

func (s *Store) Len() int {
	return len(s.order)
}

// Snapshot returns a copy of the scene; blocks are in render order.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Blocks: s.Blocks(),
		Lines:  make(map[LineKey]Line, len(s.lines)),
	}
	for key, line := range s.lines {
		snap.Lines[key] = line
	}
	return snap
}

// Nodes derives the anchor-graph view of the scene.
func (s *Store) Nodes() map[int]Node {
	nodes := make(map[int]Node, len(s.blocks))
	for id, b := range s.blocks {
		nodes[id] = Node{ID: id, InputID: b.ParentID, OutputIDs: make(map[int]struct{}), X: b.X, Y: b.Y}
	}
	for id, b := range s.blocks {
		if b.HasParent() {
			nodes[b.ParentID].OutputIDs[id] = struct{}{}
		}
	}
	return nodes
}
