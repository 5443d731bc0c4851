package gocrdt

import "sync"

// ObjectEntry pairs an Operation with its tombstone bit. Tombstones are
// never cleared once set; they stay in the tree so late-arriving operations
// can still resolve their target.
type ObjectEntry[T any] struct {
	Op        Operation[T]
	Tombstone bool
}

// objectRoot is one root of the forest: an Operation whose Target is nil,
// together with the flat, ordered list of entries inserted relative to it.
// The root's own entry is the only one in entries whose Target is nil;
// entries inserted before it precede it in the list.
type objectRoot[T any] struct {
	entries []*ObjectEntry[T]
}

// ObjectTree is the sorted container that places Operations relative to
// their target, organized as a forest of roots. Its contract: applying the
// same set of Operations in any order consistent with causal dependency
// (a Remove or Insert's target must already be present) yields the same
// in-order linearization, regardless of interleaving.
type ObjectTree[T any] struct {
	mu    sync.RWMutex
	roots []*objectRoot[T]
	index map[OpId]*ObjectEntry[T]
}

// NewObjectTree returns an empty tree.
func NewObjectTree[T any]() *ObjectTree[T] {
	return &ObjectTree[T]{index: make(map[OpId]*ObjectEntry[T])}
}

type treePos struct {
	root, entry int
}

// Apply places op into the tree: an Insert creates a new ObjectEntry at the
// position its target/action dictate; a Remove tombstones the entry owned
// by its target, failing with MissingTarget if no such entry exists yet.
func (t *ObjectTree[T]) Apply(op Operation[T]) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch op.Action {
	case Remove:
		if op.Target == nil {
			return newError(InvalidArgument, "REMOVE operation must carry a target")
		}
		entry, ok := t.index[*op.Target]
		if !ok {
			return newError(MissingTarget, "no entry found for target %+v", *op.Target)
		}
		entry.Tombstone = true
		return nil

	case InsertBefore, InsertAfter:
		entry := &ObjectEntry[T]{Op: op}
		if op.Target == nil {
			return t.insertRoot(entry)
		}
		return t.insertNode(*op.Target, entry, op.Action == InsertBefore)

	default:
		return newError(InvalidArgument, "unknown action %v", op.Action)
	}
}

// insertRoot places a new root among the existing roots, ordered by OpId
// ascending: concurrent "first inserts" from different replicas are
// totally ordered by OpId.
func (t *ObjectTree[T]) insertRoot(entry *ObjectEntry[T]) error {
	idx := len(t.roots)
	for i, r := range t.roots {
		rootOwner := r.entries[0].Op.Owner
		for _, e := range r.entries {
			if e.Op.Target == nil {
				rootOwner = e.Op.Owner
				break
			}
		}
		less, err := entry.Op.Owner.Less(rootOwner)
		if err != nil {
			return err
		}
		if less {
			idx = i
			break
		}
	}
	t.roots = append(t.roots, nil)
	copy(t.roots[idx+1:], t.roots[idx:])
	t.roots[idx] = &objectRoot[T]{entries: []*ObjectEntry[T]{entry}}
	t.index[entry.Op.Owner] = entry
	return nil
}

// insertNode places entry relative to target, scanning the full forest in
// forward order (before=true) or reverse order (before=false). It stops at
// the first entry that either *is* the target, or targets the same OpId
// and orders after the new entry — placing concurrent siblings of one
// target in OpId-descending order (the RGA tie-break). If the scan
// exhausts without a match (the target is not in the tree), the entry
// falls back to the tail of the last root (before) or the head of the
// first root (after); in an empty tree it fails with MissingTarget.
func (t *ObjectTree[T]) insertNode(target OpId, entry *ObjectEntry[T], before bool) error {
	pos, found, err := t.findInsert(target, entry.Op, before)
	if err != nil {
		return err
	}

	if !found {
		if len(t.roots) == 0 {
			return newError(MissingTarget, "no entry found for target %+v", target)
		}
		if before {
			last := t.roots[len(t.roots)-1]
			last.entries = append(last.entries, entry)
		} else {
			first := t.roots[0]
			first.entries = append([]*ObjectEntry[T]{entry}, first.entries...)
		}
		t.index[entry.Op.Owner] = entry
		return nil
	}

	root := t.roots[pos.root]
	at := pos.entry
	if !before {
		at++
	}
	root.entries = append(root.entries, nil)
	copy(root.entries[at+1:], root.entries[at:])
	root.entries[at] = entry
	t.index[entry.Op.Owner] = entry
	return nil
}

func (t *ObjectTree[T]) findInsert(target OpId, newOp Operation[T], forward bool) (treePos, bool, error) {
	rootRange := t.rootIndices(forward)
	for _, ri := range rootRange {
		entryRange := entryIndices(len(t.roots[ri].entries), forward)
		for _, ei := range entryRange {
			op := t.roots[ri].entries[ei].Op
			if op.Owner.Equal(target) {
				return treePos{ri, ei}, true, nil
			}
			if op.Target != nil && op.Target.Equal(target) {
				less, err := newOp.Owner.Less(op.Owner)
				if err != nil {
					return treePos{}, false, err
				}
				if less {
					return treePos{ri, ei}, true, nil
				}
			}
		}
	}
	return treePos{}, false, nil
}

func (t *ObjectTree[T]) rootIndices(forward bool) []int {
	n := len(t.roots)
	idx := make([]int, n)
	for i := range idx {
		if forward {
			idx[i] = i
		} else {
			idx[i] = n - 1 - i
		}
	}
	return idx
}

func entryIndices(n int, forward bool) []int {
	idx := make([]int, n)
	for i := range idx {
		if forward {
			idx[i] = i
		} else {
			idx[i] = n - 1 - i
		}
	}
	return idx
}

// Visible returns the payloads of every non-tombstoned entry, in tree
// (in-order) order: roots in stored order, each root's entries in stored
// order.
func (t *ObjectTree[T]) Visible() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []T
	for _, r := range t.roots {
		for _, e := range r.entries {
			if !e.Tombstone {
				out = append(out, e.Op.Payload)
			}
		}
	}
	return out
}

// VisibleEntries returns every non-tombstoned entry, in tree order. Used by
// Sequence to resolve a user-facing position into the OpId it targets.
func (t *ObjectTree[T]) VisibleEntries() []*ObjectEntry[T] {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []*ObjectEntry[T]
	for _, r := range t.roots {
		for _, e := range r.entries {
			if !e.Tombstone {
				out = append(out, e)
			}
		}
	}
	return out
}

// Entries returns every entry in the tree (tombstoned or not), in tree
// order. Used by Sequence.Append to find the first entry overall.
func (t *ObjectTree[T]) Entries() []*ObjectEntry[T] {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []*ObjectEntry[T]
	for _, r := range t.roots {
		out = append(out, r.entries...)
	}
	return out
}

// Len returns the total number of entries (including tombstones).
func (t *ObjectTree[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, r := range t.roots {
		n += len(r.entries)
	}
	return n
}
