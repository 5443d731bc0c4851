package gocrdt

import "sort"

// merger is implemented by payload types that are themselves CRDTs (the
// Notebook-of-Cells case). When a Sequence's payload satisfies merger, a
// successful Merge recursively merges corresponding visible payloads after
// reconciling the operation logs: a Notebook is a Sequence of Cells, each
// Cell a Sequence of characters, so merging one level recurses into the
// next.
type merger interface {
	mergeWith(other any) error
}

// cloneable is implemented by payload types that carry their own mutable
// state (the Cell-in-Notebook case). Without it, applying a remote
// operation whose payload is a pointer would leave two replicas that
// observed the same remote value sharing the very same object — an edit on
// one replica's copy would then leak into the other's before either side
// ever called Merge. Sequence clones such a payload the moment it's
// introduced into a local tree so each replica's copy is independently
// mutable.
type cloneable interface {
	clonePayload() (any, error)
}

func clonePayloadIfNeeded[T any](payload T) (T, error) {
	c, ok := any(payload).(cloneable)
	if !ok {
		return payload, nil
	}
	cloned, err := c.clonePayload()
	if err != nil {
		var zero T
		return zero, err
	}
	return cloned.(T), nil
}

// sortByOwner sorts ops by OpId ascending, the order Merge and Clone both
// require so that an Insert's target is always applied before the
// Operation that references it.
func sortByOwner[T any](ops []Operation[T]) error {
	var sortErr error
	sort.SliceStable(ops, func(i, j int) bool {
		less, err := ops[i].Owner.Less(ops[j].Owner)
		if err != nil {
			if sortErr == nil {
				sortErr = err
			}
			return false
		}
		return less
	})
	return sortErr
}

// Sequence is the ordered-collection CRDT. It applies Operations to an
// ObjectTree and reconciles divergent replicas by exchanging operation
// logs: merge is associative, commutative and idempotent over the full
// state (clock, operations, tree).
type Sequence[T any] struct {
	id         ReplicaId
	clock      *GrowCounter
	operations *GrowSet[T]
	tree       *ObjectTree[T]
}

// NewSequence creates an empty Sequence owned by replica id.
func NewSequence[T any](id ReplicaId) *Sequence[T] {
	return &Sequence[T]{
		id:         id,
		clock:      NewGrowCounter(id),
		operations: NewGrowSet[T](),
		tree:       NewObjectTree[T](),
	}
}

// ReplicaID returns the ReplicaId this Sequence was constructed with.
func (s *Sequence[T]) ReplicaID() ReplicaId { return s.id }

func (s *Sequence[T]) nextOwner() (OpId, error) {
	if err := s.clock.Add(1); err != nil {
		return OpId{}, err
	}
	return OpId{Replica: s.id, Tick: s.clock.Get()}, nil
}

func (s *Sequence[T]) applyLocal(op Operation[T]) error {
	if err := s.operations.Add(op); err != nil {
		return err
	}
	return s.tree.Apply(op)
}

// Append adds item to the end of the visible sequence.
func (s *Sequence[T]) Append(item T) error {
	visible := s.tree.VisibleEntries()

	var target *OpId
	action := InsertAfter
	if len(visible) == 0 {
		action = InsertBefore
		if all := s.tree.Entries(); len(all) > 0 {
			owner := all[0].Op.Owner
			target = &owner
		}
	} else {
		owner := visible[len(visible)-1].Op.Owner
		target = &owner
	}

	owner, err := s.nextOwner()
	if err != nil {
		return err
	}
	op := Operation[T]{Owner: owner, Action: action, Target: target, Payload: item}
	return s.applyLocal(op)
}

// Insert places item at the given 0-based position in the visible
// sequence, failing with IndexOutOfRange if position is not in
// [0, len(Get())).
func (s *Sequence[T]) Insert(position int, item T) error {
	visible := s.tree.VisibleEntries()
	if position < 0 || position >= len(visible) {
		return newError(IndexOutOfRange, "position %d out of range of sequence with length %d", position, len(visible))
	}
	target := visible[position].Op.Owner

	owner, err := s.nextOwner()
	if err != nil {
		return err
	}
	op := Operation[T]{Owner: owner, Action: InsertBefore, Target: &target, Payload: item}
	return s.applyLocal(op)
}

// Remove tombstones the entry at the given 0-based position in the visible
// sequence, failing with IndexOutOfRange if position is not in
// [0, len(Get())).
func (s *Sequence[T]) Remove(position int) error {
	visible := s.tree.VisibleEntries()
	if position < 0 || position >= len(visible) {
		return newError(IndexOutOfRange, "position %d out of range of sequence with length %d", position, len(visible))
	}
	target := visible[position].Op.Owner

	owner, err := s.nextOwner()
	if err != nil {
		return err
	}
	op := Operation[T]{Owner: owner, Action: Remove, Target: &target}
	return s.applyLocal(op)
}

// Get returns the payloads of non-tombstoned entries, in tree order.
func (s *Sequence[T]) Get() []T {
	return s.tree.Visible()
}

// Value returns the visible sequence, satisfying CRDT.
func (s *Sequence[T]) Value() any { return s.Get() }

// Len returns the length of the visible sequence.
func (s *Sequence[T]) Len() int {
	return len(s.tree.VisibleEntries())
}

// OperationCount returns the number of operations in the log, including
// tombstoned ones — used to check the monotonicity property across merges.
func (s *Sequence[T]) OperationCount() int {
	return s.operations.Len()
}

// ClockValue returns the Sequence's logical clock value.
func (s *Sequence[T]) ClockValue() uint64 {
	return s.clock.Get()
}

// Merge reconciles other's state into s: the clocks are merged, the set
// difference of operation logs is computed and sorted by OpId ascending,
// each new operation is applied to the local tree, and finally the two
// operation logs are unioned. If the payload type is itself a CRDT
// (implements merger), each visible payload of s is then recursively
// merged with the visible payload other holds for the same operation,
// where other has one.
//
// The collision check (ReplicaIdCollision) between the two logs and the
// sort both run before any mutation, so a Merge that fails on them leaves
// s untouched. An error from applying an operation to the tree or from a
// recursive payload merge is returned after s has been partly updated.
func (s *Sequence[T]) Merge(other *Sequence[T]) error {
	if s == other {
		return nil
	}

	newOps, err := other.operations.Difference(s.operations)
	if err != nil {
		return err
	}
	if err := sortByOwner(newOps); err != nil {
		return err
	}

	if err := s.clock.Merge(other.clock); err != nil {
		return err
	}

	for _, op := range newOps {
		if op.Action != Remove {
			payload, err := clonePayloadIfNeeded(op.Payload)
			if err != nil {
				return err
			}
			op.Payload = payload
		}
		if err := s.tree.Apply(op); err != nil {
			return err
		}
	}

	if err := s.operations.Merge(other.operations); err != nil {
		return err
	}

	otherPayloads := make(map[OpId]T)
	for _, e := range other.tree.VisibleEntries() {
		otherPayloads[e.Op.Owner] = e.Op.Payload
	}
	for _, e := range s.tree.VisibleEntries() {
		m, ok := any(e.Op.Payload).(merger)
		theirs, shared := otherPayloads[e.Op.Owner]
		if !ok || !shared {
			continue
		}
		if err := m.mergeWith(any(theirs)); err != nil {
			return err
		}
	}

	return nil
}

// Clone returns an independent Sequence carrying the same clock, operation
// log and tree contents as s — including tombstones — replaying the
// operation log from scratch so the clone shares no mutable state with s,
// recursively cloning any payload that is itself a mutable CRDT.
func (s *Sequence[T]) Clone() (*Sequence[T], error) {
	clone := NewSequence[T](s.id)
	if err := clone.clock.Merge(s.clock); err != nil {
		return nil, err
	}

	ops := s.operations.Get()
	if err := sortByOwner(ops); err != nil {
		return nil, err
	}

	for _, op := range ops {
		if op.Action != Remove {
			payload, err := clonePayloadIfNeeded(op.Payload)
			if err != nil {
				return nil, err
			}
			op.Payload = payload
		}
		if err := clone.operations.Add(op); err != nil {
			return nil, err
		}
		if err := clone.tree.Apply(op); err != nil {
			return nil, err
		}
	}
	return clone, nil
}
