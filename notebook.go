package gocrdt

// Notebook is a Sequence of Cells: the top-level document CRDT. Cells are
// identified by their position in the visible sequence, mirroring the way
// Cell identifies characters by position — a document is a sequence of
// sequences.
type Notebook struct {
	seq *Sequence[*Cell]
}

// NewNotebook constructs an empty Notebook owned by replica id.
func NewNotebook(id ReplicaId) *Notebook {
	return &Notebook{seq: NewSequence[*Cell](id)}
}

// ReplicaID returns the ReplicaId this Notebook was constructed with.
func (n *Notebook) ReplicaID() ReplicaId { return n.seq.ReplicaID() }

// CreateCell inserts a new, empty cell. If index is nil the cell is
// appended; otherwise it is inserted at *index, failing with
// IndexOutOfRange if that position isn't in [0, Len()).
func (n *Notebook) CreateCell(index *int) error {
	cell := NewCell(n.seq.ReplicaID())
	if index == nil {
		return n.seq.Append(cell)
	}
	return n.seq.Insert(*index, cell)
}

// UpdateCell replaces the text of the cell at index with text, diffing
// against its current content so only the changed characters are
// represented as operations. A cell that arrived from another replica is
// first rebound to this notebook's ReplicaId, so the new operations are
// minted under that id. Fails with IndexOutOfRange if index is out of
// range.
func (n *Notebook) UpdateCell(index int, text string) error {
	cells := n.seq.Get()
	if index < 0 || index >= len(cells) {
		return newError(IndexOutOfRange, "index %d out of range of notebook with length %d", index, len(cells))
	}
	cell := cells[index]
	if cell.seq.id != n.seq.id {
		clock := NewGrowCounter(n.seq.id)
		if err := clock.Merge(cell.seq.clock); err != nil {
			return err
		}
		cell.seq.id, cell.seq.clock = n.seq.id, clock
	}
	return cell.Update(text)
}

// RemoveCell tombstones the cell at index. Fails with IndexOutOfRange if
// index is out of range.
func (n *Notebook) RemoveCell(index int) error {
	return n.seq.Remove(index)
}

// GetCellData returns the text of every visible cell, in order.
func (n *Notebook) GetCellData() []string {
	cells := n.seq.Get()
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.GetText()
	}
	return out
}

// Value returns the notebook's visible cell texts, satisfying CRDT.
func (n *Notebook) Value() any { return n.GetCellData() }

// Len returns the number of visible cells.
func (n *Notebook) Len() int { return n.seq.Len() }

// Merge reconciles other's state into n, recursively merging each pair of
// corresponding cells once the cell sequence itself has converged.
func (n *Notebook) Merge(other *Notebook) error {
	return n.seq.Merge(other.seq)
}
