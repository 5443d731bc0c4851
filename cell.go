package gocrdt

import "github.com/pmezard/go-difflib/difflib"

// Cell is a Sequence whose payload type is a single rune, fronted by a
// text-oriented façade. It is the character-level CRDT one level below
// Notebook in the cyclic composition described in the design notes: a
// Notebook is a Sequence of Cells, a Cell is a Sequence of runes.
type Cell struct {
	seq *Sequence[rune]
}

// NewCell constructs an empty Cell owned by replica id.
func NewCell(id ReplicaId) *Cell {
	return &Cell{seq: NewSequence[rune](id)}
}

// AppendText appends each rune of s to the end of the cell.
func (c *Cell) AppendText(s string) error {
	for _, r := range s {
		if err := c.seq.Append(r); err != nil {
			return err
		}
	}
	return nil
}

// InsertText inserts each rune of s starting at pos. pos may equal the
// current text length (append at the end); anything further out of range
// fails with IndexOutOfRange.
func (c *Cell) InsertText(pos int, s string) error {
	if pos < 0 || pos > c.seq.Len() {
		return newError(IndexOutOfRange, "position %d out of range of cell with length %d", pos, c.seq.Len())
	}
	for _, r := range s {
		if pos >= c.seq.Len() {
			if err := c.seq.Append(r); err != nil {
				return err
			}
		} else if err := c.seq.Insert(pos, r); err != nil {
			return err
		}
		pos++
	}
	return nil
}

// RemoveMany removes count runes starting at pos.
func (c *Cell) RemoveMany(pos, count int) error {
	for i := 0; i < count; i++ {
		if err := c.seq.Remove(pos); err != nil {
			return err
		}
	}
	return nil
}

// GetText returns the concatenation of visible runes.
func (c *Cell) GetText() string {
	return string(c.seq.Get())
}

// Value returns the cell's visible text, satisfying CRDT.
func (c *Cell) Value() any { return c.GetText() }

// Len returns the number of visible runes.
func (c *Cell) Len() int { return c.seq.Len() }

// Merge reconciles other's state into c.
func (c *Cell) Merge(other *Cell) error {
	return c.seq.Merge(other.seq)
}

// mergeWith adapts Merge to the merger hook Sequence uses for recursive
// merge when a payload type is itself a CRDT (the Notebook-of-Cells case).
func (c *Cell) mergeWith(other any) error {
	oc, ok := other.(*Cell)
	if !ok {
		return newError(IncompatibleMerge, "Cell.Merge: expected *Cell, got %T", other)
	}
	return c.Merge(oc)
}

// Clone returns an independent Cell with the same operation history
// (inserts, removes, and tombstones) as c. A Notebook clones its cell
// payloads this way whenever a remote operation introduces one into a
// local tree, so two notebooks that both observed the same remote cell
// don't end up editing the same underlying object.
func (c *Cell) Clone() (*Cell, error) {
	seq, err := c.seq.Clone()
	if err != nil {
		return nil, err
	}
	return &Cell{seq: seq}, nil
}

// clonePayload adapts Clone to the cloneable hook Sequence uses to give a
// remote payload independent storage once it's merged into a local tree.
func (c *Cell) clonePayload() (any, error) {
	return c.Clone()
}

// Update computes a character-level edit script between the cell's current
// text and newText, and replays it as Insert/Remove operations so that
// GetText() == newText afterward. The diff is computed with go-difflib's
// LCS-based opcode matcher (the same algorithm family as Python's
// difflib.SequenceMatcher); the exact intermediate operations it emits are
// unspecified by design — only the postcondition (the roundtrip) is part
// of the contract.
func (c *Cell) Update(newText string) error {
	oldRunes := []rune(c.GetText())
	newRunes := []rune(newText)
	if string(oldRunes) == newText {
		return nil
	}

	oldSyms := runeSymbols(oldRunes)
	newSyms := runeSymbols(newRunes)

	matcher := difflib.NewMatcher(oldSyms, newSyms)
	offset := 0
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			continue
		case 'd':
			if err := c.RemoveMany(op.I1+offset, op.I2-op.I1); err != nil {
				return err
			}
			offset -= op.I2 - op.I1
		case 'i':
			if err := c.InsertText(op.I1+offset, string(newRunes[op.J1:op.J2])); err != nil {
				return err
			}
			offset += op.J2 - op.J1
		case 'r':
			if err := c.RemoveMany(op.I1+offset, op.I2-op.I1); err != nil {
				return err
			}
			if err := c.InsertText(op.I1+offset, string(newRunes[op.J1:op.J2])); err != nil {
				return err
			}
			offset += (op.J2 - op.J1) - (op.I2 - op.I1)
		}
	}
	return nil
}

// runeSymbols turns a rune slice into the one-symbol-per-element string
// slice go-difflib's Matcher compares, so the diff operates at character
// granularity rather than go-difflib's usual line/word granularity.
func runeSymbols(runes []rune) []string {
	syms := make([]string, len(runes))
	for i, r := range runes {
		syms[i] = string(r)
	}
	return syms
}
