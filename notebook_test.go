package gocrdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotebook_CreateUpdateRemoveCell(t *testing.T) {
	n := NewNotebook("alice")

	require.NoError(t, n.CreateCell(nil))
	require.NoError(t, n.UpdateCell(0, "first"))

	require.NoError(t, n.CreateCell(nil))
	require.NoError(t, n.UpdateCell(1, "second"))

	idx := 1
	require.NoError(t, n.CreateCell(&idx))
	require.NoError(t, n.UpdateCell(1, "inserted"))

	assert.Equal(t, []string{"first", "inserted", "second"}, n.GetCellData())

	require.NoError(t, n.RemoveCell(1))
	assert.Equal(t, []string{"first", "second"}, n.GetCellData())
}

func TestNotebook_UpdateCellOutOfRange(t *testing.T) {
	n := NewNotebook("alice")
	err := n.UpdateCell(0, "x")
	assert.True(t, IsKind(err, IndexOutOfRange))
}

func TestNotebook_S5_ConcurrentCellEditsConverge(t *testing.T) {
	base := NewNotebook("base")
	require.NoError(t, base.CreateCell(nil))
	require.NoError(t, base.UpdateCell(0, "hello"))

	a := NewNotebook("alice")
	require.NoError(t, a.Merge(base))
	b := NewNotebook("bob")
	require.NoError(t, b.Merge(base))

	require.NoError(t, a.UpdateCell(0, "hells"))
	require.NoError(t, b.UpdateCell(0, "hallo"))

	require.NoError(t, a.Merge(b))
	require.NoError(t, b.Merge(a))

	assert.Equal(t, a.GetCellData(), b.GetCellData())
}

func TestNotebook_MergedCellsAreIndependentlyMutable(t *testing.T) {
	base := NewNotebook("base")
	require.NoError(t, base.CreateCell(nil))
	require.NoError(t, base.UpdateCell(0, "hello"))

	a := NewNotebook("alice")
	require.NoError(t, a.Merge(base))
	b := NewNotebook("bob")
	require.NoError(t, b.Merge(base))

	// Editing one replica's cell must not be visible on the other's until
	// an explicit Merge reconciles them — otherwise the two "replicas"
	// would just be two views onto the same shared Cell object.
	require.NoError(t, a.UpdateCell(0, "hells"))
	assert.Equal(t, []string{"hello"}, b.GetCellData())

	require.NoError(t, b.UpdateCell(0, "hallo"))
	assert.Equal(t, []string{"hells"}, a.GetCellData())
}

func TestNotebook_MergeIsCommutative(t *testing.T) {
	a := NewNotebook("alice")
	require.NoError(t, a.CreateCell(nil))
	require.NoError(t, a.UpdateCell(0, "from alice"))

	b := NewNotebook("bob")
	require.NoError(t, b.CreateCell(nil))
	require.NoError(t, b.UpdateCell(0, "from bob"))

	ab := NewNotebook("ab")
	require.NoError(t, ab.Merge(a))
	require.NoError(t, ab.Merge(b))

	ba := NewNotebook("ba")
	require.NoError(t, ba.Merge(b))
	require.NoError(t, ba.Merge(a))

	assert.Equal(t, ab.GetCellData(), ba.GetCellData())
}
