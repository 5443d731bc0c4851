package gocrdt

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCell_AppendAndInsertText(t *testing.T) {
	c := NewCell("alice")
	require.NoError(t, c.AppendText("hello"))
	assert.Equal(t, "hello", c.GetText())

	require.NoError(t, c.InsertText(5, " world"))
	assert.Equal(t, "hello world", c.GetText())

	require.NoError(t, c.RemoveMany(5, 6))
	assert.Equal(t, "hello", c.GetText())
}

func TestCell_Update_Roundtrip(t *testing.T) {
	cases := []struct {
		from, to string
	}{
		{"", "hello"},
		{"hello", ""},
		{"hello", "hallo"},
		{"hello", "hello world"},
		{"hello world", "world"},
		{"abc", "xyz"},
		{"same", "same"},
	}
	for _, tc := range cases {
		c := NewCell("alice")
		require.NoError(t, c.AppendText(tc.from))
		require.NoError(t, c.Update(tc.to))
		assert.Equal(t, tc.to, c.GetText(), "from %q to %q", tc.from, tc.to)
	}
}

func TestCell_Update_RandomRoundtrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("abcdefg")
	randomText := func(n int) string {
		out := make([]rune, n)
		for i := range out {
			out[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(out)
	}

	for i := 0; i < 20; i++ {
		c := NewCell("alice")
		from := randomText(rng.Intn(10))
		to := randomText(rng.Intn(10))
		require.NoError(t, c.AppendText(from))
		require.NoError(t, c.Update(to))
		assert.Equal(t, to, c.GetText(), "iteration %d", i)
	}
}

func TestCell_S5_ConcurrentTextEditsConverge(t *testing.T) {
	base := NewCell("base")
	require.NoError(t, base.AppendText("hello"))

	a := NewCell("alice")
	require.NoError(t, a.Merge(base))
	b := NewCell("bob")
	require.NoError(t, b.Merge(base))

	require.NoError(t, a.Update("hells"))
	require.NoError(t, b.Update("hallo"))

	require.NoError(t, a.Merge(b))
	require.NoError(t, b.Merge(a))

	assert.Equal(t, a.GetText(), b.GetText())
}

func TestCell_MergeWrongType(t *testing.T) {
	c := NewCell("alice")
	err := c.mergeWith("not a cell")
	assert.True(t, IsKind(err, IncompatibleMerge))
}
