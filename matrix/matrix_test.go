// Package matrix_test provides unit tests for Dense covering bad shapes,
// bounds violations, and the happy path.
package matrix_test

import (
	"testing"

	"github.com/adfeel220/saihu/matrix"
	"github.com/stretchr/testify/require"
)

func TestNewDense_BadShape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		rows int
		cols int
	}{
		{"zero rows", 0, 3},
		{"zero cols", 3, 0},
		{"negative rows", -1, 3},
		{"negative cols", 3, -1},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			_, err := matrix.NewDense(c.rows, c.cols)
			require.ErrorIs(t, err, matrix.ErrBadShape)
		})
	}
}

func TestDense_AtSet_OutOfRange(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = m.At(0, 3)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	err = m.Set(2, 0, 1.0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestDense_SetAt_HappyPath(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 2, m.Cols())

	require.NoError(t, m.Set(0, 0, 1))
	require.NoError(t, m.Set(0, 1, 2))
	require.NoError(t, m.Set(1, 0, 3))
	require.NoError(t, m.Set(1, 1, 4))

	for _, tc := range []struct {
		row, col int
		want     float64
	}{
		{0, 0, 1}, {0, 1, 2}, {1, 0, 3}, {1, 1, 4},
	} {
		got, err := m.At(tc.row, tc.col)
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
	}
}

func TestDense_Clone_Independence(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 7))

	clone := m.Clone()
	require.NoError(t, m.Set(0, 0, 99))

	got, err := clone.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 7.0, got, "clone must not observe mutations to the original")

	var _ matrix.Matrix = clone
}

func TestDense_String(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDense(1, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 1))
	require.NoError(t, m.Set(0, 1, 2))

	require.Equal(t, "[1, 2]\n", m.String())
}
