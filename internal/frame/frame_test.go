package frame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSet(t *testing.T, f *Frame, row, col string, v float64) {
	t.Helper()
	require.NoError(t, f.Set(row, col, v))
}

func TestNew_AllCellsMissing(t *testing.T) {
	f := New([]string{"a", "b", "a"}, []string{"x", "y"})

	assert.Equal(t, []string{"a", "b"}, f.Index())
	assert.Equal(t, []string{"x", "y"}, f.Columns())
	_, ok := f.At("a", "x")
	assert.False(t, ok)
}

func TestSet_UnknownLabels(t *testing.T) {
	f := New([]string{"a"}, []string{"x"})

	assert.ErrorIs(t, f.Set("zzz", "x", 1), ErrUnknownRow)
	assert.ErrorIs(t, f.Set("a", "zzz", 1), ErrUnknownColumn)
}

func TestTranspose(t *testing.T) {
	f := New([]string{"Total Revenue", "Cost Of Revenue"}, []string{"2022-12-31", "2023-12-31"})
	mustSet(t, f, "Total Revenue", "2022-12-31", 100)
	mustSet(t, f, "Total Revenue", "2023-12-31", 110)
	mustSet(t, f, "Cost Of Revenue", "2023-12-31", 40)

	tr := f.Transpose()

	assert.Equal(t, []string{"2022-12-31", "2023-12-31"}, tr.Index())
	assert.Equal(t, []string{"Total Revenue", "Cost Of Revenue"}, tr.Columns())
	v, ok := tr.At("2023-12-31", "Total Revenue")
	assert.True(t, ok)
	assert.Equal(t, 110.0, v)
	_, ok = tr.At("2022-12-31", "Cost Of Revenue")
	assert.False(t, ok)
}

func TestJoin_KeepsOnlyCommonRows(t *testing.T) {
	income := New([]string{"2020", "2021", "2022"}, []string{"Total Revenue"})
	mustSet(t, income, "2020", "Total Revenue", 1)
	mustSet(t, income, "2021", "Total Revenue", 2)
	mustSet(t, income, "2022", "Total Revenue", 3)

	cash := New([]string{"2021", "2022", "2023"}, []string{"Free Cash Flow"})
	mustSet(t, cash, "2021", "Free Cash Flow", 20)
	mustSet(t, cash, "2022", "Free Cash Flow", 30)
	mustSet(t, cash, "2023", "Free Cash Flow", 40)

	joined, err := income.Join(cash)
	require.NoError(t, err)

	assert.Equal(t, []string{"2021", "2022"}, joined.Index())
	assert.Equal(t, []string{"Total Revenue", "Free Cash Flow"}, joined.Columns())
	v, _ := joined.At("2022", "Free Cash Flow")
	assert.Equal(t, 30.0, v)
}

func TestJoin_OverlappingColumns(t *testing.T) {
	a := New([]string{"r"}, []string{"x"})
	b := New([]string{"r"}, []string{"x"})

	_, err := a.Join(b)
	assert.ErrorIs(t, err, ErrOverlappingColumns)
}

func TestSelect(t *testing.T) {
	f := New([]string{"r"}, []string{"x", "y", "z"})
	mustSet(t, f, "r", "z", 3)

	sel, err := f.Select("z", "x", "z")
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "x"}, sel.Columns())
	v, ok := sel.At("r", "z")
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)

	_, err = f.Select("missing")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestDropNA(t *testing.T) {
	f := New([]string{"2021", "2022", "2023"}, []string{"x", "y"})
	mustSet(t, f, "2021", "x", 1)
	mustSet(t, f, "2021", "y", 2)
	mustSet(t, f, "2022", "x", 3)
	mustSet(t, f, "2023", "x", 5)
	mustSet(t, f, "2023", "y", 6)

	out := f.DropNA()

	assert.Equal(t, []string{"2021", "2023"}, out.Index())
	col, err := out.Column("y")
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 6}, col)
}

func TestColumn_CopiesValues(t *testing.T) {
	f := New([]string{"a", "b"}, []string{"x"})
	mustSet(t, f, "a", "x", 1)

	col, err := f.Column("x")
	require.NoError(t, err)
	assert.Equal(t, 1.0, col[0])
	assert.True(t, math.IsNaN(col[1]))

	col[0] = 99
	v, _ := f.At("a", "x")
	assert.Equal(t, 1.0, v)
}
