package types_test

import (
	"testing"

	"github.com/ferrite-lang/ferritec/internal/types"
	"github.com/stretchr/testify/require"
)

func TestPool_InternsIdenticalBasicTypes(t *testing.T) {
	p := types.NewPool()
	a := p.Basic("Point", nil, false)
	b := p.Basic("Point", nil, false)
	require.Same(t, a, b)
}

func TestPool_MutabilityProducesDistinctInterning(t *testing.T) {
	p := types.NewPool()
	immutable := p.Basic("Point", nil, false)
	mutable := p.Basic("Point", nil, true)
	require.NotEqual(t, immutable.String(), mutable.String())
	require.False(t, types.Equals(immutable, mutable))
}

func TestPool_SetMutableReinterns(t *testing.T) {
	p := types.NewPool()
	immutable := p.Basic("Point", nil, false)
	madeMutable := p.SetMutable(immutable, true)
	again := p.Basic("Point", nil, true)
	require.Same(t, madeMutable, again)
}

func TestPool_GenericArgsDistinguishInterning(t *testing.T) {
	p := types.NewPool()
	boxInt := p.Basic("Box", []types.Type{p.Int()}, false)
	boxFloat := p.Basic("Box", []types.Type{p.Float()}, false)
	require.False(t, types.Equals(boxInt, boxFloat))
	require.Equal(t, "Box<Int>", boxInt.String())
}

func TestPool_PointerVsReferenceSigil(t *testing.T) {
	p := types.NewPool()
	nullable := p.Ptr(p.Int(), true, false)
	nonNull := p.Ptr(p.Int(), false, false)
	require.Equal(t, "Int*", nullable.String())
	require.Equal(t, "Int&", nonNull.String())
}

func TestPool_ArraySizedVsUnsized(t *testing.T) {
	p := types.NewPool()
	sized := p.ArrayOf(p.Int(), 4, false)
	unsized := p.ArrayOf(p.Int(), -1, false)
	require.Equal(t, "[4]Int", sized.String())
	require.Equal(t, "[]Int", unsized.String())
}

func TestIsNumericAndOrdinal(t *testing.T) {
	p := types.NewPool()
	require.True(t, types.IsNumeric(p.Int()))
	require.True(t, types.IsNumeric(p.Float()))
	require.False(t, types.IsNumeric(p.Bool()))
	require.True(t, types.IsOrdinal(p.Char()))
}

func TestImplements_StructuralConformance(t *testing.T) {
	p := types.NewPool()
	sig := &types.FunctionType{Params: nil, Result: p.Int()}
	ok := types.Implements(
		map[string]types.Type{"x": p.Int()},
		map[string]*types.FunctionType{"area": sig},
		map[string]types.Type{"x": p.Int()},
		map[string]*types.FunctionType{"area": sig},
	)
	require.True(t, ok)
}
