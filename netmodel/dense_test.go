package netmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDense_SetAt(t *testing.T) {
	m, err := NewDense(2, 3)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 2, 42.5))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 42.5, v)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
}

func TestDense_OutOfBounds(t *testing.T) {
	m, err := NewDense(2, 2)
	require.NoError(t, err)
	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, ErrDenseIndexOutOfBounds)
	err = m.Set(-1, 0, 1)
	assert.ErrorIs(t, err, ErrDenseIndexOutOfBounds)
}

func TestNewDense_InvalidDimensions(t *testing.T) {
	_, err := NewDense(0, 5)
	assert.Error(t, err)
	_, err = NewDense(5, -1)
	assert.Error(t, err)
}

func TestCapabilityTable_Get(t *testing.T) {
	labs := []Laboratory{
		{ID: "L1", TestTypes: map[string]TestCapability{"CD4": {Available: true, QualityScore: 0.9}}},
		{ID: "L2", TestTypes: map[string]TestCapability{}},
	}
	demands := []TestDemand{{AreaID: "A1", TestType: "CD4", Count: 1}}
	table := BuildCapabilityTable(labs, demands)

	cap, ok := table.Get(0, "CD4")
	require.True(t, ok)
	assert.Equal(t, 0.9, cap.QualityScore)

	_, ok = table.Get(1, "CD4")
	assert.False(t, ok)

	_, ok = table.Get(0, "UNKNOWN")
	assert.False(t, ok)
}

func TestRNGForStream_Deterministic(t *testing.T) {
	a := RNGForStream(42, 7)
	b := RNGForStream(42, 7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Int63(), b.Int63())
	}
}

func TestRNGForStream_DifferentStreamsDiverge(t *testing.T) {
	a := RNGForStream(42, 1)
	b := RNGForStream(42, 2)
	assert.NotEqual(t, a.Int63(), b.Int63())
}

func TestPermRange(t *testing.T) {
	rng := RNGForStream(1, 1)
	perm := PermRange(5, rng)
	require.Len(t, perm, 5)
	seen := make(map[int]bool)
	for _, v := range perm {
		seen[v] = true
	}
	assert.Len(t, seen, 5)
}

func TestAllocation_CloneIsIndependent(t *testing.T) {
	a := NewAllocation()
	key := DemandKey{AreaID: "A1", TestType: "CD4"}
	a.Add(key, "L1", 5)

	clone := a.Clone()
	clone.Add(key, "L1", 10)

	assert.Equal(t, 5, a.TotalFor(key))
	assert.Equal(t, 15, clone.TotalFor(key))
}

func TestDense_MustAt(t *testing.T) {
	m, err := NewDense(1, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 1, 7.5))

	assert.Equal(t, 7.5, m.MustAt(0, 1))
	assert.Panics(t, func() { m.MustAt(1, 0) })
}
