package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitCloseAndFarPoints(t *testing.T) {
	d, err := New(DefaultEps, DefaultMinSamples)
	require.NoError(t, err)

	labels, err := d.Fit([][]float32{
		{0, 0},
		{0.5, 0},
		{10, 10},
	})
	require.NoError(t, err)

	assert.Equal(t, labels[0], labels[1])
	assert.NotEqual(t, labels[0], labels[2])
	for _, l := range labels {
		assert.NotEqual(t, Noise, l)
	}
}

func TestFitChainLinkage(t *testing.T) {
	d, err := New(1.0, 1)
	require.NoError(t, err)

	// a-b and b-c are within eps, a-c is not: radius linkage still joins all three.
	labels, err := d.Fit([][]float32{
		{0, 0},
		{0.9, 0},
		{1.8, 0},
		{5, 0},
	})
	require.NoError(t, err)

	assert.Equal(t, [][]int{{0, 1, 2}, {3}}, Partition(labels))
}

func TestFitEpsIsInclusive(t *testing.T) {
	d, err := New(1.0, 1)
	require.NoError(t, err)

	labels, err := d.Fit([][]float32{{0, 0}, {1, 0}})
	require.NoError(t, err)
	assert.Equal(t, labels[0], labels[1])
}

func TestFitDeterministic(t *testing.T) {
	d, err := New(0.5, 1)
	require.NoError(t, err)

	vectors := [][]float32{
		{3, 3}, {0, 0}, {3.2, 3}, {0.1, 0}, {9, 9},
	}
	first, err := d.Fit(vectors)
	require.NoError(t, err)
	second, err := d.Fit(vectors)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, Partition(first), Partition(second))
	assert.Equal(t, []int{0, 1, 0, 1, 2}, first)
}

func TestFitNoiseWithLargerMinSamples(t *testing.T) {
	d, err := New(1.0, 3)
	require.NoError(t, err)

	labels, err := d.Fit([][]float32{
		{0, 0}, {0.5, 0}, {0, 0.5},
		{1.4, 0},
		{20, 20},
	})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0, 0, 0, Noise}, labels)
}

func TestFitSinglePoint(t *testing.T) {
	d, err := New(DefaultEps, DefaultMinSamples)
	require.NoError(t, err)

	labels, err := d.Fit([][]float32{{1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, labels)
}

func TestFitEmpty(t *testing.T) {
	d, err := New(DefaultEps, DefaultMinSamples)
	require.NoError(t, err)

	labels, err := d.Fit(nil)
	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestFitDimensionMismatch(t *testing.T) {
	d, err := New(DefaultEps, DefaultMinSamples)
	require.NoError(t, err)

	_, err = d.Fit([][]float32{{0, 0}, {0, 0, 0}})
	assert.Error(t, err)
}

func TestNewRejectsInvalidParams(t *testing.T) {
	_, err := New(0, 1)
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = New(1.1, 0)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestPartition(t *testing.T) {
	assert.Equal(t, [][]int{{0, 2}, {1}, {3}}, Partition([]int{7, 3, 7, Noise}))
	assert.Nil(t, Partition(nil))
}
