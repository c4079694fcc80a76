package geokdnn

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMedianSplitter_ExactSplit_D7 checks that splitting the fixture
// dataset on latitude picks the record at the middle rank as pivot and
// partitions the rest on either side of it.
func TestMedianSplitter_ExactSplit_D7(t *testing.T) {
	splitter := NewMedianSplitter(MedianExact, nil)
	left, right, pivot, ok := splitter.Split(d7Dataset(), AxisLatitude)
	require.True(t, ok)

	assert.Equal(t, "4", pivot.ID)
	assert.Equal(t, map[string]bool{"0": true, "6": true, "2": true}, idSet(left))
	assert.Equal(t, map[string]bool{"5": true, "1": true, "3": true}, idSet(right))
}

// TestMedianSplitter_EmptyInput checks that an empty input yields no
// left/right sets and ok=false.
func TestMedianSplitter_EmptyInput(t *testing.T) {
	splitter := NewMedianSplitter(MedianExact, nil)
	left, right, _, ok := splitter.Split(nil, AxisLatitude)
	assert.False(t, ok)
	assert.Empty(t, left)
	assert.Empty(t, right)
}

func TestMedianSplitter_PivotExcludedFromBothSets(t *testing.T) {
	splitter := NewMedianSplitter(MedianExact, nil)
	items := d7Dataset()
	left, right, pivot, ok := splitter.Split(items, AxisLongitude)
	require.True(t, ok)

	for _, r := range left {
		assert.NotEqual(t, pivot.ID, r.ID)
	}
	for _, r := range right {
		assert.NotEqual(t, pivot.ID, r.ID)
	}
	assert.Equal(t, len(items), len(left)+len(right)+1)
}

func TestMedianSplitter_ExactPartitionRespectsAxisOrdering(t *testing.T) {
	splitter := NewMedianSplitter(MedianExact, nil)
	items := d7Dataset()
	left, right, pivot, ok := splitter.Split(items, AxisLongitude)
	require.True(t, ok)

	for _, r := range left {
		assert.LessOrEqual(t, r.Value(AxisLongitude), pivot.Value(AxisLongitude))
	}
	for _, r := range right {
		assert.Greater(t, r.Value(AxisLongitude), pivot.Value(AxisLongitude))
	}
}

func TestMedianSplitter_Sampled_PartitionsFullInputByAxis(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	splitter := &MedianSplitter{Mode: MedianSampled, SampleSize: 50, Threshold: 200, Rand: r}

	items := make([]Record, 1000)
	for i := range items {
		items[i] = Record{
			ID:        strconv.Itoa(i),
			Latitude:  r.Float64()*180 - 90,
			Longitude: r.Float64()*360 - 180,
		}
	}

	left, right, pivot, ok := splitter.Split(items, AxisLatitude)
	require.True(t, ok)
	assert.Equal(t, len(items), len(left)+len(right)+1)

	for _, rec := range left {
		assert.LessOrEqual(t, rec.Value(AxisLatitude), pivot.Value(AxisLatitude))
	}
	for _, rec := range right {
		assert.Greater(t, rec.Value(AxisLatitude), pivot.Value(AxisLatitude))
	}
}

func TestMedianSplitter_Sampled_BelowThresholdUsesExact(t *testing.T) {
	splitter := &MedianSplitter{Mode: MedianSampled, SampleSize: 10, Threshold: 1000, Rand: rand.New(rand.NewSource(1))}
	left, right, pivot, ok := splitter.Split(d7Dataset(), AxisLatitude)
	require.True(t, ok)
	assert.Equal(t, "4", pivot.ID)
	assert.Equal(t, map[string]bool{"0": true, "6": true, "2": true}, idSet(left))
	assert.Equal(t, map[string]bool{"5": true, "1": true, "3": true}, idSet(right))
}
