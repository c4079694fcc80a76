package geokdnn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validDataset mirrors D7's shape but keeps latitude within [-90, 90] so
// it can pass through Index.Build's input validation.
func validDataset() []Record {
	return []Record{
		{ID: "0", Age: 18, Name: "hamza harkous", Latitude: 40.3, Longitude: 13.3},
		{ID: "1", Age: 40, Name: "John Doe", Latitude: -20.3, Longitude: -3.3},
		{ID: "2", Age: 80, Name: "Doroles Doe", Latitude: 89.3, Longitude: -59.3},
		{ID: "3", Age: 35, Name: "Debby Smith", Latitude: 20.3, Longitude: 53.3},
		{ID: "4", Age: 33, Name: "agent smith", Latitude: 60.3, Longitude: 43.3},
		{ID: "5", Age: 35, Name: "Jane Smith", Latitude: 10.3, Longitude: 53.3},
		{ID: "6", Age: 77, Name: "FLoat Number", Latitude: -60.3, Longitude: -13.3},
	}
}

func TestIndex_QueryBeforeBuildIsNotBuilt(t *testing.T) {
	idx := NewIndex(NewMemoryStore(), NewMedianSplitter(MedianExact, nil))
	_, err := idx.Query(0, 0, 30, 1, 0)
	assert.ErrorIs(t, err, ErrNotBuilt)
}

func TestIndex_ProfileBeforeBuildIsNotBuilt(t *testing.T) {
	idx := NewIndex(NewMemoryStore(), NewMedianSplitter(MedianExact, nil))
	_, err := idx.Profile(5, 1, 0)
	assert.ErrorIs(t, err, ErrNotBuilt)
}

func TestIndex_FindItemBeforeBuildIsNotBuilt(t *testing.T) {
	idx := NewIndex(NewMemoryStore(), NewMedianSplitter(MedianExact, nil))
	_, _, err := idx.FindItem(Record{Latitude: 1, Longitude: 1})
	assert.ErrorIs(t, err, ErrNotBuilt)
}

func TestIndex_BuildRejectsOutOfRangeLatitude(t *testing.T) {
	idx := NewIndex(NewMemoryStore(), NewMedianSplitter(MedianExact, nil))
	err := idx.Build([]Record{{ID: "bad", Latitude: 200, Longitude: 0, Age: 1}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIndex_QueryRejectsNonPositiveK(t *testing.T) {
	idx := NewIndex(NewMemoryStore(), NewMedianSplitter(MedianExact, nil))
	require.NoError(t, idx.Build(validDataset()))

	_, err := idx.Query(0, 0, 30, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIndex_EndToEnd_BuildQueryInsert(t *testing.T) {
	idx := NewIndex(NewMemoryStore(), NewMedianSplitter(MedianExact, nil))
	require.NoError(t, idx.Build(validDataset()))

	results, err := idx.Query(60.3, 43.3, 33, 1, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "4", results[0].Record.ID)

	require.NoError(t, idx.Insert(Record{ID: "new", Latitude: 61, Longitude: 44, Age: 33}))

	found, ok, err := idx.FindItem(Record{Latitude: 61, Longitude: 44})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", found.ID)

	results, err = idx.Query(61, 44, 33, 2, 0)
	require.NoError(t, err)
	ids := map[string]bool{}
	for _, n := range results {
		ids[n.Record.ID] = true
	}
	assert.True(t, ids["new"])
}

func TestIndex_InsertIntoEmptyIndexMakesItBuilt(t *testing.T) {
	idx := NewIndex(NewMemoryStore(), NewMedianSplitter(MedianExact, nil))
	_, err := idx.Query(0, 0, 0, 1, 0)
	require.ErrorIs(t, err, ErrNotBuilt)

	require.NoError(t, idx.Insert(Record{ID: "only", Latitude: 1, Longitude: 1, Age: 1}))

	results, err := idx.Query(1, 1, 1, 1, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "only", results[0].Record.ID)
}

func TestIndex_SecondBuildReplacesFirst(t *testing.T) {
	idx := NewIndex(NewMemoryStore(), NewMedianSplitter(MedianExact, nil))
	require.NoError(t, idx.Build(validDataset()))
	require.NoError(t, idx.Build([]Record{{ID: "solo", Latitude: 5, Longitude: 5, Age: 5}}))

	results, err := idx.Query(5, 5, 5, 5, 100)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "solo", results[0].Record.ID)
}
