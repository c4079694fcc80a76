package geokdnn

import (
	"math/rand"
	"sort"
)

// Default tuning constants for sampled-median splitting: a sample of
// 10,000 records, enabled once the input is at least 5x the sample size.
const (
	DefaultSampleSize      = 10_000
	DefaultSampleThreshold = 50_000
)

// MedianMode selects how MedianSplitter picks its pivot.
type MedianMode int

const (
	// MedianExact sorts the full input by axis key and picks the
	// element at index len/2.
	MedianExact MedianMode = iota
	// MedianSampled draws a uniform sample once the input is large
	// enough, and partitions the full input by the sample's median.
	MedianSampled
)

// MedianSplitter picks a pivot from a set of records along one axis and
// partitions the remainder into left (<= pivot) and right (> pivot)
// sets.
type MedianSplitter struct {
	Mode       MedianMode
	SampleSize int
	Threshold  int
	Rand       *rand.Rand
}

// NewMedianSplitter returns a splitter configured with the default
// sampling constants. Pass a seeded *rand.Rand for deterministic builds.
func NewMedianSplitter(mode MedianMode, r *rand.Rand) *MedianSplitter {
	if r == nil {
		r = rand.New(rand.NewSource(1))
	}
	return &MedianSplitter{
		Mode:       mode,
		SampleSize: DefaultSampleSize,
		Threshold:  DefaultSampleThreshold,
		Rand:       r,
	}
}

// Split partitions items along axis, returning (left, right, pivot).
// Called on an empty input it returns nil sets, a zero pivot and ok=false.
func (m *MedianSplitter) Split(items []Record, axis Axis) (left, right []Record, pivot Record, ok bool) {
	if len(items) == 0 {
		return nil, nil, Record{}, false
	}
	if m.Mode == MedianSampled && len(items) >= m.Threshold {
		return m.splitSampled(items, axis)
	}
	return m.splitExact(items, axis)
}

func (m *MedianSplitter) splitExact(items []Record, axis Axis) (left, right []Record, pivot Record, ok bool) {
	sorted := make([]Record, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Value(axis) < sorted[j].Value(axis)
	})
	medianIndex := len(sorted) / 2
	pivot = sorted[medianIndex]
	left = sorted[:medianIndex]
	right = sorted[medianIndex+1:]
	return left, right, pivot, true
}

// splitSampled draws a uniform sample of SampleSize items, picks the
// sample's median as the pivot, and partitions the *entire* input by
// that pivot's axis value. Records with equal axis value that are not
// the pivot (matched by identifier, not attribute equality) fall to the
// left set, an accepted source of mild imbalance under this mode.
func (m *MedianSplitter) splitSampled(items []Record, axis Axis) (left, right []Record, pivot Record, ok bool) {
	sample := make([]Record, m.SampleSize)
	for i := range sample {
		sample[i] = items[m.Rand.Intn(len(items))]
	}
	sort.Slice(sample, func(i, j int) bool {
		return sample[i].Value(axis) < sample[j].Value(axis)
	})
	pivot = sample[len(sample)/2]
	pivotValue := pivot.Value(axis)

	left = make([]Record, 0, len(items))
	right = make([]Record, 0, len(items))
	for _, item := range items {
		if item.ID == pivot.ID {
			continue
		}
		if item.Value(axis) <= pivotValue {
			left = append(left, item)
		} else {
			right = append(right, item)
		}
	}
	return left, right, pivot, true
}
