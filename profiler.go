package geokdnn

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

// ProfileStats summarizes per-query latency over a profiling run: count,
// min/max/mean, variance, and the fraction of queries exceeding one
// second.
type ProfileStats struct {
	Count               int
	Min                 time.Duration
	Max                 time.Duration
	Mean                time.Duration
	Variance            float64 // variance of latency in seconds^2
	FractionExceeding1s float64
}

// Profiler samples query points and aggregates their search latency.
type Profiler struct {
	Searcher *KnnSearcher
	RootID   string
	Rand     *rand.Rand
	// LatitudeHalfWidth bounds sampled query latitude to
	// [-LatitudeHalfWidth, LatitudeHalfWidth] rather than the full
	// [-90, 90], matching how profiling query points are biased toward
	// lower latitudes by default. Set to 90 to sample the full range.
	LatitudeHalfWidth float64
}

// NewProfiler returns a profiler querying through searcher against the
// tree rooted at rootID.
func NewProfiler(searcher *KnnSearcher, rootID string) *Profiler {
	return &Profiler{
		Searcher:          searcher,
		RootID:            rootID,
		Rand:              rand.New(rand.NewSource(1)),
		LatitudeHalfWidth: 45,
	}
}

// Run samples numLoops random query points (latitude uniform over
// [-LatitudeHalfWidth, LatitudeHalfWidth], longitude uniform over
// [-180, 180], a fixed age of 23) and returns latency summary
// statistics.
func (p *Profiler) Run(numLoops, k, ageTolerance int) (ProfileStats, error) {
	log.Info().Int("loops", numLoops).Msg("profiling k-nearest-neighbor queries")

	durations := make([]time.Duration, 0, numLoops)
	for i := 0; i < numLoops; i++ {
		lat := (p.Rand.Float64()*2 - 1) * p.LatitudeHalfWidth
		lon := (p.Rand.Float64()*2 - 1) * 180

		query := Record{Latitude: lat, Longitude: lon, Age: 23, Name: "profiling query"}

		start := time.Now()
		if _, err := p.Searcher.Search(p.RootID, query, k, ageTolerance); err != nil {
			return ProfileStats{}, err
		}
		durations = append(durations, time.Since(start))
	}

	return summarize(durations), nil
}

func summarize(durations []time.Duration) ProfileStats {
	n := len(durations)
	if n == 0 {
		return ProfileStats{}
	}

	min, max := durations[0], durations[0]
	var sum time.Duration
	exceeding := 0
	for _, d := range durations {
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
		sum += d
		if d.Seconds() > 1 {
			exceeding++
		}
	}
	mean := sum / time.Duration(n)

	var sumSqDiff float64
	for _, d := range durations {
		diff := d.Seconds() - mean.Seconds()
		sumSqDiff += diff * diff
	}
	variance := sumSqDiff / float64(n)

	return ProfileStats{
		Count:               n,
		Min:                 min,
		Max:                 max,
		Mean:                mean,
		Variance:            variance,
		FractionExceeding1s: float64(exceeding) / float64(n),
	}
}
