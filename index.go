package geokdnn

import "sync"

// Index is the top-level handle the hosting service drives: it owns a
// RecordStore and exposes Build/Query/Insert/Profile. A root reference
// plus a RWMutex guard structural mutation, so read-only queries can run
// concurrently while a Build or Insert is serialized against them and
// against each other.
type Index struct {
	mu       sync.RWMutex
	store    RecordStore
	splitter *MedianSplitter
	rootID   string
	built    bool
}

// NewIndex wires a store and median-split policy into a queryable index.
// The index is not queryable (NotBuilt) until Build or a first Insert
// sets a root.
func NewIndex(store RecordStore, splitter *MedianSplitter) *Index {
	return &Index{store: store, splitter: splitter}
}

// Build runs IndexBuilder over items, replacing any existing tree.
// Concurrent queries must not overlap a Build; callers serialize writes
// externally.
func (idx *Index) Build(items []Record) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for i := range items {
		if err := items[i].Validate(); err != nil {
			return err
		}
	}

	builder := NewIndexBuilder(idx.store, idx.splitter)
	if err := builder.Build(items); err != nil {
		idx.built = false
		return err
	}

	rootID, ok, err := idx.store.GetScalar(RootIDKey)
	if err != nil {
		return err
	}
	if !ok {
		return dataIntegrityf("root_id missing from store after build")
	}
	idx.rootID = rootID
	idx.built = true
	return nil
}

// Query returns up to k records near (latitude, longitude) whose age is
// within ageTolerance of age, sorted by ascending great-circle distance.
func (idx *Index) Query(latitude, longitude float64, age, k, ageTolerance int) ([]Neighbor, error) {
	idx.mu.RLock()
	rootID, built := idx.rootID, idx.built
	idx.mu.RUnlock()

	if !built {
		return nil, ErrNotBuilt
	}

	searcher := NewKnnSearcher(idx.store)
	return searcher.Search(rootID, Record{Latitude: latitude, Longitude: longitude, Age: age}, k, ageTolerance)
}

// Insert attaches record as a leaf without rebalancing. If the tree was
// empty, record becomes the root.
func (idx *Index) Insert(record Record) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	inserter := NewInserter(idx.store)
	if err := inserter.Insert(record); err != nil {
		return err
	}

	rootID, ok, err := idx.store.GetScalar(RootIDKey)
	if err != nil {
		return err
	}
	if ok && rootID != NoID {
		idx.rootID = rootID
		idx.built = true
	}
	return nil
}

// FindItem looks up the record matching target's coordinates.
func (idx *Index) FindItem(target Record) (Record, bool, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if !idx.built {
		return Record{}, false, ErrNotBuilt
	}
	inserter := NewInserter(idx.store)
	return inserter.FindItem(target)
}

// Profile samples numLoops random query points and returns latency
// summary statistics.
func (idx *Index) Profile(numLoops, k, ageTolerance int) (ProfileStats, error) {
	idx.mu.RLock()
	rootID, built := idx.rootID, idx.built
	idx.mu.RUnlock()

	if !built {
		return ProfileStats{}, ErrNotBuilt
	}

	profiler := NewProfiler(NewKnnSearcher(idx.store), rootID)
	return profiler.Run(numLoops, k, ageTolerance)
}

// Close releases the underlying store's resources.
func (idx *Index) Close() error {
	return idx.store.Close()
}
