package geokdnn

// Neighbor pairs a record with its great-circle distance to the query
// point.
type Neighbor struct {
	Record   Record
	Distance float64
}

type searchFrame struct {
	nodeID string
	axis   Axis
}

// KnnSearcher performs an age-filtered bounded k-nearest-neighbor search:
// a branch-and-bound descent of the tree, using BoundedTopK as the
// search frontier. It is implemented with an explicit work stack rather
// than native recursion, so depth is bounded by heap rather than
// goroutine stack.
type KnnSearcher struct {
	Store RecordStore
}

// NewKnnSearcher returns a searcher reading records through store.
func NewKnnSearcher(store RecordStore) *KnnSearcher {
	return &KnnSearcher{Store: store}
}

// Search returns up to k records closest to query by great-circle
// distance, restricted to records whose age lies within ageTolerance of
// query's age, sorted ascending by distance.
func (s *KnnSearcher) Search(rootID string, query Record, k, ageTolerance int) ([]Neighbor, error) {
	if rootID == NoID {
		return nil, ErrNotBuilt
	}
	if k <= 0 {
		return nil, invalidInputf("k must be positive, got %d", k)
	}
	if ageTolerance < 0 {
		return nil, invalidInputf("age_tolerance must be non-negative, got %d", ageTolerance)
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	frontier := NewBoundedTopK(k)

	stack := newWorkStack[searchFrame]()
	stack.push(searchFrame{nodeID: rootID, axis: AxisLatitude})

	for !stack.empty() {
		frame, _ := stack.pop()
		if frame.nodeID == NoID {
			continue
		}

		node, err := s.Store.GetRecord(frame.nodeID)
		if err != nil {
			return nil, err
		}

		dFull := GreatCircleKM(query.Latitude, query.Longitude, node.Latitude, node.Longitude)
		ageDiff := node.Age - query.Age
		if ageDiff < 0 {
			ageDiff = -ageDiff
		}
		if ageDiff <= ageTolerance {
			frontier.Offer(node, dFull)
		}

		nextAxis := axisForDepth(int(frame.axis) + 1)
		goLeft := query.Value(frame.axis) < node.Value(frame.axis)
		nearID, farID := node.LeftID, node.RightID
		if !goLeft {
			nearID, farID = node.RightID, node.LeftID
		}

		exploreFar := !frontier.IsFull() || AxisLowerBoundKM(query, node, frame.axis) < frontier.PeekMaxScore()

		if exploreFar {
			stack.push(searchFrame{nodeID: farID, axis: nextAxis})
		}
		stack.push(searchFrame{nodeID: nearID, axis: nextAxis})
	}

	neighbors := make([]Neighbor, 0, frontier.Len())
	for _, record := range frontier.DrainSortedAscending() {
		neighbors = append(neighbors, Neighbor{
			Record:   record,
			Distance: GreatCircleKM(query.Latitude, query.Longitude, record.Latitude, record.Longitude),
		})
	}
	return neighbors, nil
}
