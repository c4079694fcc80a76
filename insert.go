package geokdnn

// Inserter implements non-balancing single-record insertion: a leaf is
// attached at the first absent child slot along the descent path defined
// by the same axis rule as search. It performs no rebalancing; after
// more than O(sqrt(n)) insertions since the last build, a full rebuild
// is advised.
type Inserter struct {
	Store RecordStore
}

// NewInserter returns an inserter writing through store.
func NewInserter(store RecordStore) *Inserter {
	return &Inserter{Store: store}
}

// Insert attaches record as a leaf. If the tree is currently empty,
// root_id is set to record's id and Insert returns without descending.
func (ins *Inserter) Insert(record Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	record.LeftID = NoID
	record.RightID = NoID
	if err := ins.Store.PutRecord(record); err != nil {
		return err
	}

	rootID, ok, err := ins.Store.GetScalar(RootIDKey)
	if err != nil {
		return err
	}
	if !ok || rootID == NoID {
		return ins.Store.SetScalar(RootIDKey, record.ID)
	}

	currentID := rootID
	axis := AxisLatitude
	for {
		current, err := ins.Store.GetRecord(currentID)
		if err != nil {
			return err
		}
		goLeft := record.Value(axis) < current.Value(axis)
		nextAxis := axisForDepth(int(axis) + 1)

		if goLeft {
			if current.LeftID == NoID {
				return ins.Store.UpdateField(currentID, FieldLeftID, record.ID)
			}
			currentID = current.LeftID
		} else {
			if current.RightID == NoID {
				return ins.Store.UpdateField(currentID, FieldRightID, record.ID)
			}
			currentID = current.RightID
		}
		axis = nextAxis
	}
}

// FindItem looks up the node matching target's coordinates, descending
// with the same axis rule as insertion and search.
func (ins *Inserter) FindItem(target Record) (Record, bool, error) {
	rootID, ok, err := ins.Store.GetScalar(RootIDKey)
	if err != nil || !ok || rootID == NoID {
		return Record{}, false, err
	}

	currentID := rootID
	axis := AxisLatitude
	for currentID != NoID {
		current, err := ins.Store.GetRecord(currentID)
		if err != nil {
			return Record{}, false, err
		}
		if current.Latitude == target.Latitude && current.Longitude == target.Longitude {
			return current, true, nil
		}
		if target.Value(axis) < current.Value(axis) {
			currentID = current.LeftID
		} else {
			currentID = current.RightID
		}
		axis = axisForDepth(int(axis) + 1)
	}
	return Record{}, false, nil
}
