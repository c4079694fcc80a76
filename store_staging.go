package geokdnn

import "sync"

// flushBatchSize is the number of buffered writes the staging decorator
// accumulates before pushing a batch to the backend.
const flushBatchSize = 100_000

// batchRecordWriter is implemented by backends (BadgerStore) that offer
// a bulk-write fast path. Backends without one (MemoryStore writes are
// already in-process and need no staging at all) just get PutRecord
// called once per buffered entry on flush.
type batchRecordWriter interface {
	PutRecordsBatch(records []Record) error
	SetScalarsBatch(scalars map[string]string) error
}

// StagingStore wraps a RecordStore with construction-mode staging: while
// construction mode is on, PutRecord/SetScalar land in an in-process
// buffer (and reads are served from it), avoiding per-record round-trips
// to the backend during a bulk build. This is composition over the
// backend, not a third parallel backend.
type StagingStore struct {
	backend RecordStore

	mu      sync.Mutex
	active  bool
	records map[string]Record
	scalars map[string]string
}

// NewStagingStore wraps backend with construction-mode staging.
func NewStagingStore(backend RecordStore) *StagingStore {
	return &StagingStore{backend: backend}
}

func (s *StagingStore) BeginConstruction() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
	s.records = make(map[string]Record)
	s.scalars = make(map[string]string)
	s.backend.BeginConstruction()
}

func (s *StagingStore) EndConstruction() error {
	if err := s.Flush(); err != nil {
		return err
	}
	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
	return s.backend.EndConstruction()
}

// Flush drains the staging buffer to the backend in batches of
// flushBatchSize, using the backend's bulk path when available.
func (s *StagingStore) Flush() error {
	s.mu.Lock()
	records := s.records
	scalars := s.scalars
	s.records = make(map[string]Record)
	s.scalars = make(map[string]string)
	s.mu.Unlock()

	if bulk, ok := s.backend.(batchRecordWriter); ok {
		batch := make([]Record, 0, flushBatchSize)
		for _, record := range records {
			batch = append(batch, record)
			if len(batch) == flushBatchSize {
				if err := bulk.PutRecordsBatch(batch); err != nil {
					return err
				}
				batch = batch[:0]
			}
		}
		if len(batch) > 0 {
			if err := bulk.PutRecordsBatch(batch); err != nil {
				return err
			}
		}
		if len(scalars) > 0 {
			if err := bulk.SetScalarsBatch(scalars); err != nil {
				return err
			}
		}
		return s.backend.Flush()
	}

	for _, record := range records {
		if err := s.backend.PutRecord(record); err != nil {
			return err
		}
	}
	for key, value := range scalars {
		if err := s.backend.SetScalar(key, value); err != nil {
			return err
		}
	}
	return s.backend.Flush()
}

func (s *StagingStore) PutRecord(record Record) error {
	s.mu.Lock()
	if s.active {
		s.records[record.ID] = record
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()
	return s.backend.PutRecord(record)
}

func (s *StagingStore) SetScalar(key, value string) error {
	s.mu.Lock()
	if s.active {
		s.scalars[key] = value
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()
	return s.backend.SetScalar(key, value)
}

func (s *StagingStore) GetRecord(id string) (Record, error) {
	s.mu.Lock()
	if s.active {
		if record, ok := s.records[id]; ok {
			s.mu.Unlock()
			return record, nil
		}
	}
	s.mu.Unlock()
	return s.backend.GetRecord(id)
}

func (s *StagingStore) GetScalar(key string) (string, bool, error) {
	s.mu.Lock()
	if s.active {
		if value, ok := s.scalars[key]; ok {
			s.mu.Unlock()
			return value, true, nil
		}
	}
	s.mu.Unlock()
	return s.backend.GetScalar(key)
}

func (s *StagingStore) UpdateField(id, field, value string) error {
	s.mu.Lock()
	if s.active {
		record, ok := s.records[id]
		if !ok {
			s.mu.Unlock()
			return dataIntegrityf("record %q not found in staging buffer", id)
		}
		switch field {
		case FieldLeftID:
			record.LeftID = value
		case FieldRightID:
			record.RightID = value
		}
		s.records[id] = record
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()
	return s.backend.UpdateField(id, field, value)
}

func (s *StagingStore) Close() error { return s.backend.Close() }
