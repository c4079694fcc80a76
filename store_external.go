package geokdnn

import (
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore is the "external key-value" RecordStore backing variant:
// an embedded, on-disk key-value engine standing in for a remote service
// addressed by string keys. Hash fields are emulated over Badger's flat
// keyspace by composing "<id>\x00<field>" keys, the conventional way to
// store sub-documents in a plain KV engine; root_id is a bare key.
//
// This plays the role of a remote key-value service without inventing a
// fake network client: no repo in the retrieval pack imports a network
// KV client (no Redis client anywhere in the corpus), so an embedded
// engine that genuinely round-trips through its own storage layer backs
// the "external" variant instead.
type BadgerStore struct {
	db *badger.DB
}

const fieldSep = "\x00"

var recordFields = [...]string{"age", "name", "latitude", "longitude", FieldLeftID, FieldRightID}

// OpenBadgerStore opens (creating if necessary) a Badger database at dir.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, storeUnavailable("failed to open external key-value store", err)
	}
	return &BadgerStore{db: db}, nil
}

func fieldKey(id, field string) []byte {
	return []byte(id + fieldSep + field)
}

func (s *BadgerStore) PutRecord(record Record) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return putRecordTxn(txn, record)
	})
}

func putRecordTxn(txn *badger.Txn, record Record) error {
	fields := map[string]string{
		"age":        strconv.Itoa(record.Age),
		"name":       record.Name,
		"latitude":   strconv.FormatFloat(record.Latitude, 'f', -1, 64),
		"longitude":  strconv.FormatFloat(record.Longitude, 'f', -1, 64),
		FieldLeftID:  noneOr(record.LeftID),
		FieldRightID: noneOr(record.RightID),
	}
	for _, field := range recordFields {
		if err := txn.Set(fieldKey(record.ID, field), []byte(fields[field])); err != nil {
			return err
		}
	}
	return nil
}

// PutRecordsBatch writes many records using Badger's WriteBatch, the
// idiomatic bulk-load primitive — this is the fast path StagingStore.Flush
// uses to write its buffered records in batches of flushBatchSize.
func (s *BadgerStore) PutRecordsBatch(records []Record) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, record := range records {
		fields := map[string]string{
			"age":        strconv.Itoa(record.Age),
			"name":       record.Name,
			"latitude":   strconv.FormatFloat(record.Latitude, 'f', -1, 64),
			"longitude":  strconv.FormatFloat(record.Longitude, 'f', -1, 64),
			FieldLeftID:  noneOr(record.LeftID),
			FieldRightID: noneOr(record.RightID),
		}
		for _, field := range recordFields {
			if err := wb.Set(fieldKey(record.ID, field), []byte(fields[field])); err != nil {
				return err
			}
		}
	}
	return wb.Flush()
}

// SetScalarsBatch writes many scalar entries in one WriteBatch.
func (s *BadgerStore) SetScalarsBatch(scalars map[string]string) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for key, value := range scalars {
		if err := wb.Set([]byte(key), []byte(value)); err != nil {
			return err
		}
	}
	return wb.Flush()
}

func noneOr(id string) string {
	if id == NoID {
		return "None"
	}
	return id
}

func idOrNone(s string) string {
	if s == "None" {
		return NoID
	}
	return s
}

func (s *BadgerStore) GetRecord(id string) (Record, error) {
	record := Record{ID: id}
	err := s.db.View(func(txn *badger.Txn) error {
		for _, field := range recordFields {
			item, err := txn.Get(fieldKey(id, field))
			if err == badger.ErrKeyNotFound {
				return dataIntegrityf("record %q not found in store", id)
			}
			if err != nil {
				return err
			}
			raw, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := assignField(&record, field, string(raw)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Record{}, err
	}
	return record, nil
}

func assignField(record *Record, field, raw string) error {
	var err error
	switch field {
	case "age":
		record.Age, err = strconv.Atoi(raw)
	case "name":
		record.Name = raw
	case "latitude":
		record.Latitude, err = strconv.ParseFloat(raw, 64)
	case "longitude":
		record.Longitude, err = strconv.ParseFloat(raw, 64)
	case FieldLeftID:
		record.LeftID = idOrNone(raw)
	case FieldRightID:
		record.RightID = idOrNone(raw)
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return err
}

func (s *BadgerStore) GetScalar(key string) (string, bool, error) {
	var value string
	found := true
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			found = false
			return nil
		}
		if err != nil {
			return err
		}
		raw, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		value = string(raw)
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return value, found, nil
}

func (s *BadgerStore) SetScalar(key, value string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
}

func (s *BadgerStore) UpdateField(id, field, value string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(fieldKey(id, field), []byte(value))
	})
}

// BeginConstruction/EndConstruction are no-ops on BadgerStore itself:
// construction-mode staging is composition, supplied by StagingStore
// wrapping this backend, not a mode of the backend. Flush has nothing
// staged to drain; it syncs the database to disk.
func (s *BadgerStore) BeginConstruction() {}

func (s *BadgerStore) EndConstruction() error { return nil }

func (s *BadgerStore) Flush() error { return s.db.Sync() }

func (s *BadgerStore) Close() error { return s.db.Close() }
