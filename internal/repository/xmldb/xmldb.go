// Package xmldb is a flat-file record store. Each collection lives in one
// XML file of <record> elements whose children are field/value pairs, all
// stored as text. Every mutation is a whole-collection read-modify-rewrite
// serialized by a per-collection mutex, and files are replaced by rename so
// a partial write is never observable.
package xmldb

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"drivehub-backend/internal/repository"
)

// Record is one stored row: a flat mapping from field name to text value.
type Record map[string]string

// DecodeError reports a malformed collection file or field value. It is
// surfaced to the caller rather than skipping the record.
type DecodeError struct {
	Collection string
	Path       string
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s (%s): %v", e.Collection, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DB provides locked access to the collection files in one data directory.
type DB struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Open prepares a data directory for use.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &DB{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

func (db *DB) lockFor(collection string) *sync.Mutex {
	db.mu.Lock()
	defer db.mu.Unlock()
	l, ok := db.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		db.locks[collection] = l
	}
	return l
}

func (db *DB) path(collection string) string {
	return filepath.Join(db.dir, collection+".xml")
}

// Exists reports whether the collection file is present on disk.
func (db *DB) Exists(collection string) bool {
	_, err := os.Stat(db.path(collection))
	return err == nil
}

// View runs fn with a consistent snapshot of the collection. A missing file
// is an empty collection, not an error.
func (db *DB) View(collection string, fn func(recs []Record) error) error {
	l := db.lockFor(collection)
	l.Lock()
	defer l.Unlock()

	recs, err := db.load(collection)
	if err != nil {
		return err
	}
	return fn(recs)
}

// Update runs fn under the collection lock and rewrites the whole collection
// with its result. An error from fn aborts without writing.
func (db *DB) Update(collection string, fn func(recs []Record) ([]Record, error)) error {
	l := db.lockFor(collection)
	l.Lock()
	defer l.Unlock()

	recs, err := db.load(collection)
	if err != nil {
		return err
	}
	out, err := fn(recs)
	if err != nil {
		return err
	}
	return db.save(collection, out)
}

func (db *DB) load(collection string) ([]Record, error) {
	path := db.path(collection)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	recs, err := decodeRecords(data)
	if err != nil {
		return nil, &DecodeError{Collection: collection, Path: path, Err: err}
	}
	return recs, nil
}

func (db *DB) save(collection string, recs []Record) error {
	data, err := encodeRecords(collection, recs)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", collection, err)
	}

	tmp, err := os.CreateTemp(db.dir, collection+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), db.path(collection)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", collection, err)
	}
	return nil
}

type xmlField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type xmlRecord struct {
	XMLName xml.Name   `xml:"record"`
	Fields  []xmlField `xml:",any"`
}

type xmlCollection struct {
	XMLName xml.Name
	Records []xmlRecord `xml:"record"`
}

func decodeRecords(data []byte) ([]Record, error) {
	var col xmlCollection
	if err := xml.Unmarshal(data, &col); err != nil {
		return nil, err
	}

	recs := make([]Record, 0, len(col.Records))
	for _, xr := range col.Records {
		rec := make(Record, len(xr.Fields))
		for _, f := range xr.Fields {
			rec[f.XMLName.Local] = strings.TrimSpace(f.Value)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func encodeRecords(collection string, recs []Record) ([]byte, error) {
	col := xmlCollection{XMLName: xml.Name{Local: collection}}
	for _, rec := range recs {
		fields := make([]string, 0, len(rec))
		for name := range rec {
			fields = append(fields, name)
		}
		sort.Strings(fields)

		xr := xmlRecord{}
		for _, name := range fields {
			xr.Fields = append(xr.Fields, xmlField{
				XMLName: xml.Name{Local: name},
				Value:   rec[name],
			})
		}
		col.Records = append(col.Records, xr)
	}

	body, err := xml.MarshalIndent(col, "", "  ")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Store bundles the repositories backed by one data directory. Absent
// collection files are seeded with the bootstrap record set on open.
type Store struct {
	Users    repository.UserRepository
	Vehicles repository.VehicleRepository
	Rentals  repository.RentalRepository

	db *DB
}

// NewStore opens the data directory, seeds missing collections, and wires
// the entity repositories.
func NewStore(dataDir string) (*Store, error) {
	db, err := Open(dataDir)
	if err != nil {
		return nil, err
	}
	if err := seed(db); err != nil {
		return nil, fmt.Errorf("failed to seed data directory: %w", err)
	}
	return &Store{
		Users:    &userRepo{db: db},
		Vehicles: &vehicleRepo{db: db},
		Rentals:  &rentalRepo{db: db},
		db:       db,
	}, nil
}
