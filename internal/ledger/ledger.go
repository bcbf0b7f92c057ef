package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"vigil/internal/fileutil"
	"vigil/internal/logging"
)

// FileName is the ledger file stored inside every day partition.
const FileName = "screenshots.json"

// Store owns one day partition: the screenshots.json ledger plus its image
// files under <root>/<day>/. Mutations rewrite the whole file through a temp
// file and rename so a crash never leaves a half-written ledger behind.
//
// Access from multiple goroutines is serialized by the internal mutex, but
// two Stores opened on the same partition do not coordinate with each other.
type Store struct {
	day    string
	dir    string
	logger *slog.Logger

	mu      sync.RWMutex
	records []Record
}

// Open loads the partition for day under root, creating an empty ledger file
// when none exists yet. A ledger that cannot be read or parsed is logged and
// treated as empty; the damaged file is left untouched until the next
// mutation rewrites it.
func Open(root, day string, logger *slog.Logger) (*Store, error) {
	if day == "" {
		return nil, errors.New("ledger: day must not be empty")
	}
	logger = logging.NewComponentLogger(logger, "ledger")

	dir := filepath.Join(root, day)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create partition directory: %w", err)
	}

	s := &Store{day: day, dir: dir, logger: logger}

	data, err := os.ReadFile(s.path())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := s.save(); err != nil {
			return nil, fmt.Errorf("initialize ledger: %w", err)
		}
	case err != nil:
		logger.Warn("ledger unreadable, starting with empty view",
			logging.String("day", day),
			logging.Error(err))
	default:
		var doc document
		if err := json.Unmarshal(data, &doc); err != nil {
			logger.Warn("ledger malformed, starting with empty view",
				logging.String("day", day),
				logging.String("path", s.path()),
				logging.Error(err))
			break
		}
		s.records = doc.Screenshots
	}

	logger.Debug("ledger opened",
		logging.String("day", day),
		logging.Int("records", len(s.records)))
	return s, nil
}

// Day returns the partition key (YYYY-MM-DD).
func (s *Store) Day() string { return s.day }

// Dir returns the partition directory.
func (s *Store) Dir() string { return s.dir }

// ImagePath returns the absolute path of a capture image in this partition.
func (s *Store) ImagePath(filename string) string {
	return filepath.Join(s.dir, filename)
}

// Append adds a record to the end of the sequence and persists the ledger.
func (s *Store) Append(rec Record) error {
	if rec.Filename == "" {
		return errors.New("ledger: record filename must not be empty")
	}
	if rec.Classification == "" {
		rec.Classification = ClassNone
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec)
	if err := s.save(); err != nil {
		return fmt.Errorf("persist ledger: %w", err)
	}

	s.logger.Debug("record appended",
		logging.String("filename", rec.Filename),
		logging.Int("records", len(s.records)))
	return nil
}

// UpdateClassification rewrites the label of the record with the given
// filename and persists the ledger. The bool reports whether a record was
// found; insertion order is preserved.
func (s *Store) UpdateClassification(filename string, class Classification) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(filename)
	if idx < 0 {
		return false, nil
	}

	s.records[idx].Classification = class
	if err := s.save(); err != nil {
		return true, fmt.Errorf("persist ledger: %w", err)
	}

	s.logger.Debug("record classified",
		logging.String("filename", filename),
		logging.String("classification", string(class)))
	return true, nil
}

// Remove deletes the record with the given filename and persists the ledger.
// The caller owns deletion of the corresponding image file.
func (s *Store) Remove(filename string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(filename)
	if idx < 0 {
		return false, nil
	}

	s.records = append(s.records[:idx], s.records[idx+1:]...)
	if err := s.save(); err != nil {
		return true, fmt.Errorf("persist ledger: %w", err)
	}

	s.logger.Debug("record removed", logging.String("filename", filename))
	return true, nil
}

// Find returns the record with the given filename, if present.
func (s *Store) Find(filename string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(filename)
	if idx < 0 {
		return Record{}, false
	}
	return s.records[idx], true
}

// Records returns a copy of the record sequence in capture order.
func (s *Store) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len reports the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Totals aggregates record counts per label. Records carrying an unknown
// label are counted as none, so the three buckets always sum to Len.
func (s *Store) Totals() (onTask, offTask, none int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		switch rec.Classification {
		case ClassOnTask:
			onTask++
		case ClassOffTask:
			offTask++
		}
	}
	none = len(s.records) - onTask - offTask
	return onTask, offTask, none
}

func (s *Store) indexOf(filename string) int {
	for i, rec := range s.records {
		if rec.Filename == filename {
			return i
		}
	}
	return -1
}

func (s *Store) path() string {
	return filepath.Join(s.dir, FileName)
}

// save writes the full ledger atomically. Callers hold the write lock.
func (s *Store) save() error {
	doc := document{Day: s.day, Screenshots: s.records}
	if doc.Screenshots == nil {
		doc.Screenshots = []Record{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}

	return fileutil.WriteFileAtomic(s.path(), data, 0o644)
}
