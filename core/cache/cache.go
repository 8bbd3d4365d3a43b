// Package cache persists parsed corpora so that later runs can skip parsing.
//
// Entries live in a bbolt file, in the "documents" bucket. The key is the
// corpus fingerprint (see corpus.Fingerprint) and the value is an
// xz-compressed JSON envelope holding the Document. The cache is a derived
// artifact: an unreadable or stale entry is a miss, never an error.
package cache

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/ulikunitz/xz"
	"go.etcd.io/bbolt"

	"github.com/FocuswithJustin/rsb-cli/core/corpus"
	apperrors "github.com/FocuswithJustin/rsb-cli/core/errors"
	"github.com/FocuswithJustin/rsb-cli/internal/logging"
)

// formatVersion is bumped whenever the envelope or Document encoding changes.
const formatVersion = 1

var bucketDocuments = []byte("documents")

// Injectable for tests.
var (
	jsonMarshalFunc = json.Marshal
	xzNewWriter     = xz.NewWriter
	xzNewReader     = xz.NewReader
)

// envelope is the JSON value stored for each key.
type envelope struct {
	Version  int              `json:"version"`
	Created  time.Time        `json:"created"`
	Document *corpus.Document `json:"document"`
}

// Stats contains cache statistics.
type Stats struct {
	Path       string
	Entries    int
	TotalBytes int64 // compressed bytes across all entries
	FileBytes  int64 // size of the database file
	Hits       int64 // hits since Open
	Misses     int64 // misses since Open
}

// Store is a persistent Document cache.
type Store struct {
	db   *bbolt.DB
	path string

	mu     sync.Mutex
	hits   int64
	misses int64
}

// Open opens or creates the cache file at path, creating parent directories.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, apperrors.NewIO("create cache directory", filepath.Dir(path), err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, apperrors.NewIO("open cache", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDocuments)
		return err
	})
	if err != nil {
		db.Close()
		return nil, apperrors.NewIO("initialize cache", path, err)
	}

	return &Store{db: db, path: path}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Get returns the Document stored under key. Missing, undecodable and
// structurally invalid entries are all reported as a miss.
func (s *Store) Get(key string) (*corpus.Document, bool) {
	var raw []byte
	_ = s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketDocuments).Get([]byte(key)); v != nil {
			raw = bytes.Clone(v)
		}
		return nil
	})

	if raw == nil {
		s.count(false)
		logging.CacheEvent("cache_miss", key)
		return nil, false
	}

	doc, err := decode(raw)
	if err != nil {
		s.count(false)
		logging.CacheEvent("cache_corrupt", key, "error", err)
		return nil, false
	}

	s.count(true)
	logging.CacheEvent("cache_hit", key, "books", doc.Len())
	return doc, true
}

// Put stores doc under key, replacing any previous entry.
func (s *Store) Put(key string, doc *corpus.Document) error {
	data, err := encode(doc)
	if err != nil {
		return err
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocuments).Put([]byte(key), data)
	})
	if err != nil {
		return apperrors.NewIO("write cache", s.path, err)
	}
	logging.CacheEvent("cache_store", key, "bytes", len(data))
	return nil
}

// Remove deletes the entry for key, if any.
func (s *Store) Remove(key string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocuments).Delete([]byte(key))
	})
	if err != nil {
		return apperrors.NewIO("write cache", s.path, err)
	}
	return nil
}

// Clear removes every entry and returns how many there were.
func (s *Store) Clear() (int, error) {
	var n int
	err := s.db.Update(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketDocuments).Stats().KeyN
		if err := tx.DeleteBucket(bucketDocuments); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketDocuments)
		return err
	})
	if err != nil {
		return 0, apperrors.NewIO("clear cache", s.path, err)
	}
	logging.CacheEvent("cache_clear", "", "entries", n)
	return n, nil
}

// Info returns entry counts and sizes.
func (s *Store) Info() (Stats, error) {
	st := Stats{Path: s.path}
	err := s.db.View(func(tx *bbolt.Tx) error {
		st.FileBytes = tx.Size()
		return tx.Bucket(bucketDocuments).ForEach(func(_, v []byte) error {
			st.Entries++
			st.TotalBytes += int64(len(v))
			return nil
		})
	})
	if err != nil {
		return Stats{}, apperrors.NewIO("read cache", s.path, err)
	}

	s.mu.Lock()
	st.Hits, st.Misses = s.hits, s.misses
	s.mu.Unlock()
	return st, nil
}

func (s *Store) count(hit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if hit {
		s.hits++
	} else {
		s.misses++
	}
}

func encode(doc *corpus.Document) ([]byte, error) {
	data, err := jsonMarshalFunc(envelope{
		Version:  formatVersion,
		Created:  time.Now().UTC(),
		Document: doc,
	})
	if err != nil {
		return nil, &apperrors.ParseError{Format: "cache", Message: "encode document", Err: err}
	}

	var buf bytes.Buffer
	w, err := xzNewWriter(&buf)
	if err != nil {
		return nil, apperrors.Wrap(err, "create xz writer")
	}
	if _, err := w.Write(data); err != nil {
		return nil, apperrors.Wrap(err, "compress document")
	}
	if err := w.Close(); err != nil {
		return nil, apperrors.Wrap(err, "compress document")
	}
	return buf.Bytes(), nil
}

func decode(raw []byte) (*corpus.Document, error) {
	r, err := xzNewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, &apperrors.ParseError{Format: "cache", Message: "bad xz stream", Err: err}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &apperrors.ParseError{Format: "cache", Message: "truncated xz stream", Err: err}
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &apperrors.ParseError{Format: "cache", Message: "bad envelope", Err: err}
	}
	if env.Version != formatVersion {
		return nil, apperrors.NewParse("cache", "", "stale format version")
	}
	if err := validate(env.Document); err != nil {
		return nil, err
	}
	return env.Document, nil
}

// validate re-checks the invariants the parser guarantees, since a cached
// Document bypasses the parser.
func validate(doc *corpus.Document) error {
	if doc == nil || doc.Len() == 0 {
		return apperrors.NewParse("cache", "", "empty document")
	}
	for i, b := range doc.Books {
		if b == nil || b.Title == "" || b.Len() == 0 {
			return apperrors.NewParse("cache", "", "invalid book "+strconv.Itoa(i))
		}
		for _, ch := range b.Chapters {
			if len(ch) == 0 {
				return apperrors.NewParse("cache", "", "empty chapter in book "+strconv.Itoa(i))
			}
		}
	}
	return nil
}
