package cache

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/ulikunitz/xz"
	"go.etcd.io/bbolt"

	"github.com/FocuswithJustin/rsb-cli/core/corpus"
	"github.com/FocuswithJustin/rsb-cli/internal/testcorpus"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "rsb.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func loadFixture(t *testing.T) *corpus.Document {
	t.Helper()
	doc, err := corpus.Load(testcorpus.FS())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return doc
}

func TestStore_PutGet(t *testing.T) {
	s := openStore(t)
	doc := loadFixture(t)

	if _, ok := s.Get("abc"); ok {
		t.Fatal("Get on empty cache should miss")
	}

	if err := s.Put("abc", doc); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok := s.Get("abc")
	if !ok {
		t.Fatal("Get after Put should hit")
	}
	if got.Len() != doc.Len() {
		t.Errorf("Len() = %d; want %d", got.Len(), doc.Len())
	}
	if got.Verse(0, 0, 0) != doc.Verse(0, 0, 0) {
		t.Errorf("Verse(0,0,0) = %q; want %q", got.Verse(0, 0, 0), doc.Verse(0, 0, 0))
	}
	if got.Stats() != doc.Stats() {
		t.Errorf("Stats() = %+v; want %+v", got.Stats(), doc.Stats())
	}

	st, err := s.Info()
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if st.Entries != 1 {
		t.Errorf("Entries = %d; want 1", st.Entries)
	}
	if st.Hits != 1 || st.Misses != 1 {
		t.Errorf("Hits/Misses = %d/%d; want 1/1", st.Hits, st.Misses)
	}
	if st.TotalBytes <= 0 || st.FileBytes <= 0 {
		t.Errorf("sizes should be positive: %+v", st)
	}
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rsb.db")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put("k", loadFixture(t)); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, ok := s.Get("k"); !ok {
		t.Error("entry should survive reopen")
	}
}

func TestStore_RemoveAndClear(t *testing.T) {
	s := openStore(t)
	doc := loadFixture(t)

	for _, k := range []string{"a", "b", "c"} {
		if err := s.Put(k, doc); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.Remove("a"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, ok := s.Get("a"); ok {
		t.Error("removed entry should miss")
	}

	n, err := s.Clear()
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Clear() = %d; want 2", n)
	}

	st, _ := s.Info()
	if st.Entries != 0 {
		t.Errorf("Entries after Clear = %d; want 0", st.Entries)
	}

	// Store stays usable after Clear.
	if err := s.Put("d", doc); err != nil {
		t.Fatalf("Put after Clear error = %v", err)
	}
}

func putRaw(t *testing.T, s *Store, key string, value []byte) {
	t.Helper()
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocuments).Put([]byte(key), value)
	})
	if err != nil {
		t.Fatal(err)
	}
}

func compress(t *testing.T, data string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	io.WriteString(w, data)
	w.Close()
	return buf.Bytes()
}

func TestStore_CorruptEntryIsMiss(t *testing.T) {
	tests := []struct {
		name  string
		value []byte
	}{
		{name: "not xz", value: []byte("garbage")},
		{name: "bad json", value: compress(t, "{not json")},
		{name: "stale version", value: compress(t, `{"version":0,"document":{"books":[{"title":"T","chapters":[["x"]]}]}}`)},
		{name: "empty document", value: compress(t, `{"version":1,"document":{"books":[]}}`)},
		{name: "untitled book", value: compress(t, `{"version":1,"document":{"books":[{"title":"","chapters":[["x"]]}]}}`)},
		{name: "empty chapter", value: compress(t, `{"version":1,"document":{"books":[{"title":"T","chapters":[[]]}]}}`)},
		{name: "null book", value: compress(t, `{"version":1,"document":{"books":[null]}}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openStore(t)
			putRaw(t, s, "k", tt.value)
			if _, ok := s.Get("k"); ok {
				t.Error("corrupt entry should be a miss")
			}
		})
	}
}

func TestStore_ValidEnvelopeDecodes(t *testing.T) {
	s := openStore(t)
	putRaw(t, s, "k", compress(t, `{"version":1,"document":{"books":[{"title":"T","chapters":[["x","y"]]}]}}`))

	doc, ok := s.Get("k")
	if !ok {
		t.Fatal("hand-written envelope should decode")
	}
	if doc.Verse(0, 0, 1) != "y" {
		t.Errorf("Verse = %q; want y", doc.Verse(0, 0, 1))
	}
}

func TestStore_EncodeErrors(t *testing.T) {
	s := openStore(t)
	doc := loadFixture(t)

	orig := jsonMarshalFunc
	jsonMarshalFunc = func(any) ([]byte, error) { return nil, errors.New("marshal failed") }
	if err := s.Put("k", doc); err == nil {
		t.Error("Put should fail when marshal fails")
	}
	jsonMarshalFunc = orig

	origW := xzNewWriter
	xzNewWriter = func(io.Writer) (*xz.Writer, error) { return nil, errors.New("no xz") }
	if err := s.Put("k", doc); err == nil {
		t.Error("Put should fail when the xz writer cannot be created")
	}
	xzNewWriter = origW
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	// A directory where the file should be.
	if _, err := Open(dir); err == nil {
		t.Error("Open(directory) should fail")
	}
}

func TestLoadFunc(t *testing.T) {
	s := openStore(t)
	fsys := testcorpus.FS()

	load := LoadFunc(s, fsys, "fixture")

	first, err := load()
	if err != nil {
		t.Fatalf("first load error = %v", err)
	}
	st, _ := s.Info()
	if st.Entries != 1 || st.Hits != 0 {
		t.Fatalf("after first load: %+v; want 1 entry, 0 hits", st)
	}

	second, err := load()
	if err != nil {
		t.Fatalf("second load error = %v", err)
	}
	st, _ = s.Info()
	if st.Hits != 1 {
		t.Errorf("second load should hit the cache: %+v", st)
	}
	if second.Stats() != first.Stats() {
		t.Errorf("cached Stats() = %+v; want %+v", second.Stats(), first.Stats())
	}

	// Changing a book invalidates the key.
	fsys["01_exod.txt"] = &fstest.MapFile{Data: []byte(testcorpus.Exodus + "1 added\n")}
	third, err := load()
	if err != nil {
		t.Fatal(err)
	}
	if third.Stats().Verses != first.Stats().Verses+1 {
		t.Errorf("Verses = %d; want %d", third.Stats().Verses, first.Stats().Verses+1)
	}
	st, _ = s.Info()
	if st.Entries != 2 {
		t.Errorf("Entries = %d; want 2", st.Entries)
	}
}

func TestLoadFunc_NilStore(t *testing.T) {
	doc, err := LoadFunc(nil, testcorpus.FS(), "fixture")()
	if err != nil {
		t.Fatal(err)
	}
	if doc.Len() != 2 {
		t.Errorf("Len() = %d; want 2", doc.Len())
	}
}

func TestLoadFunc_ParseErrorNotCached(t *testing.T) {
	s := openStore(t)
	fsys := fstest.MapFS{"0_a.txt": {Data: []byte("1 untitled\n")}}

	if _, err := LoadFunc(s, fsys, "bad")(); err == nil {
		t.Fatal("load of untitled book should fail")
	}
	st, _ := s.Info()
	if st.Entries != 0 {
		t.Errorf("Entries = %d; want 0", st.Entries)
	}
}
