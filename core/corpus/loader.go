package corpus

import (
	"sync"
	"sync/atomic"
)

// LoadFunc produces a Document, typically by parsing or reading a cache.
type LoadFunc func() (*Document, error)

// Loader memoizes a LoadFunc. The Document is published through an atomic
// pointer; Reload swaps the whole handle so readers never observe a partial
// Document.
type Loader struct {
	load LoadFunc

	once sync.Once
	err  error
	doc  atomic.Pointer[Document]
}

// NewLoader returns a Loader that calls load on first use.
func NewLoader(load LoadFunc) *Loader {
	return &Loader{load: load}
}

// Document returns the loaded Document, loading it on the first call.
// A failed first load is remembered and returned on every call until Reload
// succeeds.
func (l *Loader) Document() (*Document, error) {
	l.once.Do(func() {
		doc, err := l.load()
		if err != nil {
			l.err = err
			return
		}
		l.doc.Store(doc)
	})
	if doc := l.doc.Load(); doc != nil {
		return doc, nil
	}
	return nil, l.err
}

// Reload runs the LoadFunc again and swaps in the result. On failure the
// previously loaded Document stays in place.
func (l *Loader) Reload() (*Document, error) {
	l.once.Do(func() {})
	doc, err := l.load()
	if err != nil {
		return nil, err
	}
	l.doc.Store(doc)
	return doc, nil
}
