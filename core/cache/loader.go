package cache

import (
	"io/fs"
	"time"

	"github.com/FocuswithJustin/rsb-cli/core/corpus"
	"github.com/FocuswithJustin/rsb-cli/internal/logging"
)

// LoadFunc returns a corpus.LoadFunc that parses fsys, consulting store first.
// A nil store disables caching. Failing to write the cache is logged and does
// not fail the load.
func LoadFunc(store *Store, fsys fs.FS, source string) corpus.LoadFunc {
	return func() (*corpus.Document, error) {
		start := time.Now()

		if store == nil {
			doc, err := corpus.Load(fsys)
			if err != nil {
				return nil, err
			}
			logging.CorpusLoaded(source, doc.Len(), time.Since(start), "cached", false)
			return doc, nil
		}

		key, err := corpus.Fingerprint(fsys)
		if err != nil {
			return nil, err
		}
		if doc, ok := store.Get(key); ok {
			logging.CorpusLoaded(source, doc.Len(), time.Since(start), "cached", true)
			return doc, nil
		}

		doc, err := corpus.Load(fsys)
		if err != nil {
			return nil, err
		}
		if err := store.Put(key, doc); err != nil {
			logging.Warn("cache write failed", "path", store.Path(), "error", err)
		}
		logging.CorpusLoaded(source, doc.Len(), time.Since(start), "cached", false)
		return doc, nil
	}
}
