package corpus

import (
	"encoding/binary"
	"encoding/hex"
	"io"
	"io/fs"

	"github.com/zeebo/blake3"

	apperrors "github.com/FocuswithJustin/rsb-cli/core/errors"
)

// Fingerprint computes a BLAKE3 digest over the names and contents of every
// book file in fsys. Non-book files do not contribute, so editing a README
// does not invalidate a cached Document.
func Fingerprint(fsys fs.FS) (string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return "", apperrors.NewIO("read corpus directory", "", err)
	}

	h := blake3.New()
	var size [8]byte
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, ok := BookNumber(name); !ok {
			continue
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return "", apperrors.NewIO("read", name, err)
		}

		binary.BigEndian.PutUint64(size[:], uint64(len(name)))
		h.Write(size[:])
		io.WriteString(h, name)
		binary.BigEndian.PutUint64(size[:], uint64(len(data)))
		h.Write(size[:])
		h.Write(data)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
