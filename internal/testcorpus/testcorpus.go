// Package testcorpus provides a small two-book corpus for tests.
package testcorpus

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

// Genesis is the fixture text of book 0. Chapter verse counts: 5, 3, 2, 2, 1, 2.
// It has no trailing chapter marker, so the last chapter is flushed at EOF.
const Genesis = `== Бытие ==
=== 1 ===
1 In the beginning God created the heaven and the earth.
2 And the earth was without form, and void; and darkness was upon the face of the deep. And the Spirit of God moved upon the face of the waters.
3 And God said, Let there be light: and there was light.
4 And God saw the light, that it was good: and God divided the light from the darkness.
5 And God called the light Day, and the darkness he called Night. And the evening and the morning were the first day.
=== 2 ===
1 Thus the heavens and the earth were finished, and all the host of them.
2 And on the seventh day God ended his work which he had made; and he rested on the seventh day from all his work which he had made.
3 And God blessed the seventh day, and sanctified it.
=== 3 ===
1 Now the serpent was more subtil than any beast of the field which the LORD God had made.
2 And the woman said unto the serpent, We may eat of the fruit of the trees of the garden.
=== 4 ===
1 And Adam knew Eve his wife; and she conceived, and bare Cain.
2 And she again bare his brother Abel.
=== 5 ===
1 This is the book of the generations of Adam.
=== 6 ===
1 And it came to pass, when men began to multiply on the face of the earth.
2 That the sons of God saw the daughters of men that they were fair.
`

// Exodus is the fixture text of book 1. Chapter verse counts: 2, 1.
// It ends with a chapter marker that must not produce an empty chapter.
const Exodus = `== Исход ==
=== 1 ===
1 Now these are the names of the children of Israel, which came into Egypt.
2 Reuben, Simeon, Levi, and Judah,
=== 2 ===
1 And there went a man of the house of Levi.
===
`

// GenesisChapters holds the verse counts of the Genesis fixture.
var GenesisChapters = []int{5, 3, 2, 2, 1, 2}

// ExodusChapters holds the verse counts of the Exodus fixture.
var ExodusChapters = []int{2, 1}

// FS returns the corpus as an in-memory file system. README.md is not a book
// file and must be skipped by the loader.
func FS() fstest.MapFS {
	return fstest.MapFS{
		"00_gen.txt":  &fstest.MapFile{Data: []byte(Genesis)},
		"01_exod.txt": &fstest.MapFile{Data: []byte(Exodus)},
		"README.md":   &fstest.MapFile{Data: []byte("Russian Synodal Bible corpus.\n")},
	}
}

// WriteDir writes the corpus into a fresh temporary directory and returns it.
func WriteDir(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	for name, f := range FS() {
		if err := os.WriteFile(filepath.Join(dir, name), f.Data, 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}
