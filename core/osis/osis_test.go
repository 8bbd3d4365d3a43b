package osis

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FocuswithJustin/rsb-cli/core/corpus"
	apperrors "github.com/FocuswithJustin/rsb-cli/core/errors"
	"github.com/FocuswithJustin/rsb-cli/internal/testcorpus"
)

func fixture(t *testing.T) *corpus.Document {
	t.Helper()
	doc, err := corpus.Load(testcorpus.FS())
	require.NoError(t, err)
	return doc
}

func aliases(i int) string { return []string{"Gen", "Ex"}[i] }

func TestWrite_Shape(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, fixture(t), Meta{Title: "Синодальный перевод", Language: "ru", BookID: aliases})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<osis xmlns="`+Namespace+`">`)
	assert.Contains(t, out, `osisIDWork="RusSynodal"`)
	assert.Contains(t, out, `xml:lang="ru"`)
	assert.Contains(t, out, `<div type="book" osisID="Gen">`)
	assert.Contains(t, out, `<title>Бытие</title>`)
	assert.Contains(t, out, `<chapter osisID="Gen.6">`)
	assert.Contains(t, out, `<verse osisID="Gen.1.1">In the beginning God created the heaven and the earth.</verse>`)
	assert.Contains(t, out, `<verse osisID="Ex.2.1">`)
}

func TestWrite_DefaultBookIDs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, fixture(t), Meta{}))
	assert.Contains(t, buf.String(), `osisID="Book2.1.1"`)
}

func TestWrite_EscapesText(t *testing.T) {
	doc := &corpus.Document{Books: []*corpus.Book{
		{Title: "A & B", Chapters: [][]string{{`<tag> & "quote"`}}},
	}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc, Meta{}))
	assert.NotContains(t, buf.String(), "<tag>")

	back, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, "A & B", back.Title(0))
	assert.Equal(t, `<tag> & "quote"`, back.Verse(0, 0, 0))
}

func TestRoundTrip(t *testing.T) {
	doc := fixture(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc, Meta{BookID: aliases}))

	back, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc.Books, back.Books)
	assert.Equal(t, doc.Stats(), back.Stats())
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{name: "malformed", src: "<osis><div", wantMsg: "malformed XML"},
		{name: "no books", src: `<osis><osisText/></osis>`, wantMsg: "no book divisions"},
		{
			name:    "book without verses",
			src:     `<osis><osisText><div type="book" osisID="Gen"><title>T</title><chapter osisID="Gen.1"/></div></osisText></osis>`,
			wantMsg: "book has no verses",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestRead_SkipsEmptyChaptersAndOtherDivs(t *testing.T) {
	src := `<?xml version="1.0"?>
<osis xmlns="http://www.bibletechnologies.net/2003/OSIS/namespace">
  <osisText osisIDWork="W">
    <div type="preface"><p>ignored</p></div>
    <div type="book" osisID="Ruth">
      <chapter osisID="Ruth.1"/>
      <chapter osisID="Ruth.2">
        <verse osisID="Ruth.2.1">  first  </verse>
        <verse osisID="Ruth.2.2">second</verse>
      </chapter>
    </div>
  </osisText>
</osis>`

	doc, err := Read(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 1, doc.Len())
	assert.Equal(t, "Ruth", doc.Title(0), "osisID is the fallback title")
	assert.Equal(t, [][]string{{"first", "second"}}, doc.Book(0).Chapters)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bible.osis.xml")
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, fixture(t), Meta{BookID: aliases}))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	doc, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Len())

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.xml"))
	var ioErr *apperrors.IOError
	assert.ErrorAs(t, err, &ioErr)

	bad := filepath.Join(t.TempDir(), "bad.xml")
	require.NoError(t, os.WriteFile(bad, []byte("<osis/>"), 0o644))
	_, err = ReadFile(bad)
	var parseErr *apperrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, bad, parseErr.Path)
}
