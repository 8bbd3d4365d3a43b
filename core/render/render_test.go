package render

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FocuswithJustin/rsb-cli/core/address"
	"github.com/FocuswithJustin/rsb-cli/core/corpus"
	apperrors "github.com/FocuswithJustin/rsb-cli/core/errors"
	"github.com/FocuswithJustin/rsb-cli/internal/testcorpus"
)

func genesis(t *testing.T) *corpus.Book {
	t.Helper()
	book, err := corpus.ParseBook(strings.NewReader(testcorpus.Genesis), "00_gen.txt")
	require.NoError(t, err)
	return book
}

// unwrapLines joins continuation lines back onto the verse they belong to.
func unwrapLines(out string) []string {
	var verses []string
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		if strings.HasPrefix(line, "[") || len(verses) == 0 {
			verses = append(verses, line)
			continue
		}
		verses[len(verses)-1] += " " + strings.TrimLeft(line, " ")
	}
	return verses
}

func tags(out string) []string {
	var got []string
	for _, v := range unwrapLines(out) {
		got = append(got, v[:strings.Index(v, "]")+1])
	}
	return got
}

func TestRender_SingleVerse(t *testing.T) {
	out, err := Render(address.Verse(0, 0), "Gen", genesis(t))
	require.NoError(t, err)
	assert.Equal(t, "[Gen 1:1]   In the beginning God created the heaven and the earth.\n", out)
}

func TestRender_RoundTrip(t *testing.T) {
	book := genesis(t)
	for c, verses := range book.Chapters {
		for v, text := range verses {
			addr, err := address.Parse(fmt.Sprintf("%d:%d", c+1, v+1))
			require.NoError(t, err)

			out, err := Render(addr, "Gen", book)
			require.NoError(t, err)

			lines := unwrapLines(out)
			require.Len(t, lines, 1)
			tag := fmt.Sprintf("[Gen %d:%d]", c+1, v+1)
			require.True(t, strings.HasPrefix(lines[0], tag), lines[0])
			assert.Equal(t, text, strings.TrimSpace(lines[0][len(tag):]))
		}
	}
}

func TestRender_Selections(t *testing.T) {
	book := genesis(t)

	tests := []struct {
		token    string
		wantTags []string
	}{
		{token: "1:2-4", wantTags: []string{"[Gen 1:2]", "[Gen 1:3]", "[Gen 1:4]"}},
		{token: "2", wantTags: []string{"[Gen 2:1]", "[Gen 2:2]", "[Gen 2:3]"}},
		{token: "3-5", wantTags: []string{"[Gen 3:1]", "[Gen 3:2]", "[Gen 4:1]", "[Gen 4:2]", "[Gen 5:1]"}},
		{token: "6-6", wantTags: []string{"[Gen 6:1]", "[Gen 6:2]"}},
		{token: "1:4-5", wantTags: []string{"[Gen 1:4]", "[Gen 1:5]"}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			addr, err := address.Parse(tt.token)
			require.NoError(t, err)

			out, err := Render(addr, "Gen", book)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTags, tags(out))
		})
	}
}

func TestRender_WholeBook(t *testing.T) {
	book := genesis(t)
	out, err := Render(address.Book(), "Gen", book)
	require.NoError(t, err)

	got := tags(out)
	require.Len(t, got, book.VerseCount())
	assert.Len(t, got, 15)
	assert.Equal(t, "[Gen 1:1]", got[0])
	assert.Equal(t, "[Gen 6:2]", got[len(got)-1])

	n, err := Resolve(address.Book(), book)
	require.NoError(t, err)
	assert.Equal(t, 15, n)
}

func TestRender_VerseRangeCount(t *testing.T) {
	book := genesis(t)
	for lo := 0; lo < 5; lo++ {
		for hi := lo + 1; hi < 5; hi++ {
			out, err := Render(address.Verses(0, lo, hi), "Gen", book)
			require.NoError(t, err)
			got := tags(out)
			require.Len(t, got, hi-lo+1)
			assert.Equal(t, fmt.Sprintf("[Gen 1:%d]", lo+1), got[0])
			assert.Equal(t, fmt.Sprintf("[Gen 1:%d]", hi+1), got[len(got)-1])
		}
	}
}

func TestRender_Bounds(t *testing.T) {
	book := genesis(t)

	tests := []struct {
		name        string
		addr        address.Address
		wantChapter *apperrors.InvalidChapterError
		wantVerse   *apperrors.InvalidVerseError
	}{
		{
			name:        "chapter past end",
			addr:        address.Chapter(6),
			wantChapter: &apperrors.InvalidChapterError{Num: 6, Title: "Бытие", Chapters: 6},
		},
		{
			name:        "verse in missing chapter",
			addr:        address.Verse(9, 0),
			wantChapter: &apperrors.InvalidChapterError{Num: 9, Title: "Бытие", Chapters: 6},
		},
		{
			name:        "verse range in missing chapter",
			addr:        address.Verses(6, 0, 1),
			wantChapter: &apperrors.InvalidChapterError{Num: 6, Title: "Бытие", Chapters: 6},
		},
		{
			name:        "chapter range end past end",
			addr:        address.Chapters(4, 6),
			wantChapter: &apperrors.InvalidChapterError{Num: 6, Title: "Бытие", Chapters: 6},
		},
		{
			name:      "verse one past end",
			addr:      address.Verse(0, 5),
			wantVerse: &apperrors.InvalidVerseError{Num: 5, Title: "Бытие", Chapter: 0, Verses: 5},
		},
		{
			name:      "verse range end past end",
			addr:      address.Verses(1, 1, 3),
			wantVerse: &apperrors.InvalidVerseError{Num: 3, Title: "Бытие", Chapter: 1, Verses: 3},
		},
		{
			name:      "verse range start past end",
			addr:      address.Verses(4, 3, 7),
			wantVerse: &apperrors.InvalidVerseError{Num: 3, Title: "Бытие", Chapter: 4, Verses: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			err := Renderer{}.Write(&sb, tt.addr, "Gen", book)
			require.Error(t, err)
			assert.Empty(t, sb.String(), "nothing may be written before validation fails")
			assert.True(t, apperrors.IsQueryError(err))

			if tt.wantChapter != nil {
				var got *apperrors.InvalidChapterError
				require.True(t, errors.As(err, &got), "got %T", err)
				assert.Equal(t, tt.wantChapter, got)
			}
			if tt.wantVerse != nil {
				var got *apperrors.InvalidVerseError
				require.True(t, errors.As(err, &got), "got %T", err)
				assert.Equal(t, tt.wantVerse, got)
			}
		})
	}
}

func TestRender_Verse50Of40(t *testing.T) {
	chapter := make([]string, 40)
	for i := range chapter {
		chapter[i] = fmt.Sprintf("verse %d", i+1)
	}
	book := &corpus.Book{Title: "Исход", Chapters: [][]string{chapter}}

	addr, err := address.Parse("1:50")
	require.NoError(t, err)

	_, err = Render(addr, "Ex", book)
	var verseErr *apperrors.InvalidVerseError
	require.True(t, errors.As(err, &verseErr))
	assert.Equal(t, 49, verseErr.Num)
	assert.Equal(t, 40, verseErr.Verses)
	assert.Equal(t, "Invalid verse 50 of book Исход, chapter 1 (40 verses).", err.Error())
}

func TestRender_Wrapping(t *testing.T) {
	book := genesis(t)
	out, err := Render(address.Verse(0, 1), "Gen", book)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Greater(t, len(lines), 1, "verse 1:2 must wrap at 80 columns")
	assert.True(t, strings.HasPrefix(lines[0], "[Gen 1:2]   And the earth"))

	indent := strings.Repeat(" ", 12)
	for i, line := range lines {
		assert.LessOrEqual(t, runewidth.StringWidth(line), DefaultWidth, line)
		assert.Equal(t, line, strings.TrimRight(line, " "), "no trailing whitespace")
		if i > 0 {
			assert.True(t, strings.HasPrefix(line, indent), line)
			assert.NotEqual(t, ' ', rune(line[12]), "indent is exactly 12 columns")
		}
	}
}

func TestRender_TagPadding(t *testing.T) {
	r := Renderer{Width: 200}

	// "[Gen 1:1]" is 9 wide, padded to 11, then one space.
	assert.Equal(t, "[Gen 1:1]   x\n", r.Verse("Gen", 0, 0, "x"))
	// "[Gen 10:10]" already exceeds 11, so only the separating space remains.
	assert.Equal(t, "[Gen 10:10] x\n", r.Verse("Gen", 9, 9, "x"))
	// Longer aliases pad to their own width.
	assert.Equal(t, "[Chron1 1:1]   x\n", r.Verse("Chron1", 0, 0, "x"))
}

func TestRenderer_CustomWidth(t *testing.T) {
	r := Renderer{Width: 30}
	out := r.Verse("Gen", 0, 0, "In the beginning God created the heaven and the earth.")
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 30, line)
	}
}

func TestRenderer_TagStyle(t *testing.T) {
	r := Renderer{Tag: func(s string) string { return "<" + s + ">" }}
	out := r.Verse("Gen", 0, 0, "text")
	assert.Equal(t, "<[Gen 1:1]>   text\n", out)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderer_WriteFailure(t *testing.T) {
	err := Renderer{}.Write(failingWriter{}, address.Verse(0, 0), "Gen", genesis(t))

	var fmtErr *apperrors.FormattingError
	require.True(t, errors.As(err, &fmtErr))
	assert.ErrorIs(t, err, apperrors.ErrInternal)
	assert.Contains(t, err.Error(), "Formatting error")
}
