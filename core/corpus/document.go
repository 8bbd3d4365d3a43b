package corpus

// Book is a single book of the corpus.
type Book struct {
	// Title is the full title taken from the "==" line of the source file.
	Title string `json:"title"`

	// Chapters holds the verse texts of each chapter, in order.
	Chapters [][]string `json:"chapters"`
}

// Len returns the number of chapters.
func (b *Book) Len() int {
	return len(b.Chapters)
}

// Chapter returns the verses of chapter i.
func (b *Book) Chapter(i int) []string {
	ch := b.Chapters[i]
	return ch[:len(ch):len(ch)]
}

// ChapterRange returns chapters lo through hi-1.
func (b *Book) ChapterRange(lo, hi int) [][]string {
	return b.Chapters[lo:hi:hi]
}

// VerseCount returns the number of verses across all chapters.
func (b *Book) VerseCount() int {
	n := 0
	for _, ch := range b.Chapters {
		n += len(ch)
	}
	return n
}

// Document is the loaded corpus: books ordered by their file number.
type Document struct {
	Books []*Book `json:"books"`
}

// Len returns the number of books.
func (d *Document) Len() int {
	return len(d.Books)
}

// Book returns book b.
func (d *Document) Book(b int) *Book {
	return d.Books[b]
}

// Title returns the title of book b.
func (d *Document) Title(b int) string {
	return d.Books[b].Title
}

// ChapterCount returns the number of chapters in book b.
func (d *Document) ChapterCount(b int) int {
	return d.Books[b].Len()
}

// Verses returns the verses of chapter c in book b.
func (d *Document) Verses(b, c int) []string {
	return d.Books[b].Chapter(c)
}

// Verse returns the text of verse v in chapter c of book b.
func (d *Document) Verse(b, c, v int) string {
	return d.Books[b].Chapters[c][v]
}

// Stats summarizes the size of a Document.
type Stats struct {
	Books    int `json:"books"`
	Chapters int `json:"chapters"`
	Verses   int `json:"verses"`
	Bytes    int `json:"bytes"`
}

// Stats counts books, chapters, verses and verse text bytes.
func (d *Document) Stats() Stats {
	s := Stats{Books: len(d.Books)}
	for _, b := range d.Books {
		s.Chapters += len(b.Chapters)
		for _, ch := range b.Chapters {
			s.Verses += len(ch)
			for _, v := range ch {
				s.Bytes += len(v)
			}
		}
	}
	return s
}
