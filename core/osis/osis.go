// Package osis writes a corpus as OSIS XML and reads it back.
//
// The output uses container elements throughout:
//
//	<osis xmlns="http://www.bibletechnologies.net/2003/OSIS/namespace">
//	  <osisText osisIDWork="RusSynodal" xml:lang="ru">
//	    <header><work osisWork="RusSynodal">...</work></header>
//	    <div type="book" osisID="Gen">
//	      <title>Бытие</title>
//	      <chapter osisID="Gen.1">
//	        <verse osisID="Gen.1.1">...</verse>
//
// Read accepts exactly this shape, so an export can be verified or served as
// an alternative corpus.
package osis

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/FocuswithJustin/rsb-cli/core/corpus"
	apperrors "github.com/FocuswithJustin/rsb-cli/core/errors"
)

// Namespace is the OSIS 2.x XML namespace.
const Namespace = "http://www.bibletechnologies.net/2003/OSIS/namespace"

// DefaultWorkID names the work when Meta.WorkID is empty.
const DefaultWorkID = "RusSynodal"

type osisDoc struct {
	XMLName  xml.Name `xml:"http://www.bibletechnologies.net/2003/OSIS/namespace osis"`
	OsisText osisText `xml:"osisText"`
}

type osisText struct {
	OsisIDWork string     `xml:"osisIDWork,attr"`
	XMLLang    string     `xml:"http://www.w3.org/XML/1998/namespace lang,attr,omitempty"`
	Header     osisHeader `xml:"header"`
	Divs       []osisDiv  `xml:"div"`
}

type osisHeader struct {
	Work osisWork `xml:"work"`
}

type osisWork struct {
	OsisWork    string `xml:"osisWork,attr"`
	Title       string `xml:"title,omitempty"`
	Identifier  string `xml:"identifier,omitempty"`
	Language    string `xml:"language,omitempty"`
	Description string `xml:"description,omitempty"`
}

type osisDiv struct {
	Type     string        `xml:"type,attr"`
	OsisID   string        `xml:"osisID,attr"`
	Title    string        `xml:"title,omitempty"`
	Chapters []osisChapter `xml:"chapter"`
}

type osisChapter struct {
	OsisID string      `xml:"osisID,attr"`
	Verses []osisVerse `xml:"verse"`
}

type osisVerse struct {
	OsisID string `xml:"osisID,attr"`
	Text   string `xml:",chardata"`
}

// Meta describes the work in the OSIS header.
type Meta struct {
	WorkID      string // osisIDWork; DefaultWorkID when empty
	Title       string
	Identifier  string // e.g. an export ID
	Language    string // BCP 47 tag, e.g. "ru"
	Description string

	// BookID returns the osisID of book i. When nil, books are named
	// "Book1", "Book2", ...
	BookID func(i int) string
}

// Write encodes doc as indented OSIS XML.
func Write(w io.Writer, doc *corpus.Document, meta Meta) error {
	work := meta.WorkID
	if work == "" {
		work = DefaultWorkID
	}
	bookID := meta.BookID
	if bookID == nil {
		bookID = func(i int) string { return "Book" + strconv.Itoa(i+1) }
	}

	out := osisDoc{OsisText: osisText{
		OsisIDWork: work,
		XMLLang:    meta.Language,
		Header: osisHeader{Work: osisWork{
			OsisWork:    work,
			Title:       meta.Title,
			Identifier:  meta.Identifier,
			Language:    meta.Language,
			Description: meta.Description,
		}},
		Divs: make([]osisDiv, 0, doc.Len()),
	}}

	for i, book := range doc.Books {
		id := bookID(i)
		div := osisDiv{
			Type:     "book",
			OsisID:   id,
			Title:    book.Title,
			Chapters: make([]osisChapter, 0, book.Len()),
		}
		for c, verses := range book.Chapters {
			ch := osisChapter{
				OsisID: fmt.Sprintf("%s.%d", id, c+1),
				Verses: make([]osisVerse, len(verses)),
			}
			for v, text := range verses {
				ch.Verses[v] = osisVerse{OsisID: fmt.Sprintf("%s.%d.%d", id, c+1, v+1), Text: text}
			}
			div.Chapters = append(div.Chapters, ch)
		}
		out.OsisText.Divs = append(out.OsisText.Divs, div)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return apperrors.NewIO("write", "osis", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(out); err != nil {
		return apperrors.NewIO("write", "osis", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return apperrors.NewIO("write", "osis", err)
	}
	return nil
}
