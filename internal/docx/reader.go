// Package docx reads the paragraph stream of a Word document. It understands
// just enough of the OOXML container to serve extraction: paragraph text is
// the concatenation of all text runs, and a paragraph is a list item iff it
// carries numbering properties.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/quizforge/quizforge/internal/quiz"
)

const documentPart = "word/document.xml"

// Reader yields the document's paragraphs in order. It implements
// quiz.ParagraphSource.
type Reader struct {
	paras []quiz.Paragraph
	pos   int
}

// Open reads a .docx file from disk.
func Open(path string) (*Reader, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(bytes.NewReader(b), int64(len(b)))
}

// New reads a .docx container from r.
func New(r io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("not a valid .docx file: %w", err)
	}
	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return nil, fmt.Errorf("document does not contain %s", documentPart)
	}
	rc, err := part.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	paras, err := parseParagraphs(rc)
	if err != nil {
		return nil, err
	}
	return &Reader{paras: paras}, nil
}

// Next returns the next paragraph, or io.EOF at end of document.
func (r *Reader) Next() (quiz.Paragraph, error) {
	if r.pos >= len(r.paras) {
		return quiz.Paragraph{}, io.EOF
	}
	p := r.paras[r.pos]
	r.pos++
	return p, nil
}

// parseParagraphs walks the document XML token stream. A token walk (rather
// than struct unmarshalling) keeps text runs nested inside hyperlinks and
// other containers, matching how word processors actually emit runs.
func parseParagraphs(r io.Reader) ([]quiz.Paragraph, error) {
	dec := xml.NewDecoder(r)

	var paras []quiz.Paragraph
	var cur strings.Builder
	inPara := false
	isList := false
	inText := 0
	sawBody := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed document xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "body":
				sawBody = true
			case "p":
				inPara = true
				isList = false
				cur.Reset()
			case "numPr":
				if inPara {
					isList = true
				}
			case "t":
				if inPara {
					inText++
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if inPara {
					paras = append(paras, quiz.Paragraph{
						Text:     strings.TrimSpace(cur.String()),
						ListItem: isList,
					})
				}
				inPara = false
			case "t":
				if inText > 0 {
					inText--
				}
			}
		case xml.CharData:
			if inText > 0 {
				cur.Write(t)
			}
		}
	}
	if !sawBody {
		return nil, errors.New("could not find document body in xml")
	}
	return paras, nil
}
