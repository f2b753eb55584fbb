package docx_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/quizforge/quizforge/internal/docx"
	"github.com/quizforge/quizforge/internal/quiz"
)

const ns = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

// para renders one w:p element; list items carry numbering properties the
// way word processors emit them.
func para(text string, list bool) string {
	var b strings.Builder
	b.WriteString("<w:p>")
	if list {
		b.WriteString(`<w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr>`)
	}
	b.WriteString("<w:r><w:t>" + text + "</w:t></w:r>")
	b.WriteString("</w:p>")
	return b.String()
}

func buildDocx(t *testing.T, bodyXML string) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document ` + ns + `><w:body>` + bodyXML + `</w:body></w:document>`
	if _, err := f.Write([]byte(doc)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(buf.Bytes())
}

func readAll(t *testing.T, r *docx.Reader) []quiz.Paragraph {
	t.Helper()
	var out []quiz.Paragraph
	for {
		p, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		out = append(out, p)
	}
}

func TestReader_Paragraphs(t *testing.T) {
	body := para("Question 1", false) +
		para("  What is up?  ", false) +
		"<w:p/>" + // empty paragraph, no runs
		para("A) first", true) +
		// split runs inside one paragraph must concatenate
		`<w:p><w:pPr><w:numPr><w:numId w:val="1"/></w:numPr></w:pPr>` +
		`<w:r><w:t>B) sec</w:t></w:r><w:r><w:t>ond</w:t></w:r></w:p>`
	zr := buildDocx(t, body)
	r, err := docx.New(zr, int64(zr.Len()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ps := readAll(t, r)
	want := []quiz.Paragraph{
		{Text: "Question 1"},
		{Text: "What is up?"},
		{Text: ""},
		{Text: "A) first", ListItem: true},
		{Text: "B) second", ListItem: true},
	}
	if len(ps) != len(want) {
		t.Fatalf("got %d paragraphs, want %d: %+v", len(ps), len(want), ps)
	}
	for i := range want {
		if ps[i] != want[i] {
			t.Errorf("paragraph %d = %+v, want %+v", i, ps[i], want[i])
		}
	}
}

func TestReader_NotAZip(t *testing.T) {
	data := []byte("this is not a docx")
	if _, err := docx.New(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Error("New accepted a non-zip input")
	}
}

func TestReader_MissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, _ := zw.Create("word/other.xml")
	_, _ = f.Write([]byte("<x/>"))
	_ = zw.Close()
	if _, err := docx.New(bytes.NewReader(buf.Bytes()), int64(buf.Len())); err == nil {
		t.Error("New accepted a docx without word/document.xml")
	}
}

// End to end: container -> paragraph stream -> validated dataset.
func TestReader_ExtractPipeline(t *testing.T) {
	body := para("Some title", false) +
		para("Question 1", false) +
		para("Which planet is largest?", false) +
		para("Mercury", true) +
		para("Jupiter", true) +
		para("Mars", true) +
		para("Venus", true)
	zr := buildDocx(t, body)
	r, err := docx.New(zr, int64(zr.Len()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data, err := quiz.Extract(r)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(data.Questions) != 1 {
		t.Fatalf("got %d questions", len(data.Questions))
	}
	q := data.Questions[0]
	if q.Text != "Question 1 Which planet is largest?" {
		t.Errorf("text = %q", q.Text)
	}
	if q.Choices[1].Label != "B" || q.Choices[1].Text != "Jupiter" {
		t.Errorf("choice = %+v", q.Choices[1])
	}
}
