package util

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ExtractText pulls plain text out of an uploaded CV. PDFs concatenate page
// text in page order; DOCX files concatenate paragraph text in document order.
// Unsupported extensions and extraction failures yield an empty string; the
// caller treats whitespace-only output as a CV with no extractable text.
func ExtractText(path, ext string) string {
	var (
		text string
		err  error
	)

	switch strings.ToLower(ext) {
	case "pdf":
		text, err = extractPDF(path)
	case "docx":
		text, err = extractDOCX(path)
	default:
		log.Printf("Unsupported CV extension %q for %s", ext, path)
		return ""
	}

	if err != nil {
		log.Printf("Error extracting text from CV %s: %v", path, err)
		return ""
	}
	return text
}

func extractPDF(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var b strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("page %d: failed to extract text: %w", n+1, err)
		}
		b.WriteString(pageText)
	}

	return b.String(), nil
}

// A .docx file is a zip archive whose body lives in word/document.xml; the
// visible text sits in <w:t> elements grouped under <w:p> paragraphs.
func extractDOCX(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX archive: %w", err)
	}
	defer archive.Close()

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open document body: %w", err)
		}
		defer rc.Close()
		return readDocumentXML(rc)
	}

	return "", fmt.Errorf("no document body in DOCX archive")
}

// readDocumentXML concatenates every text run in document order without
// adding separators between paragraphs.
func readDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var (
		b      strings.Builder
		inText bool
	)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("malformed document body: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}

	return b.String(), nil
}
