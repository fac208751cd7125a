package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

type DocumentKind string

const (
	DocumentPDF  DocumentKind = "pdf"
	DocumentDOCX DocumentKind = "docx"
)

var (
	ErrUnsupportedDocument = errors.New("unsupported document type")
	ErrNoText              = errors.New("no text content found")
)

// DocumentKindFromContentType maps an upload content type to a document kind.
func DocumentKindFromContentType(contentType string) (DocumentKind, bool) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}

	switch ct {
	case "application/pdf":
		return DocumentPDF, true
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/msword":
		return DocumentDOCX, true
	}
	return "", false
}

// DocumentKindFromFilename maps a file extension to a document kind.
func DocumentKindFromFilename(name string) (DocumentKind, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return DocumentPDF, true
	case ".docx":
		return DocumentDOCX, true
	}
	return "", false
}

// ExtractionError reports a document that could not be turned into text.
type ExtractionError struct {
	Kind DocumentKind
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Kind, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func (e *ExtractionError) ErrorKind() string {
	return "extraction"
}

type ExtractorService interface {
	ExtractText(data []byte, kind DocumentKind) (string, error)
	ExtractFile(path string) (string, error)
}

type extractorService struct{}

func NewExtractorService() ExtractorService {
	return &extractorService{}
}

// ExtractText implements ExtractorService.
func (e *extractorService) ExtractText(data []byte, kind DocumentKind) (string, error) {
	var (
		text string
		err  error
	)

	switch kind {
	case DocumentPDF:
		text, err = extractPDF(data)
	case DocumentDOCX:
		text, err = extractDOCX(data)
	default:
		err = ErrUnsupportedDocument
	}
	if err != nil {
		return "", &ExtractionError{Kind: kind, Err: err}
	}

	text = CleanText(text)
	if text == "" {
		return "", &ExtractionError{Kind: kind, Err: ErrNoText}
	}
	return text, nil
}

// ExtractFile implements ExtractorService.
func (e *extractorService) ExtractFile(path string) (string, error) {
	kind, ok := DocumentKindFromFilename(path)
	if !ok {
		return "", &ExtractionError{Kind: DocumentKind(strings.TrimPrefix(filepath.Ext(path), ".")), Err: ErrUnsupportedDocument}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return e.ExtractText(data, kind)
}

func extractPDF(data []byte) (text string, err error) {
	// the parser panics on some truncated files
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), nil
}

const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX container: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open document body: %w", err)
		}
		defer rc.Close()
		return paragraphsText(rc)
	}

	return "", fmt.Errorf("word/document.xml not found")
}

// paragraphsText joins the runs of each w:p paragraph, one paragraph per line.
func paragraphsText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		out    strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document body: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				out.WriteByte('\t')
			case "br", "cr":
				out.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				out.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				out.Write(t)
			}
		}
	}

	return out.String(), nil
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return strings.Join(cleaned, "\n")
}
