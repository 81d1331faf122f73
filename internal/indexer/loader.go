package indexer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrDocumentNotFound is returned when the reference document does not exist
var ErrDocumentNotFound = errors.New("reference document not found")

// LoadDocument reads the reference document as plain text.
// PDF files are converted to text; anything else is read as UTF-8.
func LoadDocument(path string) (*Document, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%w: %s", ErrDocumentNotFound, path)
		}
		return nil, "", fmt.Errorf("failed to stat document: %w", err)
	}
	if info.IsDir() {
		return nil, "", fmt.Errorf("document path is a directory: %s", path)
	}

	doc := &Document{
		Path:   path,
		Name:   filepath.Base(path),
		Format: "text",
		Size:   info.Size(),
	}

	var text string
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		doc.Format = "pdf"
		text, err = readPDF(path)
	} else {
		var content []byte
		content, err = os.ReadFile(path)
		text = string(content)
	}
	if err != nil {
		return nil, "", err
	}

	return doc, text, nil
}

// readPDF extracts the plain text of every page
func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	b, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, b); err != nil {
		return "", fmt.Errorf("failed to read pdf buffer: %w", err)
	}
	return buf.String(), nil
}
