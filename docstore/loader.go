package docstore

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/poiesic/quaero/core"
)

// Loader extracts text from raw files and ingests it into a Store.
// PDF extraction is the only binary format handled; everything else is
// treated as plain text.
type Loader struct {
	store  *Store
	logger *slog.Logger
}

// NewLoader creates a loader backed by the given store.
func NewLoader(store *Store) (*Loader, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	return &Loader{
		store:  store,
		logger: slog.Default().With("component", "loader"),
	}, nil
}

// LoadFile reads a file from disk and ingests it.
func (l *Loader) LoadFile(path string) (core.ID, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return l.LoadBytes(filepath.Base(path), content)
}

// LoadBytes ingests raw file content under the given filename.
func (l *Loader) LoadBytes(filename string, content []byte) (core.ID, error) {
	var (
		text  string
		pages int
		err   error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, pages, err = extractPDFText(content)
		if err != nil {
			return 0, fmt.Errorf("extracting pdf text from %s: %w", filename, err)
		}
	default:
		text = string(content)
	}

	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("%w: %s", ErrNoExtractableText, filename)
	}

	id, err := l.store.Add(&core.Document{
		Filename: filename,
		Text:     text,
		Pages:    pages,
	})
	if err != nil {
		return 0, err
	}

	l.logger.Info("file loaded", "filename", filename, "pages", pages, "bytes", len(content))
	return id, nil
}

// extractPDFText pulls plain text from every page, keeping page markers
// so answers can point back to a location in the source.
func extractPDFText(content []byte) (string, int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", 0, err
	}

	var text strings.Builder
	totalPages := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil || pageText == "" {
			continue
		}
		fmt.Fprintf(&text, "\n--- Page %d ---\n%s\n", pageIndex, pageText)
	}

	return text.String(), totalPages, nil
}
