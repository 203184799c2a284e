// Package document reads and writes the text files handled by the converter.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/mybrain/journal/internal/config"
	"github.com/mybrain/journal/internal/domain"
	"github.com/mybrain/journal/internal/escape"
)

// Document is a text file held in memory.
type Document struct {
	Path string
	Text string
}

// Read loads the file at path. The content must be valid UTF-8.
func Read(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("read %s: %w", path, domain.ErrNotRegularFile)
	}

	var buf bytes.Buffer
	buf.Grow(int(info.Size()))
	if _, err := io.Copy(&buf, transform.NewReader(f, encoding.UTF8Validator)); err != nil {
		if errors.Is(err, encoding.ErrInvalidUTF8) {
			return nil, fmt.Errorf("read %s: %w", path, domain.ErrInvalidUTF8)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &Document{Path: path, Text: buf.String()}, nil
}

// Transformed returns a copy of d with the escape rules applied.
func (d *Document) Transformed() *Document {
	return &Document{Path: d.Path, Text: escape.Transform(d.Text)}
}

// WriteTo writes the text to w as-is.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.Text)
	return int64(n), err
}

// Save writes the text to path, truncating any existing file.
// An existing file keeps its permissions.
func (d *Document) Save(path string) error {
	if err := os.WriteFile(path, []byte(d.Text), config.DefaultFileMode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
