// Package document loads the two input documents of a runner invocation.
//
// A document is either Void (the file is empty or whitespace only) or a single
// parsed JSON value. Void is the "no value" side of a diff, e.g. comparing a
// created value against nothing, and binds as SQL NULL.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/leapstack-labs/jd-sql-spec-runner/internal/runerr"
)

// Document is an immutable input document. The zero value is void.
type Document struct {
	present bool
	value   any
	compact []byte
}

// Void returns the void document.
func Void() Document {
	return Document{}
}

// IsVoid reports whether the document has no value.
func (d Document) IsVoid() bool {
	return !d.present
}

// Value returns the parsed JSON value. Numbers are json.Number.
// It returns nil for a void document; use IsVoid to tell it apart from JSON null.
func (d Document) Value() any {
	return d.value
}

// JSON returns the compact JSON text of the document, or nil when void.
func (d Document) JSON() []byte {
	if d.IsVoid() {
		return nil
	}
	return d.compact
}

// BindValue returns the query argument for this document: nil (SQL NULL)
// when void, otherwise the compact JSON text. Casting to a JSON column type
// is left to the SQL text.
func (d Document) BindValue() any {
	if d.IsVoid() {
		return nil
	}
	return string(d.compact)
}

// String implements fmt.Stringer for logging.
func (d Document) String() string {
	if d.IsVoid() {
		return "<void>"
	}
	return string(d.compact)
}

// Load reads the file at path and parses it into a Document.
func Load(path string) (Document, error) {
	content, err := os.ReadFile(path) //nolint:gosec // path comes from the invoking harness
	if err != nil {
		return Document{}, runerr.Wrap(runerr.InputIOError, fmt.Sprintf("failed to read input file %s", path), err)
	}
	return Parse(path, content)
}

// Parse converts raw content into a Document. name is used in error messages.
func Parse(name string, content []byte) (Document, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return Void(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Document{}, runerr.Wrap(runerr.InputParseError, fmt.Sprintf("invalid JSON in %s", name), err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return Document{}, runerr.Wrap(runerr.InputParseError, fmt.Sprintf("invalid JSON in %s", name), err)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return Document{}, runerr.Wrap(runerr.InputParseError, fmt.Sprintf("invalid JSON in %s", name), err)
	}

	return Document{present: true, value: v, compact: buf.Bytes()}, nil
}
