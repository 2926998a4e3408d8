// Package signal turns a classified query outcome into the runner's stdout
// payload and exit code.
package signal

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/leapstack-labs/jd-sql-spec-runner/internal/query"
	"github.com/leapstack-labs/jd-sql-spec-runner/internal/runerr"
)

// Result is what the runner writes and how it exits.
type Result struct {
	Stdout   []byte
	ExitCode int
}

// Map converts an outcome into a Result. It performs no I/O.
func Map(out query.Outcome) (Result, error) {
	switch out.Kind {
	case query.KindText:
		code := runerr.ExitNoDiff
		if strings.TrimSpace(out.Text) != "" {
			code = runerr.ExitDiff
		}
		return Result{Stdout: []byte(out.Text), ExitCode: code}, nil

	case query.KindJSON:
		data, err := Compact(out.JSON)
		if err != nil {
			return Result{}, runerr.Wrap(runerr.UnsupportedResultType, "failed to encode json result", err)
		}
		code := runerr.ExitNoDiff
		if IsDiffPresent(out.JSON) {
			code = runerr.ExitDiff
		}
		return Result{Stdout: data, ExitCode: code}, nil

	default:
		return Result{ExitCode: runerr.ExitNoDiff}, nil
	}
}

// Compact encodes v as single-line JSON without HTML escaping and without a
// trailing newline. json.Number values are written verbatim, and U+2028 and
// U+2029 are written as raw characters rather than \u escapes.
func Compact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// unescapeLineSeparators undoes the encoder's \u2028 and \u2029 escapes.
// Escape sequences are consumed in pairs so an escaped backslash followed by
// the text "u2028" is left alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		rest := data[i+1:]
		switch {
		case bytes.HasPrefix(rest, []byte("u2028")):
			out = append(out, "\u2028"...)
			i += 5
		case bytes.HasPrefix(rest, []byte("u2029")):
			out = append(out, "\u2029"...)
			i += 5
		default:
			out = append(out, data[i], data[i+1])
			i++
		}
	}
	return out
}

// IsDiffPresent reports whether a JSON value signals a difference. The check
// is shallow: only the top-level value is inspected.
func IsDiffPresent(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case json.Number:
		return !isIntegerZero(x)
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}

// isIntegerZero matches the integer literals 0 and -0. Fractional or
// exponent forms such as 0.0 are not integers and count as a diff.
func isIntegerZero(n json.Number) bool {
	s := strings.TrimPrefix(n.String(), "-")
	return s == "0"
}
