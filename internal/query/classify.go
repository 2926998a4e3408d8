package query

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/jd-sql-spec-runner/internal/runerr"
)

// Cell is the first column of the first result row.
type Cell struct {
	// DatabaseType is the driver-reported column type name, upper case.
	// Empty when the driver does not know it (e.g. SQLite expressions).
	DatabaseType string

	// Value is the scanned value: nil, string, []byte, or whatever the
	// driver produced for the column.
	Value any
}

// Database type names treated as text. Compared against upper-cased
// sql.ColumnType.DatabaseTypeName values.
var textTypes = map[string]bool{
	"TEXT":              true,
	"VARCHAR":           true,
	"CHAR":              true,
	"BPCHAR":            true,
	"NAME":              true,
	"STRING":            true,
	"CLOB":              true,
	"CHARACTER VARYING": true,
	"CHARACTER":         true,
	"CITEXT":            true,
	"LTREE":             true,
	"LQUERY":            true,
}

var jsonTypes = map[string]bool{
	"JSON":  true,
	"JSONB": true,
}

// decoder attempts to interpret a cell as one outcome variant.
type decoder struct {
	name   string
	decode func(Cell) (Outcome, bool)
}

// decoders are tried in order; the first success wins.
var decoders = []decoder{
	{name: "text", decode: decodeText},
	{name: "json", decode: decodeJSON},
}

// ErrUnsupportedResult is the message used when no decoder accepts the first column.
const ErrUnsupportedResult = "unsupported result type in first column; expected text or json"

// Classify reads the first row of rows and classifies its first column.
// The caller keeps ownership of rows and must close it.
func Classify(rows *sql.Rows, logger *slog.Logger) (Outcome, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	cell, ok, err := FirstCell(rows, logger)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		logger.Debug("query returned no rows")
		return Empty(), nil
	}
	return Decode(cell)
}

// FirstCell scans the first column of the first row. ok is false when the
// result set has no rows. Additional columns and rows are not consulted.
func FirstCell(rows *sql.Rows, logger *slog.Logger) (cell Cell, ok bool, err error) {
	cols, err := rows.ColumnTypes()
	if err != nil {
		return Cell{}, false, runerr.Wrap(runerr.QueryExecutionError, "failed to read result columns", err)
	}

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Cell{}, false, runerr.Wrap(runerr.QueryExecutionError, "SQL execution failed", err)
		}
		return Cell{}, false, nil
	}

	if len(cols) == 0 {
		return Cell{}, false, runerr.New(runerr.UnsupportedResultType, ErrUnsupportedResult)
	}
	if len(cols) > 1 {
		logger.Debug("ignoring additional result columns", slog.Int("columns", len(cols)))
	}

	values := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return Cell{}, false, runerr.Wrap(runerr.QueryExecutionError, "failed to read result row", err)
	}

	return Cell{
		DatabaseType: strings.ToUpper(cols[0].DatabaseTypeName()),
		Value:        values[0],
	}, true, nil
}

// Decode classifies a single cell. A NULL cell is Empty; otherwise the
// decoders are attempted in order.
func Decode(cell Cell) (Outcome, error) {
	if cell.Value == nil {
		return Empty(), nil
	}
	for _, d := range decoders {
		if out, ok := d.decode(cell); ok {
			return out, nil
		}
	}
	return Outcome{}, runerr.New(runerr.UnsupportedResultType, ErrUnsupportedResult)
}

func decodeText(cell Cell) (Outcome, bool) {
	if cell.DatabaseType != "" && !textTypes[cell.DatabaseType] {
		return Outcome{}, false
	}
	switch v := cell.Value.(type) {
	case string:
		return Text(v), true
	case []byte:
		return Text(string(v)), true
	default:
		return Outcome{}, false
	}
}

func decodeJSON(cell Cell) (Outcome, bool) {
	switch v := cell.Value.(type) {
	case string:
		if !jsonTypes[cell.DatabaseType] {
			return Outcome{}, false
		}
		if out, ok := parseJSON([]byte(v)); ok {
			return out, true
		}
		// A driver-decoded JSON string scalar arrives unquoted.
		return normalizeJSON(v)
	case []byte:
		if !jsonTypes[cell.DatabaseType] {
			return Outcome{}, false
		}
		return parseJSON(v)
	case map[string]any, []any:
		// Some drivers decode JSON columns themselves.
		return normalizeJSON(v)
	default:
		if jsonTypes[cell.DatabaseType] {
			return normalizeJSON(v)
		}
		return Outcome{}, false
	}
}

// parseJSON decodes exactly one JSON value, keeping numbers as json.Number.
func parseJSON(data []byte) (Outcome, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Outcome{}, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Outcome{}, false
	}
	return JSON(v), true
}

// normalizeJSON round-trips a driver-decoded value so that the outcome has
// the same representation as one parsed from text.
func normalizeJSON(v any) (Outcome, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		return Outcome{}, false
	}
	return parseJSON(data)
}

// String implements fmt.Stringer for logging.
func (c Cell) String() string {
	return fmt.Sprintf("%s(%T)", c.DatabaseType, c.Value)
}
