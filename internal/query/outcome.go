// Package query executes the configured diff query and classifies its result.
package query

import "fmt"

// Kind identifies the shape of a query result.
type Kind int

// Outcome kinds.
const (
	KindEmpty Kind = iota // No row, or a NULL first column
	KindText              // Textual payload
	KindJSON              // Structured JSON payload
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindText:
		return "text"
	case KindJSON:
		return "json"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome is the classified first-row, first-column value of the diff query.
type Outcome struct {
	Kind Kind
	Text string // Set when Kind is KindText
	JSON any    // Set when Kind is KindJSON; numbers are json.Number
}

// Empty returns the outcome for a result with nothing to report.
func Empty() Outcome {
	return Outcome{Kind: KindEmpty}
}

// Text returns a textual outcome.
func Text(s string) Outcome {
	return Outcome{Kind: KindText, Text: s}
}

// JSON returns a structured outcome.
func JSON(v any) Outcome {
	return Outcome{Kind: KindJSON, JSON: v}
}
