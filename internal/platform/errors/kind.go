package errors

import "strings"

// Kind is the coarse category shown to operators next to a failure
type Kind uint8

const (
	// KindUnknown is anything not classified below
	KindUnknown Kind = iota
	// KindHistory is a history browse failure (missing day or encounter, bad input)
	KindHistory
	// KindNetwork is an overlay connection failure
	KindNetwork
	// KindStorage is an engine, I/O or codec failure
	KindStorage
)

// String returns the display label
func (k Kind) String() string {
	switch k {
	case KindHistory:
		return "History"
	case KindNetwork:
		return "Network"
	case KindStorage:
		return "Storage"
	default:
		return "Unknown"
	}
}

// KindOf derives the display category from an error's code
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	switch CodeOf(err) {
	case ErrorCodeNotFound, ErrorCodeInvalidArgument, ErrorCodeValidation:
		return KindHistory
	case ErrorCodeNetwork:
		return KindNetwork
	case ErrorCodeStorage, ErrorCodeCodec, ErrorCodeUnavailable, ErrorCodeConflict:
		return KindStorage
	default:
		return KindUnknown
	}
}

const summaryMax = 120

// SummaryLine collapses whitespace and truncates to a single status line
func SummaryLine(err error) string {
	if err == nil {
		return ""
	}
	collapsed := strings.Join(strings.Fields(err.Error()), " ")
	runes := []rune(collapsed)
	if len(runes) <= summaryMax {
		return collapsed
	}
	return string(runes[:summaryMax-3]) + "..."
}
