package format

import "fmt"

// Warning codes raised by readers.
const (
	WarnMultipleOntologyHeaders = "multiple-ontology-headers"
	WarnUnmappedDatatype        = "unmapped-datatype"
	WarnUntranslatedAxiom       = "untranslated-axiom"
)

// Warning is a non-fatal condition noticed while reading input. The read
// still produces a valid schema; the warning records what was approximated
// or ignored.
type Warning struct {
	Code    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// Warnf builds a Warning with a formatted message.
func Warnf(code, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}
