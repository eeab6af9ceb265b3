// Package format renders raw bill fields into the localized display strings
// used by the employee and admin views.
package format

import (
	"fmt"
	"time"

	"github.com/billedapp/billflow/internal/domain/entity"
)

// FormatError reports a date value that could not be parsed.
type FormatError struct {
	Raw string
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format: invalid date %q: %v", e.Raw, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Abbreviated French month names, capitalized and truncated to three
// characters the way the original locale tables come out. June and July
// both collapse to "Jui".
var frenchMonths = [12]string{
	"Jan", "Fév", "Mar", "Avr", "Mai", "Jui",
	"Jui", "Aoû", "Sep", "Oct", "Nov", "Déc",
}

var statusLabels = map[entity.Status]string{
	entity.StatusPending:  "En attente",
	entity.StatusAccepted: "Accepté",
	entity.StatusRefused:  "Refusé",
}

// FormatDate renders a YYYY-MM-DD calendar date as a short French form,
// e.g. "2004-04-04" becomes "4 Avr. 04". A value that does not parse to a
// valid date yields a *FormatError; callers are expected to recover per row
// rather than abort a whole batch.
func FormatDate(raw string) (string, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return "", &FormatError{Raw: raw, Err: err}
	}

	return fmt.Sprintf("%d %s. %02d", t.Day(), frenchMonths[t.Month()-1], t.Year()%100), nil
}

// FormatStatus maps a raw status to its localized label. Values outside the
// known set pass through unchanged.
func FormatStatus(raw entity.Status) string {
	if label, ok := statusLabels[raw]; ok {
		return label
	}
	return string(raw)
}
