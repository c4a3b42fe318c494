package upload

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoSymbols is returned when the workbook parses but yields no
// usable ticker symbols.
var ErrNoSymbols = errors.New("no ticker symbols found in uploaded file")

// ReadSymbols extracts ticker symbols from the first column of the
// first sheet of an uploaded workbook: trimmed, blanks dropped,
// duplicates removed with first occurrence winning. A workbook that
// cannot be read or contains no symbols is an error; callers must not
// merge a nil result.
func ReadSymbols(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("reading uploaded workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSymbols
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		sym := strings.TrimSpace(row[0])
		if sym == "" {
			continue
		}
		if _, dup := seen[sym]; dup {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
	}
	if len(out) == 0 {
		return nil, ErrNoSymbols
	}
	return out, nil
}
