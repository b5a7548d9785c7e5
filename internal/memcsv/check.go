package memcsv

import (
	"errors"
	"fmt"
	"io"
)

// Problem is an invalid row and the reasons it was rejected.
type Problem struct {
	Line   int
	Errors []string
}

// Summary is the outcome of checking a memory CSV file.
type Summary struct {
	Valid    int
	Invalid  int
	Problems []Problem
}

// Total returns the number of data rows checked.
func (s Summary) Total() int { return s.Valid + s.Invalid }

// OK reports whether every row is valid.
func (s Summary) OK() bool { return s.Invalid == 0 }

// Check parses and validates every row of a memory CSV file.
func Check(r io.Reader) (Summary, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return Summary{}, err
	}

	var s Summary
	for _, row := range rows {
		if row.Err != nil {
			s.Invalid++
			s.Problems = append(s.Problems, Problem{Line: row.Line, Errors: []string{row.Err.Error()}})
			continue
		}
		if err := row.Record.Validate(); err != nil {
			s.Invalid++
			var verr *ValidationError
			if errors.As(err, &verr) {
				s.Problems = append(s.Problems, Problem{Line: row.Line, Errors: verr.Problems})
			} else {
				s.Problems = append(s.Problems, Problem{Line: row.Line, Errors: []string{err.Error()}})
			}
			continue
		}
		s.Valid++
	}
	return s, nil
}

// Print writes a human-readable report of s.
func (s Summary) Print(w io.Writer) {
	for _, p := range s.Problems {
		fmt.Fprintf(w, "Record on line %d is invalid:\n", p.Line)
		for _, e := range p.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "----- Validation Summary -----")
	fmt.Fprintf(w, "Total records processed: %d\n", s.Total())
	fmt.Fprintf(w, "Valid records: %d\n", s.Valid)
	fmt.Fprintf(w, "Invalid records: %d\n", s.Invalid)
	fmt.Fprintln(w)
	if s.OK() {
		fmt.Fprintln(w, "Data looks good!")
	} else {
		fmt.Fprintln(w, "Data has issues and may not be processable.")
	}
}
