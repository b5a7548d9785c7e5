package memcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Writer writes memory records as CSV, header first.
type Writer struct {
	w           *csv.Writer
	wroteHeader bool
	count       int
}

// NewWriter creates a CSV writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w)}
}

// Write appends one record.
func (w *Writer) Write(r Record) error {
	if !w.wroteHeader {
		if err := w.w.Write(Header); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		w.wroteHeader = true
	}

	row := make([]string, numColumns)
	row[colChannel] = r.Channel
	row[colFrequency] = strconv.FormatUint(uint64(r.Frequency), 10)
	row[colTag] = r.Tag
	row[colMode] = r.Mode
	row[colChannelType] = r.ChannelType
	row[colSquelch] = r.Squelch
	row[colShift] = r.Shift
	row[colClarifier] = strconv.FormatInt(int64(r.Clarifier), 10)
	row[colRxClarifier] = r.RxClarifier
	row[colTxClarifier] = r.TxClarifier

	if err := w.w.Write(row); err != nil {
		return fmt.Errorf("failed to write CSV row for channel %s: %w", r.Channel, err)
	}
	w.count++
	return nil
}

// Flush writes buffered rows, including the header of an empty file.
func (w *Writer) Flush() error {
	if !w.wroteHeader {
		if err := w.w.Write(Header); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		w.wroteHeader = true
	}
	w.w.Flush()
	return w.w.Error()
}

// Count returns the number of records written.
func (w *Writer) Count() int { return w.count }

// Row is a parsed CSV row. Err is set when the row could not be turned
// into a Record at all (missing columns, non-numeric numbers).
type Row struct {
	Line   int
	Record Record
	Err    error
}

// ErrHeader reports a first line that is not the expected header.
var ErrHeader = errors.New("unexpected CSV header")

// ReadRows parses every data row of a memory CSV file. Rows that cannot
// be parsed are returned with Err set; only unreadable input fails.
func ReadRows(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var rows []Row
	lineNumber := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNumber++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				rows = append(rows, Row{Line: lineNumber, Err: err})
				continue
			}
			return rows, fmt.Errorf("error reading CSV at line %d: %w", lineNumber, err)
		}

		rec, err := parseRecord(fields)
		rows = append(rows, Row{Line: lineNumber, Record: rec, Err: err})
	}
	return rows, nil
}

// ReadRecords returns the records of every parsable row.
func ReadRecords(r io.Reader) ([]Record, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		if row.Err != nil {
			return nil, fmt.Errorf("line %d: %w", row.Line, row.Err)
		}
		records = append(records, row.Record)
	}
	return records, nil
}

func checkHeader(fields []string) error {
	if len(fields) != numColumns {
		return fmt.Errorf("%w: got %d columns, want %d", ErrHeader, len(fields), numColumns)
	}
	for i, name := range Header {
		// tolerate a UTF-8 byte order mark on the first column
		got := strings.TrimSpace(strings.TrimPrefix(fields[i], "\ufeff"))
		if got != name {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrHeader, i+1, got, name)
		}
	}
	return nil
}

func parseRecord(fields []string) (Record, error) {
	if len(fields) != numColumns {
		return Record{}, fmt.Errorf("insufficient fields (got %d, expected %d)", len(fields), numColumns)
	}

	freqStr := strings.TrimSpace(fields[colFrequency])
	freq, err := strconv.ParseUint(freqStr, 10, 32)
	if err != nil {
		return Record{}, fmt.Errorf("invalid frequency '%s': %w", freqStr, err)
	}

	clarStr := strings.TrimSpace(fields[colClarifier])
	clar, err := strconv.ParseInt(clarStr, 10, 16)
	if err != nil {
		return Record{}, fmt.Errorf("invalid clarifier offset '%s': %w", clarStr, err)
	}

	return Record{
		Channel:     strings.TrimSpace(fields[colChannel]),
		Frequency:   uint32(freq),
		Tag:         strings.TrimRight(fields[colTag], " "),
		Mode:        strings.TrimSpace(fields[colMode]),
		ChannelType: strings.TrimSpace(fields[colChannelType]),
		Squelch:     strings.TrimSpace(fields[colSquelch]),
		Shift:       strings.TrimSpace(fields[colShift]),
		Clarifier:   int16(clar),
		RxClarifier: strings.TrimSpace(fields[colRxClarifier]),
		TxClarifier: strings.TrimSpace(fields[colTxClarifier]),
	}, nil
}
