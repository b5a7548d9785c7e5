package memcsv

import (
	"fmt"
	"strings"

	"github.com/dbehnke/ftx1chm/internal/cat"
)

// Header is the column layout of a memory CSV file.
var Header = []string{
	"Channel Number",
	"Frequency (Hz)",
	"Memory Tag",
	"Mode",
	"Channel Type",
	"Squelch Type",
	"Shift (Hz)",
	"Clarifier Offset (Hz)",
	"Rx Clarifier Enabled",
	"Tx Clarifier Enabled",
}

const (
	colChannel = iota
	colFrequency
	colTag
	colMode
	colChannelType
	colSquelch
	colShift
	colClarifier
	colRxClarifier
	colTxClarifier
	numColumns
)

// Record is one row of a memory CSV file. Enumerated columns hold
// display names such as "FM" or "PLUS SHIFT".
type Record struct {
	Channel     string
	Frequency   uint32
	Tag         string
	Mode        string
	ChannelType string
	Squelch     string
	Shift       string
	Clarifier   int16
	RxClarifier string
	TxClarifier string
}

// NewRecord converts a memory channel read from the radio into a row.
func NewRecord(m cat.MemoryRead, tag string) Record {
	return Record{
		Channel:     m.Channel.Text(),
		Frequency:   m.Frequency.Hz(),
		Tag:         tag,
		Mode:        m.Mode.String(),
		ChannelType: m.ChannelType.String(),
		Squelch:     m.Squelch.String(),
		Shift:       m.Shift.String(),
		Clarifier:   m.Clarifier.Hz(),
		RxClarifier: m.RxClarifier.String(),
		TxClarifier: m.TxClarifier.String(),
	}
}

// ValidationError lists every problem found in a record.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Validate checks every field and reports all problems at once.
func (r Record) Validate() error {
	_, problems := r.convert()
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// MemoryRead converts the row back into a memory channel for writing.
func (r Record) MemoryRead() (cat.MemoryRead, error) {
	m, problems := r.convert()
	if len(problems) > 0 {
		return cat.MemoryRead{}, &ValidationError{Problems: problems}
	}
	return m, nil
}

func (r Record) convert() (cat.MemoryRead, []string) {
	var problems []string
	m := cat.DefaultMemoryRead()

	if len(r.Channel) != cat.ChannelWidth {
		problems = append(problems, fmt.Sprintf("Channel '%s' has invalid length. Expected %d.", r.Channel, cat.ChannelWidth))
	} else if ch, err := cat.ParseMemoryChannel([]byte(r.Channel)); err != nil {
		problems = append(problems, fmt.Sprintf("Channel '%s' is not a valid memory channel.", r.Channel))
	} else {
		m.Channel = ch
	}

	if f, err := cat.NewFrequency(r.Frequency); err != nil {
		problems = append(problems, fmt.Sprintf("Frequency '%d' is not valid.", r.Frequency))
	} else {
		m.Frequency = f
	}

	if c, err := cat.NewClarifierOffset(r.Clarifier); err != nil {
		problems = append(problems, fmt.Sprintf("Clarifier offset '%d' is not within +/-%d Hz.", r.Clarifier, cat.ClarifierMax))
	} else {
		m.Clarifier = c
	}

	if mode, err := cat.ModeFromName(r.Mode); err != nil {
		problems = append(problems, fmt.Sprintf("Mode '%s' is not a valid mode.", r.Mode))
	} else {
		m.Mode = mode
	}

	if t, err := lookup(r.ChannelType, cat.ChannelTypeFromName, channelTypeAliases); err != nil {
		problems = append(problems, fmt.Sprintf("Channel type '%s' is not valid.", r.ChannelType))
	} else {
		m.ChannelType = t
	}

	if s, err := lookup(r.Squelch, cat.SquelchTypeFromName, squelchAliases); err != nil {
		problems = append(problems, fmt.Sprintf("Squelch type '%s' is not valid.", r.Squelch))
	} else {
		m.Squelch = s
	}

	if s, err := lookup(r.Shift, cat.ShiftFromName, shiftAliases); err != nil {
		problems = append(problems, fmt.Sprintf("Shift '%s' is not valid.", r.Shift))
	} else {
		m.Shift = s
	}

	if c, err := lookup(r.RxClarifier, cat.RxClarifierFromName, rxClarifierAliases); err != nil {
		problems = append(problems, fmt.Sprintf("Rx clarifier '%s' is not valid.", r.RxClarifier))
	} else {
		m.RxClarifier = c
	}

	if c, err := lookup(r.TxClarifier, cat.TxClarifierFromName, txClarifierAliases); err != nil {
		problems = append(problems, fmt.Sprintf("Tx clarifier '%s' is not valid.", r.TxClarifier))
	} else {
		m.TxClarifier = c
	}

	if err := cat.CheckTag(r.Tag); err != nil {
		kind, _ := cat.KindOf(err)
		switch {
		case kind == cat.LengthMismatch:
			problems = append(problems, fmt.Sprintf("Memory tag '%s' is longer than %d characters.", r.Tag, cat.TagWidth))
		case strings.ContainsRune(r.Tag, cat.Terminator):
			problems = append(problems, fmt.Sprintf("Memory tag '%s' must not contain '%c'.", r.Tag, cat.Terminator))
		default:
			problems = append(problems, fmt.Sprintf("Memory tag '%s' must be printable ASCII.", r.Tag))
		}
	}

	return m, problems
}

// Files written by earlier tools spell enumerations as identifiers
// (e.g. "PlusShift", "CtcssEncDec"). Keys are normalized.
var (
	channelTypeAliases = map[string]string{
		"memorychannel": "Memory",
		"reserved4":     "Reserved",
	}
	shiftAliases = map[string]string{
		"plusshift":  "PLUS SHIFT",
		"minusshift": "MINUS SHIFT",
	}
	squelchAliases = map[string]string{
		"ctcssoff":    "CTCSS_OFF",
		"ctcssencdec": "CTCSS_ENCDEC",
		"ctcssenc":    "CTCSS_ENC",
		"prfreq":      "PR FREQ",
		"revtone":     "REV TONE",
	}
	rxClarifierAliases = map[string]string{
		"rxclarifieroff": "OFF",
		"rxclarifieron":  "ON",
	}
	txClarifierAliases = map[string]string{
		"txclarifieroff": "OFF",
		"txclarifieron":  "ON",
	}
)

func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}

func lookup[T any](s string, fromName func(string) (T, error), aliases map[string]string) (T, error) {
	v, err := fromName(s)
	if err == nil {
		return v, nil
	}
	if alias, ok := aliases[normalize(s)]; ok {
		return fromName(alias)
	}
	return v, err
}
