package cat

import "fmt"

// Legal tuning ranges: 30 kHz - 174 MHz and 400 MHz - 470 MHz, upper bounds exclusive.
const (
	HFVHFMin  = 30_000
	HFVHFMax  = 174_000_000
	UHFMin    = 400_000_000
	UHFMax    = 470_000_000
	FreqWidth = 9

	ClarifierMax   = 9_990
	ClarifierWidth = 5
)

// Frequency is a tuning frequency in hertz. The zero value is only used as
// the decoding baseline and never encodes a real channel.
type Frequency struct {
	hz uint32
}

// NewFrequency validates hz against the radio's tuning ranges.
func NewFrequency(hz uint32) (Frequency, error) {
	if !(hz >= HFVHFMin && hz < HFVHFMax || hz >= UHFMin && hz < UHFMax) {
		return Frequency{}, newError(OutOfRange, "frequency", "%d Hz", hz)
	}
	return Frequency{hz: hz}, nil
}

// ParseFrequency decodes the 9-digit wire form.
func ParseFrequency(b []byte) (Frequency, error) {
	hz, err := ParseUint9(b)
	if err != nil {
		return Frequency{}, err
	}
	return NewFrequency(hz)
}

// Hz returns the frequency in hertz.
func (f Frequency) Hz() uint32 { return f.hz }

// String returns the 9-digit zero-padded wire form.
func (f Frequency) String() string {
	return fmt.Sprintf("%09d", f.hz)
}

// ClarifierOffset is a receive/transmit clarifier offset in hertz.
type ClarifierOffset struct {
	hz int16
}

// NewClarifierOffset rejects offsets beyond +/-9990 Hz.
func NewClarifierOffset(hz int16) (ClarifierOffset, error) {
	if hz > ClarifierMax || hz < -ClarifierMax {
		return ClarifierOffset{}, newError(OutOfRange, "clarifier offset", "%d Hz", hz)
	}
	return ClarifierOffset{hz: hz}, nil
}

// ParseClarifierOffset decodes the signed 5-byte wire form.
func ParseClarifierOffset(b []byte) (ClarifierOffset, error) {
	hz, err := ParseInt4(b)
	if err != nil {
		return ClarifierOffset{}, err
	}
	return NewClarifierOffset(hz)
}

// Hz returns the offset in hertz.
func (c ClarifierOffset) Hz() int16 { return c.hz }

// String returns the wire form: sign followed by 4 zero-padded digits.
func (c ClarifierOffset) String() string {
	return fmt.Sprintf("%+05d", c.hz)
}
