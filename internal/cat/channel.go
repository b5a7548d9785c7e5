package cat

import (
	"bytes"
	"fmt"
)

// Memory channel field, always 5 characters:
//
//	00000         VFO, memory tune or QMB
//	00001 - 00999 memory channel
//	P-01L - P-50U program memory scan edge
//	50001 - 50099 5 MHz band slot
//	EMGCH         emergency channel
const ChannelWidth = 5

const (
	MemMin     = 1
	MemMax     = 999
	PMSMin     = 1
	PMSMax     = 50
	FiveMHzMin = 1
	FiveMHzMax = 99
)

var (
	vfoText       = []byte("00000")
	emergencyText = []byte("EMGCH")
)

// ChannelKind tags which addressing scheme a MemoryChannel uses.
type ChannelKind uint8

const (
	KindVFO ChannelKind = iota
	KindMemory
	KindPMS
	KindFiveMHz
	KindEmergency
)

// MemoryChannel addresses one of the five disjoint channel schemes.
// The zero value is the VFO/MT/QMB channel.
type MemoryChannel struct {
	kind   ChannelKind
	number uint16 // memory number, PMS slot or 5 MHz slot
	edge   PMSEdge
}

// VFOChannel returns the VFO/MT/QMB address.
func VFOChannel() MemoryChannel {
	return MemoryChannel{kind: KindVFO}
}

// MemChannel addresses memory n (1-999).
func MemChannel(n uint16) (MemoryChannel, error) {
	if n < MemMin || n > MemMax {
		return MemoryChannel{}, newError(OutOfRange, "memory channel", "%d", n)
	}
	return MemoryChannel{kind: KindMemory, number: n}, nil
}

// PMSChannel addresses one edge of PMS pair slot (1-50).
func PMSChannel(slot uint8, edge PMSEdge) (MemoryChannel, error) {
	if slot < PMSMin || slot > PMSMax {
		return MemoryChannel{}, newError(OutOfRange, "pms channel", "slot %d", slot)
	}
	if _, err := ParsePMSEdge(byte(edge)); err != nil {
		return MemoryChannel{}, err
	}
	return MemoryChannel{kind: KindPMS, number: uint16(slot), edge: edge}, nil
}

// FiveMHzChannel addresses 5 MHz band slot n.
func FiveMHzChannel(n uint8) (MemoryChannel, error) {
	if n < FiveMHzMin || n > FiveMHzMax {
		return MemoryChannel{}, newError(OutOfRange, "5 MHz channel", "%d", n)
	}
	return MemoryChannel{kind: KindFiveMHz, number: uint16(n)}, nil
}

// EmergencyChannel returns the emergency channel address.
func EmergencyChannel() MemoryChannel {
	return MemoryChannel{kind: KindEmergency}
}

// Kind reports which memory area the address belongs to.
func (c MemoryChannel) Kind() ChannelKind { return c.kind }

// Number is the memory number, PMS slot or 5 MHz slot; zero otherwise.
func (c MemoryChannel) Number() uint16 { return c.number }

// Edge is only meaningful for PMS channels.
func (c MemoryChannel) Edge() PMSEdge { return c.edge }

// ParseMemoryChannel decodes the 5-character channel field. Full literals
// are matched before the first-character dispatch so "00000" never reads
// as memory 0.
func ParseMemoryChannel(b []byte) (MemoryChannel, error) {
	if len(b) != ChannelWidth {
		return MemoryChannel{}, newError(LengthMismatch, "memory channel", "got %d bytes, want %d", len(b), ChannelWidth)
	}

	switch {
	case bytes.Equal(b, vfoText):
		return VFOChannel(), nil
	case bytes.Equal(b, emergencyText):
		return EmergencyChannel(), nil
	}

	switch b[0] {
	case '0':
		n, err := ParseUint4(b[1:])
		if err != nil {
			return MemoryChannel{}, err
		}
		return MemChannel(n)
	case 'P':
		slot, err := DigitsToUint(b[2:4], 2)
		if err != nil {
			return MemoryChannel{}, err
		}
		edge, err := ParsePMSEdge(b[4])
		if err != nil {
			return MemoryChannel{}, err
		}
		return PMSChannel(uint8(slot), edge)
	case '5':
		n, err := ParseUint4(b[1:])
		if err != nil {
			return MemoryChannel{}, err
		}
		if n > FiveMHzMax {
			return MemoryChannel{}, newError(OutOfRange, "5 MHz channel", "%d", n)
		}
		return FiveMHzChannel(uint8(n))
	}
	return MemoryChannel{}, newError(UnknownCode, "memory channel", "%q", b)
}

// Encode returns the 5-character wire form.
func (c MemoryChannel) Encode() [ChannelWidth]byte {
	var out [ChannelWidth]byte
	switch c.kind {
	case KindMemory:
		copy(out[:], fmt.Sprintf("%05d", c.number))
	case KindPMS:
		copy(out[:], fmt.Sprintf("P-%02d%c", c.number, c.edge))
	case KindFiveMHz:
		copy(out[:], fmt.Sprintf("5%04d", c.number))
	case KindEmergency:
		copy(out[:], emergencyText)
	default:
		copy(out[:], vfoText)
	}
	return out
}

// Text returns the wire form as a string.
func (c MemoryChannel) Text() string {
	b := c.Encode()
	return string(b[:])
}

// String is a human-readable description.
func (c MemoryChannel) String() string {
	switch c.kind {
	case KindMemory:
		return fmt.Sprintf("Mem(%d)", c.number)
	case KindPMS:
		return fmt.Sprintf("PMS-%02d%c", c.number, c.edge)
	case KindFiveMHz:
		return fmt.Sprintf("5MHz Band(%d)", c.number)
	case KindEmergency:
		return "EMGCH"
	default:
		return "VFO/MT/QMB"
	}
}
