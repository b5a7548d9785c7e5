package cat

import "strings"

// Every enumeration below is a byte type whose value is its own wire
// character, so Code is a plain conversion and decoding is a table lookup.

type codeTable[T ~byte] struct {
	field string
	names map[T]string
}

func (t codeTable[T]) parse(c byte) (T, error) {
	if _, ok := t.names[T(c)]; !ok {
		return 0, newError(UnknownCode, t.field, "code %q", c)
	}
	return T(c), nil
}

func (t codeTable[T]) name(v T) string {
	if n, ok := t.names[v]; ok {
		return n
	}
	return "UNKNOWN"
}

func (t codeTable[T]) fromName(s string) (T, error) {
	s = strings.TrimSpace(s)
	for v, n := range t.names {
		if strings.EqualFold(n, s) {
			return v, nil
		}
	}
	return 0, newError(UnknownCode, t.field, "name %q", s)
}

//------------------------------------
// Mode
//------------------------------------

// Mode is the operating mode.
type Mode byte

const (
	ModeLSB     Mode = '1'
	ModeUSB     Mode = '2'
	ModeCWU     Mode = '3'
	ModeFM      Mode = '4'
	ModeAM      Mode = '5'
	ModeRTTYL   Mode = '6'
	ModeCWL     Mode = '7'
	ModeDataL   Mode = '8'
	ModeRTTYU   Mode = '9'
	ModeDataFM  Mode = 'A'
	ModeFMN     Mode = 'B'
	ModeDataU   Mode = 'C'
	ModeAMN     Mode = 'D'
	ModePSK     Mode = 'E'
	ModeDataFMN Mode = 'F'
)

var modes = codeTable[Mode]{field: "mode", names: map[Mode]string{
	ModeLSB:     "LSB",
	ModeUSB:     "USB",
	ModeCWU:     "CW-U",
	ModeFM:      "FM",
	ModeAM:      "AM",
	ModeRTTYL:   "RTTY-L",
	ModeCWL:     "CW-L",
	ModeDataL:   "DATA-L",
	ModeRTTYU:   "RTTY-U",
	ModeDataFM:  "DATA-FM",
	ModeFMN:     "FM-N",
	ModeDataU:   "DATA-U",
	ModeAMN:     "AM-N",
	ModePSK:     "PSK",
	ModeDataFMN: "DATA-FM-N",
}}

// ParseMode decodes a Mode code byte.
func ParseMode(c byte) (Mode, error) { return modes.parse(c) }

// ModeFromName looks up a Mode by display name, ignoring case.
func ModeFromName(s string) (Mode, error) { return modes.fromName(s) }

// Code returns the CAT code byte of the Mode.
func (m Mode) Code() byte { return byte(m) }

// String returns the display name of the Mode.
func (m Mode) String() string { return modes.name(m) }

//------------------------------------
// Band (main/sub receiver, the "side" of MC and CN)
//------------------------------------

// Band selects the main or sub receiver.
type Band byte

const (
	BandMain Band = '0'
	BandSub  Band = '1'
)

var bands = codeTable[Band]{field: "band", names: map[Band]string{
	BandMain: "Main",
	BandSub:  "Sub",
}}

// ParseBand decodes a Band code byte.
func ParseBand(c byte) (Band, error) { return bands.parse(c) }

// BandFromName looks up a Band by display name, ignoring case.
func BandFromName(s string) (Band, error) { return bands.fromName(s) }

// Code returns the CAT code byte of the Band.
func (b Band) Code() byte { return byte(b) }

// String returns the display name of the Band.
func (b Band) String() string { return bands.name(b) }

//------------------------------------
// Shift
//------------------------------------

// Shift is the repeater offset direction.
type Shift byte

const (
	ShiftSimplex Shift = '0'
	ShiftPlus    Shift = '1'
	ShiftMinus   Shift = '2'
)

var shifts = codeTable[Shift]{field: "shift", names: map[Shift]string{
	ShiftSimplex: "SIMPLEX",
	ShiftPlus:    "PLUS SHIFT",
	ShiftMinus:   "MINUS SHIFT",
}}

// ParseShift decodes a Shift code byte.
func ParseShift(c byte) (Shift, error) { return shifts.parse(c) }

// ShiftFromName looks up a Shift by display name, ignoring case.
func ShiftFromName(s string) (Shift, error) { return shifts.fromName(s) }

// Code returns the CAT code byte of the Shift.
func (s Shift) Code() byte { return byte(s) }

// String returns the display name of the Shift.
func (s Shift) String() string { return shifts.name(s) }

//------------------------------------
// Channel type
//------------------------------------

// ChannelType reports where a memory-read reply came from.
type ChannelType byte

const (
	ChannelVFO        ChannelType = '0'
	ChannelMemory     ChannelType = '1'
	ChannelMemoryTune ChannelType = '2'
	ChannelQMB        ChannelType = '3'
	ChannelReserved   ChannelType = '4'
	ChannelPMS        ChannelType = '5'
)

var channelTypes = codeTable[ChannelType]{field: "channel type", names: map[ChannelType]string{
	ChannelVFO:        "VFO",
	ChannelMemory:     "Memory",
	ChannelMemoryTune: "MemoryTune",
	ChannelQMB:        "QMB",
	ChannelReserved:   "Reserved",
	ChannelPMS:        "PMS",
}}

// ParseChannelType decodes a ChannelType code byte.
func ParseChannelType(c byte) (ChannelType, error) { return channelTypes.parse(c) }

// ChannelTypeFromName looks up a ChannelType by display name, ignoring case.
func ChannelTypeFromName(s string) (ChannelType, error) { return channelTypes.fromName(s) }

// Code returns the CAT code byte of the ChannelType.
func (t ChannelType) Code() byte { return byte(t) }

// String returns the display name of the ChannelType.
func (t ChannelType) String() string { return channelTypes.name(t) }

//------------------------------------
// Squelch type
//------------------------------------

// SquelchType is the tone squelch setting stored with a memory.
type SquelchType byte

const (
	SquelchOff         SquelchType = '0'
	SquelchCTCSSEncDec SquelchType = '1'
	SquelchCTCSSEnc    SquelchType = '2'
	SquelchDCS         SquelchType = '3'
	SquelchPRFreq      SquelchType = '4'
	SquelchRevTone     SquelchType = '5'
)

var squelchTypes = codeTable[SquelchType]{field: "squelch type", names: map[SquelchType]string{
	SquelchOff:         "CTCSS_OFF",
	SquelchCTCSSEncDec: "CTCSS_ENCDEC",
	SquelchCTCSSEnc:    "CTCSS_ENC",
	SquelchDCS:         "DCS",
	SquelchPRFreq:      "PR FREQ",
	SquelchRevTone:     "REV TONE",
}}

// ParseSquelchType decodes a SquelchType code byte.
func ParseSquelchType(c byte) (SquelchType, error) { return squelchTypes.parse(c) }

// SquelchTypeFromName looks up a SquelchType by display name, ignoring case.
func SquelchTypeFromName(s string) (SquelchType, error) { return squelchTypes.fromName(s) }

// Code returns the CAT code byte of the SquelchType.
func (s SquelchType) Code() byte { return byte(s) }

// String returns the display name of the SquelchType.
func (s SquelchType) String() string { return squelchTypes.name(s) }

//------------------------------------
// Clarifier on/off
//------------------------------------

// RxClarifier enables the clarifier offset on receive.
type RxClarifier byte

const (
	RxClarifierOff RxClarifier = '0'
	RxClarifierOn  RxClarifier = '1'
)

var rxClarifiers = codeTable[RxClarifier]{field: "rx clarifier", names: map[RxClarifier]string{
	RxClarifierOff: "OFF",
	RxClarifierOn:  "ON",
}}

// ParseRxClarifier decodes a RxClarifier code byte.
func ParseRxClarifier(c byte) (RxClarifier, error) { return rxClarifiers.parse(c) }

// RxClarifierFromName looks up a RxClarifier by display name, ignoring case.
func RxClarifierFromName(s string) (RxClarifier, error) { return rxClarifiers.fromName(s) }

// Code returns the CAT code byte of the RxClarifier.
func (r RxClarifier) Code() byte { return byte(r) }

// String returns the display name of the RxClarifier.
func (r RxClarifier) String() string { return rxClarifiers.name(r) }

// TxClarifier enables the clarifier offset on transmit.
type TxClarifier byte

const (
	TxClarifierOff TxClarifier = '0'
	TxClarifierOn  TxClarifier = '1'
)

var txClarifiers = codeTable[TxClarifier]{field: "tx clarifier", names: map[TxClarifier]string{
	TxClarifierOff: "OFF",
	TxClarifierOn:  "ON",
}}

// ParseTxClarifier decodes a TxClarifier code byte.
func ParseTxClarifier(c byte) (TxClarifier, error) { return txClarifiers.parse(c) }

// TxClarifierFromName looks up a TxClarifier by display name, ignoring case.
func TxClarifierFromName(s string) (TxClarifier, error) { return txClarifiers.fromName(s) }

// Code returns the CAT code byte of the TxClarifier.
func (t TxClarifier) Code() byte { return byte(t) }

// String returns the display name of the TxClarifier.
func (t TxClarifier) String() string { return txClarifiers.name(t) }

//------------------------------------
// Tone type (CN command)
//------------------------------------

// ToneType selects between a CTCSS tone and a DCS code.
type ToneType byte

const (
	ToneCTCSS ToneType = '0'
	ToneDCS   ToneType = '1'
)

var toneTypes = codeTable[ToneType]{field: "tone type", names: map[ToneType]string{
	ToneCTCSS: "CTCSS",
	ToneDCS:   "DCS",
}}

// ParseToneType decodes a ToneType code byte.
func ParseToneType(c byte) (ToneType, error) { return toneTypes.parse(c) }

// ToneTypeFromName looks up a ToneType by display name, ignoring case.
func ToneTypeFromName(s string) (ToneType, error) { return toneTypes.fromName(s) }

// Code returns the CAT code byte of the ToneType.
func (t ToneType) Code() byte { return byte(t) }

// String returns the display name of the ToneType.
func (t ToneType) String() string { return toneTypes.name(t) }

//------------------------------------
// PMS edge
//------------------------------------

// PMSEdge is the lower or upper end of a Program Memory Scan pair.
type PMSEdge byte

const (
	PMSLower PMSEdge = 'L'
	PMSUpper PMSEdge = 'U'
)

var pmsEdges = codeTable[PMSEdge]{field: "pms edge", names: map[PMSEdge]string{
	PMSLower: "Lower",
	PMSUpper: "Upper",
}}

// ParsePMSEdge decodes a PMSEdge code byte.
func ParsePMSEdge(c byte) (PMSEdge, error) { return pmsEdges.parse(c) }

// Code returns the CAT code byte of the PMSEdge.
func (e PMSEdge) Code() byte { return byte(e) }

// String returns the display name of the PMSEdge.
func (e PMSEdge) String() string { return pmsEdges.name(e) }
