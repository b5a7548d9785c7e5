package cat

import "fmt"

// Parameter offsets of a memory read/write frame (after the mnemonic):
//
//	MR00001007000000+000000110000;
//	  |    |        |    ||||||| shift
//	  |    |        |    |||||reserved x2
//	  |    |        |    ||||squelch type
//	  |    |        |    |||channel type
//	  |    |        |    ||mode
//	  |    |        |    |tx clarifier
//	  |    |        |    rx clarifier
//	  |    |        clarifier offset
//	  |    frequency
//	  channel
const (
	mrChannel   = 0
	mrFrequency = 5
	mrClarifier = 14
	mrRx        = 19
	mrTx        = 20
	mrMode      = 21
	mrType      = 22
	mrSquelch   = 23
	mrReserved  = 24
	mrShift     = 26

	MemoryParamsLen = 27
)

// MemoryRead is the full content of one memory channel.
type MemoryRead struct {
	Channel     MemoryChannel
	Frequency   Frequency
	Clarifier   ClarifierOffset
	RxClarifier RxClarifier
	TxClarifier TxClarifier
	Mode        Mode
	ChannelType ChannelType
	Squelch     SquelchType
	Shift       Shift
}

// DefaultMemoryRead is the baseline fields are decoded over.
func DefaultMemoryRead() MemoryRead {
	return MemoryRead{
		Channel:     VFOChannel(),
		RxClarifier: RxClarifierOff,
		TxClarifier: TxClarifierOff,
		Mode:        ModeLSB,
		ChannelType: ChannelVFO,
		Squelch:     SquelchOff,
		Shift:       ShiftSimplex,
	}
}

// DecodeMemoryParams decodes the 27 parameter bytes of an MR reply.
func DecodeMemoryParams(p []byte) (MemoryRead, error) {
	if len(p) != MemoryParamsLen {
		return MemoryRead{}, newError(LengthMismatch, "memory params", "got %d bytes, want %d", len(p), MemoryParamsLen)
	}

	mr := DefaultMemoryRead()
	var err error
	if mr.Channel, err = ParseMemoryChannel(p[mrChannel:mrFrequency]); err != nil {
		return MemoryRead{}, err
	}
	if mr.Frequency, err = ParseFrequency(p[mrFrequency:mrClarifier]); err != nil {
		return MemoryRead{}, err
	}
	if mr.Clarifier, err = ParseClarifierOffset(p[mrClarifier:mrRx]); err != nil {
		return MemoryRead{}, err
	}
	if mr.RxClarifier, err = ParseRxClarifier(p[mrRx]); err != nil {
		return MemoryRead{}, err
	}
	if mr.TxClarifier, err = ParseTxClarifier(p[mrTx]); err != nil {
		return MemoryRead{}, err
	}
	if mr.Mode, err = ParseMode(p[mrMode]); err != nil {
		return MemoryRead{}, err
	}
	if mr.ChannelType, err = ParseChannelType(p[mrType]); err != nil {
		return MemoryRead{}, err
	}
	if mr.Squelch, err = ParseSquelchType(p[mrSquelch]); err != nil {
		return MemoryRead{}, err
	}
	// p[mrReserved:mrShift] is unused
	if mr.Shift, err = ParseShift(p[mrShift]); err != nil {
		return MemoryRead{}, err
	}
	return mr, nil
}

// EncodeParams renders the 27 parameter bytes, the inverse of DecodeMemoryParams.
// Reserved bytes are written as "00".
func (m MemoryRead) EncodeParams() [MemoryParamsLen]byte {
	var p [MemoryParamsLen]byte
	ch := m.Channel.Encode()
	copy(p[mrChannel:], ch[:])
	copy(p[mrFrequency:], m.Frequency.String())
	copy(p[mrClarifier:], m.Clarifier.String())
	p[mrRx] = m.RxClarifier.Code()
	p[mrTx] = m.TxClarifier.Code()
	p[mrMode] = m.Mode.Code()
	p[mrType] = m.ChannelType.Code()
	p[mrSquelch] = m.Squelch.Code()
	p[mrReserved] = '0'
	p[mrReserved+1] = '0'
	p[mrShift] = m.Shift.Code()
	return p
}

func (m MemoryRead) String() string {
	return fmt.Sprintf("#%s(%s), Frequency: %d Hz, Mode: %s, Tone: %s, Shift: %s, Clarifier: %s Hz, RX: %s, TX: %s",
		m.Channel, m.ChannelType, m.Frequency.Hz(), m.Mode, m.Squelch, m.Shift,
		m.Clarifier, m.RxClarifier, m.TxClarifier)
}
