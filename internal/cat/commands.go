package cat

import (
	"fmt"
	"strings"
)

// Power limits accepted by the PC set command, in watts.
const (
	PowerMin = 5
	PowerMax = 100

	// TagWidth is the fixed length of a memory tag.
	TagWidth = 12
)

// Command descriptors. Each reply-parameter count is the exact number of
// bytes between the mnemonic and the terminator of a read reply.
var (
	CmdID = IDCommand{cmd: NewCmd("ID", 4)}
	CmdMD = MDCommand{cmd: NewCmd("MD", 2)}
	CmdPC = PCCommand{cmd: NewCmd("PC", 3)}
	CmdTX = TXCommand{cmd: NewCmd("TX", 1)}
	CmdMR = MRCommand{cmd: NewCmd("MR", MemoryParamsLen)}
	CmdMW = MWCommand{cmd: NewCmd("MW", MemoryParamsLen)}
	CmdMT = MTCommand{cmd: NewCmd("MT", ChannelWidth+TagWidth)}
	CmdMC = MCCommand{cmd: NewCmd("MC", 1+ChannelWidth)}
	CmdCN = CNCommand{cmd: NewCmd("CN", 5)}
)

//------------------------------------
// ID - identification
//------------------------------------

// IDCommand reads the radio model id.
type IDCommand struct{ cmd Cmd }

// Descriptor returns the ID command descriptor.
func (c IDCommand) Descriptor() Cmd { return c.cmd }

// Read builds "ID;".
func (c IDCommand) Read() []byte { return c.cmd.Frame(nil) }

// Decode parses "IDnnnn;".
func (c IDCommand) Decode(buf []byte) (uint16, error) {
	if err := c.cmd.CheckReply(buf); err != nil {
		return 0, err
	}
	return ParseUint4(c.cmd.params(buf))
}

// Validate accepts only the FTX-1 id.
func (c IDCommand) Validate(id uint16) error {
	return ValidateID(id, FTX1ID)
}

// ValidateID returns an *IDMismatchError unless got equals want.
func ValidateID(got, want uint16) error {
	if got != want {
		return &IDMismatchError{Got: got, Want: want}
	}
	return nil
}

//------------------------------------
// MD - operating mode
//------------------------------------

// MDCommand reads and sets the operating mode of a band.
type MDCommand struct{ cmd Cmd }

// Descriptor returns the MD command descriptor.
func (c MDCommand) Descriptor() Cmd { return c.cmd }

// Set builds e.g. "MD04;" for main band FM.
func (c MDCommand) Set(band Band, mode Mode) []byte {
	return c.cmd.Frame([]byte{band.Code(), mode.Code()})
}

// Read builds e.g. "MD0;".
func (c MDCommand) Read(band Band) []byte {
	return c.cmd.Frame([]byte{band.Code()})
}

// Decode parses "MDbm;".
func (c MDCommand) Decode(buf []byte) (Band, Mode, error) {
	if err := c.cmd.CheckReply(buf); err != nil {
		return 0, 0, err
	}
	p := c.cmd.params(buf)
	band, err := ParseBand(p[0])
	if err != nil {
		return 0, 0, err
	}
	mode, err := ParseMode(p[1])
	if err != nil {
		return 0, 0, err
	}
	return band, mode, nil
}

//------------------------------------
// PC - power control
//------------------------------------

// PCCommand reads and sets the output power.
type PCCommand struct{ cmd Cmd }

// Descriptor returns the PC command descriptor.
func (c PCCommand) Descriptor() Cmd { return c.cmd }

// Set builds "PCnnn;" for 5-100 W.
func (c PCCommand) Set(power uint8) ([]byte, error) {
	if power < PowerMin || power > PowerMax {
		return nil, newError(OutOfRange, "power", "%d W", power)
	}
	digits := FormatUint3(power)
	return c.cmd.Frame(digits[:]), nil
}

// Read builds "PC;".
func (c PCCommand) Read() []byte { return c.cmd.Frame(nil) }

// Decode parses "PCnnn;".
func (c PCCommand) Decode(buf []byte) (uint8, error) {
	if err := c.cmd.CheckReply(buf); err != nil {
		return 0, err
	}
	return ParseUint3(c.cmd.params(buf))
}

//------------------------------------
// TX - transmit
//------------------------------------

// TXCommand keys and unkeys the transmitter.
type TXCommand struct{ cmd Cmd }

// Descriptor returns the TX command descriptor.
func (c TXCommand) Descriptor() Cmd { return c.cmd }

// Set builds "TX1;" to key the transmitter and "TX0;" to release it.
func (c TXCommand) Set(on bool) []byte {
	if on {
		return c.cmd.Frame([]byte{'1'})
	}
	return c.cmd.Frame([]byte{'0'})
}

// Read builds "TX;".
func (c TXCommand) Read() []byte { return c.cmd.Frame(nil) }

// Decode reports false for '0' and true for anything else.
func (c TXCommand) Decode(buf []byte) (bool, error) {
	if err := c.cmd.CheckReply(buf); err != nil {
		return false, err
	}
	return c.cmd.params(buf)[0] != '0', nil
}

//------------------------------------
// MR - memory channel read
//------------------------------------

// MRCommand reads the content of a memory channel.
type MRCommand struct{ cmd Cmd }

// Descriptor returns the MR command descriptor.
func (c MRCommand) Descriptor() Cmd { return c.cmd }

// Read builds e.g. "MR00001;".
func (c MRCommand) Read(ch MemoryChannel) []byte {
	text := ch.Encode()
	return c.cmd.Frame(text[:])
}

// Decode parses an MR reply into its memory fields.
func (c MRCommand) Decode(buf []byte) (MemoryRead, error) {
	if err := c.cmd.CheckReply(buf); err != nil {
		return MemoryRead{}, err
	}
	return DecodeMemoryParams(c.cmd.params(buf))
}

//------------------------------------
// MW - memory channel write
//------------------------------------

// MWCommand writes a memory channel. The radio does not answer it.
type MWCommand struct{ cmd Cmd }

// Descriptor returns the MW command descriptor.
func (c MWCommand) Descriptor() Cmd { return c.cmd }

// Set builds the MW frame that stores m.
func (c MWCommand) Set(m MemoryRead) []byte {
	p := m.EncodeParams()
	return c.cmd.Frame(p[:])
}

//------------------------------------
// MT - memory channel tag
//------------------------------------

// MTCommand reads and writes the 12-character tag of a memory channel.
type MTCommand struct{ cmd Cmd }

// Descriptor returns the MT command descriptor.
func (c MTCommand) Descriptor() Cmd { return c.cmd }

// Read builds e.g. "MT00001;".
func (c MTCommand) Read(ch MemoryChannel) []byte {
	text := ch.Encode()
	return c.cmd.Frame(text[:])
}

// CheckTag reports whether tag can be stored by MT: at most TagWidth bytes
// of printable ASCII other than the terminator.
func CheckTag(tag string) error {
	if len(tag) > TagWidth {
		return newError(LengthMismatch, "tag", "%q is longer than %d", tag, TagWidth)
	}
	for i := 0; i < len(tag); i++ {
		if tag[i] < ' ' || tag[i] > '~' || tag[i] == Terminator {
			return newError(UnknownCode, "tag", "byte %q", tag[i])
		}
	}
	return nil
}

// Set builds "MTccccctttttttttttt;" with the tag space-padded to 12 characters.
func (c MTCommand) Set(ch MemoryChannel, tag string) ([]byte, error) {
	if err := CheckTag(tag); err != nil {
		return nil, err
	}
	params := make([]byte, 0, ChannelWidth+TagWidth)
	text := ch.Encode()
	params = append(params, text[:]...)
	params = append(params, tag...)
	for len(params) < ChannelWidth+TagWidth {
		params = append(params, ' ')
	}
	return c.cmd.Frame(params), nil
}

// Decode returns the tag with its trailing padding removed.
func (c MTCommand) Decode(buf []byte) (string, error) {
	if err := c.cmd.CheckReply(buf); err != nil {
		return "", err
	}
	tag := c.cmd.params(buf)[ChannelWidth:]
	return strings.TrimRight(string(tag), " \x00"), nil
}

//------------------------------------
// MC - memory channel select
//------------------------------------

// MCReply is the band and channel reported by MC.
type MCReply struct {
	Band    Band
	Channel MemoryChannel
}

// MCCommand selects the current memory channel.
type MCCommand struct{ cmd Cmd }

// Descriptor returns the MC command descriptor.
func (c MCCommand) Descriptor() Cmd { return c.cmd }

// Read builds "MC;".
func (c MCCommand) Read() []byte { return c.cmd.Frame(nil) }

// Set builds e.g. "MC00001;".
func (c MCCommand) Set(ch MemoryChannel) []byte {
	text := ch.Encode()
	return c.cmd.Frame(text[:])
}

// Decode parses "MCbccccc;".
func (c MCCommand) Decode(buf []byte) (MCReply, error) {
	if err := c.cmd.CheckReply(buf); err != nil {
		return MCReply{}, err
	}
	p := c.cmd.params(buf)
	band, err := ParseBand(p[0])
	if err != nil {
		return MCReply{}, err
	}
	ch, err := ParseMemoryChannel(p[1:])
	if err != nil {
		return MCReply{}, err
	}
	return MCReply{Band: band, Channel: ch}, nil
}

//------------------------------------
// CN - CTCSS tone frequency / DCS code
//------------------------------------

// CNReply is the tone setting reported by CN.
type CNReply struct {
	Band     Band
	ToneType ToneType
	Code     ToneCode
}

// String formats the reply for display.
func (r CNReply) String() string {
	return fmt.Sprintf("%s %s %s", r.Band, r.ToneType, r.Code.Describe(r.ToneType))
}

// CNCommand reads and sets the CTCSS tone or DCS code.
type CNCommand struct{ cmd Cmd }

// Descriptor returns the CN command descriptor.
func (c CNCommand) Descriptor() Cmd { return c.cmd }

// Read builds "CN;".
func (c CNCommand) Read() []byte { return c.cmd.Frame(nil) }

// Set builds "CNbtnnn;". code indexes CTCSSTones or DCSCodes.
func (c CNCommand) Set(band Band, toneType ToneType, code ToneCode) ([]byte, error) {
	if err := checkToneCode(toneType, code); err != nil {
		return nil, err
	}
	digits := FormatUint3(uint8(code))
	return c.cmd.Frame([]byte{band.Code(), toneType.Code(), digits[0], digits[1], digits[2]}), nil
}

// Decode parses "CNbtnnn;".
func (c CNCommand) Decode(buf []byte) (CNReply, error) {
	if err := c.cmd.CheckReply(buf); err != nil {
		return CNReply{}, err
	}
	p := c.cmd.params(buf)
	band, err := ParseBand(p[0])
	if err != nil {
		return CNReply{}, err
	}
	toneType, err := ParseToneType(p[1])
	if err != nil {
		return CNReply{}, err
	}
	code, err := ParseUint3(p[2:5])
	if err != nil {
		return CNReply{}, err
	}
	return CNReply{Band: band, ToneType: toneType, Code: ToneCode(code)}, nil
}
