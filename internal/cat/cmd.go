package cat

import "bytes"

// Frame layout constants
const (
	Terminator    = ';'
	MnemonicLen   = 2
	FrameOverhead = MnemonicLen + 1 // mnemonic plus terminator
)

// Cmd describes one CAT command: its two-character mnemonic and the number
// of parameter bytes its reply carries. Descriptors are immutable and shared.
type Cmd struct {
	code        [MnemonicLen]byte
	replyParams int
}

// NewCmd builds a descriptor. code must be exactly two ASCII characters.
func NewCmd(code string, replyParams int) Cmd {
	var c Cmd
	copy(c.code[:], code)
	c.replyParams = replyParams
	return c
}

// Code returns the mnemonic.
func (c Cmd) Code() string { return string(c.code[:]) }

// ReplyParams returns the expected number of reply parameter bytes.
func (c Cmd) ReplyParams() int { return c.replyParams }

// ReplyLen returns the full length of a well-formed reply frame.
func (c Cmd) ReplyLen() int { return c.replyParams + FrameOverhead }

// Frame builds an outbound frame: mnemonic, params (may be nil), terminator.
func (c Cmd) Frame(params []byte) []byte {
	frame := make([]byte, 0, FrameOverhead+len(params))
	frame = append(frame, c.code[:]...)
	frame = append(frame, params...)
	frame = append(frame, Terminator)
	return frame
}

// CheckReply validates a reply frame the way the radio firmware tooling
// always has: both mnemonic bytes and the terminator must occur somewhere
// in the buffer, and the parameter count must match exactly. Positions
// are not checked; see CheckReplyStrict.
func (c Cmd) CheckReply(buf []byte) error {
	if len(buf) < FrameOverhead {
		return newError(ShortBuffer, c.Code(), "got %d bytes", len(buf))
	}
	if bytes.IndexByte(buf, c.code[0]) < 0 || bytes.IndexByte(buf, c.code[1]) < 0 {
		return newError(MnemonicMismatch, c.Code(), "reply %q", buf)
	}
	if len(buf)-FrameOverhead != c.replyParams {
		return newError(LengthMismatch, c.Code(), "got %d params, want %d", len(buf)-FrameOverhead, c.replyParams)
	}
	if bytes.IndexByte(buf, Terminator) < 0 {
		return newError(MissingTerminator, c.Code(), "reply %q", buf)
	}
	return nil
}

// CheckReplyStrict applies CheckReply and additionally requires the
// mnemonic at offsets 0-1 and the terminator as the last byte.
func (c Cmd) CheckReplyStrict(buf []byte) error {
	if err := c.CheckReply(buf); err != nil {
		return err
	}
	if buf[0] != c.code[0] || buf[1] != c.code[1] {
		return newError(MnemonicMismatch, c.Code(), "reply starts with %q", buf[:MnemonicLen])
	}
	if buf[len(buf)-1] != Terminator {
		return newError(MissingTerminator, c.Code(), "last byte %q", buf[len(buf)-1])
	}
	return nil
}

// params returns the parameter bytes of an already validated reply.
func (c Cmd) params(buf []byte) []byte {
	return buf[MnemonicLen : len(buf)-1]
}
