package radio

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dbehnke/ftx1chm/internal/cat"
)

// Link carries frames to and from the radio. Receive returns an empty
// reply, not an error, when the radio stays silent.
type Link interface {
	Send(frame []byte) error
	Receive() ([]byte, error)
}

// Config holds optional client behavior
type Config struct {
	ExpectedID    uint16 // radio id Identify validates against (default: FTX-1)
	StrictReplies bool   // check mnemonic and terminator positions, not just presence
	Debug         bool   // log every frame sent and received
}

// Radio issues CAT commands over a Link, one request at a time.
type Radio struct {
	link       Link
	logger     *log.Logger
	expectedID uint16
	strict     bool
	debug      bool
}

// Channel is one memory channel as read from the radio.
type Channel struct {
	Memory cat.MemoryRead
	Tag    string
}

// ProgressFunc is called after each channel of a scan.
type ProgressFunc func(done, total int)

// New creates a radio client for an FTX-1.
func New(link Link, logger *log.Logger) *Radio {
	return NewWithConfig(link, logger, Config{})
}

// NewWithConfig creates a radio client with custom configuration
func NewWithConfig(link Link, logger *log.Logger, config Config) *Radio {
	if config.ExpectedID == 0 {
		config.ExpectedID = cat.FTX1ID
	}
	return &Radio{
		link:       link,
		logger:     logger,
		expectedID: config.ExpectedID,
		strict:     config.StrictReplies,
		debug:      config.Debug,
	}
}

func (r *Radio) logf(format string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}

func (r *Radio) send(frame []byte) error {
	if r.debug {
		r.logf("TX %q", frame)
	}
	if err := r.link.Send(frame); err != nil {
		return fmt.Errorf("send %q: %w", frame, err)
	}
	return nil
}

// query sends frame and returns the reply for cmd.
func (r *Radio) query(cmd cat.Cmd, frame []byte) ([]byte, error) {
	if err := r.send(frame); err != nil {
		return nil, err
	}
	reply, err := r.link.Receive()
	if err != nil {
		return nil, fmt.Errorf("receive %s reply: %w", cmd.Code(), err)
	}
	if r.debug {
		r.logf("RX %q", reply)
	}
	if r.strict {
		if err := cmd.CheckReplyStrict(reply); err != nil {
			return nil, err
		}
	}
	return reply, nil
}

// Raw sends an arbitrary frame and returns the reply unchecked.
func (r *Radio) Raw(frame []byte) ([]byte, error) {
	if err := r.send(frame); err != nil {
		return nil, err
	}
	reply, err := r.link.Receive()
	if err != nil {
		return nil, fmt.Errorf("receive reply to %q: %w", frame, err)
	}
	if r.debug {
		r.logf("RX %q", reply)
	}
	return reply, nil
}

// Identify reads the radio id. A well-formed reply from another model
// returns the id together with a *cat.IDMismatchError.
func (r *Radio) Identify() (uint16, error) {
	reply, err := r.query(cat.CmdID.Descriptor(), cat.CmdID.Read())
	if err != nil {
		return 0, err
	}
	id, err := cat.CmdID.Decode(reply)
	if err != nil {
		return 0, fmt.Errorf("identify: %w", err)
	}
	return id, cat.ValidateID(id, r.expectedID)
}

// Mode reads the operating mode of band.
func (r *Radio) Mode(band cat.Band) (cat.Mode, error) {
	reply, err := r.query(cat.CmdMD.Descriptor(), cat.CmdMD.Read(band))
	if err != nil {
		return 0, err
	}
	_, mode, err := cat.CmdMD.Decode(reply)
	if err != nil {
		return 0, fmt.Errorf("read mode: %w", err)
	}
	return mode, nil
}

func (r *Radio) SetMode(band cat.Band, mode cat.Mode) error {
	return r.send(cat.CmdMD.Set(band, mode))
}

// Power reads the output power in watts.
func (r *Radio) Power() (uint8, error) {
	reply, err := r.query(cat.CmdPC.Descriptor(), cat.CmdPC.Read())
	if err != nil {
		return 0, err
	}
	watts, err := cat.CmdPC.Decode(reply)
	if err != nil {
		return 0, fmt.Errorf("read power: %w", err)
	}
	return watts, nil
}

func (r *Radio) SetPower(watts uint8) error {
	frame, err := cat.CmdPC.Set(watts)
	if err != nil {
		return err
	}
	return r.send(frame)
}

// Transmitting reports whether the transmitter is keyed.
func (r *Radio) Transmitting() (bool, error) {
	reply, err := r.query(cat.CmdTX.Descriptor(), cat.CmdTX.Read())
	if err != nil {
		return false, err
	}
	on, err := cat.CmdTX.Decode(reply)
	if err != nil {
		return false, fmt.Errorf("read transmit state: %w", err)
	}
	return on, nil
}

func (r *Radio) Transmit(on bool) error {
	return r.send(cat.CmdTX.Set(on))
}

// ReadMemory reads the content of a memory channel.
func (r *Radio) ReadMemory(ch cat.MemoryChannel) (cat.MemoryRead, error) {
	reply, err := r.query(cat.CmdMR.Descriptor(), cat.CmdMR.Read(ch))
	if err != nil {
		return cat.MemoryRead{}, err
	}
	mr, err := cat.CmdMR.Decode(reply)
	if err != nil {
		return cat.MemoryRead{}, fmt.Errorf("read %s: %w", ch, err)
	}
	return mr, nil
}

// ReadTag reads the tag of a memory channel.
func (r *Radio) ReadTag(ch cat.MemoryChannel) (string, error) {
	reply, err := r.query(cat.CmdMT.Descriptor(), cat.CmdMT.Read(ch))
	if err != nil {
		return "", err
	}
	tag, err := cat.CmdMT.Decode(reply)
	if err != nil {
		return "", fmt.Errorf("read tag of %s: %w", ch, err)
	}
	return tag, nil
}

// WriteMemory stores m in the channel it names.
func (r *Radio) WriteMemory(m cat.MemoryRead) error {
	return r.send(cat.CmdMW.Set(m))
}

func (r *Radio) WriteTag(ch cat.MemoryChannel, tag string) error {
	frame, err := cat.CmdMT.Set(ch, tag)
	if err != nil {
		return err
	}
	return r.send(frame)
}

// SelectedChannel reads the currently selected memory channel.
func (r *Radio) SelectedChannel() (cat.MCReply, error) {
	reply, err := r.query(cat.CmdMC.Descriptor(), cat.CmdMC.Read())
	if err != nil {
		return cat.MCReply{}, err
	}
	mc, err := cat.CmdMC.Decode(reply)
	if err != nil {
		return cat.MCReply{}, fmt.Errorf("read selected channel: %w", err)
	}
	return mc, nil
}

func (r *Radio) SelectChannel(ch cat.MemoryChannel) error {
	return r.send(cat.CmdMC.Set(ch))
}

// Tone reads the CTCSS tone or DCS code setting.
func (r *Radio) Tone() (cat.CNReply, error) {
	reply, err := r.query(cat.CmdCN.Descriptor(), cat.CmdCN.Read())
	if err != nil {
		return cat.CNReply{}, err
	}
	cn, err := cat.CmdCN.Decode(reply)
	if err != nil {
		return cat.CNReply{}, fmt.Errorf("read tone: %w", err)
	}
	return cn, nil
}

func (r *Radio) SetTone(band cat.Band, toneType cat.ToneType, code cat.ToneCode) error {
	frame, err := cat.CmdCN.Set(band, toneType, code)
	if err != nil {
		return err
	}
	return r.send(frame)
}

// ReadChannels scans memory channels first..last. Channels whose memory
// reply is invalid are skipped; a channel whose tag cannot be read keeps a
// blank tag. The scan stops between channels when ctx is cancelled and
// returns what was read so far with ctx.Err().
func (r *Radio) ReadChannels(ctx context.Context, first, last uint16, progress ProgressFunc) ([]Channel, error) {
	if first > last {
		return nil, fmt.Errorf("invalid channel range %d-%d", first, last)
	}

	total := int(last-first) + 1
	channels := make([]Channel, 0, total)
	skipped := 0

	for n := first; n <= last; n++ {
		if err := ctx.Err(); err != nil {
			return channels, err
		}

		ch, err := cat.MemChannel(n)
		if err != nil {
			return channels, err
		}

		mr, err := r.ReadMemory(ch)
		if err != nil {
			if !errors.Is(err, cat.ErrMalformed) {
				// link failure, not an empty channel
				return channels, err
			}
			skipped++
			if r.debug {
				r.logf("Skipping %s: %v", ch, err)
			}
		} else {
			tag, err := r.ReadTag(ch)
			if err != nil {
				if !errors.Is(err, cat.ErrMalformed) {
					return channels, err
				}
				r.logf("No tag for %s: %v", ch, err)
				tag = ""
			}
			channels = append(channels, Channel{Memory: mr, Tag: tag})
		}

		if progress != nil {
			progress(int(n-first)+1, total)
		}
		if n == cat.MemMax {
			break
		}
	}

	r.logf("Read %d channels (%d empty or invalid)", len(channels), skipped)
	return channels, nil
}

// WriteChannels stores each channel with MW, followed by MT when it has a
// tag. It stops at the first failure and between channels when ctx is
// cancelled, returning the number of channels written.
func (r *Radio) WriteChannels(ctx context.Context, channels []Channel, progress ProgressFunc) (int, error) {
	for i, c := range channels {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if c.Memory.Channel.Kind() != cat.KindMemory {
			return i, fmt.Errorf("cannot write %s: not a memory channel", c.Memory.Channel)
		}
		if err := r.WriteMemory(c.Memory); err != nil {
			return i, err
		}
		if c.Tag != "" {
			if err := r.WriteTag(c.Memory.Channel, c.Tag); err != nil {
				return i, err
			}
		}
		if progress != nil {
			progress(i+1, len(channels))
		}
	}
	r.logf("Wrote %d channels", len(channels))
	return len(channels), nil
}
