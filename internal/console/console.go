package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dbehnke/ftx1chm/internal/cat"
	"github.com/dbehnke/ftx1chm/internal/radio"
)

const prompt = "ftx1> "

// ErrQuit is returned by Execute for the quit command.
var ErrQuit = errors.New("quit")

const helpText = `Commands:
  id                          identify the radio
  mode [main|sub] [MODE]      read or set the operating mode
  power [WATTS]               read or set output power (5-100)
  tx [on|off]                 read or set transmit state
  mr N                        read memory channel N
  tag N [TEXT]                read or set the tag of memory channel N
  mc [N]                      read or select the memory channel
  tone [main|sub ctcss|dcs CODE]
                              read or set the CTCSS tone / DCS code
  raw FRAME                   send FRAME (e.g. FA;) and print the reply
  help                        show this help
  quit                        leave the console`

// Console is an interactive CAT command shell.
type Console struct {
	radio *radio.Radio
	in    LineReader
	out   io.Writer
}

// New creates a console reading commands from in.
func New(r *radio.Radio, in LineReader, out io.Writer) *Console {
	return &Console{radio: r, in: in, out: out}
}

// Run reads and executes commands until quit, end of input, or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	defer c.in.Close()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := c.in.GetLine(prompt)
		if err == io.EOF {
			fmt.Fprintln(c.out)
			return nil
		}
		if err != nil {
			return err
		}

		result, err := c.Execute(line)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
			continue
		}
		if result != "" {
			fmt.Fprintln(c.out, result)
		}
	}
}

// Execute runs one command line and returns its output.
func (c *Console) Execute(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "help", "?":
		return helpText, nil
	case "quit", "exit":
		return "", ErrQuit
	case "id":
		return c.identify()
	case "mode":
		return c.mode(args)
	case "power":
		return c.power(args)
	case "tx":
		return c.transmit(args)
	case "mr":
		return c.memory(args)
	case "tag":
		return c.tag(args)
	case "mc":
		return c.channel(args)
	case "tone":
		return c.tone(args)
	case "raw":
		return c.raw(args)
	default:
		return "", fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

func (c *Console) identify() (string, error) {
	id, err := c.radio.Identify()
	var mismatch *cat.IDMismatchError
	if errors.As(err, &mismatch) {
		return fmt.Sprintf("%s (%04d), not the expected radio", cat.ModelName(id), id), nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (%04d)", cat.ModelName(id), id), nil
}

func parseBand(s string) (cat.Band, error) {
	switch strings.ToLower(s) {
	case "main", "0":
		return cat.BandMain, nil
	case "sub", "1":
		return cat.BandSub, nil
	}
	return 0, fmt.Errorf("unknown band %q (main or sub)", s)
}

func (c *Console) mode(args []string) (string, error) {
	band := cat.BandMain
	if len(args) > 0 {
		b, err := parseBand(args[0])
		if err != nil {
			return "", err
		}
		band = b
	}
	if len(args) > 1 {
		mode, err := cat.ModeFromName(args[1])
		if err != nil {
			return "", err
		}
		return "", c.radio.SetMode(band, mode)
	}
	mode, err := c.radio.Mode(band)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: %s", band, mode), nil
}

func (c *Console) power(args []string) (string, error) {
	if len(args) > 0 {
		w, err := strconv.ParseUint(args[0], 10, 8)
		if err != nil {
			return "", fmt.Errorf("invalid power %q", args[0])
		}
		return "", c.radio.SetPower(uint8(w))
	}
	w, err := c.radio.Power()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d W", w), nil
}

func (c *Console) transmit(args []string) (string, error) {
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "on", "1":
			return "", c.radio.Transmit(true)
		case "off", "0":
			return "", c.radio.Transmit(false)
		}
		return "", fmt.Errorf("tx takes on or off, not %q", args[0])
	}
	on, err := c.radio.Transmitting()
	if err != nil {
		return "", err
	}
	if on {
		return "TX", nil
	}
	return "RX", nil
}

func parseChannel(s string) (cat.MemoryChannel, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		// allow wire forms such as P-01L or EMGCH
		return cat.ParseMemoryChannel([]byte(strings.ToUpper(s)))
	}
	return cat.MemChannel(uint16(n))
}

func (c *Console) memory(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: mr N")
	}
	ch, err := parseChannel(args[0])
	if err != nil {
		return "", err
	}
	mr, err := c.radio.ReadMemory(ch)
	if err != nil {
		return "", err
	}
	return mr.String(), nil
}

func (c *Console) tag(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: tag N [TEXT]")
	}
	ch, err := parseChannel(args[0])
	if err != nil {
		return "", err
	}
	if len(args) > 1 {
		return "", c.radio.WriteTag(ch, strings.Join(args[1:], " "))
	}
	tag, err := c.radio.ReadTag(ch)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: %q", ch, tag), nil
}

func (c *Console) channel(args []string) (string, error) {
	if len(args) > 0 {
		ch, err := parseChannel(args[0])
		if err != nil {
			return "", err
		}
		return "", c.radio.SelectChannel(ch)
	}
	mc, err := c.radio.SelectedChannel()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: %s", mc.Band, mc.Channel), nil
}

func (c *Console) tone(args []string) (string, error) {
	if len(args) == 0 {
		cn, err := c.radio.Tone()
		if err != nil {
			return "", err
		}
		return cn.String(), nil
	}
	if len(args) != 3 {
		return "", fmt.Errorf("usage: tone main|sub ctcss|dcs CODE")
	}
	band, err := parseBand(args[0])
	if err != nil {
		return "", err
	}
	toneType, err := cat.ToneTypeFromName(args[1])
	if err != nil {
		return "", err
	}
	code, err := strconv.ParseUint(args[2], 10, 8)
	if err != nil {
		return "", fmt.Errorf("invalid tone code %q", args[2])
	}
	return "", c.radio.SetTone(band, toneType, cat.ToneCode(code))
}

func (c *Console) raw(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: raw FRAME")
	}
	frame := strings.ToUpper(strings.Join(args, ""))
	if !strings.HasSuffix(frame, string(rune(cat.Terminator))) {
		frame += string(rune(cat.Terminator))
	}
	reply, err := c.radio.Raw([]byte(frame))
	if err != nil {
		return "", err
	}
	if len(reply) == 0 {
		return "(no reply)", nil
	}
	return string(reply), nil
}
