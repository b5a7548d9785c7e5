package transport

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"go.bug.st/serial"
)

const (
	// RxBufferSize is the largest reply the link collects.
	RxBufferSize = 255

	// DefaultTimeout is the per-read timeout used when none is configured.
	DefaultTimeout = 200 * time.Millisecond

	terminator = ';'
)

// Port is the subset of a serial port the link needs.
// go.bug.st/serial ports satisfy it; tests substitute an in-memory fake.
type Port interface {
	io.ReadWriteCloser
	ResetInputBuffer() error
}

// SerialLink exchanges CAT frames with a radio over a serial port.
type SerialLink struct {
	mu     sync.Mutex
	port   Port
	name   string
	logger *log.Logger
}

// Open opens portName at speed baud, 8N1, with the given read timeout.
func Open(portName string, speed int, timeout time.Duration, logger *log.Logger) (*SerialLink, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	mode := &serial.Mode{
		BaudRate: speed,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	p, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}
	if err := p.SetReadTimeout(timeout); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", portName, err)
	}

	if logger != nil {
		logger.Printf("Opened %s @ %d baud (timeout %v)", portName, speed, timeout)
	}
	return NewSerialLink(p, portName, logger), nil
}

// NewSerialLink wraps an already opened port.
func NewSerialLink(p Port, name string, logger *log.Logger) *SerialLink {
	return &SerialLink{port: p, name: name, logger: logger}
}

// Name returns the port name the link was opened with.
func (l *SerialLink) Name() string { return l.name }

// Send discards any stale input and writes frame.
func (l *SerialLink) Send(frame []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.port.ResetInputBuffer(); err != nil {
		return fmt.Errorf("failed to reset input buffer: %w", err)
	}
	n, err := l.port.Write(frame)
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", frame, err)
	}
	if n != len(frame) {
		return fmt.Errorf("short write: %d of %d bytes", n, len(frame))
	}
	return nil
}

// Receive collects bytes until the terminator arrives, RxBufferSize bytes
// have been read, or a read times out. Whatever was collected is returned;
// a silent radio yields an empty reply and no error.
func (l *SerialLink) Receive() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	buf := make([]byte, RxBufferSize)
	total := 0
	for total < RxBufferSize {
		n, err := l.port.Read(buf[total:])
		if err != nil {
			if err == io.EOF {
				break
			}
			return buf[:total], fmt.Errorf("failed to read from %s: %w", l.name, err)
		}
		if n == 0 {
			// read timeout
			break
		}
		total += n
		if buf[total-1] == terminator {
			break
		}
	}
	return buf[:total], nil
}

// Close closes the underlying port.
func (l *SerialLink) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.port.Close()
}

// Ports lists the serial ports present on the system.
func Ports() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	return ports, nil
}
