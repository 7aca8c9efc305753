// Package console simulates the calculator hardware on a terminal: the
// keypad matrix is fed from raw-mode stdin and the display bus is
// rendered as text. Useful for exercising the firmware core without a
// board.
package console

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"calculator-project/calculator"
	"calculator-project/display"
	"calculator-project/driver/hal"
)

// ErrQuit is returned from ReadRows when the user quits the simulator
// (q or Ctrl-C).
var ErrQuit = errors.New("quit requested")

// keyPos maps a typed character to its (column, row) matrix position.
var keyPos = map[byte][2]int{
	'1': {0, 0}, '2': {1, 0}, '3': {2, 0}, 'a': {3, 0}, 'A': {3, 0}, '+': {3, 0},
	'4': {0, 1}, '5': {1, 1}, '6': {2, 1}, 'b': {3, 1}, 'B': {3, 1}, '-': {3, 1},
	'7': {0, 2}, '8': {1, 2}, '9': {2, 2}, 'c': {3, 2}, 'C': {3, 2}, 'x': {3, 2},
	'*': {0, 3}, '0': {1, 3}, '#': {2, 3}, 'd': {3, 3}, 'D': {3, 3}, '/': {3, 3},
}

type press struct {
	col, row int
	reads    int
}

// Port implements hal.KeypadPort and hal.DisplayPort against a terminal.
// A typed key stays electrically asserted for two row samples of its
// column, enough for the scanner to detect and release it.
type Port struct {
	variant calculator.Variant
	in      chan byte
	out     io.Writer
	restore func() error

	pressed *press
	active  [4]bool

	led      uint8
	tens     uint8
	units    uint8
	lastLine string
}

// Open puts stdin into raw mode and starts draining it. Callers must
// Close to restore the terminal.
func Open(variant calculator.Variant) (*Port, error) {
	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("entering raw mode: %w", err)
	}
	p := &Port{
		variant: variant,
		in:      make(chan byte, 16),
		out:     os.Stdout,
		restore: func() error { return term.Restore(fd, state) },
	}
	go p.drainStdin()
	fmt.Fprint(p.out, "keys: 0-9 digits, a b c d operators, # confirm, * reset, q quit\r\n")
	return p, nil
}

func (p *Port) drainStdin() {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			close(p.in)
			return
		}
		if n == 1 {
			p.in <- buf[0]
		}
	}
}

func (p *Port) Close() error {
	fmt.Fprint(p.out, "\r\n")
	return p.restore()
}

func (p *Port) DriveColumn(col int, active bool) error {
	p.active[col] = active
	return nil
}

func (p *Port) ReadRows() ([4]bool, error) {
	var rows [4]bool
	if p.pressed == nil {
		select {
		case b, ok := <-p.in:
			if !ok || b == 'q' || b == 0x03 {
				return rows, ErrQuit
			}
			if pos, hit := keyPos[b]; hit {
				p.pressed = &press{col: pos[0], row: pos[1], reads: 2}
			}
		default:
		}
	}
	if p.pressed != nil && p.active[p.pressed.col] {
		rows[p.pressed.row] = true
		p.pressed.reads--
		if p.pressed.reads == 0 {
			p.pressed = nil
		}
	}
	return rows, nil
}

// WriteFrame folds bus states into a rendered line. Multiplexed frames
// only repaint when the composed picture changes, so the refresh rate
// does not flood the terminal.
func (p *Port) WriteFrame(f hal.Frame) error {
	if p.variant == calculator.VariantBinary {
		p.led = f.Data
		return p.render(fmt.Sprintf("LED [%08b]", p.led))
	}
	switch {
	case f.SelectTens:
		p.tens = f.Data
	case f.SelectUnits:
		p.units = f.Data
	default:
		p.tens, p.units = 0, 0
	}
	dp := " "
	if p.units&0x80 != 0 {
		dp = "."
	}
	return p.render(fmt.Sprintf("7SEG [%c%c%s]", display.Glyph(p.tens), display.Glyph(p.units), dp))
}

// LogWriter adapts log output to the raw terminal: the current display
// line is cleared first and every newline goes out as \r\n, so log lines
// do not stair-step while raw mode disables output processing.
func (p *Port) LogWriter() io.Writer {
	return &logWriter{port: p}
}

type logWriter struct {
	port *Port
}

func (w *logWriter) Write(b []byte) (int, error) {
	out := make([]byte, 0, len(b)+8)
	out = append(out, "\r\x1b[K"...)
	for _, c := range b {
		if c == '\n' {
			out = append(out, '\r', '\n')
			continue
		}
		out = append(out, c)
	}
	if _, err := w.port.out.Write(out); err != nil {
		return 0, err
	}
	// The log line took over the row; force the next frame to repaint.
	w.port.lastLine = ""
	return len(b), nil
}

func (p *Port) render(line string) error {
	if line == p.lastLine {
		return nil
	}
	p.lastLine = line
	_, err := fmt.Fprintf(p.out, "\r\x1b[K%s", line)
	return err
}
