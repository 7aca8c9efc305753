package console

import (
	"bytes"
	"strings"
	"testing"

	"calculator-project/calculator"
	"calculator-project/driver/hal"
)

func TestLogWriterEmitsCarriageReturns(t *testing.T) {
	var buf bytes.Buffer
	p := &Port{variant: calculator.VariantBinary, out: &buf}
	line := "Operand 1: 7 state: AwaitingOperator\n"
	n, err := p.LogWriter().Write([]byte(line))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != len(line) {
		t.Errorf("n = %d, want %d", n, len(line))
	}
	out := buf.String()
	if strings.Contains(strings.ReplaceAll(out, "\r\n", ""), "\n") {
		t.Error("Failed assert, bare newline written to a raw terminal")
	}
	if !strings.HasSuffix(out, "\r\n") {
		t.Errorf("output %q does not end the line with \\r\\n", out)
	}
}

func TestLogWriterForcesRepaint(t *testing.T) {
	var buf bytes.Buffer
	p := &Port{variant: calculator.VariantBinary, out: &buf}
	if err := p.WriteFrame(hal.Frame{Data: 0x0A}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	// The same frame normally skips the repaint.
	buf.Reset()
	if err := p.WriteFrame(hal.Frame{Data: 0x0A}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if buf.Len() != 0 {
		t.Error("Failed assert, unchanged frame repainted")
	}
	// A log line takes over the row, so the next frame must repaint.
	if _, err := p.LogWriter().Write([]byte("Reset\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	buf.Reset()
	if err := p.WriteFrame(hal.Frame{Data: 0x0A}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if !strings.Contains(buf.String(), "LED [00001010]") {
		t.Error("Failed assert, display not repainted after a log line")
	}
}
