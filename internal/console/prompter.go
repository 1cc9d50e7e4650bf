// Package console reads menu input: whole integers and trimmed text lines.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

const invalidInput = "Invalid input.\n"

// Prompter writes prompts to w and reads answers line by line from r.
// Input bytes are decoded from the configured charset to UTF-8.
type Prompter struct {
	r   *bufio.Reader
	w   io.Writer
	dec *encoding.Decoder
}

// NewPrompter builds a prompter decoding input with the charset named by
// label (a WHATWG encoding label such as "utf-8", "big5" or "shift_jis").
func NewPrompter(r io.Reader, w io.Writer, label string) (*Prompter, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("console encoding %q: %w", label, err)
	}
	return &Prompter{
		r:   bufio.NewReader(r),
		w:   w,
		dec: enc.NewDecoder(),
	}, nil
}

// Writer returns the output side so callers print through the same stream.
func (p *Prompter) Writer() io.Writer {
	return p.w
}

// ReadInt prints prompt and reads one whole integer. Leading whitespace and
// a sign are accepted; anything after the digits is not. Bad lines print
// "Invalid input." and prompt again. io.EOF is returned once input ends.
func (p *Prompter) ReadInt(prompt string) (int, error) {
	for {
		fmt.Fprint(p.w, prompt)
		line, err := p.readRaw()
		if err != nil {
			return 0, err
		}
		if n, ok := parseInt(line); ok {
			return n, nil
		}
		fmt.Fprint(p.w, invalidInput)
	}
}

// ReadLine prints prompt and reads one line trimmed of spaces, tabs and
// carriage returns at both ends. The line may come back empty.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.w, prompt)
	line, err := p.readRaw()
	if err != nil {
		return "", err
	}
	return strings.Trim(line, " \t\r"), nil
}

// readRaw returns the next line without its terminator, decoded to UTF-8.
// A final line lacking '\n' is still returned; only an empty tail is EOF.
func (p *Prompter) readRaw() (string, error) {
	raw, err := p.r.ReadBytes('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || len(raw) == 0 {
			return "", err
		}
	}
	raw = trimNewline(raw)
	return p.decode(raw), nil
}

func (p *Prompter) decode(raw []byte) string {
	ascii := true
	for _, b := range raw {
		if b >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(raw)
	}
	decoded, err := p.dec.Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// trimNewline strips up to two trailing '\n'/'\r' bytes, so both "\n" and
// "\r\n" endings disappear.
func trimNewline(b []byte) []byte {
	for i := 0; i < 2 && len(b) > 0; i++ {
		if c := b[len(b)-1]; c == '\n' || c == '\r' {
			b = b[:len(b)-1]
		}
	}
	return b
}

func parseInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
