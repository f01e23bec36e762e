package svgpath

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"strconv"

	"github.com/tdewolff/parse/v2"
)

// ErrMalformedPath is wrapped by every error reported
// when reading path data.
var ErrMalformedPath = errors.New("malformed path data")

// PathError locates a syntax error in path data.
type PathError struct {
	Offset  int  // byte offset in the path data
	Command byte // command letter being read, 0 if none
	Reason  string
}

func (e *PathError) Error() string {
	if e.Command == 0 {
		return fmt.Sprintf("malformed path data at offset %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("malformed path data at offset %d (command %c): %s", e.Offset, e.Command, e.Reason)
}

func (e *PathError) Unwrap() error { return ErrMalformedPath }

// Scanner reads the commands of a path data string, one at a time,
// in the manner of bufio.Scanner :
//
//	sc := NewScanner(d)
//	for sc.Scan() {
//		cmd := sc.Command()
//	}
//	if err := sc.Err(); err != nil { ... }
//
// Omitted command letters are resolved (implicit repetition),
// so that every Command returned is complete.
type Scanner struct {
	data []byte
	pos  int

	prev     CommandKind
	prevRel  bool
	hasPrev  bool
	current  Command
	err      error
	lastByte byte // letter of the command being read
}

// NewScanner returns a scanner reading `d` from the beginning.
func NewScanner(d string) *Scanner {
	return &Scanner{data: []byte(d)}
}

// Reset restarts the scanner on `d`.
func (s *Scanner) Reset(d string) {
	*s = Scanner{data: []byte(d)}
}

// Command returns the command read by the last successful call to Scan.
func (s *Scanner) Command() Command { return s.current }

// Err returns the first error met, or nil if the data was
// entirely consumed.
func (s *Scanner) Err() error { return s.err }

func (s *Scanner) fail(reason string) bool {
	s.err = &PathError{Offset: s.pos, Command: s.lastByte, Reason: reason}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isNumberStart(c byte) bool {
	return ('0' <= c && c <= '9') || c == '.' || c == '-' || c == '+'
}

func (s *Scanner) skipSpace() {
	for s.pos < len(s.data) && isSpace(s.data[s.pos]) {
		s.pos++
	}
}

// skipSeparator skips whitespace with at most one comma.
func (s *Scanner) skipSeparator() {
	s.skipSpace()
	if s.pos < len(s.data) && s.data[s.pos] == ',' {
		s.pos++
		s.skipSpace()
	}
}

func (s *Scanner) readNumber() (float64, bool) {
	if s.pos >= len(s.data) {
		return 0, s.fail("missing operand")
	}
	n := parse.Number(s.data[s.pos:])
	if n == 0 {
		return 0, s.fail(fmt.Sprintf("invalid number starting with %q", s.data[s.pos]))
	}
	// a trailing dot, as in "10.", belongs to the number
	if end := s.pos + n; end < len(s.data) && s.data[end] == '.' &&
		!bytes.ContainsAny(s.data[s.pos:end], ".eE") {
		n++
	}
	// the token is validated: only a range error may occur
	f, err := strconv.ParseFloat(string(s.data[s.pos:s.pos+n]), 64)
	if err != nil {
		return 0, s.fail(err.Error())
	}
	s.pos += n
	return f, true
}

// arc flags are a single digit, which may be followed
// by the next number without separator
func (s *Scanner) readFlag() (float64, bool) {
	if s.pos >= len(s.data) {
		return 0, s.fail("missing arc flag")
	}
	switch s.data[s.pos] {
	case '0':
		s.pos++
		return 0, true
	case '1':
		s.pos++
		return 1, true
	}
	return 0, s.fail(fmt.Sprintf("invalid arc flag %q", s.data[s.pos]))
}

// Scan advances to the next command, returning false at the end
// of the data or on error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	s.skipSpace()
	if s.pos >= len(s.data) {
		return false
	}

	var (
		kind CommandKind
		rel  bool
	)
	c := s.data[s.pos]
	if k, ok := letterKinds[c|0x20]; ok {
		kind, rel = k, c >= 'a'
		s.lastByte = c
		if !s.hasPrev && kind != MoveTo {
			return s.fail("path data must start with a move-to")
		}
		s.pos++
	} else if isNumberStart(c) || c == ',' {
		if !s.hasPrev {
			return s.fail("path data must start with a command")
		}
		if s.prev == Close {
			return s.fail("operands after close path")
		}
		if c == ',' {
			s.pos++
			s.skipSpace()
		}
		kind, rel = s.prev, s.prevRel
		if kind == MoveTo { // extra pairs are implicit line-tos
			kind = LineTo
		}
	} else {
		return s.fail(fmt.Sprintf("unexpected character %q", c))
	}

	cmd := Command{Kind: kind, Relative: rel}
	for i := 0; i < kind.Arity(); i++ {
		if i > 0 {
			s.skipSeparator()
		} else {
			s.skipSpace()
		}
		var ok bool
		if kind == ArcTo && (i == 3 || i == 4) {
			cmd.Args[i], ok = s.readFlag()
		} else {
			cmd.Args[i], ok = s.readNumber()
		}
		if !ok {
			return false
		}
	}
	if kind == ArcTo && (cmd.Args[0] < 0 || cmd.Args[1] < 0) {
		// negative radii are used by absolute value
		if cmd.Args[0] < 0 {
			cmd.Args[0] = -cmd.Args[0]
		}
		if cmd.Args[1] < 0 {
			cmd.Args[1] = -cmd.Args[1]
		}
	}
	if kind != Close && s.pos < len(s.data) && !isSpace(s.data[s.pos]) && s.data[s.pos] != ',' &&
		!isNumberStart(s.data[s.pos]) && !isCommandLetter(s.data[s.pos]) {
		return s.fail(fmt.Sprintf("unexpected character %q", s.data[s.pos]))
	}

	s.prev, s.prevRel, s.hasPrev = kind, rel, true
	s.current = cmd
	return true
}

func isCommandLetter(c byte) bool {
	_, ok := letterKinds[c|0x20]
	return ok
}

// Commands returns the lazy sequence of the commands of `d`.
// Each iteration restarts from the beginning of the data.
// On failure, the last pair yielded carries the error.
func Commands(d string) iter.Seq2[Command, error] {
	return func(yield func(Command, error) bool) {
		sc := NewScanner(d)
		for sc.Scan() {
			if !yield(sc.Command(), nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(Command{}, err)
		}
	}
}

// ParseCommands reads all the commands of `d`.
func ParseCommands(d string) ([]Command, error) {
	var out []Command
	for cmd, err := range Commands(d) {
		if err != nil {
			return nil, err
		}
		out = append(out, cmd)
	}
	return out, nil
}

// ParseNumbers reads a list of numbers separated by whitespace
// and/or commas, as found in points, viewBox or transform operands.
func ParseNumbers(v string) ([]float64, error) {
	s := Scanner{data: []byte(v)}
	var out []float64
	s.skipSpace()
	for s.pos < len(s.data) {
		if len(out) > 0 {
			s.skipSeparator()
			if s.pos >= len(s.data) {
				break
			}
		}
		f, ok := s.readNumber()
		if !ok {
			return nil, s.err
		}
		out = append(out, f)
		s.skipSpace()
	}
	return out, nil
}
