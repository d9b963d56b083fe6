// Package input turns raw terminal bytes into discrete game input.
package input

import (
	"bufio"
	"strconv"
)

// Terminal modes for pointer reporting: button-event tracking (press and
// drag) with SGR extended coordinates.
const (
	EnableMouse  = "\033[?1002h\033[?1006h"
	DisableMouse = "\033[?1006l\033[?1002l"
)

// Pointer is a left-button press or drag at a 1-based terminal cell.
type Pointer struct {
	Col int
	Row int
}

// Input represents the current frame's input events.
// Up and Down are discrete presses seen this frame; when both arrive in the
// same frame the later one wins.
type Input struct {
	Quit    bool
	Up      bool
	Down    bool
	Pointer *Pointer // Last pointer event this frame, nil if none
	Pressed []byte
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch      chan byte
	pending []byte // Incomplete escape sequence carried to the next frame
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// parses them into this frame's input.
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in, rest := Parse(buf)
	if len(rest) > 0 && !s.closed {
		s.pending = append([]byte(nil), rest...)
	}
	if s.closed {
		in.Quit = true
	}
	return in
}

// Parse decodes buf into input events. Trailing bytes that may start an
// incomplete escape sequence are returned as rest.
func Parse(buf []byte) (in Input, rest []byte) {
	in.Pressed = buf

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			applyByte(&in, b)
			continue
		}

		// Lone ESC at the end may be the start of a sequence still in flight.
		if i+1 >= len(buf) {
			return in, buf[i:]
		}
		if buf[i+1] != '[' {
			continue
		}
		if i+2 >= len(buf) {
			return in, buf[i:]
		}

		switch buf[i+2] {
		case 'A': // Up arrow
			setDirection(&in, true)
			i += 2
		case 'B': // Down arrow
			setDirection(&in, false)
			i += 2
		case 'C', 'D': // Left/right arrows are unused
			i += 2
		case '<':
			p, n, complete := parseMouse(buf[i+3:])
			if !complete {
				return in, buf[i:]
			}
			if p != nil {
				in.Pointer = p
			}
			i += 2 + n
		}
	}
	return in, nil
}

// applyByte handles single-byte keys.
func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'w', 'W', 'k', 'K':
		setDirection(in, true)
	case 's', 'S', 'j', 'J':
		setDirection(in, false)
	}
}

func setDirection(in *Input, up bool) {
	in.Up = up
	in.Down = !up
}

// parseMouse parses the body of an SGR mouse report, "b;col;row" followed by
// 'M' (press/drag) or 'm' (release), from buf. It returns the pointer for a
// left-button press or drag, the number of bytes consumed, and whether the
// report was complete.
func parseMouse(buf []byte) (p *Pointer, n int, complete bool) {
	var fields [3]int
	field := 0
	start := 0
	for j := 0; j < len(buf); j++ {
		c := buf[j]
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' && field < 2:
			v, err := strconv.Atoi(string(buf[start:j]))
			if err != nil {
				return nil, j + 1, true
			}
			fields[field] = v
			field++
			start = j + 1
		case (c == 'M' || c == 'm') && field == 2:
			v, err := strconv.Atoi(string(buf[start:j]))
			if err != nil {
				return nil, j + 1, true
			}
			fields[2] = v

			button := fields[0]
			// Low two bits select the button (0 = left), 32 flags motion,
			// 64 and above are wheel events.
			if c == 'M' && button&3 == 0 && button < 64 {
				return &Pointer{Col: fields[1], Row: fields[2]}, j + 1, true
			}
			return nil, j + 1, true
		default:
			// Malformed report: skip what was read.
			return nil, j, true
		}
	}
	return nil, len(buf), false
}
