// Package input turns raw key presses into a per-frame snapshot of both players' controls.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals report no key releases, so held state is inferred from key repeat (~30Hz).
const keyHoldDuration = 60 * time.Millisecond

// escapeTimeout is how long a trailing ESC waits for the rest of an arrow key
// sequence before it counts as the Escape key.
const escapeTimeout = 50 * time.Millisecond

// Direction is a bitmask of movement directions for one player.
type Direction uint8

const (
	DirForward  Direction = 1
	DirBackward Direction = 2
	DirLeft     Direction = 4
	DirRight    Direction = 8
)

// Has reports whether all bits of d2 are set in d.
func (d Direction) Has(d2 Direction) bool {
	return d&d2 == d2
}

// Key is a logical game key.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyF
	KeyN
	KeyO
	KeyL
	KeyEnter
	KeyQuit
	keyCount
)

// Input represents the current frame's input state.
type Input struct {
	Dir    [2]Direction // Held movement per player (0 = player one)
	Fire   [2]bool      // Held fire per player
	Rotate bool         // Rotate player one (pressed this frame)
	Save   bool         // Save game (pressed this frame)
	Load   bool         // Load game (pressed this frame)
	Enter  bool         // Confirm / restart (pressed this frame)
	Quit   bool         // Leave the game (pressed this frame)
}

// Tracker remembers when each key was last pressed and which keys were pressed
// since the previous snapshot.
type Tracker struct {
	last    [keyCount]time.Time
	pending [keyCount]bool

	escape   []byte    // Unfinished escape sequence from the previous drain
	escapeAt time.Time // When escape started waiting
}

// Press records a key press at now.
func (t *Tracker) Press(k Key, now time.Time) {
	if k <= KeyNone || k >= keyCount {
		return
	}
	t.last[k] = now
	t.pending[k] = true
}

// Held reports whether k was pressed within the hold window.
func (t *Tracker) Held(k Key, now time.Time) bool {
	if k <= KeyNone || k >= keyCount || t.last[k].IsZero() {
		return false
	}
	return now.Sub(t.last[k]) < keyHoldDuration
}

// Snapshot builds the frame input and clears the pressed-this-frame set.
func (t *Tracker) Snapshot(now time.Time) Input {
	var in Input

	in.Dir[0] = t.direction(now, KeyUp, KeyDown, KeyLeft, KeyRight)
	in.Dir[1] = t.direction(now, KeyW, KeyS, KeyA, KeyD)
	in.Fire[0] = t.Held(KeySpace, now)
	in.Fire[1] = t.Held(KeyF, now)

	in.Rotate = t.pending[KeyN]
	in.Save = t.pending[KeyO]
	in.Load = t.pending[KeyL]
	in.Enter = t.pending[KeyEnter]
	in.Quit = t.pending[KeyQuit]

	t.pending = [keyCount]bool{}
	return in
}

func (t *Tracker) direction(now time.Time, fwd, back, left, right Key) Direction {
	var d Direction
	if t.Held(fwd, now) {
		d |= DirForward
	}
	if t.Held(back, now) {
		d |= DirBackward
	}
	if t.Held(left, now) {
		d |= DirLeft
	}
	if t.Held(right, now) {
		d |= DirRight
	}
	return d
}

// Reset forgets all key state (e.g. after a restart, so held keys don't carry over).
func (t *Tracker) Reset() {
	*t = Tracker{}
}

// KeyForRune maps a printable key to a game key.
func KeyForRune(r rune) Key {
	switch r {
	case 'w', 'W':
		return KeyW
	case 'a', 'A':
		return KeyA
	case 's', 'S':
		return KeyS
	case 'd', 'D':
		return KeyD
	case ' ':
		return KeySpace
	case 'f', 'F':
		return KeyF
	case 'n', 'N':
		return KeyN
	case 'o', 'O':
		return KeyO
	case 'l', 'L':
		return KeyL
	case 'q', 'Q':
		return KeyQuit
	case '\n', '\r':
		return KeyEnter
	default:
		return KeyNone
	}
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	tracker Tracker
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

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys. A closed stream reads as Quit.
func ReadInput(s *Stream) Input {
	now := time.Now()
	var buf []byte
	closed := false

	// Drain all available bytes
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	ParseBytes(&s.tracker, buf, now)
	in := s.tracker.Snapshot(now)
	if closed {
		in.Quit = true
	}
	return in
}

// ResetKeyInput clears held keys on the stream.
func ResetKeyInput(s *Stream) {
	if s != nil {
		s.tracker.Reset()
	}
}

// ParseBytes feeds raw terminal bytes into the tracker. A drain may end in the
// middle of an arrow key sequence; the unfinished part is kept and completed by
// the next call, or read as Escape once escapeTimeout passes without more bytes.
func ParseBytes(t *Tracker, buf []byte, now time.Time) {
	if len(t.escape) > 0 {
		if len(buf) == 0 {
			if now.Sub(t.escapeAt) >= escapeTimeout {
				t.escape = nil
				t.Press(KeyQuit, now)
			}
			return
		}
		buf = append(t.escape, buf...)
		t.escape = nil
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' {
			rest := buf[i+1:]
			if len(rest) == 0 || (len(rest) == 1 && rest[0] == '[') {
				t.escape = append([]byte(nil), buf[i:]...)
				t.escapeAt = now
				return
			}
			if rest[0] == '[' {
				if k := arrowKey(rest[1]); k != KeyNone {
					t.Press(k, now)
					i += 2
					continue
				}
			}
		}

		switch b {
		case '\x1b', '\x03': // Escape, Ctrl-C
			t.Press(KeyQuit, now)
		default:
			t.Press(KeyForRune(rune(b)), now)
		}
	}
}

func arrowKey(code byte) Key {
	switch code {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	default:
		return KeyNone
	}
}
