package draw

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"golang.org/x/term"
)

// maxChunkSize caps a single write so one frame fits a few network packets.
const maxChunkSize = 1400

// Terminal control sequences.
const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
)

// FrameBuffer collects everything one frame writes and sends it to the
// terminal in maxChunkSize pieces on Flush, so an SSH channel never sees a
// partial frame interleaved with the next one.
type FrameBuffer struct {
	pending bytes.Buffer
	out     *bufio.Writer
}

// NewFrameBuffer returns a FrameBuffer flushing to w.
func NewFrameBuffer(w io.Writer) *FrameBuffer {
	return &FrameBuffer{out: bufio.NewWriterSize(w, 8192)}
}

// Write queues p for the next Flush.
func (fb *FrameBuffer) Write(p []byte) (int, error) {
	return fb.pending.Write(p)
}

// WriteString queues s for the next Flush.
func (fb *FrameBuffer) WriteString(s string) (int, error) {
	return fb.pending.WriteString(s)
}

// Len returns the number of queued bytes.
func (fb *FrameBuffer) Len() int {
	return fb.pending.Len()
}

// Flush sends the queued bytes and empties the buffer.
func (fb *FrameBuffer) Flush() error {
	defer fb.pending.Reset()
	for chunk := range bytesChunks(fb.pending.Bytes(), maxChunkSize) {
		if _, err := fb.out.Write(chunk); err != nil {
			return err
		}
	}
	return fb.out.Flush()
}

// bytesChunks yields b in slices of at most n bytes.
func bytesChunks(b []byte, n int) func(yield func([]byte) bool) {
	return func(yield func([]byte) bool) {
		for len(b) > 0 {
			end := min(n, len(b))
			if !yield(b[:end]) {
				return
			}
			b = b[end:]
		}
	}
}

var _ io.Writer = (*FrameBuffer)(nil)

// TermSizeFunc reports the terminal size in columns and rows.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc asks the terminal behind os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FixedSize returns a TermSizeFunc that always reports width x height.
func FixedSize(width, height int) TermSizeFunc {
	return func() (int, int, error) {
		return width, height, nil
	}
}

// ClearScreen clears the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	io.WriteString(w, seqClear)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, seqHideCursor)
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, seqShowCursor)
}
