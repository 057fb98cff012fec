// Package save reads and writes the plain-text save file.
//
// The file holds whitespace-separated numbers:
//
//	p1.x p1.y
//	p2.x p2.y
//	lives
//	score
package save

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tomz197/skyduel/internal/physics"
)

// FileName is the default save file name.
const FileName = "data.txt"

// ErrMalformed is returned when a save file does not hold six finite numbers.
var ErrMalformed = errors.New("malformed save file")

// Snapshot is the persisted part of a session.
type Snapshot struct {
	P1, P2 physics.Vec2
	Lives  int // Player one's lives
	Score  int // Player one's score
}

// Write encodes s to w.
func Write(w io.Writer, s Snapshot) error {
	_, err := fmt.Fprintf(w, "%s %s\n%s %s\n%d\n%d\n",
		formatFloat(s.P1.X), formatFloat(s.P1.Y),
		formatFloat(s.P2.X), formatFloat(s.P2.Y),
		s.Lives, s.Score)
	return err
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Read decodes a snapshot from r. Nothing is returned unless all six
// fields parse.
func Read(r io.Reader) (Snapshot, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var fields []string
	for sc.Scan() {
		fields = append(fields, sc.Text())
		if len(fields) > 6 {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("read save: %w", err)
	}
	if len(fields) != 6 {
		return Snapshot{}, fmt.Errorf("%w: %d fields, want 6", ErrMalformed, len(fields))
	}

	var coords [4]float64
	for i := range coords {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Snapshot{}, fmt.Errorf("%w: field %d %q", ErrMalformed, i+1, fields[i])
		}
		coords[i] = v
	}
	lives, err := strconv.Atoi(fields[4])
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: lives %q", ErrMalformed, fields[4])
	}
	score, err := strconv.Atoi(fields[5])
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: score %q", ErrMalformed, fields[5])
	}

	return Snapshot{
		P1:    physics.Vec2{X: coords[0], Y: coords[1]},
		P2:    physics.Vec2{X: coords[2], Y: coords[3]},
		Lives: lives,
		Score: score,
	}, nil
}

// SaveFile writes s to path, replacing any previous save.
func SaveFile(path string, s Snapshot) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create save dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create save: %w", err)
	}
	if err := Write(f, s); err != nil {
		f.Close()
		return fmt.Errorf("write save: %w", err)
	}
	return f.Close()
}

// LoadFile reads the snapshot stored at path.
func LoadFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("open save: %w", err)
	}
	defer f.Close()
	return Read(f)
}
