// Package sprite loads the text-art sprite sheet used for drawing and mask collision.
//
// A sheet file holds one sprite or animation:
//
//	// comment
//	scale 4
//	..##..
//	.####.
//	--
//	.####.
//	..##..
//
// The scale line sets how many world pixels one art cell covers. Frames are
// separated by "--". '.' and ' ' are transparent, any other rune is opaque.
// Lines starting with "//" are comments.
package sprite

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/tomz197/skyduel/internal/physics"
)

// Names of the sprites in the default sheet.
const (
	PlaneUp     = "plane_up"
	PlaneRight  = "plane_right"
	PlaneDown   = "plane_down"
	PlaneLeft   = "plane_left"
	Plane2      = "plane2"
	Enemy       = "enemy"
	Bullet      = "bullet"
	EnemyBullet = "enemy_bullet"
	Crate       = "crate"
	Heart       = "heart"
	Explosion   = "explosion"
)

// ErrBadSheet is returned when a sheet file cannot be parsed.
var ErrBadSheet = errors.New("malformed sprite sheet")

//go:embed assets/*.txt
var assets embed.FS

// Sprite is a single image: its opacity mask doubles as the drawable shape.
type Sprite struct {
	Name string
	Mask *physics.Mask
}

// Width returns the sprite width in world pixels.
func (s *Sprite) Width() float64 {
	return s.Mask.PixelWidth()
}

// Height returns the sprite height in world pixels.
func (s *Sprite) Height() float64 {
	return s.Mask.PixelHeight()
}

// Rect returns the sprite's bounding box when centered on c.
func (s *Sprite) Rect(c physics.Vec2) physics.Rect {
	return physics.RectAround(c, s.Width(), s.Height())
}

// Animation is an ordered list of frames.
type Animation struct {
	Name   string
	Frames []*Sprite
}

// FrameCount returns the number of frames.
func (a *Animation) FrameCount() int {
	return len(a.Frames)
}

// Frame returns frame i, clamped to the valid range.
func (a *Animation) Frame(i int) *Sprite {
	if i < 0 {
		i = 0
	}
	if i >= len(a.Frames) {
		i = len(a.Frames) - 1
	}
	return a.Frames[i]
}

// Sheet holds all parsed sprites and animations by name.
type Sheet struct {
	anims map[string]*Animation
}

// Default parses the sheet embedded in the binary.
func Default() (*Sheet, error) {
	return Load(assets, "assets")
}

// Load parses every *.txt file in dir of fsys. The file name without
// extension becomes the sprite name.
func Load(fsys fs.FS, dir string) (*Sheet, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read sprite dir %q: %w", dir, err)
	}

	sheet := &Sheet{anims: make(map[string]*Animation)}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".txt" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".txt")

		f, err := fsys.Open(path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("open sprite %q: %w", name, err)
		}
		anim, err := Parse(name, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		sheet.anims[name] = anim
	}
	return sheet, nil
}

// Parse reads one sheet file.
func Parse(name string, r io.Reader) (*Animation, error) {
	scale := 1
	var frames [][]string
	var current []string

	flush := func() {
		if len(current) > 0 {
			frames = append(frames, current)
			current = nil
		}
	}

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		switch {
		case text == "" || strings.HasPrefix(text, "//"):
			continue
		case strings.HasPrefix(text, "scale "):
			v, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(text, "scale ")))
			if err != nil || v < 1 {
				return nil, fmt.Errorf("%w: %s line %d: bad scale %q", ErrBadSheet, name, line, text)
			}
			scale = v
		case text == "--":
			flush()
		default:
			current = append(current, text)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read sprite %q: %w", name, err)
	}
	flush()

	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: %s has no frames", ErrBadSheet, name)
	}

	anim := &Animation{Name: name}
	for i, rows := range frames {
		mask, err := buildMask(rows, scale)
		if err != nil {
			return nil, fmt.Errorf("%w: %s frame %d: %v", ErrBadSheet, name, i, err)
		}
		anim.Frames = append(anim.Frames, &Sprite{Name: name, Mask: mask})
	}
	return anim, nil
}

func buildMask(rows []string, scale int) (*physics.Mask, error) {
	width := len([]rune(rows[0]))
	for i, row := range rows {
		if n := len([]rune(row)); n != width {
			return nil, fmt.Errorf("row %d has width %d, want %d", i, n, width)
		}
	}

	mask := physics.NewMask(width, len(rows), scale)
	for y, row := range rows {
		for x, ch := range []rune(row) {
			mask.Set(x, y, ch != '.' && ch != ' ')
		}
	}
	return mask, nil
}

// Sprite returns the first frame of the named entry.
func (s *Sheet) Sprite(name string) (*Sprite, error) {
	anim, err := s.Animation(name)
	if err != nil {
		return nil, err
	}
	return anim.Frames[0], nil
}

// Animation returns the named entry.
func (s *Sheet) Animation(name string) (*Animation, error) {
	anim, ok := s.anims[name]
	if !ok {
		return nil, fmt.Errorf("sprite %q not in sheet", name)
	}
	return anim, nil
}

// Names lists the loaded entries in sorted order.
func (s *Sheet) Names() []string {
	names := make([]string, 0, len(s.anims))
	for name := range s.anims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
