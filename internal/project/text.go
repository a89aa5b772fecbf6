package project

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ivlev/layeranim/internal/cycle"
	"github.com/ivlev/layeranim/internal/keyframe"
	"github.com/ivlev/layeranim/internal/textline"
)

var (
	ErrHeader     = errors.New("missing animation header")
	ErrCount      = errors.New("count out of range")
	ErrUnexpected = errors.New("unexpected end of data")
)

// DecodeError reports where decoding stopped. Everything before Line was
// kept in the returned project.
type DecodeError struct {
	Line    int
	Section string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("animation: line %d (%s): %v", e.Line, e.Section, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Encode writes p in the line-oriented text layout.
func Encode(w io.Writer, p *Project) error {
	bw := bufio.NewWriter(w)

	delay := p.Export.Delay
	if !p.Export.GIF {
		delay = -delay
	}
	fmt.Fprintf(bw, "%s\n%d\n%d\n%s\n%s\n%d\n", Header,
		p.Export.Start, p.Export.End, p.Export.Dir, p.Export.Prefix, delay)

	pool := p.Cycles
	if pool == nil {
		pool = cycle.NewPool()
	}
	fmt.Fprintf(bw, "%d\n", pool.Len())
	bw.WriteString(cycle.FormatPool(pool))

	for _, t := range p.Tracks {
		fmt.Fprintf(bw, "%d\n", len(t))
		bw.WriteString(keyframe.FormatTrack(t))
	}
	return bw.Flush()
}

type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func (r *lineReader) next() (string, bool) {
	if !r.sc.Scan() {
		return "", false
	}
	r.line++
	return strings.TrimRight(r.sc.Text(), "\r"), true
}

// Decode reads an animation section. On a malformed header, count or a
// missing line it stops and returns what was read so far together with a
// *DecodeError. Malformed entry lines only truncate their own table; the
// Summary reports those.
func Decode(r io.Reader, lim Limits) (*Project, Summary, error) {
	p := New()
	var sum Summary
	lr := &lineReader{sc: bufio.NewScanner(r)}
	lr.sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	fail := func(section string, err error) (*Project, Summary, error) {
		if serr := lr.sc.Err(); serr != nil {
			err = serr
		}
		return p, sum, &DecodeError{Line: lr.line, Section: section, Err: err}
	}

	if s, ok := lr.next(); !ok || strings.TrimSpace(s) != Header {
		return fail("header", ErrHeader)
	}

	readInt := func() (int, error) {
		s, ok := lr.next()
		if !ok {
			return 0, ErrUnexpected
		}
		return strconv.Atoi(strings.TrimSpace(s))
	}

	ex := DefaultExport()
	var err error
	if ex.Start, err = readInt(); err != nil {
		return fail("export start", err)
	}
	if ex.End, err = readInt(); err != nil {
		return fail("export end", err)
	}
	var ok bool
	if ex.Dir, ok = lr.next(); !ok {
		return fail("export dir", ErrUnexpected)
	}
	if ex.Prefix, ok = lr.next(); !ok {
		return fail("export prefix", ErrUnexpected)
	}
	if ex.Delay, err = readInt(); err != nil {
		return fail("export delay", err)
	}
	ex.GIF = ex.Delay >= 0
	if !ex.GIF {
		ex.Delay = -ex.Delay
	}
	p.Export = ex

	// Cycles
	n, err := readInt()
	if err != nil {
		return fail("cycle count", err)
	}
	if n < 0 || (lim.Cycle.Cycles > 0 && n > lim.Cycle.Cycles) {
		return fail("cycle count", ErrCount)
	}
	for i := 0; i < n; i++ {
		s, ok := lr.next()
		if !ok {
			return fail("cycles", ErrUnexpected)
		}
		c, st := cycle.ParseCycle(s, lim.Cycle)
		if !sum.Cycles.Add(lr.line, st) {
			continue
		}
		if _, err := p.Cycles.Append(c, lim.Cycle.Cycles); err != nil {
			sum.Cycles.Dropped++
		}
	}

	// One slot table per layer until the data ends
	for layer := 0; ; layer++ {
		s, ok := lr.next()
		if !ok {
			break
		}
		section := fmt.Sprintf("layer %d", layer)
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fail(section, err)
		}
		if n < 0 || (lim.PosSlots > 0 && n > lim.PosSlots) {
			return fail(section, ErrCount)
		}

		var (
			t    keyframe.Track
			res  textline.Result
			prev int
		)
		for i := 0; i < n; i++ {
			s, ok := lr.next()
			if !ok {
				p.Tracks = append(p.Tracks, t)
				sum.Tracks = append(sum.Tracks, res)
				return fail(section, ErrUnexpected)
			}
			slot, st := keyframe.ParseSlot(s, prev)
			if !res.Add(lr.line, st) {
				continue
			}
			prev = slot.Frame
			t = append(t, slot)
		}
		p.Tracks = append(p.Tracks, t)
		sum.Tracks = append(sum.Tracks, res)
	}

	if err := lr.sc.Err(); err != nil {
		return fail("read", err)
	}
	return p, sum, nil
}
