package cycle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ivlev/layeranim/internal/textline"
)

// Limits bounds what the text reader accepts. Zero fields are unbounded.
type Limits struct {
	Cycles int // cycles per pool
	Items  int // items per cycle
	Layers int // highest layer number
}

// FormatCycle renders one cycle line without the trailing newline.
func FormatCycle(c *Cycle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\t%d\t", c.Frame0, c.Frame1)

	if c.Batch() {
		for i, it := range c.Items {
			if i > 0 {
				b.WriteByte(',')
			}
			if it.Phase != 0 {
				b.WriteByte('-')
			}
			b.WriteString(strconv.Itoa(it.Layer))
		}
		return b.String()
	}

	items := c.Items
	for phase := 0; phase < c.Len; phase++ {
		if phase > 0 {
			b.WriteByte(',')
		}
		n := 0
		for n < len(items) && items[n].Phase == phase {
			n++
		}
		switch n {
		case 0:
			b.WriteByte('0')
		case 1:
			b.WriteString(strconv.Itoa(items[0].Layer))
		default:
			b.WriteByte('(')
			for i := 0; i < n; i++ {
				if i > 0 {
					b.WriteByte(',')
				}
				b.WriteString(strconv.Itoa(items[i].Layer))
			}
			b.WriteByte(')')
		}
		items = items[n:]
	}
	return b.String()
}

// ParseCycle reads one cycle line. A line with no usable frame pair, a
// non-positive frame0 or frame0 > frame1 is Invalid, as is a regular cycle
// without a single phase. A layer number out of range ends the field list
// early and makes the line Partial, as do dropped items.
func ParseCycle(line string, lim Limits) (Cycle, textline.Status) {
	vals, rest := textline.LeadingInts(line, 2)
	if len(vals) < 2 || vals[0] <= 0 || vals[0] > vals[1] {
		return Cycle{}, textline.Invalid
	}
	c := Cycle{Frame0: vals[0], Frame1: vals[1]}

	fields := strings.Join(strings.Fields(rest), "")
	fields = strings.TrimSuffix(fields, ",")

	var st textline.Status
	if c.Batch() {
		st = parseBatch(&c, fields, lim)
	} else {
		st = parseRegular(&c, fields, lim)
		if c.Len == 0 {
			return Cycle{}, textline.Invalid
		}
	}

	if lim.Items > 0 && len(c.Items) > lim.Items {
		c.Items = c.Items[:lim.Items]
		st = textline.Partial
	}
	c.normalize()
	return c, st
}

func layerInRange(n int, lim Limits) bool {
	return n >= 0 && (lim.Layers <= 0 || n <= lim.Layers)
}

func parseBatch(c *Cycle, fields string, lim Limits) textline.Status {
	if fields == "" {
		return textline.Complete
	}
	for _, f := range strings.Split(fields, ",") {
		f = strings.Trim(f, "()")
		hide := strings.HasPrefix(f, "-")
		n, err := strconv.Atoi(strings.TrimPrefix(f, "-"))
		if err != nil || !layerInRange(n, lim) {
			return textline.Partial
		}
		if n == 0 {
			continue
		}
		it := Item{Layer: n}
		if hide {
			it.Phase = 1
		}
		c.Items = append(c.Items, it)
	}
	return textline.Complete
}

func parseRegular(c *Cycle, fields string, lim Limits) textline.Status {
	if fields == "" {
		return textline.Complete
	}
	st := textline.Complete
	phase, group := 0, false
	for _, f := range strings.Split(fields, ",") {
		if strings.HasPrefix(f, "(") {
			group = true
			f = f[1:]
		}
		closing := strings.HasSuffix(f, ")")
		if closing {
			f = f[:len(f)-1]
		}
		n, err := strconv.Atoi(f)
		if err != nil || !layerInRange(n, lim) {
			st = textline.Partial
			break
		}
		if n > 0 {
			c.Items = append(c.Items, Item{Phase: phase, Layer: n})
		}
		if !group || closing {
			phase++
			group = false
		}
	}
	// An unterminated group still occupies its phase
	if group {
		phase++
		st = textline.Partial
	}
	c.Len = phase
	return st
}

// FormatPool renders every cycle in pool order, one per line.
func FormatPool(p *Pool) string {
	var b strings.Builder
	for _, c := range p.cycles {
		b.WriteString(FormatCycle(c))
		b.WriteByte('\n')
	}
	return b.String()
}

// ParsePool reads cycle lines into a new pool until the first Invalid line.
// Cycles past lim.Cycles are counted as dropped.
func ParsePool(text string, lim Limits) (*Pool, textline.Result) {
	p := NewPool()
	var res textline.Result
	for n, line := range textline.Lines(text) {
		c, st := ParseCycle(line, lim)
		if !res.Add(n+1, st) {
			break
		}
		if _, err := p.Append(c, lim.Cycles); err != nil {
			res.Dropped++
		}
	}
	return p, res
}
