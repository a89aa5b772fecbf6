// Package textline holds the pieces shared by the line-oriented keyframe and
// cycle text formats.
package textline

import (
	"strconv"
	"strings"
)

// Status reports how much of a single line was understood.
type Status int

const (
	// Complete means every field was read as written.
	Complete Status = iota
	// Partial means the line produced an entry but some fields were defaulted,
	// clamped or dropped.
	Partial
	// Invalid means the line produced nothing; readers treat it as end of list.
	Invalid
)

func (s Status) String() string {
	switch s {
	case Complete:
		return "complete"
	case Partial:
		return "partial"
	case Invalid:
		return "invalid"
	default:
		return "status(" + strconv.Itoa(int(s)) + ")"
	}
}

// Worse returns the less successful of two statuses.
func Worse(a, b Status) Status {
	if b > a {
		return b
	}
	return a
}

// Result summarises a multi-line parse.
type Result struct {
	Lines   int // lines that produced an entry
	Partial int // of those, lines with status Partial
	Dropped int // entries read but discarded by a capacity limit
	Stopped bool
	StopAt  int // 1-based line number of the first Invalid line, if Stopped
}

// Add folds one line status into the result. It returns false once the
// list has ended.
func (r *Result) Add(line int, s Status) bool {
	if r.Stopped {
		return false
	}
	if s == Invalid {
		r.Stopped = true
		r.StopAt = line
		return false
	}
	r.Lines++
	if s == Partial {
		r.Partial++
	}
	return true
}

// LeadingInts parses up to max whitespace separated integers from the start
// of line and returns them together with the unparsed remainder. Parsing stops
// at the first field that is not an integer.
func LeadingInts(line string, max int) ([]int, string) {
	var vals []int
	rest := line
	for len(vals) < max {
		field := strings.TrimLeft(rest, " \t\r")
		if field == "" {
			break
		}
		end := strings.IndexAny(field, " \t\r")
		if end < 0 {
			end = len(field)
		}
		v, err := strconv.Atoi(field[:end])
		if err != nil {
			break
		}
		vals = append(vals, v)
		rest = field[end:]
	}
	return vals, rest
}

// Lines splits text into lines, dropping a trailing empty line.
func Lines(text string) []string {
	text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
