// Package layer describes the per-layer records the animation engine reads
// and writes. Pixel content lives elsewhere.
package layer

// Record is one layer's mutable state. The engine writes X, Y, Opacity and
// Visible; Name, Width and Height are only read.
type Record struct {
	Name    string `yaml:"name"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Width   int    `yaml:"width,omitempty"`
	Height  int    `yaml:"height,omitempty"`
	Opacity int    `yaml:"opacity"`
	Visible bool   `yaml:"visible"`
}

// Table gives access to layers 0..Total(); layer 0 is the background.
type Table interface {
	Total() int
	Layer(i int) *Record
}

// Slice is a Table backed by a slice. Element 0 is the background.
type Slice []*Record

func (s Slice) Total() int { return len(s) - 1 }

func (s Slice) Layer(i int) *Record { return s[i] }

// Snapshot copies the records of t.
func Snapshot(t Table) []Record {
	out := make([]Record, t.Total()+1)
	for i := range out {
		out[i] = *t.Layer(i)
	}
	return out
}

// Restore writes records taken by Snapshot back into t.
func Restore(t Table, recs []Record) {
	for i := 0; i <= t.Total() && i < len(recs); i++ {
		*t.Layer(i) = recs[i]
	}
}
