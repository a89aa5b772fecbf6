// Package cycle implements shared visibility cycles: periodic show/hide
// patterns and one-shot batch toggles applied to sets of layers.
package cycle

import (
	"cmp"
	"errors"
	"slices"
)

// ID identifies a cycle inside a Pool. The zero ID never names a cycle.
type ID uint32

// Item puts a layer into a cycle. In a regular cycle Phase is the position
// within the period at which the layer is shown; in a batch toggle Phase is 1
// when the layer is forced hidden and 0 when it is forced shown.
type Item struct {
	Phase int `yaml:"phase"`
	Layer int `yaml:"layer"`
}

// Cycle is one visibility rule. Frame0 == Frame1 marks a batch toggle that
// applies from Frame0 onwards; otherwise the cycle repeats every Len frames
// from Frame0 through Frame1 inclusive.
type Cycle struct {
	ID     ID     `yaml:"-"`
	Frame0 int    `yaml:"frame0"`
	Frame1 int    `yaml:"frame1"`
	Len    int    `yaml:"len"`
	Items  []Item `yaml:"items"`
}

// Batch reports whether c is a batch toggle.
func (c *Cycle) Batch() bool { return c.Frame0 == c.Frame1 }

var (
	ErrFrameRange = errors.New("cycle: frame0 must be positive and not after frame1")
	ErrPoolFull   = errors.New("cycle: pool is full")
)

func compareItems(a, b Item) int {
	if c := cmp.Compare(a.Phase, b.Phase); c != 0 {
		return c
	}
	return cmp.Compare(a.Layer, b.Layer)
}

// SortItems orders items by phase, then layer, and removes duplicates.
// Resolution and text rendering rely on this order.
func SortItems(items []Item) []Item {
	slices.SortFunc(items, compareItems)
	return slices.Compact(items)
}

// normalize makes c internally consistent after its items changed.
func (c *Cycle) normalize() {
	if c.Batch() {
		for i := range c.Items {
			if c.Items[i].Phase != 0 {
				c.Items[i].Phase = 1
			}
		}
	}
	c.Items = SortItems(c.Items)
	if c.Batch() {
		c.Len = len(c.Items)
	}
}

// Pool is the ordered arena of cycles. Order is by Frame0 and decides
// precedence: a cycle later in the pool overrides an earlier one.
type Pool struct {
	cycles []*Cycle
	rank   map[ID]int
	next   ID
}

// NewPool creates an empty pool
func NewPool() *Pool {
	return &Pool{rank: make(map[ID]int)}
}

func (p *Pool) Len() int { return len(p.cycles) }

// Cycles returns the cycles in pool order. The slice must not be modified.
func (p *Pool) Cycles() []*Cycle { return p.cycles }

// At returns the cycle at 0-based pool position i.
func (p *Pool) At(i int) *Cycle { return p.cycles[i] }

// Lookup returns the cycle with the given id and its pool position.
func (p *Pool) Lookup(id ID) (*Cycle, int, bool) {
	r, ok := p.rank[id]
	if !ok {
		return nil, -1, false
	}
	return p.cycles[r], r, true
}

func (p *Pool) reindex() {
	clear(p.rank)
	for i, c := range p.cycles {
		p.rank[c.ID] = i
	}
}

func (p *Pool) newID() ID {
	p.next++
	return p.next
}

func checkFrames(c *Cycle) error {
	if c.Frame0 <= 0 || c.Frame0 > c.Frame1 {
		return ErrFrameRange
	}
	return nil
}

// Append adds c at the end of the pool, keeping its position as given. It is
// meant for loading tables that are already in order.
func (p *Pool) Append(c Cycle, limit int) (ID, error) {
	if err := checkFrames(&c); err != nil {
		return 0, err
	}
	if limit > 0 && len(p.cycles) >= limit {
		return 0, ErrPoolFull
	}
	c.ID = p.newID()
	c.Items = slices.Clone(c.Items)
	c.normalize()
	p.cycles = append(p.cycles, &c)
	p.rank[c.ID] = len(p.cycles) - 1
	return c.ID, nil
}

// Insert places c right after the last cycle whose Frame0 <= c.Frame0, so c
// outranks every cycle that starts at or before it even in a pool loaded out
// of order. With limit > 0 a pool that would grow past limit loses its last
// cycle, which is returned as dropped. If c itself falls past the limit it is
// not stored and its id is 0.
func (p *Pool) Insert(c Cycle, limit int) (id ID, dropped *Cycle, err error) {
	if err := checkFrames(&c); err != nil {
		return 0, nil, err
	}
	i := len(p.cycles)
	for i > 0 && p.cycles[i-1].Frame0 > c.Frame0 {
		i--
	}
	if limit > 0 && i >= limit {
		cc := c
		return 0, &cc, nil
	}

	c.ID = p.newID()
	c.Items = slices.Clone(c.Items)
	c.normalize()
	p.cycles = slices.Insert(p.cycles, i, &c)
	if limit > 0 && len(p.cycles) > limit {
		dropped = p.cycles[len(p.cycles)-1]
		p.cycles = p.cycles[:limit]
	}
	p.reindex()
	return c.ID, dropped, nil
}

// SetBatch records a batch toggle at frame. A batch toggle already at exactly
// that frame is replaced, and the new one goes after every cycle starting at
// or before frame so that it takes precedence there. With itemLimit > 0
// excess items are dropped and counted.
func (p *Pool) SetBatch(frame int, items []Item, limit, itemLimit int) (id ID, droppedItems int, droppedCycle *Cycle, err error) {
	items = slices.Clone(items)
	if itemLimit > 0 && len(items) > itemLimit {
		droppedItems = len(items) - itemLimit
		items = items[:itemLimit]
	}
	for _, c := range p.cycles {
		if c.Batch() && c.Frame0 == frame {
			p.Remove(c.ID)
			break
		}
	}
	id, droppedCycle, err = p.Insert(Cycle{Frame0: frame, Frame1: frame, Items: items}, limit)
	return id, droppedItems, droppedCycle, err
}

// Remove deletes the cycle with the given id.
func (p *Pool) Remove(id ID) bool {
	r, ok := p.rank[id]
	if !ok {
		return false
	}
	p.cycles = slices.Delete(p.cycles, r, r+1)
	p.reindex()
	return true
}

// Clear drops every cycle. IDs are not reused.
func (p *Pool) Clear() {
	p.cycles = nil
	clear(p.rank)
}

// Clone returns a deep copy that keeps the same ids.
func (p *Pool) Clone() *Pool {
	q := &Pool{rank: make(map[ID]int, len(p.rank)), next: p.next}
	for _, c := range p.cycles {
		cc := *c
		cc.Items = slices.Clone(c.Items)
		q.cycles = append(q.cycles, &cc)
	}
	q.reindex()
	return q
}
