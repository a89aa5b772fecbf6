package cycle

// Member records that a layer takes part in a cycle at a phase.
type Member struct {
	Cycle ID  `yaml:"cycle"`
	Phase int `yaml:"phase"`
}

// Membership is one layer's cycle list, ordered by pool position and then by
// phase. Scatter produces lists in this order.
type Membership []Member

// Visibility resolves whether the cycles in m force the layer's visibility at
// frame. ok is false when no cycle applies and the caller should leave the
// visibility alone.
//
// The first member of a batch toggle decides its value and later members of
// the same toggle are ignored. A running regular cycle hides the layer unless
// one of its phases matches the frame. When several cycles apply, the last
// one in pool order wins.
func (p *Pool) Visibility(m Membership, frame int) (visible, ok bool) {
	var cur ID
	for _, it := range m {
		c, _, found := p.Lookup(it.Cycle)
		if !found || c.Frame0 > frame {
			continue
		}
		if c.Batch() {
			if cur != it.Cycle {
				cur = it.Cycle
				visible, ok = it.Phase == 0, true
			}
			continue
		}
		if c.Frame1 < frame || c.Len <= 0 {
			continue
		}
		if cur != it.Cycle {
			cur = it.Cycle
			visible, ok = false, true
		}
		if (frame-c.Frame0)%c.Len == it.Phase {
			visible = true
		}
	}
	return visible, ok
}
