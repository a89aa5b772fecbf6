package cycle

// Report counts entries lost while moving between the per-layer and the
// per-cycle representation.
type Report struct {
	Dropped int // over a capacity limit
	Unknown int // referenced a cycle that is not in the pool
	Invalid int // phase outside a regular cycle's period, or layer out of range
}

// Lost is the total number of entries that did not make it across.
func (r Report) Lost() int { return r.Dropped + r.Unknown + r.Invalid }

// Gather rebuilds every cycle's item list from per-layer memberships, where
// members[i] belongs to layer i. The background (layer 0) takes part in no
// cycle; its members count as Invalid. With limit > 0 each cycle keeps at
// most limit items. Item lists come out sorted by phase, then layer.
func (p *Pool) Gather(members []Membership, limit int) Report {
	var rep Report
	for _, c := range p.cycles {
		c.Items = c.Items[:0]
	}
	for layer, m := range members {
		for _, it := range m {
			c, _, ok := p.Lookup(it.Cycle)
			switch {
			case !ok:
				rep.Unknown++
			case layer == 0:
				rep.Invalid++
			case !c.Batch() && (it.Phase < 0 || it.Phase >= c.Len):
				rep.Invalid++
			case limit > 0 && len(c.Items) >= limit:
				rep.Dropped++
			default:
				c.Items = append(c.Items, Item{Phase: it.Phase, Layer: layer})
			}
		}
	}
	for _, c := range p.cycles {
		c.normalize()
	}
	return rep
}

// Scatter builds per-layer memberships for layers 0..layers from the pool.
// With limit > 0 each layer keeps at most limit members.
func (p *Pool) Scatter(layers, limit int) ([]Membership, Report) {
	var rep Report
	members := make([]Membership, layers+1)
	for _, c := range p.cycles {
		for _, it := range c.Items {
			switch {
			case it.Layer < 0 || it.Layer > layers:
				rep.Invalid++
			case limit > 0 && len(members[it.Layer]) >= limit:
				rep.Dropped++
			default:
				members[it.Layer] = append(members[it.Layer], Member{Cycle: c.ID, Phase: it.Phase})
			}
		}
	}
	return members, rep
}
