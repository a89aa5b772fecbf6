package project

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/layeranim/internal/cycle"
	"github.com/ivlev/layeranim/internal/keyframe"
)

// Document is the YAML form of a Project
type Document struct {
	Version string        `yaml:"version"`
	Export  Export        `yaml:"export"`
	Cycles  []cycle.Cycle `yaml:"cycles"`
	Layers  []LayerKeys   `yaml:"layers"`
}

// LayerKeys holds the keyframes of one layer
type LayerKeys struct {
	Layer int             `yaml:"layer"`
	Slots []keyframe.Slot `yaml:"slots"`
}

const documentVersion = "1.0"

// WriteYAML writes p as a YAML document
func WriteYAML(w io.Writer, p *Project) error {
	doc := Document{Version: documentVersion, Export: p.Export}
	if p.Cycles != nil {
		for _, c := range p.Cycles.Cycles() {
			doc.Cycles = append(doc.Cycles, *c)
		}
	}
	for i, t := range p.Tracks {
		doc.Layers = append(doc.Layers, LayerKeys{Layer: i, Slots: t})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}

// ErrNotProject is returned for YAML files that carry no document version,
// such as layer sheets or tool configuration.
var ErrNotProject = errors.New("not an animation document")

// ReadYAML reads a YAML document. Cycles keep their listed order; tracks must
// be sorted by frame. Export settings missing from the file keep their
// defaults.
func ReadYAML(r io.Reader, lim Limits) (*Project, error) {
	doc := Document{Export: DefaultExport()}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	if doc.Version == "" {
		return nil, ErrNotProject
	}

	p := New()
	p.Export = doc.Export
	for i, c := range doc.Cycles {
		if lim.Cycle.Items > 0 && len(c.Items) > lim.Cycle.Items {
			return nil, fmt.Errorf("cycle %d: %d items: %w", i+1, len(c.Items), ErrCount)
		}
		if _, err := p.Cycles.Append(c, lim.Cycle.Cycles); err != nil {
			return nil, fmt.Errorf("cycle %d: %w", i+1, err)
		}
	}
	for _, lk := range doc.Layers {
		if lk.Layer < 0 {
			return nil, fmt.Errorf("layer %d: %w", lk.Layer, ErrCount)
		}
		t := keyframe.Track(lk.Slots)
		if !t.Valid() {
			return nil, fmt.Errorf("layer %d: slots out of order", lk.Layer)
		}
		if lim.PosSlots > 0 && len(t) > lim.PosSlots {
			return nil, fmt.Errorf("layer %d: %d slots: %w", lk.Layer, len(t), ErrCount)
		}
		for len(p.Tracks) <= lk.Layer {
			p.Tracks = append(p.Tracks, nil)
		}
		p.Tracks[lk.Layer] = t
	}
	return p, nil
}
