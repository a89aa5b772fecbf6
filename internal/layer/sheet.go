package layer

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// Sheet is the YAML form of a layer table.
type Sheet struct {
	Layers []*Record `yaml:"layers"`
}

var ErrEmptySheet = errors.New("layer sheet has no background layer")

// ReadSheet reads a layer table from a YAML file
func ReadSheet(path string) (Slice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sheet Sheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, err
	}
	if len(sheet.Layers) == 0 {
		return nil, ErrEmptySheet
	}
	for i, r := range sheet.Layers {
		if r == nil {
			sheet.Layers[i] = &Record{}
		}
	}

	return Slice(sheet.Layers), nil
}

// WriteSheet writes a layer table to a YAML file
func WriteSheet(t Table, path string) error {
	sheet := Sheet{Layers: make([]*Record, t.Total()+1)}
	for i := range sheet.Layers {
		sheet.Layers[i] = t.Layer(i)
	}

	data, err := yaml.Marshal(&sheet)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
