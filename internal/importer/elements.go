package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/FacadeMatch/internal/model"
)

// ElementSet is the 3D element dump exported from the host model:
// facade panels, door framing members, and windows, each with its
// axis-aligned bounding box in millimetres.
type ElementSet struct {
	Panels  []model.Element `json:"panels"`
	Doors   []model.Element `json:"doors"`
	Windows []model.Element `json:"windows"`
}

// LoadElements reads an ElementSet from a JSON file. Elements without a
// bounding box are kept (the engine warns and skips them per stage), but
// a dump with no panels at all is rejected here since nothing downstream
// can run without facade geometry.
func LoadElements(path string) (*ElementSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open element file: %w", err)
	}

	var set ElementSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("invalid element JSON: %w", err)
	}

	if len(set.Panels) == 0 {
		return nil, fmt.Errorf("element file %s contains no panels", path)
	}

	return &set, nil
}

// SaveElements writes an ElementSet to a JSON file, pretty-printed so
// the dump stays hand-editable.
func SaveElements(set *ElementSet, path string) error {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize elements: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write element file: %w", err)
	}
	return nil
}
