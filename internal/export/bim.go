// Package export writes classification results to the formats consumed
// downstream: the detector-side JSON contract, sequence files, Excel
// takeoffs, PDF match reports, and QR-coded element labels.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/piwi3910/FacadeMatch/internal/engine"
	"github.com/piwi3910/FacadeMatch/internal/model"
)

// ElementExport is the JSON document the image-detector side consumes:
// side widths plus normalized elements grouped by type, using the
// detector's own type labels as keys.
type ElementExport struct {
	RunID      string                    `json:"run_id"`
	SideWidths map[model.Side]float64    `json:"side_widths"`
	Panels     []model.NormalizedElement `json:"wall-panels"`
	Doors      []model.NormalizedElement `json:"door"`
	Windows    []model.NormalizedElement `json:"windows"`
}

// BuildElementExport groups a result's normalized elements by type.
func BuildElementExport(res *engine.Result) ElementExport {
	out := ElementExport{
		RunID:      res.RunID,
		SideWidths: res.SideWidths,
	}
	for _, el := range res.Elements {
		switch el.Type {
		case model.TypePanel:
			out.Panels = append(out.Panels, el)
		case model.TypeDoor:
			out.Doors = append(out.Doors, el)
		case model.TypeWindow:
			out.Windows = append(out.Windows, el)
		}
	}
	return out
}

// ExportElements writes the detector-side element document to a JSON file.
func ExportElements(path string, res *engine.Result) error {
	return writeJSON(path, BuildElementExport(res))
}

// SequenceSummary counts the classified elements by type.
type SequenceSummary struct {
	Doors   int `json:"doors"`
	Windows int `json:"windows"`
	Panels  int `json:"panels"`
}

// SequenceExport is the per-side element-type order document: for each
// exterior side with elements, the type sequence left to right along
// the facade (tag order), plus overall counts.
type SequenceExport struct {
	Summary SequenceSummary                    `json:"summary"`
	Sides   map[model.Side][]model.ElementType `json:"sides"`
}

// BuildSequences produces the per-side type order for every exterior
// side that has elements.
func BuildSequences(res *engine.Result) SequenceExport {
	out := SequenceExport{Sides: make(map[model.Side][]model.ElementType)}

	type tagged struct {
		typ model.ElementType
		tag int
	}
	bySide := make(map[model.Side][]tagged)
	for _, el := range res.Elements {
		switch el.Type {
		case model.TypeDoor:
			out.Summary.Doors++
		case model.TypeWindow:
			out.Summary.Windows++
		case model.TypePanel:
			out.Summary.Panels++
		}
		bySide[el.Side] = append(bySide[el.Side], tagged{typ: el.Type, tag: el.Tag})
	}

	for _, s := range model.Sides() {
		elems := bySide[s]
		if len(elems) == 0 {
			continue
		}
		sort.Slice(elems, func(i, j int) bool { return elems[i].tag < elems[j].tag })
		seq := make([]model.ElementType, 0, len(elems))
		for _, t := range elems {
			seq = append(seq, t.typ)
		}
		out.Sides[s] = seq
	}
	return out
}

// ExportSequences writes the per-side type order to a JSON file.
func ExportSequences(path string, res *engine.Result) error {
	return writeJSON(path, BuildSequences(res))
}

// writeJSON creates the parent directory if needed and writes v as
// pretty-printed JSON.
func writeJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize export: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write export file: %w", err)
	}
	return nil
}
