package engine

import "github.com/piwi3910/FacadeMatch/internal/model"

// panelComponentsPerGroup is the component count of one logical wall
// panel in the reference framing library.
const panelComponentsPerGroup = 4

// AggregatePanels merges each side/floor's panel components into one
// logical panel: every component is classified individually first, then
// the bucket collapses to a single element with a union bounding box and
// a fresh sequential ID. Group IDs start at 1 and follow the fixed side
// order, floor 1 before floor 2, so IDs are stable for a given model.
// A bucket whose component count differs from the expected group size is
// kept but warned about. No-op unless PanelGrouping is GroupComponents.
func (e *Engine) AggregatePanels(panels []model.Element, bounds model.FacadeBounds,
	split float64, res *Result) []model.Element {

	if e.Settings.PanelGrouping != model.GroupComponents {
		return panels
	}

	type bucket struct {
		side  model.Side
		floor model.Floor
	}
	boxes := make(map[bucket]*model.BBox)
	counts := make(map[bucket]int)

	tol := e.Settings.EdgeTolerance
	for _, p := range panels {
		if p.BBox == nil {
			res.warnNoBox("panel", p.ID)
			continue
		}
		side := ClassifySideWithTolerance(p.BBox.CenterX(), p.BBox.CenterY(), bounds, tol)
		if side == model.SideInterior {
			res.warnf("panel %d beyond edge tolerance, not grouped", p.ID)
			continue
		}
		k := bucket{side: side, floor: ClassifyFloor(*p.BBox, split, e.Settings.FloorStat)}
		counts[k]++
		if boxes[k] == nil {
			b := *p.BBox
			boxes[k] = &b
		} else {
			u := boxes[k].Union(*p.BBox)
			boxes[k] = &u
		}
	}

	var grouped []model.Element
	id := 1
	for _, s := range model.Sides() {
		for _, f := range []model.Floor{model.Floor1, model.Floor2} {
			k := bucket{side: s, floor: f}
			box := boxes[k]
			if box == nil {
				continue
			}
			if counts[k] != panelComponentsPerGroup {
				res.warnf("side %s floor %d has %d panel components (expected %d)",
					s, f, counts[k], panelComponentsPerGroup)
			}
			grouped = append(grouped, model.Element{ID: id, BBox: box})
			id++
		}
	}
	return grouped
}
