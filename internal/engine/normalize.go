package engine

import (
	"sort"

	"github.com/piwi3910/FacadeMatch/internal/model"
)

// NormalizeSides computes each side's local extent from its own panels
// and rebuilds the normalized element list: every panel, opening, and
// window with its side, floor, and position as a fraction of the side
// width. Values outside [0,1] are preserved; an element on a zero-width
// side normalizes to 0. Results land on res (SideWidths, Elements).
func (e *Engine) NormalizeSides(panels, windows []model.Element, openings []model.DoorOpening,
	split float64, res *Result) {

	bounds := res.Bounds
	tol := e.Settings.EdgeTolerance
	stat := e.Settings.FloorStat

	// Side extents from panels only: windows and doors measure against
	// the panel run they sit in, even when they overhang it slightly.
	sideMin := make(map[model.Side]float64, 4)
	sideMax := make(map[model.Side]float64, 4)
	for _, p := range panels {
		if p.BBox == nil {
			continue
		}
		side := ClassifySideWithTolerance(p.BBox.CenterX(), p.BBox.CenterY(), bounds, tol)
		if side == model.SideInterior {
			continue
		}
		if lo, ok := sideMin[side]; !ok || p.BBox.XMin < lo {
			sideMin[side] = p.BBox.XMin
		}
		if hi, ok := sideMax[side]; !ok || p.BBox.XMax > hi {
			sideMax[side] = p.BBox.XMax
		}
	}

	res.SideWidths = make(map[model.Side]float64, 4)
	for _, s := range model.Sides() {
		if _, ok := sideMin[s]; ok {
			res.SideWidths[s] = sideMax[s] - sideMin[s]
		} else {
			res.SideWidths[s] = 0
		}
	}

	normalize := func(xmin, xmax float64, side model.Side) float64 {
		width := res.SideWidths[side]
		if width <= 0 {
			return 0
		}
		return ((xmin+xmax)/2 - sideMin[side]) / width
	}

	add := func(id int, typ model.ElementType, side model.Side, floor model.Floor, xmin, xmax float64) {
		res.Elements = append(res.Elements, model.NormalizedElement{
			ID:          id,
			Type:        typ,
			Side:        side,
			Floor:       floor,
			XMin:        xmin,
			XMax:        xmax,
			SideWidthMM: res.SideWidths[side],
			CenterNorm:  normalize(xmin, xmax, side),
		})
	}

	for _, p := range panels {
		if p.BBox == nil {
			continue
		}
		side := ClassifySideWithTolerance(p.BBox.CenterX(), p.BBox.CenterY(), bounds, tol)
		if side == model.SideInterior {
			continue
		}
		floor := ClassifyFloor(*p.BBox, split, stat)
		add(p.ID, model.TypePanel, side, floor, p.BBox.XMin, p.BBox.XMax)
	}

	for _, o := range openings {
		side := ClassifySideWithTolerance(o.CenterX, o.CenterY, bounds, tol)
		if side == model.SideInterior {
			continue
		}
		box := o.Bounds()
		floor := ClassifyFloor(box, split, stat)
		add(o.ID, model.TypeDoor, side, floor, box.XMin, box.XMax)
	}

	for _, w := range windows {
		if w.BBox == nil {
			continue
		}
		side := ClassifySideWithTolerance(w.BBox.CenterX(), w.BBox.CenterY(), bounds, tol)
		if side == model.SideInterior {
			continue
		}
		floor := model.Floor1
		if e.Settings.ClassifyWindowFloors {
			floor = ClassifyFloor(*w.BBox, split, stat)
		}
		add(w.ID, model.TypeWindow, side, floor, w.BBox.XMin, w.BBox.XMax)
	}

	assignTags(res.Elements)
}

// assignTags numbers each side's elements 1..N in normalized-position
// order, without reordering the element slice itself.
func assignTags(elems []model.NormalizedElement) {
	bySide := make(map[model.Side][]int)
	for i, el := range elems {
		bySide[el.Side] = append(bySide[el.Side], i)
	}
	for _, idxs := range bySide {
		sort.SliceStable(idxs, func(a, b int) bool {
			return elems[idxs[a]].CenterNorm < elems[idxs[b]].CenterNorm
		})
		for tag, i := range idxs {
			elems[i].Tag = tag + 1
		}
	}
}
