package engine

import "github.com/piwi3910/FacadeMatch/internal/model"

// BuildSideSummary assigns every panel, window, and door opening to
// exactly one side (and, where floor-applicable, exactly one floor).
// The total nearest-edge classifier guarantees the one-side invariant;
// elements without a bounding box are skipped with a warning.
func (e *Engine) BuildSideSummary(panels, windows []model.Element, openings []model.DoorOpening,
	bounds model.FacadeBounds, split float64, res *Result) model.SideSummary {

	summary := model.NewSideSummary()
	tol := e.Settings.EdgeTolerance

	for _, p := range panels {
		if p.BBox == nil {
			res.warnNoBox("panel", p.ID)
			continue
		}
		side := ClassifySideWithTolerance(p.BBox.CenterX(), p.BBox.CenterY(), bounds, tol)
		if side == model.SideInterior {
			res.warnf("panel %d beyond edge tolerance, not assigned to a side", p.ID)
			continue
		}
		rec := summary[side]
		rec.Panels = append(rec.Panels, p.ID)
		if ClassifyFloor(*p.BBox, split, e.Settings.FloorStat) == model.Floor1 {
			rec.PanelsFloor1 = append(rec.PanelsFloor1, p.ID)
		} else {
			rec.PanelsFloor2 = append(rec.PanelsFloor2, p.ID)
		}
	}

	for _, w := range windows {
		if w.BBox == nil {
			res.warnNoBox("window", w.ID)
			continue
		}
		side := ClassifySideWithTolerance(w.BBox.CenterX(), w.BBox.CenterY(), bounds, tol)
		if side == model.SideInterior {
			res.warnf("window %d beyond edge tolerance, not assigned to a side", w.ID)
			continue
		}
		summary[side].Windows = append(summary[side].Windows, w.ID)
	}

	for _, o := range openings {
		side := ClassifySideWithTolerance(o.CenterX, o.CenterY, bounds, tol)
		if side == model.SideInterior {
			res.warnf("door opening %d beyond edge tolerance, not assigned to a side", o.ID)
			continue
		}
		summary[side].Doors = append(summary[side].Doors, o.ID)
	}

	return summary
}
