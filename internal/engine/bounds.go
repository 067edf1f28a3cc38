package engine

import (
	"fmt"

	"github.com/piwi3910/FacadeMatch/internal/model"
)

// ComputeBounds derives the building footprint from panel extents.
// Panels without a bounding box are skipped with a warning on res.
// Returns ErrNoGeometry when no panel contributes geometry.
func ComputeBounds(panels []model.Element, strategy model.BoundsStrategy, res *Result) (model.FacadeBounds, error) {
	var bounds model.FacadeBounds
	seeded := false

	for _, p := range panels {
		if p.BBox == nil {
			if res != nil {
				res.warnNoBox("panel", p.ID)
			}
			continue
		}

		var xlo, xhi, ylo, yhi float64
		switch strategy {
		case model.BoundsMidpoints:
			xlo, xhi = p.BBox.CenterX(), p.BBox.CenterX()
			ylo, yhi = p.BBox.CenterY(), p.BBox.CenterY()
		default: // BoundsExtents
			xlo, xhi = p.BBox.XMin, p.BBox.XMax
			ylo, yhi = p.BBox.YMin, p.BBox.YMax
		}

		if !seeded {
			bounds = model.FacadeBounds{XMin: xlo, XMax: xhi, YMin: ylo, YMax: yhi}
			seeded = true
			continue
		}
		if xlo < bounds.XMin {
			bounds.XMin = xlo
		}
		if xhi > bounds.XMax {
			bounds.XMax = xhi
		}
		if ylo < bounds.YMin {
			bounds.YMin = ylo
		}
		if yhi > bounds.YMax {
			bounds.YMax = yhi
		}
	}

	if !seeded {
		return model.FacadeBounds{}, fmt.Errorf("cannot determine building bounds: %w", ErrNoGeometry)
	}
	return bounds, nil
}
