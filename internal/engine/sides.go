package engine

import (
	"math"

	"github.com/piwi3910/FacadeMatch/internal/model"
)

// ClassifySide maps a point to its nearest facade side. The mapping is
// total: every finite point yields a side, with exact distance ties
// broken in the fixed order A, C, B, D.
func ClassifySide(x, y float64, bounds model.FacadeBounds) model.Side {
	return ClassifySideWithTolerance(x, y, bounds, 0)
}

// ClassifySideWithTolerance is ClassifySide with an optional strict
// edge-membership test: when tolerance is positive and the minimum edge
// distance exceeds it, SideInterior is returned. A non-positive
// tolerance keeps the total nearest-edge mapping. Both modes share this
// one code path.
func ClassifySideWithTolerance(x, y float64, bounds model.FacadeBounds, tolerance float64) model.Side {
	dists := map[model.Side]float64{
		model.SideA: math.Abs(x - bounds.XMin),
		model.SideC: math.Abs(x - bounds.XMax),
		model.SideB: math.Abs(y - bounds.YMin),
		model.SideD: math.Abs(y - bounds.YMax),
	}

	best := model.SideA
	bestDist := dists[model.SideA]
	for _, s := range model.Sides()[1:] {
		if dists[s] < bestDist {
			best = s
			bestDist = dists[s]
		}
	}

	if tolerance > 0 && bestDist > tolerance {
		return model.SideInterior
	}
	return best
}
