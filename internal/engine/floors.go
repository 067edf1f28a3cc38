package engine

import (
	"fmt"
	"sort"

	"github.com/piwi3910/FacadeMatch/internal/model"
)

// floorStatistic extracts the configured per-element Z value.
func floorStatistic(b model.BBox, stat model.FloorStat) float64 {
	if stat == model.FloorStatCenter {
		return b.CenterZ()
	}
	return b.ZMin
}

// ComputeFloorSplit returns the Z threshold separating the two floors:
// the median of the configured Z statistic across all panels. For an
// even count the element at index count/2 of the ascending sort is used
// (the upper of the two middle values). Returns ErrInsufficientData
// when no panel yields a usable Z value.
func ComputeFloorSplit(panels []model.Element, stat model.FloorStat) (float64, error) {
	var zs []float64
	for _, p := range panels {
		if p.BBox == nil {
			continue
		}
		zs = append(zs, floorStatistic(*p.BBox, stat))
	}
	if len(zs) == 0 {
		return 0, fmt.Errorf("no panel Z values: %w", ErrInsufficientData)
	}
	sort.Float64s(zs)
	return zs[len(zs)/2], nil
}

// ClassifyFloor assigns a box to floor 1 or 2 by comparing the same Z
// statistic the split was computed from: strictly below the split is
// floor 1, everything else floor 2.
func ClassifyFloor(b model.BBox, split float64, stat model.FloorStat) model.Floor {
	if floorStatistic(b, stat) < split {
		return model.Floor1
	}
	return model.Floor2
}
