package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/FacadeMatch/internal/model"
)

// point2D is a 2D plan coordinate in millimetres.
type point2D struct {
	X float64
	Y float64
}

// planSegment is a line segment between two plan points, used for
// chaining disconnected LINE entities into closed panel outlines.
type planSegment struct {
	start point2D
	end   point2D
}

// ImportPanelPlan reads a 2D floor-plan DXF and converts each closed
// shape (LWPOLYLINE or chain of connected LINEs) into a panel Element.
// The plan carries no height information, so every panel gets the given
// Z extent. IDs are assigned sequentially starting at startID.
func ImportPanelPlan(path string, zMin, zMax float64, startID int) ([]model.Element, []string, error) {
	var warnings []string

	drawing, err := dxf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open DXF file: %w", err)
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		return nil, nil, fmt.Errorf("DXF file %s contains no entities", path)
	}

	var outlines [][]point2D
	var segments []planSegment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := make([]point2D, 0, len(e.Vertices))
			for _, v := range e.Vertices {
				outline = append(outline, point2D{X: v[0], Y: v[1]})
			}
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				warnings = append(warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Line:
			segments = append(segments, planSegment{
				start: point2D{X: e.Start[0], Y: e.Start[1]},
				end:   point2D{X: e.End[0], Y: e.End[1]},
			})

		default:
			// Unsupported entity types are silently skipped
		}
	}

	outlines = append(outlines, chainPlanSegments(segments, 0.01)...)

	if len(outlines) == 0 {
		return nil, warnings, fmt.Errorf("no closed shapes found in DXF file %s", path)
	}

	var panels []model.Element
	id := startID
	for _, outline := range outlines {
		xmin, ymin := outline[0].X, outline[0].Y
		xmax, ymax := xmin, ymin
		for _, p := range outline[1:] {
			xmin = math.Min(xmin, p.X)
			xmax = math.Max(xmax, p.X)
			ymin = math.Min(ymin, p.Y)
			ymax = math.Max(ymax, p.Y)
		}

		if xmax-xmin < 0.01 || ymax-ymin < 0.01 {
			warnings = append(warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f mm)", xmax-xmin, ymax-ymin))
			continue
		}

		panels = append(panels, model.Element{
			ID: id,
			BBox: &model.BBox{
				XMin: xmin, YMin: ymin, ZMin: zMin,
				XMax: xmax, YMax: ymax, ZMax: zMax,
			},
		})
		id++
	}

	return panels, warnings, nil
}

// chainPlanSegments connects individual segments into closed outlines.
// tolerance is the maximum distance between endpoints to consider them
// connected.
func chainPlanSegments(segs []planSegment, tolerance float64) [][]point2D {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines [][]point2D

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []point2D{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if planPointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if planPointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		if len(chain) >= 3 && planPointsClose(chain[0], chain[len(chain)-1], tolerance) {
			chain = chain[:len(chain)-1]
		}

		if len(chain) >= 3 {
			outlines = append(outlines, chain)
		}
	}

	return outlines
}

// planPointsClose checks whether two points are within the given tolerance.
func planPointsClose(a, b point2D, tolerance float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx+dy*dy) <= tolerance
}
