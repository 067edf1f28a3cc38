package engine

import (
	"math"

	"github.com/piwi3910/FacadeMatch/internal/model"
)

// MatchDetections finds, for every detection, the nearest element of
// the same type, side, and floor by normalized position. Exactly one
// record is produced per detection. An interior side yields unmatched
// records without any distance computation; ties go to the first
// candidate in element order.
func MatchDetections(detections []model.Detection, elems []model.NormalizedElement, side model.Side) []model.MatchRecord {
	records := make([]model.MatchRecord, 0, len(detections))

	if !side.Exterior() {
		for _, det := range detections {
			records = append(records, model.MatchRecord{
				YoloID: det.ID,
				Label:  det.Label,
				Note:   "non-exterior / unclassifiable detection set",
			})
		}
		return records
	}

	for _, det := range detections {
		rec := model.MatchRecord{YoloID: det.ID, Label: det.Label}

		typ, ok := model.CanonicalType(det.Label)
		if !ok {
			rec.Note = "unknown label " + det.Label
			records = append(records, rec)
			continue
		}

		bestIdx := -1
		bestDist := math.Inf(1)
		for i, el := range elems {
			if el.Side != side || el.Type != typ || el.Floor != det.Floor {
				continue
			}
			dist := math.Abs(el.CenterNorm - det.XNorm)
			if dist < bestDist {
				bestDist = dist
				bestIdx = i
			}
		}

		if bestIdx < 0 {
			rec.Note = "no candidates for type/side/floor"
			records = append(records, rec)
			continue
		}

		el := elems[bestIdx]
		id, tag, dist := el.ID, el.Tag, bestDist
		rec.BimID = &id
		rec.BimTag = &tag
		rec.Distance = &dist
		records = append(records, rec)
	}
	return records
}
