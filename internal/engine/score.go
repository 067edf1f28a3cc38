package engine

import "github.com/piwi3910/FacadeMatch/internal/model"

// ScoreSides decides which facade side an entire detection batch shows.
// Scoring is presence-based, deliberately insensitive to element
// counts: for each detection whose type exists at all on a side, that
// side earns the type's fixed weight. The highest-scoring side wins;
// below the interior threshold (or with no detections) the batch is
// declared interior. Side iteration follows the fixed A, C, B, D order,
// so equal scores resolve deterministically.
func (e *Engine) ScoreSides(detections []model.Detection, elems []model.NormalizedElement) (model.Side, float64) {
	if len(detections) == 0 {
		return model.SideInterior, 0
	}

	present := make(map[model.Side]map[model.ElementType]bool, 4)
	for _, s := range model.Sides() {
		present[s] = make(map[model.ElementType]bool, 3)
	}
	for _, el := range elems {
		if rec, ok := present[el.Side]; ok {
			rec[el.Type] = true
		}
	}

	scores := make(map[model.Side]float64, 4)
	for _, det := range detections {
		typ, ok := model.CanonicalType(det.Label)
		if !ok {
			continue
		}
		weight := e.Settings.TypeWeight(typ)
		for _, s := range model.Sides() {
			if present[s][typ] {
				scores[s] += weight
			}
		}
	}

	best := model.SideInterior
	bestScore := 0.0
	for _, s := range model.Sides() {
		if scores[s] > bestScore {
			best = s
			bestScore = scores[s]
		}
	}

	if bestScore < e.Settings.InteriorThreshold {
		return model.SideInterior, bestScore
	}
	return best, bestScore
}
