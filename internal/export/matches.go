package export

import (
	"time"

	"github.com/piwi3910/FacadeMatch/internal/engine"
	"github.com/piwi3910/FacadeMatch/internal/model"
)

// MatchReport is the persisted record of one matching run: which side
// the detection batch was classified to and the per-detection match
// outcomes.
type MatchReport struct {
	RunID          string              `json:"run_id"`
	Timestamp      time.Time           `json:"timestamp"`
	ClassifiedSide model.Side          `json:"classified_side"`
	SideScore      float64             `json:"side_score"`
	Matches        []model.MatchRecord `json:"matches"`
	Warnings       []string            `json:"warnings,omitempty"`
}

// BuildMatchReport assembles a report from a pipeline result.
func BuildMatchReport(res *engine.Result) MatchReport {
	return MatchReport{
		RunID:          res.RunID,
		Timestamp:      time.Now(),
		ClassifiedSide: res.Side,
		SideScore:      res.SideScore,
		Matches:        res.Matches,
		Warnings:       res.Warnings,
	}
}

// ExportMatchReport writes the match report to a JSON file.
func ExportMatchReport(path string, res *engine.Result) error {
	return writeJSON(path, BuildMatchReport(res))
}

// MatchedCount returns how many detections in the report found an element.
func (r MatchReport) MatchedCount() int {
	n := 0
	for _, m := range r.Matches {
		if m.Matched() {
			n++
		}
	}
	return n
}
