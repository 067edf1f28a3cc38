// Package engine implements the facade classification and matching
// pipeline: building bounds, floor split, side classification, door
// grouping, per-side normalization, and detection-to-element matching.
//
// Every stage is a pure function of the elements and detections handed
// in for one run; derived state is recomputed fully on each Run and
// recoverable problems accumulate as warnings on the Result instead of
// aborting the pipeline.
package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/piwi3910/FacadeMatch/internal/model"
)

// Fatal pipeline preconditions. Anything else is recorded as a warning
// and the run continues.
var (
	// ErrNoGeometry means no panel yielded a bounding box, so the
	// building footprint is undefined.
	ErrNoGeometry = errors.New("no panel geometry available")
	// ErrInsufficientData means the floor split had zero input values.
	ErrInsufficientData = errors.New("insufficient data for floor split")
	// ErrInsufficientStuds means fewer than two studs were found, so no
	// door opening can be formed.
	ErrInsufficientStuds = errors.New("fewer than 2 studs available for pairing")
)

// Engine runs the classification and matching pipeline.
type Engine struct {
	Settings model.Settings
}

// New returns an engine with the given settings.
func New(settings model.Settings) *Engine {
	return &Engine{Settings: settings}
}

// Result is the complete, internally consistent output of one run,
// plus the warnings accumulated along the way.
type Result struct {
	RunID       string                    `json:"run_id"`
	Bounds      model.FacadeBounds        `json:"bounds"`
	FloorSplitZ float64                   `json:"floor_split_z"`
	Openings    []model.DoorOpening       `json:"openings"`
	Summary     model.SideSummary         `json:"side_summary"`
	SideWidths  map[model.Side]float64    `json:"side_widths"`
	Elements    []model.NormalizedElement `json:"elements"`
	Side        model.Side                `json:"classified_side"`
	SideScore   float64                   `json:"side_score"`
	Matches     []model.MatchRecord       `json:"matches"`
	Warnings    []string                  `json:"warnings"`

	// noBoxWarned tracks elements already reported for a missing
	// bounding box, so later stages do not repeat the warning.
	noBoxWarned map[string]bool
}

// warnf records a recoverable condition on the result.
func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// warnNoBox records a missing-bounding-box warning at most once per
// element, across every stage of the run.
func (r *Result) warnNoBox(kind string, id int) {
	key := fmt.Sprintf("%s/%d", kind, id)
	if r.noBoxWarned[key] {
		return
	}
	if r.noBoxWarned == nil {
		r.noBoxWarned = make(map[string]bool)
	}
	r.noBoxWarned[key] = true
	r.warnf("%s %d has no bounding box, skipped", kind, id)
}

// Run executes the whole pipeline over one snapshot of elements and
// detections. It returns an error only for the fatal preconditions;
// every other problem is a warning on the returned Result.
func (e *Engine) Run(panels, doorElems, windows []model.Element, detections []model.Detection) (*Result, error) {
	log := e.Settings.Log()
	res := &Result{RunID: uuid.New().String()[:8]}

	bounds, err := ComputeBounds(panels, e.Settings.BoundsStrategy, res)
	if err != nil {
		return nil, err
	}
	res.Bounds = bounds
	log.Debug("bounds computed",
		"xmin", bounds.XMin, "xmax", bounds.XMax,
		"ymin", bounds.YMin, "ymax", bounds.YMax)

	split, err := ComputeFloorSplit(panels, e.Settings.FloorStat)
	if err != nil {
		return nil, err
	}
	res.FloorSplitZ = split
	log.Debug("floor split computed", "z_mm", split)

	panels = e.AggregatePanels(panels, bounds, split, res)
	if e.Settings.PanelGrouping == model.GroupComponents {
		log.Info("panel components aggregated", "groups", len(panels))
	}

	openings, err := e.GroupDoorOpenings(doorElems, res)
	if err != nil {
		return nil, err
	}
	res.Openings = openings
	log.Info("door openings grouped", "count", len(openings))

	res.Summary = e.BuildSideSummary(panels, windows, openings, bounds, split, res)

	e.NormalizeSides(panels, windows, openings, split, res)
	log.Info("elements normalized", "count", len(res.Elements))

	side, score := e.ScoreSides(detections, res.Elements)
	res.Side = side
	res.SideScore = score
	log.Info("detection batch classified", "side", side, "score", score)

	res.Matches = MatchDetections(detections, res.Elements, side)
	matched := 0
	for _, m := range res.Matches {
		if m.Matched() {
			matched++
		}
	}
	log.Info("detections matched", "matched", matched, "total", len(res.Matches))

	for _, w := range res.Warnings {
		log.Warn(w)
	}
	return res, nil
}
