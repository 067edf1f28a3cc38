package model

import "log/slog"

// BoundsStrategy selects how the building footprint is derived from
// panel bounding boxes.
type BoundsStrategy string

const (
	// BoundsExtents spans the raw xmin/xmax/ymin/ymax extremes of every
	// panel box. This is the wider footprint.
	BoundsExtents BoundsStrategy = "extents"
	// BoundsMidpoints spans only the panel midpoints, giving a tighter
	// footprint that ignores panel thickness.
	BoundsMidpoints BoundsStrategy = "midpoints"
)

// FloorStat selects the per-element Z statistic used both to compute the
// floor split and to classify elements against it.
type FloorStat string

const (
	FloorStatBottom FloorStat = "bottom" // bounding-box zmin
	FloorStatCenter FloorStat = "center" // bounding-box z midpoint
)

// GroupStrategy selects whether multi-component element families are
// collapsed into logical groups before summaries and normalization.
type GroupStrategy string

const (
	// GroupNone keeps every element individual.
	GroupNone GroupStrategy = "none"
	// GroupComponents merges the components of one logical unit into a
	// single element with a union bounding box.
	GroupComponents GroupStrategy = "components"
)

// PairStrategy selects how studs are paired into door openings.
type PairStrategy string

const (
	// PairAdjacent walks the studs sorted by (z, x) and pairs neighbours
	// whose vertical centers fall within the same-floor tolerance.
	PairAdjacent PairStrategy = "adjacent"
	// PairRows assumes the known two-floor, one-door-per-floor topology:
	// exactly four studs, split by Z into two rows of two, paired by X.
	PairRows PairStrategy = "rows"
)

// Settings holds all pipeline configuration. It is a plain value passed
// into each stage; there is no process-wide configuration state.
type Settings struct {
	BoundsStrategy BoundsStrategy `json:"bounds_strategy"`
	FloorStat      FloorStat      `json:"floor_stat"`
	PairStrategy   PairStrategy   `json:"pair_strategy"`

	// PanelGrouping, when GroupComponents, merges each side/floor's
	// panel components into one logical panel with a union box.
	PanelGrouping GroupStrategy `json:"panel_grouping"`
	// DoorGrouping selects between composing openings from studs and
	// headers (GroupComponents) and taking every raw door element as
	// its own opening (GroupNone).
	DoorGrouping GroupStrategy `json:"door_grouping"`

	// StudHeightThreshold separates studs from headers: door-family
	// elements taller than this are studs. Geometry-dependent, not
	// universal.
	StudHeightThreshold float64 `json:"stud_height_threshold_mm"`
	// SameFloorTolerance is the maximum vertical-center difference for
	// two studs to be considered part of the same opening.
	SameFloorTolerance float64 `json:"same_floor_tolerance_mm"`
	// EdgeTolerance, when positive, makes side classification return
	// SideInterior for points farther than this from every edge.
	// Zero keeps the total nearest-edge mapping.
	EdgeTolerance float64 `json:"edge_tolerance_mm"`

	// ClassifyWindowFloors floor-classifies windows like doors; when
	// false every window defaults to floor 1.
	ClassifyWindowFloors bool `json:"classify_window_floors"`

	// Presence-based side scoring weights and the score below which a
	// detection batch is declared interior.
	DoorWeight        float64 `json:"door_weight"`
	WindowWeight      float64 `json:"window_weight"`
	PanelWeight       float64 `json:"panel_weight"`
	InteriorThreshold float64 `json:"interior_threshold"`

	// Logger receives stage diagnostics. Nil means slog.Default().
	Logger *slog.Logger `json:"-"`
}

// DefaultSettings returns the reference configuration: extent bounds,
// bottom-Z floor statistic, tolerance-based stud pairing, and the fixed
// 3/2/1 side-scoring weights.
func DefaultSettings() Settings {
	return Settings{
		BoundsStrategy:       BoundsExtents,
		FloorStat:            FloorStatBottom,
		PairStrategy:         PairAdjacent,
		PanelGrouping:        GroupNone,
		DoorGrouping:         GroupComponents,
		StudHeightThreshold:  500.0,
		SameFloorTolerance:   1000.0,
		EdgeTolerance:        0,
		ClassifyWindowFloors: true,
		DoorWeight:           3.0,
		WindowWeight:         2.0,
		PanelWeight:          1.0,
		InteriorThreshold:    0.5,
	}
}

// TypeWeight returns the side-scoring weight for an element type.
func (s Settings) TypeWeight(t ElementType) float64 {
	switch t {
	case TypeDoor:
		return s.DoorWeight
	case TypeWindow:
		return s.WindowWeight
	case TypePanel:
		return s.PanelWeight
	}
	return 0
}

// Log returns the configured logger, falling back to slog.Default().
func (s Settings) Log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
